package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"foodbridge/internal/models/db_models"
	"foodbridge/internal/models/request_models"
	"foodbridge/internal/models/response_models"
	"foodbridge/internal/repositories"
	"foodbridge/internal/statemachine"
	"foodbridge/pkg/utils"
)

// requestKindRule says who may ask and who may answer for a kind.
type requestKindRule struct {
	request db_models.Capability
	fulfill db_models.Capability
}

var requestKindRules = map[db_models.RequestKind]requestKindRule{
	db_models.KindFood:    {request: db_models.CapRequestFood, fulfill: db_models.CapFulfillFood},
	db_models.KindPacking: {request: db_models.CapRequestPacking, fulfill: db_models.CapFulfillPacking},
	db_models.KindPickup:  {request: db_models.CapRequestPickup, fulfill: db_models.CapFulfillPickup},
}

type RequestServiceInterface interface {
	CreateRequest(ctx context.Context, kind string, requesterID uint, requesterRole db_models.Role, request request_models.CreateRequest) (*response_models.RequestResponse, error)
	ListOutgoing(ctx context.Context, kind string, accountID uint, role db_models.Role, status string) ([]response_models.RequestResponse, error)
	ListIncoming(ctx context.Context, kind string, accountID uint, role db_models.Role, status string) ([]response_models.RequestResponse, error)
	Transition(ctx context.Context, kind string, id, callerID uint, callerRole db_models.Role, to db_models.RequestStatus) (*response_models.RequestResponse, error)
	Lifecycle() response_models.RequestLifecycle
}

type RequestService struct {
	requestRepo repositories.RequestRepository
	accountRepo repositories.AccountRepository
	mail        IMailService
	logger      *zap.Logger
	now         func() time.Time
}

func NewRequestService(
	requestRepo repositories.RequestRepository,
	accountRepo repositories.AccountRepository,
	mail IMailService,
	logger *zap.Logger,
) RequestServiceInterface {
	return &RequestService{
		requestRepo: requestRepo,
		accountRepo: accountRepo,
		mail:        mail,
		logger:      logger,
		now:         time.Now,
	}
}

func parseKind(kind string) (db_models.RequestKind, requestKindRule, error) {
	k, ok := db_models.ParseRequestKind(strings.ToLower(kind))
	if !ok {
		return "", requestKindRule{}, utils.NewValidationError("Unknown request kind, expected food, packing or pickup")
	}
	return k, requestKindRules[k], nil
}

// CreateRequest always stores the request as pending, whatever status the
// caller sent.
func (s *RequestService) CreateRequest(
	ctx context.Context,
	kind string,
	requesterID uint,
	requesterRole db_models.Role,
	request request_models.CreateRequest,
) (*response_models.RequestResponse, error) {
	k, rule, err := parseKind(kind)
	if err != nil {
		return nil, err
	}
	if !requesterRole.Can(rule.request) {
		return nil, utils.ErrForbidden
	}

	title := strings.TrimSpace(request.Title)
	switch {
	case title == "":
		return nil, utils.NewValidationError("Title is required")
	case request.Quantity <= 0:
		return nil, utils.NewValidationError("Quantity must be greater than 0")
	case !request.DueDate.After(s.now()):
		return nil, utils.NewValidationError("Due date must be in the future")
	}

	requester, err := s.accountRepo.FindById(ctx, requesterID)
	if err != nil {
		return nil, dbError(err)
	}
	if requester == nil || requester.Role != requesterRole {
		return nil, utils.ErrUnauthorized
	}

	counterparty, err := s.accountRepo.FindById(ctx, request.CounterpartyID)
	if err != nil {
		return nil, dbError(err)
	}
	if counterparty == nil || !counterparty.Role.Can(rule.fulfill) {
		return nil, utils.ErrCounterpartyNotFound
	}

	rec := &repositories.RequestRecord{
		Kind: k,
		RequestBody: db_models.RequestBody{
			Title:       title,
			Description: strings.TrimSpace(request.Description),
			Quantity:    request.Quantity,
			DueDate:     request.DueDate.UTC(),
			Status:      db_models.StatusPending,
		},
		RequesterID:   requesterID,
		RequesterRole: requesterRole,
		AddresseeID:   counterparty.ID,
		AddresseeRole: counterparty.Role,
	}
	if err := s.requestRepo.Create(ctx, rec); err != nil {
		return nil, dbError(err)
	}

	s.logger.Info("request created",
		zap.String("kind", string(k)),
		zap.Uint("request_id", rec.ID),
		zap.Uint("requester_id", requesterID),
		zap.Uint("addressee_id", counterparty.ID))

	names := map[uint]string{
		requester.ID:    requester.Name,
		counterparty.ID: counterparty.Name,
	}

	s.notify(counterparty.Email,
		fmt.Sprintf("New %s request: %s", k, rec.Title),
		fmt.Sprintf("%s sent you a %s request \"%s\" for %d, due %s.",
			displayName(names[requesterID]), k, rec.Title, rec.Quantity, utils.FormatDisplayDate(rec.DueDate)))

	resp := toRequestResponse(*rec, names)
	return &resp, nil
}

func (s *RequestService) ListOutgoing(ctx context.Context, kind string, accountID uint, role db_models.Role, status string) ([]response_models.RequestResponse, error) {
	k, rule, err := parseKind(kind)
	if err != nil {
		return nil, err
	}
	if !role.Can(rule.request) {
		return nil, utils.ErrForbidden
	}
	return s.list(ctx, k, repositories.PartyRequester, accountID, status)
}

func (s *RequestService) ListIncoming(ctx context.Context, kind string, accountID uint, role db_models.Role, status string) ([]response_models.RequestResponse, error) {
	k, rule, err := parseKind(kind)
	if err != nil {
		return nil, err
	}
	if !role.Can(rule.fulfill) {
		return nil, utils.ErrForbidden
	}
	return s.list(ctx, k, repositories.PartyAddressee, accountID, status)
}

func (s *RequestService) list(ctx context.Context, kind db_models.RequestKind, party repositories.Party, accountID uint, status string) ([]response_models.RequestResponse, error) {
	var filter db_models.RequestStatus
	if status != "" {
		st, ok := statemachine.ParseStatus(status)
		if !ok {
			return nil, utils.NewValidationError("Unknown status filter")
		}
		filter = st
	}

	recs, err := s.requestRepo.List(ctx, kind, party, accountID, filter)
	if err != nil {
		return nil, dbError(err)
	}

	// one lookup for every party name instead of one per row
	ids := make([]uint, 0, len(recs)*2)
	seen := make(map[uint]bool)
	for _, rec := range recs {
		for _, id := range []uint{rec.RequesterID, rec.AddresseeID} {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	names, err := s.accountRepo.FindNamesByIds(ctx, ids)
	if err != nil {
		return nil, dbError(err)
	}

	out := make([]response_models.RequestResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toRequestResponse(rec, names))
	}
	return out, nil
}

// Transition moves a request to status to. Only the addressed counterparty
// may do it, and the write only lands if nobody moved the request first.
func (s *RequestService) Transition(
	ctx context.Context,
	kind string,
	id, callerID uint,
	callerRole db_models.Role,
	to db_models.RequestStatus,
) (*response_models.RequestResponse, error) {
	k, rule, err := parseKind(kind)
	if err != nil {
		return nil, err
	}

	rec, err := s.requestRepo.FindById(ctx, k, id)
	if err != nil {
		return nil, dbError(err)
	}
	if rec == nil {
		return nil, utils.ErrRequestNotFound
	}
	if rec.AddresseeID != callerID || !callerRole.Can(rule.fulfill) {
		return nil, utils.ErrForbidden
	}

	if err := statemachine.CanTransition(rec.Status, to); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrInvalidTransition, err)
	}

	ok, err := s.requestRepo.UpdateStatus(ctx, k, id, rec.Status, to)
	if err != nil {
		return nil, dbError(err)
	}
	if !ok {
		return nil, utils.ErrStatusConflict
	}

	s.logger.Info("request status changed",
		zap.String("kind", string(k)),
		zap.Uint("request_id", id),
		zap.String("from", string(rec.Status)),
		zap.String("to", string(to)),
		zap.Uint("by", callerID))
	rec.Status = to

	requester, err := s.accountRepo.FindById(ctx, rec.RequesterID)
	if err != nil {
		return nil, dbError(err)
	}
	addressee, err := s.accountRepo.FindById(ctx, rec.AddresseeID)
	if err != nil {
		return nil, dbError(err)
	}

	names := make(map[uint]string, 2)
	if addressee != nil {
		names[addressee.ID] = addressee.Name
	}
	if requester != nil {
		names[requester.ID] = requester.Name
		s.notify(requester.Email,
			fmt.Sprintf("Your %s request was %s", k, to),
			fmt.Sprintf("%s marked your %s request \"%s\" as %s.",
				displayName(names[rec.AddresseeID]), k, rec.Title, to))
	}

	resp := toRequestResponse(*rec, names)
	return &resp, nil
}

// transitionActions names the endpoint that performs each target status.
var transitionActions = map[db_models.RequestStatus]string{
	db_models.StatusAccepted:  "accept",
	db_models.StatusRejected:  "reject",
	db_models.StatusCompleted: "complete",
}

func (s *RequestService) Lifecycle() response_models.RequestLifecycle {
	statuses := []db_models.RequestStatus{
		db_models.StatusPending,
		db_models.StatusAccepted,
		db_models.StatusRejected,
		db_models.StatusCompleted,
	}

	out := response_models.RequestLifecycle{Initial: string(db_models.StatusPending)}
	for _, st := range statuses {
		next := make([]string, 0, 2)
		for _, n := range statemachine.ValidTransitionsFrom(st) {
			next = append(next, string(n))
		}
		out.Statuses = append(out.Statuses, response_models.LifecycleStatus{
			Status:   string(st),
			Terminal: statemachine.IsTerminal(st),
			Next:     next,
		})
	}
	for _, tr := range statemachine.GetAllTransitions() {
		out.Transitions = append(out.Transitions, response_models.LifecycleTransition{
			From:   string(tr.From),
			To:     string(tr.To),
			Action: transitionActions[tr.To],
		})
	}
	return out
}

// notify never fails the caller.
func (s *RequestService) notify(to, subject, body string) {
	if to == "" {
		return
	}
	if err := s.mail.SendMailToNotifyUser(to, subject, body); err != nil {
		s.logger.Warn("failed to send notification", zap.String("to", to), zap.String("subject", subject), zap.Error(err))
	}
}

func displayName(name string) string {
	if name == "" {
		return "Someone"
	}
	return name
}

func toRequestResponse(rec repositories.RequestRecord, names map[uint]string) response_models.RequestResponse {
	next := statemachine.ValidTransitionsFrom(rec.Status)
	nextStates := make([]string, len(next))
	for i, st := range next {
		nextStates[i] = string(st)
	}

	return response_models.RequestResponse{
		ID:               rec.ID,
		Kind:             string(rec.Kind),
		Title:            rec.Title,
		Description:      rec.Description,
		Quantity:         rec.Quantity,
		DueDate:          rec.DueDate,
		Status:           string(rec.Status),
		RequesterID:      rec.RequesterID,
		RequesterRole:    string(rec.RequesterRole),
		RequesterName:    names[rec.RequesterID],
		CounterpartyID:   rec.AddresseeID,
		CounterpartyRole: string(rec.AddresseeRole),
		CounterpartyName: names[rec.AddresseeID],
		ValidNextStates:  nextStates,
		CreatedAt:        utils.FormatRFC3339(utils.FromUnixSeconds(rec.CreatedAt)),
	}
}
