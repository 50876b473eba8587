package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"foodbridge/internal/models/db_models"
	"foodbridge/internal/models/request_models"
	"foodbridge/internal/repositories"
	mem "foodbridge/pkg/memcache"
	"foodbridge/pkg/utils"
)

type AdminServiceInterface interface {
	ListAccounts(ctx context.Context, role string, page, pageSize int) ([]db_models.Account, int64, error)
	GetAccount(ctx context.Context, id uint) (*db_models.Account, error)
	UpdateAccount(ctx context.Context, id uint, request request_models.AdminUpdateAccountRequest) (*db_models.Account, error)
	DeleteAccount(ctx context.Context, callerID, id uint) error
}

type AdminService struct {
	accountRepo repositories.AccountRepository
	tokens      mem.TokenStore
	sessionTTL  time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

// NewAdminService revokes an account's sessions in tokens when the account is
// deleted or its role changes. sessionTTL is the session token lifetime.
func NewAdminService(
	accountRepo repositories.AccountRepository,
	tokens mem.TokenStore,
	sessionTTL time.Duration,
	logger *zap.Logger,
) AdminServiceInterface {
	return &AdminService{
		accountRepo: accountRepo,
		tokens:      tokens,
		sessionTTL:  sessionTTL,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *AdminService) ListAccounts(ctx context.Context, role string, page, pageSize int) ([]db_models.Account, int64, error) {
	if page <= 0 {
		return nil, 0, utils.ErrInvalidPage
	}
	if pageSize <= 0 || pageSize > 100 {
		return nil, 0, utils.ErrInvalidPageSize
	}

	var filter db_models.Role
	if role != "" {
		r, ok := db_models.ParseRole(role)
		if !ok {
			return nil, 0, utils.ErrInvalidRole
		}
		filter = r
	}

	accounts, total, err := s.accountRepo.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, 0, dbError(err)
	}
	return accounts, total, nil
}

func (s *AdminService) GetAccount(ctx context.Context, id uint) (*db_models.Account, error) {
	account, err := s.accountRepo.FindById(ctx, id)
	if err != nil {
		return nil, dbError(err)
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}
	return account, nil
}

func (s *AdminService) UpdateAccount(ctx context.Context, id uint, request request_models.AdminUpdateAccountRequest) (*db_models.Account, error) {
	account, err := s.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	if request.DisplayName != nil {
		account.Name = strings.TrimSpace(*request.DisplayName)
	}
	if request.Phone != nil {
		account.Phone = strings.TrimSpace(*request.Phone)
	}
	if request.Address != nil {
		account.Address = strings.TrimSpace(*request.Address)
	}
	roleChanged := false
	if request.Role != nil {
		role, ok := db_models.ParseRole(*request.Role)
		if !ok {
			return nil, utils.ErrInvalidRole
		}
		if role != account.Role {
			existing, err := s.accountRepo.FindByRoleAndEmail(ctx, role, account.Email)
			if err != nil {
				return nil, dbError(err)
			}
			if len(existing) > 0 {
				return nil, utils.ErrEmailAlreadyExists
			}
			s.logger.Info("account role changed",
				zap.Uint("account_id", account.ID),
				zap.String("from", string(account.Role)),
				zap.String("to", string(role)))
			account.Role = role
			roleChanged = true
		}
	}

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, dbError(err)
	}
	if roleChanged {
		s.revokeSessions(account.ID)
	}
	return account, nil
}

// revokeSessions forces the account to log in again.
func (s *AdminService) revokeSessions(id uint) {
	mem.RevokeAccountSessions(s.tokens, id, s.now(), s.sessionTTL)
}

// DeleteAccount removes an account and everything it owns. Admins cannot
// delete themselves.
func (s *AdminService) DeleteAccount(ctx context.Context, callerID, id uint) error {
	if callerID == id {
		return utils.NewValidationError("You cannot delete your own account")
	}

	deleted, err := s.accountRepo.Delete(ctx, id)
	if err != nil {
		return dbError(err)
	}
	if !deleted {
		return utils.ErrAccountNotFound
	}
	s.revokeSessions(id)
	s.logger.Info("account deleted", zap.Uint("account_id", id), zap.Uint("by", callerID))
	return nil
}
