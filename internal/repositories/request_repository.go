package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"foodbridge/internal/models/db_models"
)

// RequestRecord is the table-independent view of a food, packing or pickup
// request: who asked, who is being asked, and the shared body.
type RequestRecord struct {
	ID   uint
	Kind db_models.RequestKind
	db_models.RequestBody
	RequesterID   uint
	RequesterRole db_models.Role
	AddresseeID   uint
	AddresseeRole db_models.Role
	CreatedAt     int64
	UpdatedAt     int64
}

// ErrUnknownKind is returned for a kind with no table.
var ErrUnknownKind = errors.New("unknown request kind")

// Party selects which side of a request a listing is filtered on.
type Party int

const (
	PartyRequester Party = iota
	PartyAddressee
)

type RequestRepository interface {
	Create(ctx context.Context, rec *RequestRecord) error
	FindById(ctx context.Context, kind db_models.RequestKind, id uint) (*RequestRecord, error)
	List(ctx context.Context, kind db_models.RequestKind, party Party, partyID uint, status db_models.RequestStatus) ([]RequestRecord, error)
	// UpdateStatus moves id from → to and reports false when the row was no
	// longer in from.
	UpdateStatus(ctx context.Context, kind db_models.RequestKind, id uint, from, to db_models.RequestStatus) (bool, error)
}

// requestTable describes how a kind is laid out in its own table.
type requestTable struct {
	model        func() interface{}
	requesterCol string
	addresseeCol string
}

var requestTables = map[db_models.RequestKind]requestTable{
	db_models.KindFood: {
		model:        func() interface{} { return &db_models.FoodRequest{} },
		requesterCol: "ngo_id",
		addresseeCol: "restaurant_id",
	},
	db_models.KindPacking: {
		model:        func() interface{} { return &db_models.PackingRequest{} },
		requesterCol: "requester_id",
		addresseeCol: "packing_company_id",
	},
	db_models.KindPickup: {
		model:        func() interface{} { return &db_models.PickupRequest{} },
		requesterCol: "restaurant_id",
		addresseeCol: "ngo_id",
	},
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func tableFor(kind db_models.RequestKind) (requestTable, error) {
	t, ok := requestTables[kind]
	if !ok {
		return requestTable{}, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}
	return t, nil
}

func (r *requestRepository) Create(ctx context.Context, rec *RequestRecord) error {
	switch rec.Kind {
	case db_models.KindFood:
		row := &db_models.FoodRequest{RequestBody: rec.RequestBody, NgoID: rec.RequesterID, RestaurantID: rec.AddresseeID}
		if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
			return err
		}
		*rec = foodRecord(*row)
	case db_models.KindPacking:
		row := &db_models.PackingRequest{
			RequestBody:      rec.RequestBody,
			RequesterID:      rec.RequesterID,
			RequesterType:    rec.RequesterRole,
			PackingCompanyID: rec.AddresseeID,
		}
		if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
			return err
		}
		*rec = packingRecord(*row)
	case db_models.KindPickup:
		row := &db_models.PickupRequest{RequestBody: rec.RequestBody, RestaurantID: rec.RequesterID, NgoID: rec.AddresseeID}
		if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
			return err
		}
		*rec = pickupRecord(*row)
	default:
		return fmt.Errorf("%w %q", ErrUnknownKind, rec.Kind)
	}
	return nil
}

func (r *requestRepository) FindById(ctx context.Context, kind db_models.RequestKind, id uint) (*RequestRecord, error) {
	recs, err := r.find(ctx, kind, func(q *gorm.DB) *gorm.DB {
		return q.Where("id = ?", id).Limit(1)
	})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

func (r *requestRepository) List(ctx context.Context, kind db_models.RequestKind, party Party, partyID uint, status db_models.RequestStatus) ([]RequestRecord, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	col := table.requesterCol
	if party == PartyAddressee {
		col = table.addresseeCol
	}

	return r.find(ctx, kind, func(q *gorm.DB) *gorm.DB {
		q = q.Where(col+" = ?", partyID)
		if status != "" {
			q = q.Where("status = ?", status)
		}
		return q.Order("created_at DESC, id DESC")
	})
}

func (r *requestRepository) find(ctx context.Context, kind db_models.RequestKind, scope func(*gorm.DB) *gorm.DB) ([]RequestRecord, error) {
	q := scope(r.db.WithContext(ctx))

	switch kind {
	case db_models.KindFood:
		var rows []db_models.FoodRequest
		if err := q.Find(&rows).Error; err != nil {
			return nil, err
		}
		return mapRecords(rows, foodRecord), nil
	case db_models.KindPacking:
		var rows []db_models.PackingRequest
		if err := q.Find(&rows).Error; err != nil {
			return nil, err
		}
		return mapRecords(rows, packingRecord), nil
	case db_models.KindPickup:
		var rows []db_models.PickupRequest
		if err := q.Find(&rows).Error; err != nil {
			return nil, err
		}
		return mapRecords(rows, pickupRecord), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownKind, kind)
}

func (r *requestRepository) UpdateStatus(ctx context.Context, kind db_models.RequestKind, id uint, from, to db_models.RequestStatus) (bool, error) {
	table, err := tableFor(kind)
	if err != nil {
		return false, err
	}

	res := r.db.WithContext(ctx).
		Model(table.model()).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now().Unix(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func mapRecords[T any](rows []T, fn func(T) RequestRecord) []RequestRecord {
	out := make([]RequestRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, fn(row))
	}
	return out
}

func foodRecord(row db_models.FoodRequest) RequestRecord {
	return RequestRecord{
		ID:            row.ID,
		Kind:          db_models.KindFood,
		RequestBody:   row.RequestBody,
		RequesterID:   row.NgoID,
		RequesterRole: db_models.RoleNGO,
		AddresseeID:   row.RestaurantID,
		AddresseeRole: db_models.RoleRestaurant,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func packingRecord(row db_models.PackingRequest) RequestRecord {
	return RequestRecord{
		ID:            row.ID,
		Kind:          db_models.KindPacking,
		RequestBody:   row.RequestBody,
		RequesterID:   row.RequesterID,
		RequesterRole: row.RequesterType,
		AddresseeID:   row.PackingCompanyID,
		AddresseeRole: db_models.RolePackingCompany,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func pickupRecord(row db_models.PickupRequest) RequestRecord {
	return RequestRecord{
		ID:            row.ID,
		Kind:          db_models.KindPickup,
		RequestBody:   row.RequestBody,
		RequesterID:   row.RestaurantID,
		RequesterRole: db_models.RoleRestaurant,
		AddresseeID:   row.NgoID,
		AddresseeRole: db_models.RoleNGO,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}
