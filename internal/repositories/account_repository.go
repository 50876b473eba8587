package repositories

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"foodbridge/internal/infra"
	"foodbridge/internal/models/db_models"
)

type AccountRepository interface {
	InsertTx(ctx context.Context, account *db_models.Account) error
	FindById(ctx context.Context, id uint) (*db_models.Account, error)
	FindByRoleAndEmail(ctx context.Context, role db_models.Role, email string) ([]db_models.Account, error)
	FindNamesByIds(ctx context.Context, ids []uint) (map[uint]string, error)
	List(ctx context.Context, role db_models.Role, page, pageSize int) ([]db_models.Account, int64, error)
	Update(ctx context.Context, account *db_models.Account) error
	Delete(ctx context.Context, id uint) (bool, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

func (a *accountRepository) InsertTx(ctx context.Context, account *db_models.Account) error {
	return a.db.WithContext(ctx).Create(account).Error
}

func (a *accountRepository) FindById(ctx context.Context, id uint) (*db_models.Account, error) {
	var account db_models.Account
	err := a.db.WithContext(ctx).First(&account, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

// FindByRoleAndEmail returns every account of role whose email matches
// case-insensitively, oldest first. More than one row is possible for data
// created before registration enforced uniqueness.
func (a *accountRepository) FindByRoleAndEmail(ctx context.Context, role db_models.Role, email string) ([]db_models.Account, error) {
	var accounts []db_models.Account
	err := a.db.WithContext(ctx).
		Where("role = ? AND LOWER(email) = ?", role, strings.ToLower(strings.TrimSpace(email))).
		Order("id ASC").
		Find(&accounts).Error
	return accounts, err
}

func (a *accountRepository) FindNamesByIds(ctx context.Context, ids []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var rows []struct {
		ID   uint
		Name string
	}
	err := a.db.WithContext(ctx).
		Model(&db_models.Account{}).
		Select("id, name").
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		names[r.ID] = r.Name
	}
	return names, nil
}

// List pages through accounts. An empty role lists every role.
func (a *accountRepository) List(ctx context.Context, role db_models.Role, page, pageSize int) ([]db_models.Account, int64, error) {
	filter := func(q *gorm.DB) *gorm.DB {
		if role != "" {
			return q.Where("role = ?", role)
		}
		return q
	}

	var total int64
	if err := a.db.WithContext(ctx).Model(&db_models.Account{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var accounts []db_models.Account
	err := a.db.WithContext(ctx).
		Scopes(filter).
		Order("id ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&accounts).Error
	return accounts, total, err
}

func (a *accountRepository) Update(ctx context.Context, account *db_models.Account) error {
	return a.db.WithContext(ctx).Save(account).Error
}

// Delete removes the account together with everything it owns.
func (a *accountRepository) Delete(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := infra.WithTransaction(a.db.WithContext(ctx), func(tx *gorm.DB) error {
		owned := []struct {
			model interface{}
			where string
			args  []interface{}
		}{
			{&db_models.MenuItem{}, "restaurant_id = ?", []interface{}{id}},
			{&db_models.Rating{}, "user_id = ? OR restaurant_id = ?", []interface{}{id, id}},
			{&db_models.UserPreferences{}, "user_id = ?", []interface{}{id}},
			{&db_models.FoodRequest{}, "ngo_id = ? OR restaurant_id = ?", []interface{}{id, id}},
			{&db_models.PackingRequest{}, "requester_id = ? OR packing_company_id = ?", []interface{}{id, id}},
			{&db_models.PickupRequest{}, "restaurant_id = ? OR ngo_id = ?", []interface{}{id, id}},
		}
		// embeddings only exist where the vector table was migrated
		if tx.Migrator().HasTable(&db_models.MenuEmbedding{}) {
			owned = append(owned, struct {
				model interface{}
				where string
				args  []interface{}
			}{&db_models.MenuEmbedding{}, "restaurant_id = ?", []interface{}{id}})
		}
		for _, o := range owned {
			if err := tx.Where(o.where, o.args...).Delete(o.model).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&db_models.Account{}, id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}
