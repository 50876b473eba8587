package repositories

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"foodbridge/internal/models/db_models"
)

type IMenuEmbeddingRepository interface {
	Upsert(ctx context.Context, embedding *db_models.MenuEmbedding) error
	Delete(ctx context.Context, menuItemID uint) error
	Nearest(ctx context.Context, vector pgvector.Vector, model string, limit int) ([]ScoredMenuItem, error)
}

type ScoredMenuItem struct {
	MenuItemID uint    `gorm:"column:menu_item_id"`
	Similarity float64 `gorm:"column:similarity"`
}

type MenuEmbeddingRepository struct {
	db *gorm.DB
}

func NewMenuEmbeddingRepository(db *gorm.DB) IMenuEmbeddingRepository {
	return &MenuEmbeddingRepository{
		db: db,
	}
}

func (m *MenuEmbeddingRepository) Upsert(ctx context.Context, embedding *db_models.MenuEmbedding) error {
	return m.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "menu_item_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"restaurant_id", "model", "embedding", "updated_at"}),
		}).
		Create(embedding).Error
}

func (m *MenuEmbeddingRepository) Delete(ctx context.Context, menuItemID uint) error {
	return m.db.WithContext(ctx).Delete(&db_models.MenuEmbedding{}, "menu_item_id = ?", menuItemID).Error
}

// Nearest ranks available menu items by cosine similarity to vector. Only
// embeddings produced by the same model are comparable.
func (m *MenuEmbeddingRepository) Nearest(ctx context.Context, vector pgvector.Vector, model string, limit int) ([]ScoredMenuItem, error) {
	var results []ScoredMenuItem

	query := `
        SELECT e.menu_item_id, (1 - (e.embedding <=> ?)) AS similarity
        FROM menu_embeddings e
        JOIN menu_items mi ON mi.id = e.menu_item_id
        WHERE e.model = ? AND mi.is_available = TRUE
        ORDER BY e.embedding <=> ?
        LIMIT ?
    `

	err := m.db.WithContext(ctx).Raw(query, vector, model, vector, limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
