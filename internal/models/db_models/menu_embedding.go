package db_models

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// MenuEmbedding only exists on postgres with the vector extension.
type MenuEmbedding struct {
	MenuItemID   uint            `gorm:"primaryKey;column:menu_item_id"`
	RestaurantID uint            `gorm:"not null;index"`
	Model        string          `gorm:"not null"`
	Embedding    pgvector.Vector `gorm:"type:vector"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime"`
}
