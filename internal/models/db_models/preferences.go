package db_models

import (
	"database/sql/driver"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// StringList is stored as a postgres text[] column; other dialects get the
// same array literal in a text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	return pq.StringArray(l).Value()
}

func (l *StringList) Scan(src interface{}) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return err
	}
	*l = StringList(arr)
	return nil
}

func (StringList) GormDataType() string {
	return "text"
}

func (StringList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

type UserPreferences struct {
	BaseModel
	UserID              uint       `gorm:"not null;uniqueIndex" json:"user_id"`
	FavoriteFoods       StringList `json:"favorite_foods"`
	DietaryRestrictions StringList `json:"dietary_restrictions"`
	AverageQuantity     int        `json:"average_quantity"`
	FamilySize          int        `json:"family_size"`
	PrefersAC           bool       `json:"prefers_ac"`
}
