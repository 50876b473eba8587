// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"foodbridge/internal/infra"
	"foodbridge/internal/models/db_models"
	"foodbridge/pkg/utils"
)

// NewDB returns a migrated in-memory SQLite database private to t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to ":memory:" is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, infra.Migrate(db))
	return db
}

// CreateAccount inserts an account with a bcrypt hash of password.
func CreateAccount(t *testing.T, db *gorm.DB, name, email, password string, role db_models.Role) *db_models.Account {
	t.Helper()

	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	account := &db_models.Account{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	require.NoError(t, db.Create(account).Error)
	return account
}
