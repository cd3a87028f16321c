package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"nobus-loanhub/internal/adapters/persistence/models"
	"nobus-loanhub/internal/config"
	"nobus-loanhub/internal/core/domain"
	"nobus-loanhub/internal/pkg/password"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testConfig builds an explicit config for tests - no env lookups
func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			Algorithm:        "HS256",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

// newTestDB opens an isolated in-memory database with the schema migrated
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	return db
}

// createTestUser inserts a user with a hashed password
func createTestUser(t *testing.T, db *gorm.DB, email string, isStaff bool) *models.User {
	t.Helper()

	hash, err := password.Hash("secret123")
	require.NoError(t, err)

	user := &models.User{
		Email:    email,
		FullName: "Test User",
		Password: hash,
		IsActive: true,
		IsStaff:  isStaff,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createTestLoan inserts a pending loan for the given owner
func createTestLoan(t *testing.T, db *gorm.DB, owner *models.User) *models.LoanApplication {
	t.Helper()

	loan := &models.LoanApplication{
		UserID:       owner.ID,
		Amount:       1000,
		TenureMonths: 12,
		Purpose:      "Test purpose",
		Status:       domain.LoanStatusPending,
	}
	require.NoError(t, db.WithContext(context.Background()).Create(loan).Error)
	return loan
}
