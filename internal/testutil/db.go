// Package testutil provides database fixtures shared by package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/calltracker-api/internal/database"
	"github.com/straye-as/calltracker-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a private in-memory SQLite database with the schema migrated.
// Each call gets its own database so tests can run in parallel.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err, "failed to open sqlite test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A shared-cache memory database lives as long as one connection is open
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// CreateTestUser inserts a user with a placeholder password hash
func CreateTestUser(t *testing.T, db *gorm.DB, name string) *domain.User {
	t.Helper()
	user := &domain.User{
		Name:         name,
		Email:        fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]),
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTestClient inserts a client owned by userID
func CreateTestClient(t *testing.T, db *gorm.DB, userID uuid.UUID, name string) *domain.Client {
	t.Helper()
	client := &domain.Client{
		UserID:   userID,
		Name:     name,
		Address:  "contact@" + name + ".example",
		Phone:    "12345678",
		Company:  name + " AS",
		IsActive: true,
	}
	require.NoError(t, db.Omit(clause.Associations).Create(client).Error)
	return client
}

// CreateTestCall inserts a call against clientID
func CreateTestCall(t *testing.T, db *gorm.DB, clientID, userID uuid.UUID, status domain.CallStatus, callDate time.Time, nextActionDate *time.Time) *domain.Call {
	t.Helper()
	call := &domain.Call{
		ClientID: clientID,
		UserID:   userID,
		Status:   status,
		CallDate: callDate.UTC(),
	}
	if nextActionDate != nil {
		next := nextActionDate.UTC()
		call.NextActionDate = &next
	}
	require.NoError(t, db.Omit(clause.Associations).Create(call).Error)
	return call
}
