package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kperez42/Celestia-sub000/internal/models"
	"github.com/kperez42/Celestia-sub000/internal/notify"
)

// openTestDB creates an isolated in-memory SQLite database. Each test gets
// its own named database so GORM's connection pool never crosses tests.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Account{},
		&models.Warning{},
		&models.RefreshToken{},
		&models.Report{},
		&models.Appeal{},
		&models.ModerationQueueEntry{},
		&models.Verification{},
		&models.Block{},
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// recordedNotification captures one Notify call for assertions.
type recordedNotification struct {
	UserID  uuid.UUID
	Kind    notify.Kind
	Payload map[string]string
}

// recorderDispatcher is a notify.Dispatcher that records every call. With
// failAll set it refuses delivery, for testing that status changes survive
// notification outages.
type recorderDispatcher struct {
	mu      sync.Mutex
	events  []recordedNotification
	failAll bool
}

func (r *recorderDispatcher) Notify(_ context.Context, userID uuid.UUID, kind notify.Kind, payload map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return errors.New("delivery refused")
	}
	r.events = append(r.events, recordedNotification{UserID: userID, Kind: kind, Payload: payload})
	return nil
}

func (r *recorderDispatcher) kinds() []notify.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notify.Kind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

func createAccount(t *testing.T, db *gorm.DB, status models.ProfileStatus) *models.Account {
	t.Helper()
	account := &models.Account{
		ID:            uuid.New(),
		Email:         uuid.NewString() + "@example.com",
		Password:      "hashed",
		Name:          "Test User",
		Bio:           "Just here for the stargazing.",
		ProfileStatus: status,
		Visible:       status == models.ProfileStatusActive,
	}
	switch status {
	case models.ProfileStatusBanned:
		account.IsBanned = true
		account.BanReason = "harassment"
		account.ProfileStatusReason = "harassment"
	case models.ProfileStatusSuspended:
		account.IsSuspended = true
		account.ProfileStatusReason = "spam"
	}
	require.NoError(t, db.Create(account).Error)
	return account
}

func reloadAccount(t *testing.T, db *gorm.DB, id uuid.UUID) *models.Account {
	t.Helper()
	var account models.Account
	require.NoError(t, db.First(&account, "id = ?", id).Error)
	return &account
}
