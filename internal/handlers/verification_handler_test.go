package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kperez42/Celestia-sub000/internal/models"
	"github.com/kperez42/Celestia-sub000/internal/notify"
	"github.com/kperez42/Celestia-sub000/internal/services"
)

const testWebhookSecret = "super-secret"

// memoryStorage keeps uploads in a map so tests never touch disk.
type memoryStorage struct {
	objects map[string][]byte
}

func (m *memoryStorage) Upload(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[key] = data
	return "https://cdn.test/" + key, nil
}

func newWebhookApp(t *testing.T) (*fiber.App, *gorm.DB, *services.VerificationService) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Account{}, &models.Verification{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	svc := services.NewVerificationService(db, &memoryStorage{}, notify.LogDispatcher{})
	handler := NewVerificationHandler(svc, testWebhookSecret)

	app := fiber.New()
	app.Post("/api/webhooks/verification", handler.ProviderCallback)
	return app, db, svc
}

func submitVerification(t *testing.T, db *gorm.DB, svc *services.VerificationService) *models.Verification {
	t.Helper()

	account := &models.Account{
		ID:            uuid.New(),
		Email:         uuid.NewString() + "@example.com",
		Password:      "hashed",
		ProfileStatus: models.ProfileStatusActive,
	}
	require.NoError(t, db.Create(account).Error)

	verification, err := svc.Submit(context.Background(), account.ID,
		bytes.NewReader([]byte("not really a jpeg")), "image/jpeg")
	require.NoError(t, err)
	return verification
}

func postCallback(t *testing.T, app *fiber.App, secret string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/verification", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set("Authorization", secret)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestProviderCallbackRejectsBadSecret(t *testing.T) {
	app, db, svc := newWebhookApp(t)
	verification := submitVerification(t, db, svc)

	resp := postCallback(t, app, "wrong-secret", fiber.Map{
		"verification_id": verification.ID,
		"status":          "approved",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postCallback(t, app, "", fiber.Map{
		"verification_id": verification.ID,
		"status":          "approved",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// The verification is untouched.
	var got models.Verification
	require.NoError(t, db.First(&got, "id = ?", verification.ID).Error)
	assert.Equal(t, models.VerificationStatusPending, got.Status)
}

func TestProviderCallbackApproval(t *testing.T) {
	app, db, svc := newWebhookApp(t)
	verification := submitVerification(t, db, svc)

	resp := postCallback(t, app, testWebhookSecret, fiber.Map{
		"verification_id": verification.ID,
		"status":          "approved",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.Verification
	require.NoError(t, db.First(&got, "id = ?", verification.ID).Error)
	assert.Equal(t, models.VerificationStatusApproved, got.Status)
	assert.Equal(t, 100, got.Progress)

	var account models.Account
	require.NoError(t, db.First(&account, "id = ?", verification.AccountID).Error)
	assert.True(t, account.IsVerified)
}

func TestProviderCallbackFailure(t *testing.T) {
	app, db, svc := newWebhookApp(t)
	verification := submitVerification(t, db, svc)

	resp := postCallback(t, app, testWebhookSecret, fiber.Map{
		"verification_id": verification.ID,
		"status":          "failed",
		"failure_reason":  "face does not match profile photos",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.Verification
	require.NoError(t, db.First(&got, "id = ?", verification.ID).Error)
	assert.Equal(t, models.VerificationStatusFailed, got.Status)
	assert.Equal(t, "face does not match profile photos", got.FailureReason)

	var account models.Account
	require.NoError(t, db.First(&account, "id = ?", verification.AccountID).Error)
	assert.False(t, account.IsVerified)
}

func TestProviderCallbackProgress(t *testing.T) {
	app, db, svc := newWebhookApp(t)
	verification := submitVerification(t, db, svc)

	resp := postCallback(t, app, testWebhookSecret, fiber.Map{
		"verification_id": verification.ID,
		"status":          "processing",
		"progress":        40,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.Verification
	require.NoError(t, db.First(&got, "id = ?", verification.ID).Error)
	assert.Equal(t, models.VerificationStatusProcessing, got.Status)
	assert.Equal(t, 40, got.Progress)
}

func TestProviderCallbackUnknownVerification(t *testing.T) {
	app, _, _ := newWebhookApp(t)

	resp := postCallback(t, app, testWebhookSecret, fiber.Map{
		"verification_id": uuid.New(),
		"status":          "processing",
		"progress":        10,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProviderCallbackInvalidStatus(t *testing.T) {
	app, db, svc := newWebhookApp(t)
	verification := submitVerification(t, db, svc)

	resp := postCallback(t, app, testWebhookSecret, fiber.Map{
		"verification_id": verification.ID,
		"status":          "exploded",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
