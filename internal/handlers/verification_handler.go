package handlers

import (
	"crypto/subtle"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/kperez42/Celestia-sub000/internal/dto"
	"github.com/kperez42/Celestia-sub000/internal/middleware"
	"github.com/kperez42/Celestia-sub000/internal/models"
	"github.com/kperez42/Celestia-sub000/internal/services"
)

const maxVerificationPhotoBytes = 4 * 1024 * 1024

// VerificationHandler covers the identity-verification flow: photo
// submission, status polling, and the face-match provider's callback.
type VerificationHandler struct {
	verifications *services.VerificationService
	webhookSecret string
}

func NewVerificationHandler(verifications *services.VerificationService, webhookSecret string) *VerificationHandler {
	return &VerificationHandler{verifications: verifications, webhookSecret: webhookSecret}
}

// Submit accepts a multipart pose photo upload.
func (h *VerificationHandler) Submit(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return badRequest(c, "photo file is required")
	}
	if fileHeader.Size > maxVerificationPhotoBytes {
		return badRequest(c, "photo exceeds 4MB limit")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" {
		return badRequest(c, "photo must be JPEG or PNG")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return badRequest(c, "could not read photo")
	}
	defer file.Close()

	verification, err := h.verifications.Submit(c.UserContext(), userID, file, contentType)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(verification)
}

// Status returns the caller's latest verification for client polling.
func (h *VerificationHandler) Status(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	verification, err := h.verifications.Latest(userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(verification)
}

// ProviderCallback receives the face-match provider's progress and final
// verdict. Authenticated by a shared secret, not a user JWT.
func (h *VerificationHandler) ProviderCallback(c *fiber.Ctx) error {
	if h.webhookSecret == "" {
		return notFound(c, "Webhooks not configured")
	}

	authHeader := c.Get("Authorization")
	if subtle.ConstantTimeCompare([]byte(authHeader), []byte(h.webhookSecret)) != 1 {
		return unauthorized(c)
	}

	var callback dto.VerificationCallback
	if err := c.BodyParser(&callback); err != nil {
		return badRequest(c, "Invalid webhook payload")
	}
	if err := dto.Validate(&callback); err != nil {
		return badRequest(c, err.Error())
	}

	var err error
	switch models.VerificationStatus(callback.Status) {
	case models.VerificationStatusProcessing:
		err = h.verifications.UpdateProgress(callback.VerificationID, callback.Progress)
	case models.VerificationStatusApproved:
		err = h.verifications.Complete(callback.VerificationID, true, "")
	case models.VerificationStatusFailed:
		err = h.verifications.Complete(callback.VerificationID, false, callback.FailureReason)
	}
	if err != nil {
		slog.Error("verification callback failed",
			"verification_id", callback.VerificationID, "status", callback.Status, "error", err)
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"received": true})
}
