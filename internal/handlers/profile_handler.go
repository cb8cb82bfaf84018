package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kperez42/Celestia-sub000/internal/dto"
	"github.com/kperez42/Celestia-sub000/internal/middleware"
	"github.com/kperez42/Celestia-sub000/internal/services"
)

type ProfileHandler struct {
	profiles   *services.ProfileService
	moderation *services.ModerationService
}

func NewProfileHandler(profiles *services.ProfileService, moderation *services.ModerationService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, moderation: moderation}
}

// Me returns the caller's own account, including moderation state so the
// client can render banned/suspended/pending screens.
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	account, err := h.profiles.GetAccount(userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(account)
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	account, err := h.profiles.UpdateProfile(userID, services.UpdateProfileInput{
		Name:      req.Name,
		Bio:       req.Bio,
		BirthDate: req.BirthDate,
		Photos:    req.Photos,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(account)
}

// RetryReview resubmits a rejected profile for review.
func (h *ProfileHandler) RetryReview(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	if err := h.moderation.RetryReview(userID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Profile resubmitted for review"})
}

func (h *ProfileHandler) Browse(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	limit, offset := pagination(c)
	accounts, err := h.profiles.BrowseProfiles(userID, limit, offset)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"profiles": accounts,
		"limit":    limit,
		"offset":   offset,
	})
}

func (h *ProfileHandler) BlockUser(c *fiber.Ctx) error {
	blockerID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.BlockUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.profiles.BlockUser(blockerID, req.BlockedID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User blocked"})
}

func (h *ProfileHandler) UnblockUser(c *fiber.Ctx) error {
	blockerID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	blockedID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	if err := h.profiles.UnblockUser(blockerID, blockedID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to unblock user",
		})
	}
	return c.JSON(fiber.Map{"message": "User unblocked"})
}
