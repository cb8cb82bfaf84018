package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kperez42/Celestia-sub000/internal/dto"
	"github.com/kperez42/Celestia-sub000/internal/middleware"
	"github.com/kperez42/Celestia-sub000/internal/models"
	"github.com/kperez42/Celestia-sub000/internal/services"
)

type AppealHandler struct {
	appeals *services.AppealService
}

func NewAppealHandler(appeals *services.AppealService) *AppealHandler {
	return &AppealHandler{appeals: appeals}
}

// SubmitAppeal lets a banned or suspended user contest the sanction.
func (h *AppealHandler) SubmitAppeal(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.SubmitAppealRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	appeal, err := h.appeals.SubmitAppeal(userID, req.AppealMessage)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(appeal)
}

func (h *AppealHandler) ListAppeals(c *fiber.Ctx) error {
	status := models.AppealStatus(c.Query("status", ""))
	limit, offset := pagination(c)

	appeals, total, err := h.appeals.ListAppeals(status, limit, offset)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"appeals": appeals,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

func (h *AppealHandler) ReviewAppeal(c *fiber.Ctx) error {
	appealID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid appeal ID")
	}

	var req dto.ReviewAppealRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	appeal, err := h.appeals.ReviewAppeal(appealID, req.Approve, req.Note)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(appeal)
}
