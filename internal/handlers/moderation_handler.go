package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kperez42/Celestia-sub000/internal/dto"
	"github.com/kperez42/Celestia-sub000/internal/middleware"
	"github.com/kperez42/Celestia-sub000/internal/models"
	"github.com/kperez42/Celestia-sub000/internal/services"
)

// ModerationHandler exposes the user-facing report endpoint and the whole
// admin moderation surface: profile review, sanctions, report resolution,
// the moderation queue and dashboard stats.
type ModerationHandler struct {
	moderation *services.ModerationService
	reports    *services.ReportService
	queue      *services.QueueService
}

func NewModerationHandler(moderation *services.ModerationService, reports *services.ReportService, queue *services.QueueService) *ModerationHandler {
	return &ModerationHandler{moderation: moderation, reports: reports, queue: queue}
}

// --- user endpoints ---

func (h *ModerationHandler) CreateReport(c *fiber.Ctx) error {
	reporterID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	report, err := h.reports.CreateReport(reporterID, services.CreateReportInput{
		ReportedUserID:    req.ReportedUserID,
		Reason:            req.Reason,
		AdditionalDetails: req.AdditionalDetails,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// --- admin: profile review ---

func (h *ModerationHandler) ListPendingAccounts(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	accounts, total, err := h.moderation.ListPendingAccounts(limit, offset)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"accounts": accounts,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

func (h *ModerationHandler) ApproveAccount(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid account ID")
	}

	account, err := h.moderation.ApproveAccount(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(account)
}

func (h *ModerationHandler) RejectAccount(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid account ID")
	}

	var req dto.RejectAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	account, err := h.moderation.RejectAccount(id, req.Code, req.AdminNote)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(account)
}

// RejectionReasons serves the fixed catalog the dashboard's reject dialog
// renders.
func (h *ModerationHandler) RejectionReasons(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"reasons": services.RejectionReasons()})
}

// --- admin: sanctions ---

func (h *ModerationHandler) WarnAccount(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid account ID")
	}

	var req dto.WarnAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.moderation.WarnAccount(id, req.Reason, middleware.ActorID(c)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Warning issued"})
}

func (h *ModerationHandler) SuspendAccount(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid account ID")
	}

	var req dto.SuspendAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.moderation.SuspendAccount(id, req.Reason, req.Days); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Account suspended"})
}

func (h *ModerationHandler) BanAccount(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid account ID")
	}

	var req dto.BanAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.moderation.BanAccount(id, req.Reason); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Account banned"})
}

// --- admin: reports ---

func (h *ModerationHandler) ListReports(c *fiber.Ctx) error {
	status := models.ReportStatus(c.Query("status", ""))
	limit, offset := pagination(c)

	reports, total, err := h.reports.ListReports(status, limit, offset)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"reports": reports,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

func (h *ModerationHandler) ResolveReport(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	var req dto.ResolveReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	report, err := h.reports.ResolveReport(reportID,
		models.ReportResolution(req.Resolution), req.ResolutionReason)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(report)
}

// --- admin: moderation queue ---

func (h *ModerationHandler) ListQueue(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	entries, total, err := h.queue.List(limit, offset)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"entries": entries,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

// EnqueueAccount admits an account flagged by an external scorer.
func (h *ModerationHandler) EnqueueAccount(c *fiber.Ctx) error {
	var req dto.EnqueueRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	entry, err := h.queue.Enqueue(req.AccountID, req.SuspicionScore, req.Indicators)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (h *ModerationHandler) DismissQueueEntry(c *fiber.Ctx) error {
	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid queue entry ID")
	}

	if err := h.queue.Dismiss(entryID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Entry dismissed"})
}

// --- admin: dashboard ---

func (h *ModerationHandler) DashboardStats(c *fiber.Ctx) error {
	stats, err := h.moderation.DashboardStats(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(stats)
}
