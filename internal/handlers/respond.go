package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/kperez42/Celestia-sub000/internal/dto"
	"github.com/kperez42/Celestia-sub000/internal/services"
)

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func conflict(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

// serviceError maps lifecycle errors onto HTTP statuses: missing records
// to 404, transitions not permitted from the current state to 409,
// validation problems to 400, and anything else (storage failures) to 500.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrAccountNotFound),
		errors.Is(err, services.ErrReportNotFound),
		errors.Is(err, services.ErrQueueEntryNotFound),
		errors.Is(err, services.ErrAppealNotFound),
		errors.Is(err, services.ErrVerificationNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrReportAlreadyClosed),
		errors.Is(err, services.ErrAppealAlreadyClosed),
		errors.Is(err, services.ErrDuplicateAppeal),
		errors.Is(err, services.ErrVerificationPending):
		return conflict(c, err.Error())
	case errors.Is(err, services.ErrUnknownRejectionCode),
		errors.Is(err, services.ErrReasonRequired),
		errors.Is(err, services.ErrInvalidResolution),
		errors.Is(err, services.ErrAppealTooShort),
		errors.Is(err, services.ErrAppealNotEligible),
		errors.Is(err, services.ErrInvalidScore),
		errors.Is(err, services.ErrSelfBlock),
		errors.Is(err, services.ErrAlreadyBlocked):
		return badRequest(c, err.Error())
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

// pagination reads limit/offset query params, capping limit at 100.
func pagination(c *fiber.Ctx) (limit, offset int) {
	limit, _ = strconv.Atoi(c.Query("limit", "20"))
	offset, _ = strconv.Atoi(c.Query("offset", "0"))
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
