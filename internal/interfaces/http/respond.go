package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ledgerdesk/ledgerdesk-api/internal/application/dto"
	"github.com/ledgerdesk/ledgerdesk-api/internal/application/validate"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain"
)

// respondError maps domain errors to HTTP responses in one place so every
// handler fails the same way.
func respondError(c *fiber.Ctx, err error) error {
	var verrs *validate.Errors
	if errors.As(err, &verrs) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "request validation failed",
			Fields:  verrs.Fields,
		})
	}

	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return respond(c, fiber.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return respond(c, fiber.StatusConflict, "EMAIL_EXISTS", "email already registered")
	case errors.Is(err, domain.ErrDuplicate):
		return respond(c, fiber.StatusConflict, "DUPLICATE", "resource already exists")
	case errors.Is(err, domain.ErrDuplicateReference):
		return respond(c, fiber.StatusUnprocessableEntity, "DUPLICATE_REFERENCE", "reference already selected on another line")
	case errors.Is(err, domain.ErrEmptyReference):
		return respond(c, fiber.StatusUnprocessableEntity, "EMPTY_REFERENCE", "select a reference on the previous line first")
	case errors.Is(err, domain.ErrLastLine):
		return respond(c, fiber.StatusUnprocessableEntity, "LAST_LINE", "a document keeps at least one line")
	case errors.Is(err, domain.ErrOverpayment):
		return respond(c, fiber.StatusUnprocessableEntity, "OVERPAYMENT", "paid amount exceeds the document total")
	case errors.Is(err, domain.ErrInsufficientStock):
		return respond(c, fiber.StatusUnprocessableEntity, "INSUFFICIENT_STOCK", "not enough stock on hand")
	case errors.Is(err, domain.ErrInvalidInput):
		return respond(c, fiber.StatusBadRequest, "INVALID_INPUT", "invalid request")
	case errors.Is(err, domain.ErrUnauthorized):
		return respond(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "invalid credentials")
	case errors.Is(err, domain.ErrForbidden):
		return respond(c, fiber.StatusForbidden, "FORBIDDEN", "access denied")
	case errors.Is(err, domain.ErrConflict):
		return respond(c, fiber.StatusConflict, "CONFLICT", "operation conflicts with current state")
	default:
		return respond(c, fiber.StatusInternalServerError, "INTERNAL", err.Error())
	}
}

func respond(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}
