package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/sofra/internal/services"
)

// mapServiceError translates the service failure taxonomy into HTTP errors.
// Anything outside the taxonomy is a persistence fault and propagates as-is,
// becoming a retryable 500 at the Fiber error handler.
func mapServiceError(err error) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotEligible):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrConflict):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return err
	}
}
