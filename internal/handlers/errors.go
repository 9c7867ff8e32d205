package handlers

import (
	"errors"

	"github.com/Measdani/root-intentional-dating-app-sub001/internal/dto"
	"github.com/Measdani/root-intentional-dating-app-sub001/internal/services"
	"github.com/gofiber/fiber/v2"
)

// respondServiceError maps the engine's typed errors onto HTTP statuses so
// clients can pick user-visible messaging per kind.
func respondServiceError(c *fiber.Ctx, err error) error {
	var validation *services.ValidationError
	if errors.As(err, &validation) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Kind: "validation", Message: validation.Error(),
		})
	}

	var transition *services.InvalidTransitionError
	if errors.As(err, &transition) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Kind: "invalid_transition", Message: transition.Error(),
		})
	}

	var action *services.InvalidActionError
	if errors.As(err, &action) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Kind: "invalid_action", Message: action.Error(),
		})
	}

	var store *services.StoreUnavailableError
	if errors.As(err, &store) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: true, Kind: "store_unavailable", Message: "storage temporarily unavailable, retry later",
		})
	}

	switch {
	case errors.Is(err, services.ErrReportNotFound),
		errors.Is(err, services.ErrConversationNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Kind: "not_found", Message: err.Error(),
		})
	case errors.Is(err, services.ErrNotParticipant):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Kind: "forbidden", Message: err.Error(),
		})
	case errors.Is(err, services.ErrSelfReport):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Kind: "validation", Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
