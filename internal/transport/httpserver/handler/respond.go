// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"engagement-service/internal/domain"
	"engagement-service/internal/transport/httpserver/dto"
	"engagement-service/internal/validator"
)

// userHeader carries the acting user's identity, set by the auth proxy
// in front of the gateway. An absent header means an anonymous request.
const userHeader = "X-User-ID"

// actingUser returns the authenticated user id of the request, or "".
func actingUser(c *fiber.Ctx) string {
	return c.Get(userHeader)
}

// respondError maps service errors onto HTTP status codes. Sentinel
// classifications survive wrapping, so errors.Is works through the stack.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		return c.Status(ferr.Code).JSON(dto.ErrorResponse{
			Error: ferr.Message,
			Code:  "BAD_REQUEST",
		})
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: verrs,
		})
	}

	switch {
	case errors.Is(err, domain.ErrAuthenticationRequired):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: "authentication required",
			Code:  "AUTH_REQUIRED",
		})
	case domain.IsNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "not found",
			Code:  "NOT_FOUND",
		})
	case errors.Is(err, domain.ErrValidationRejected):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Error: err.Error(),
			Code:  "REJECTED",
		})
	case domain.IsTimeout(err):
		logger.Warn("upstream timeout", zap.String("path", c.Path()), zap.Error(err))

		return c.Status(fiber.StatusGatewayTimeout).JSON(dto.ErrorResponse{
			Error: "upstream timeout",
			Code:  "UPSTREAM_TIMEOUT",
		})
	default:
		logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "internal error",
			Code:  "INTERNAL_ERROR",
		})
	}
}
