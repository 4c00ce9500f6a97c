package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"engagement-service/internal/app/service"
	"engagement-service/internal/transport/httpserver/dto"
	"engagement-service/internal/validator"
)

// ProfileHandler handles CV profile HTTP requests.
type ProfileHandler struct {
	service   *service.ProfileService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(svc *service.ProfileService, v *validator.Validator, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// Current handles GET /api/v1/profile
// Returns 204 when the acting user has no profile yet; that is a
// legitimate empty state, not an error.
func (h *ProfileHandler) Current(c *fiber.Ctx) error {
	profile, err := h.service.Current(c.Context(), actingUser(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	if profile == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}

	return c.JSON(dto.FromProfile(profile))
}

// ByID handles GET /api/v1/profiles/:id
func (h *ProfileHandler) ByID(c *fiber.Ctx) error {
	profile, err := h.service.ByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.FromProfile(profile))
}

// Public handles GET /api/v1/profiles/:id/public
func (h *ProfileHandler) Public(c *fiber.Ctx) error {
	profile, err := h.service.Public(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.FromProfile(profile))
}

// Update handles PUT /api/v1/profile
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	user := actingUser(c)

	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}

	updated, err := h.service.Update(c.Context(), user, req.ToProfile(c.Query("id"), user))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.FromProfile(updated))
}

// Delete handles DELETE /api/v1/profile
func (h *ProfileHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), actingUser(c), c.Query("id")); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
