package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"engagement-service/internal/app/service"
	"engagement-service/internal/transport/httpserver/dto"
	"engagement-service/internal/validator"
)

// EngagementHandler handles like, save, repost and content read requests.
type EngagementHandler struct {
	service   *service.EngagementService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewEngagementHandler creates a new EngagementHandler.
func NewEngagementHandler(svc *service.EngagementService, v *validator.Validator, logger *zap.Logger) *EngagementHandler {
	return &EngagementHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// GetContent handles GET /api/v1/contents/:id
func (h *EngagementHandler) GetContent(c *fiber.Ctx) error {
	record, err := h.service.GetContent(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.FromContent(record, actingUser(c)))
}

// ToggleLike handles POST /api/v1/contents/:id/like
func (h *EngagementHandler) ToggleLike(c *fiber.Ctx) error {
	user := actingUser(c)

	record, err := h.service.ToggleLike(c.Context(), c.Params("id"), user)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.FromContent(record, user))
}

// ToggleSave handles POST /api/v1/contents/:id/save
func (h *EngagementHandler) ToggleSave(c *fiber.Ctx) error {
	user := actingUser(c)

	record, err := h.service.ToggleSave(c.Context(), c.Params("id"), user)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.FromContent(record, user))
}

// Repost handles POST /api/v1/contents/:id/repost
func (h *EngagementHandler) Repost(c *fiber.Ctx) error {
	user := actingUser(c)

	var req dto.RepostRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: "invalid request body",
				Code:  "INVALID_BODY",
			})
		}
		if err := h.validator.Validate(&req); err != nil {
			return respondError(c, h.logger, err)
		}
	}

	record, err := h.service.Repost(c.Context(), c.Params("id"), user, req.Note)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.FromContent(record, user))
}

// Delete handles DELETE /api/v1/contents/:id
func (h *EngagementHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id"), actingUser(c)); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
