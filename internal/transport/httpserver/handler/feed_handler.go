package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"engagement-service/internal/app/service"
	"engagement-service/internal/transport/httpserver/dto"
	"engagement-service/internal/validator"
)

// FeedHandler handles dashboard feed requests.
type FeedHandler struct {
	service   *service.FeedService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(svc *service.FeedService, v *validator.Validator, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// Load handles GET /api/v1/feed
func (h *FeedHandler) Load(c *fiber.Ctx) error {
	var req dto.FeedRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return respondError(c, h.logger, err)
	}

	page, err := h.service.Load(c.Context(), req.ToFeedParams())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.FromFeedPage(page, actingUser(c)))
}
