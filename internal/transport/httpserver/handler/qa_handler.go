package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"engagement-service/internal/app/service"
	"engagement-service/internal/domain"
	"engagement-service/internal/transport/httpserver/dto"
	"engagement-service/internal/validator"
)

// QAHandler handles comment, answer, vote and accept requests.
type QAHandler struct {
	service   *service.QAService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewQAHandler creates a new QAHandler.
func NewQAHandler(svc *service.QAService, v *validator.Validator, logger *zap.Logger) *QAHandler {
	return &QAHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// PostComment handles POST /api/v1/contents/:id/comments
func (h *QAHandler) PostComment(c *fiber.Ctx) error {
	user := actingUser(c)

	req, err := h.parseComment(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	record, err := h.service.PostComment(c.Context(), c.Params("id"), user, req.Text)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.FromContent(record, user))
}

// PostAnswer handles POST /api/v1/contents/:id/answers
func (h *QAHandler) PostAnswer(c *fiber.Ctx) error {
	user := actingUser(c)

	req, err := h.parseComment(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	record, err := h.service.PostAnswer(c.Context(), c.Params("id"), user, req.Text)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.FromContent(record, user))
}

// Vote handles POST /api/v1/contents/:id/answers/:index/vote
func (h *QAHandler) Vote(c *fiber.Ctx) error {
	user := actingUser(c)

	index, ok := answerIndex(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid answer index",
			Code:  "INVALID_INDEX",
		})
	}

	var req dto.VoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}
	if err := h.validator.Validate(&req); err != nil {
		return respondError(c, h.logger, err)
	}

	record, err := h.service.Vote(c.Context(), c.Params("id"), index, user, domain.VoteDirection(req.Direction))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.FromContent(record, user))
}

// Accept handles POST /api/v1/contents/:id/answers/:index/accept
func (h *QAHandler) Accept(c *fiber.Ctx) error {
	user := actingUser(c)

	index, ok := answerIndex(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid answer index",
			Code:  "INVALID_INDEX",
		})
	}

	record, err := h.service.Accept(c.Context(), c.Params("id"), index, user)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.FromContent(record, user))
}

func (h *QAHandler) parseComment(c *fiber.Ctx) (dto.CommentRequest, error) {
	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return req, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Validate(&req); err != nil {
		return req, err
	}

	return req, nil
}

func answerIndex(c *fiber.Ctx) (int, bool) {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil || index < 0 {
		return 0, false
	}

	return index, true
}
