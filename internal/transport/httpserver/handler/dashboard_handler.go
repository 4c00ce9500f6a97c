package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"engagement-service/internal/app/service"
	"engagement-service/internal/domain"
	"engagement-service/internal/transport/httpserver/dto"
)

// DashboardHandler serves the HTML dashboard page.
type DashboardHandler struct {
	feedService *service.FeedService
	logger      *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(svc *service.FeedService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		feedService: svc,
		logger:      logger,
	}
}

// Render handles GET /dashboard
// Renders the dashboard HTML page using Fiber's template engine. A failed
// feed load still renders the page shell so the user gets something.
func (h *DashboardHandler) Render(c *fiber.Ctx) error {
	params := domain.DefaultFeedParams()
	params.Filter = domain.FeedFilter(c.Query("filter", string(domain.FilterAll)))
	params.Query = c.Query("q")

	var feed dto.FeedResponse
	page, err := h.feedService.Load(c.Context(), params)
	if err != nil {
		h.logger.Warn("dashboard feed load failed", zap.Error(err))
	} else {
		feed = dto.FromFeedPage(page, actingUser(c))
	}

	return c.Render("pages/dashboard", fiber.Map{
		"Title":  "Engagement Dashboard",
		"Feed":   feed,
		"Query":  params.Query,
		"Filter": string(params.Filter),
	}, "layouts/base")
}
