package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/contentflow/internal/service"
	"github.com/maheshrc27/contentflow/internal/transfer"
)

type AnalyticsHandler struct {
	s service.PipelineService
}

func NewAnalyticsHandler(service service.PipelineService) *AnalyticsHandler {
	return &AnalyticsHandler{s: service}
}

func (h *AnalyticsHandler) RecordEngagement(c *fiber.Ctx) error {
	var req transfer.EngagementRequest
	if err := parseBody(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	e, err := h.s.RecordEngagement(c.Context(), req.Platform, req.PostID, req.Metrics)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(e)
}

func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	d, err := h.s.Dashboard(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(d)
}
