package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/contentflow/internal/service"
)

type PlatformHandler struct {
	s service.PipelineService
}

func NewPlatformHandler(service service.PipelineService) *PlatformHandler {
	return &PlatformHandler{s: service}
}

func (h *PlatformHandler) ListPlatforms(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.s.Platforms())
}

func (h *PlatformHandler) ListThemes(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.s.Themes())
}
