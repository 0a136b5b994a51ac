package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/maheshrc27/contentflow/internal/service"
	"github.com/maheshrc27/contentflow/internal/transfer"
)

type PostHandler struct {
	s service.PipelineService
}

func NewPostHandler(service service.PipelineService) *PostHandler {
	return &PostHandler{s: service}
}

func (h *PostHandler) GenerateDailyContent(c *fiber.Ctx) error {
	posts, err := h.s.GenerateDailyContent(c.Context())

	resp := transfer.GenerateResponse{Posts: posts}
	for _, p := range posts {
		if p.Status == models.PostStatusApproved {
			resp.AutoApproved++
		}
	}
	if err != nil {
		if len(posts) == 0 {
			return errorResponse(c, err)
		}
		resp.Error = err.Error()
		return c.Status(fiber.StatusMultiStatus).JSON(resp)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *PostHandler) GetQueue(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.s.Queue())
}

func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	post, err := h.s.Post(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	history, err := h.s.PostHistory(c.Context(), post.ID)
	if err != nil {
		return errorResponse(c, err)
	}
	if history == nil {
		history = []*models.PostingHistory{}
	}
	return c.Status(fiber.StatusOK).JSON(transfer.PostResponse{Post: post, History: history})
}

func (h *PostHandler) ApprovePost(c *fiber.Ctx) error {
	post, err := h.s.Approve(c.Context(), c.Params("id"), GetOperatorID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PostHandler) RejectPost(c *fiber.Ctx) error {
	var req transfer.RejectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	// empty reasons are rejected by the queue itself
	post, err := h.s.Reject(c.Context(), c.Params("id"), req.Reason, GetOperatorID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PostHandler) PublishPost(c *fiber.Ctx) error {
	result, err := h.s.Publish(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	resp := transfer.PublishResponse{
		Post:    result.Post,
		Status:  result.Status,
		Results: result.Results,
	}
	if len(result.Failures) > 0 {
		resp.Failures = make(map[string]string, len(result.Failures))
		for platform, ferr := range result.Failures {
			resp.Failures[platform] = ferr.Error()
		}
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}
