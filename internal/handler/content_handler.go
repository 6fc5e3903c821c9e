package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cargobridge/internal/domain"
	"cargobridge/internal/middleware"
	"cargobridge/internal/service/content"
)

type ContentHandler struct {
	contentService content.Service
}

func NewContentHandler(contentService content.Service) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

func (h *ContentHandler) ListAll(c *fiber.Ctx) error {
	pages, err := h.contentService.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"pages": pages})
}

func (h *ContentHandler) Upsert(c *fiber.Ctx) error {
	var input domain.UpsertContentPageInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	page, err := h.contentService.Upsert(c.Context(), middleware.GetCurrentUser(c), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(page)
}

func (h *ContentHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid page ID")
	}

	if err := h.contentService.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Page deleted",
	})
}
