package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cargobridge/internal/domain"
	"cargobridge/internal/middleware"
	"cargobridge/internal/service/contact"
)

type ContactHandler struct {
	contactService contact.Service
}

func NewContactHandler(contactService contact.Service) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (h *ContactHandler) List(c *fiber.Ctx) error {
	var params domain.PaginationParams
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid query parameters")
	}
	unhandledOnly := c.QueryBool("unhandled", false)

	resp, err := h.contactService.List(c.Context(), unhandledOnly, params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *ContactHandler) MarkHandled(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid message ID")
	}

	if err := h.contactService.MarkHandled(c.Context(), middleware.GetCurrentUser(c), id); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Message marked as handled",
	})
}
