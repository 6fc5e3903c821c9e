package handler

import (
	"github.com/gofiber/fiber/v2"

	"cargobridge/internal/domain"
	"cargobridge/internal/middleware"
	"cargobridge/internal/service/contact"
	"cargobridge/internal/service/content"
	"cargobridge/internal/service/quotation"
)

// PublicHandler serves the marketing site: quote requests, the contact
// form and CMS pages, all without authentication.
type PublicHandler struct {
	quotationService quotation.Service
	contactService   contact.Service
	contentService   content.Service
}

func NewPublicHandler(quotationService quotation.Service, contactService contact.Service, contentService content.Service) *PublicHandler {
	return &PublicHandler{
		quotationService: quotationService,
		contactService:   contactService,
		contentService:   contentService,
	}
}

func (h *PublicHandler) RequestQuotation(c *fiber.Ctx) error {
	var input domain.CreateQuotationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	q, err := h.quotationService.Create(c.Context(), nil, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      q.ID,
		"message": "Quotation request received. We will get back to you by email.",
	})
}

func (h *PublicHandler) SubmitContact(c *fiber.Ctx) error {
	var input domain.CreateContactMessageInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	msg, err := h.contactService.Submit(c.Context(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      msg.ID,
		"message": "Thanks for reaching out. We will reply within one business day.",
	})
}

func (h *PublicHandler) GetPage(c *fiber.Ctx) error {
	page, err := h.contentService.GetPublished(c.Context(), c.Params("slug"))
	if err != nil {
		if err == content.ErrPageNotFound {
			return middleware.NotFound("Page not found")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(page)
}

func (h *PublicHandler) ListPages(c *fiber.Ctx) error {
	pages, err := h.contentService.ListPublished(c.Context())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"pages": pages})
}
