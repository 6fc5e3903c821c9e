package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cargobridge/internal/domain"
	"cargobridge/internal/middleware"
	"cargobridge/internal/service/quotation"
)

type QuotationHandler struct {
	quotationService quotation.Service
}

func NewQuotationHandler(quotationService quotation.Service) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService}
}

// Create handles quotation requests from logged-in customers. Anonymous
// requests come through the public handler instead.
func (h *QuotationHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateQuotationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	customerID := middleware.GetCurrentUserID(c)
	q, err := h.quotationService.Create(c.Context(), &customerID, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(q)
}

func (h *QuotationHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid quotation ID")
	}

	q, err := h.quotationService.GetByID(c.Context(), middleware.GetCurrentUser(c), id)
	if err != nil {
		return mapQuotationErr(err)
	}
	return c.Status(fiber.StatusOK).JSON(q)
}

func (h *QuotationHandler) List(c *fiber.Ctx) error {
	var params domain.PaginationParams
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid query parameters")
	}

	resp, err := h.quotationService.List(c.Context(), params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *QuotationHandler) ListMine(c *fiber.Ctx) error {
	var params domain.PaginationParams
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid query parameters")
	}

	resp, err := h.quotationService.ListForCustomer(c.Context(), middleware.GetCurrentUserID(c), params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *QuotationHandler) Quote(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid quotation ID")
	}

	var input domain.QuoteQuotationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	q, err := h.quotationService.Quote(c.Context(), middleware.GetCurrentUser(c), id, input)
	if err != nil {
		return mapQuotationErr(err)
	}
	return c.Status(fiber.StatusOK).JSON(q)
}

func (h *QuotationHandler) Accept(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid quotation ID")
	}

	q, o, err := h.quotationService.Accept(c.Context(), middleware.GetCurrentUser(c), id)
	if err != nil {
		return mapQuotationErr(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"quotation": q,
		"order":     o,
	})
}

func (h *QuotationHandler) Reject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid quotation ID")
	}

	q, err := h.quotationService.Reject(c.Context(), middleware.GetCurrentUser(c), id)
	if err != nil {
		return mapQuotationErr(err)
	}
	return c.Status(fiber.StatusOK).JSON(q)
}

func mapQuotationErr(err error) error {
	switch err {
	case quotation.ErrQuotationNotFound:
		return middleware.NotFound("Quotation not found")
	case quotation.ErrAccessDenied:
		return middleware.Forbidden("Access denied")
	case quotation.ErrNotQuotable:
		return middleware.Conflict("Quotation is not awaiting a price")
	case quotation.ErrNotDecidable:
		return middleware.Conflict("Quotation has no pending quote")
	}
	return err
}
