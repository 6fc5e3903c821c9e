package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cargobridge/internal/domain"
	"cargobridge/internal/middleware"
	"cargobridge/internal/service/currency"
)

type CurrencyHandler struct {
	currencyService currency.Service
}

func NewCurrencyHandler(currencyService currency.Service) *CurrencyHandler {
	return &CurrencyHandler{currencyService: currencyService}
}

func (h *CurrencyHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateCurrencyTransferInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	t, err := h.currencyService.Create(c.Context(), middleware.GetCurrentUserID(c), input)
	if err != nil {
		if err == currency.ErrSameCurrency {
			return middleware.BadRequest("From and to currency must differ")
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

func (h *CurrencyHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid transfer ID")
	}

	t, err := h.currencyService.GetByID(c.Context(), middleware.GetCurrentUser(c), id)
	if err != nil {
		return mapCurrencyErr(err)
	}
	return c.Status(fiber.StatusOK).JSON(t)
}

func (h *CurrencyHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid transfer ID")
	}

	var input domain.UpdateCurrencyTransferInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	t, err := h.currencyService.Update(c.Context(), middleware.GetCurrentUser(c), id, input)
	if err != nil {
		return mapCurrencyErr(err)
	}
	return c.Status(fiber.StatusOK).JSON(t)
}

func (h *CurrencyHandler) List(c *fiber.Ctx) error {
	var params domain.PaginationParams
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid query parameters")
	}

	resp, err := h.currencyService.List(c.Context(), params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *CurrencyHandler) ListMine(c *fiber.Ctx) error {
	var params domain.PaginationParams
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid query parameters")
	}

	resp, err := h.currencyService.ListForCustomer(c.Context(), middleware.GetCurrentUserID(c), params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func mapCurrencyErr(err error) error {
	switch err {
	case currency.ErrTransferNotFound:
		return middleware.NotFound("Currency transfer not found")
	case currency.ErrAccessDenied:
		return middleware.Forbidden("Access denied")
	}
	return err
}
