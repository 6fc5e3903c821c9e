package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cargobridge/internal/domain"
	"cargobridge/internal/middleware"
	"cargobridge/internal/service/legalcase"
)

type CaseHandler struct {
	caseService legalcase.Service
}

func NewCaseHandler(caseService legalcase.Service) *CaseHandler {
	return &CaseHandler{caseService: caseService}
}

func (h *CaseHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateLegalCaseInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	lc, err := h.caseService.Create(c.Context(), middleware.GetCurrentUserID(c), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(lc)
}

func (h *CaseHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid case ID")
	}

	lc, err := h.caseService.GetByID(c.Context(), middleware.GetCurrentUser(c), id)
	if err != nil {
		return mapCaseErr(err)
	}
	return c.Status(fiber.StatusOK).JSON(lc)
}

func (h *CaseHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid case ID")
	}

	var input domain.UpdateLegalCaseInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	lc, err := h.caseService.Update(c.Context(), middleware.GetCurrentUser(c), id, input)
	if err != nil {
		return mapCaseErr(err)
	}
	return c.Status(fiber.StatusOK).JSON(lc)
}

func (h *CaseHandler) List(c *fiber.Ctx) error {
	var params domain.PaginationParams
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid query parameters")
	}

	resp, err := h.caseService.List(c.Context(), params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *CaseHandler) ListMine(c *fiber.Ctx) error {
	var params domain.PaginationParams
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid query parameters")
	}

	resp, err := h.caseService.ListForCustomer(c.Context(), middleware.GetCurrentUserID(c), params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *CaseHandler) ListAssigned(c *fiber.Ctx) error {
	var params domain.PaginationParams
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid query parameters")
	}

	resp, err := h.caseService.ListForLawyer(c.Context(), middleware.GetCurrentUserID(c), params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func mapCaseErr(err error) error {
	switch err {
	case legalcase.ErrCaseNotFound:
		return middleware.NotFound("Case not found")
	case legalcase.ErrAccessDenied:
		return middleware.Forbidden("Access denied")
	}
	return err
}
