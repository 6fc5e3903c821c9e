package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cargobridge/internal/domain"
	"cargobridge/internal/middleware"
	"cargobridge/internal/service/exportreq"
)

type ExportHandler struct {
	exportService exportreq.Service
}

func NewExportHandler(exportService exportreq.Service) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

func (h *ExportHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateExportRequestInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	req, err := h.exportService.Create(c.Context(), middleware.GetCurrentUserID(c), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(req)
}

func (h *ExportHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid export request ID")
	}

	req, err := h.exportService.GetByID(c.Context(), middleware.GetCurrentUser(c), id)
	if err != nil {
		return mapExportErr(err)
	}
	return c.Status(fiber.StatusOK).JSON(req)
}

func (h *ExportHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid export request ID")
	}

	var input domain.UpdateExportRequestInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	req, err := h.exportService.Update(c.Context(), middleware.GetCurrentUser(c), id, input)
	if err != nil {
		return mapExportErr(err)
	}
	return c.Status(fiber.StatusOK).JSON(req)
}

func (h *ExportHandler) List(c *fiber.Ctx) error {
	var params domain.PaginationParams
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid query parameters")
	}

	resp, err := h.exportService.List(c.Context(), params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *ExportHandler) ListMine(c *fiber.Ctx) error {
	var params domain.PaginationParams
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid query parameters")
	}

	resp, err := h.exportService.ListForCustomer(c.Context(), middleware.GetCurrentUserID(c), params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func mapExportErr(err error) error {
	switch err {
	case exportreq.ErrRequestNotFound:
		return middleware.NotFound("Export request not found")
	case exportreq.ErrAccessDenied:
		return middleware.Forbidden("Access denied")
	}
	return err
}
