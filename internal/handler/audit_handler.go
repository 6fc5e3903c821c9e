package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cargobridge/internal/domain"
	"cargobridge/internal/middleware"
	"cargobridge/internal/service/audit"
)

type AuditHandler struct {
	auditService audit.Service
}

func NewAuditHandler(auditService audit.Service) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) Recent(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	logs, err := h.auditService.GetRecentActivities(c.Context(), limit)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"activities": logs})
}

func (h *AuditHandler) ListForEntity(c *fiber.Ctx) error {
	entityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid entity ID")
	}

	var params domain.PaginationParams
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid query parameters")
	}

	resp, err := h.auditService.ListForEntity(c.Context(), c.Params("entity"), entityID, params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}
