package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cargobridge/internal/domain"
	"cargobridge/internal/middleware"
	"cargobridge/internal/service/ticket"
)

type TicketHandler struct {
	ticketService ticket.Service
}

func NewTicketHandler(ticketService ticket.Service) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

func (h *TicketHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateTicketInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	t, err := h.ticketService.Create(c.Context(), middleware.GetCurrentUserID(c), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

func (h *TicketHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid ticket ID")
	}

	t, err := h.ticketService.Get(c.Context(), middleware.GetCurrentUser(c), id)
	if err != nil {
		return mapTicketErr(err)
	}
	return c.Status(fiber.StatusOK).JSON(t)
}

func (h *TicketHandler) Reply(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid ticket ID")
	}

	var input domain.ReplyTicketInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	reply, err := h.ticketService.Reply(c.Context(), middleware.GetCurrentUser(c), id, input)
	if err != nil {
		return mapTicketErr(err)
	}
	return c.Status(fiber.StatusCreated).JSON(reply)
}

func (h *TicketHandler) SetStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid ticket ID")
	}

	var input struct {
		Status string `json:"status" validate:"required,oneof=open in_progress closed"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.ticketService.SetStatus(c.Context(), middleware.GetCurrentUser(c), id, input.Status); err != nil {
		return mapTicketErr(err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Status updated",
	})
}

func (h *TicketHandler) List(c *fiber.Ctx) error {
	var params domain.PaginationParams
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid query parameters")
	}

	resp, err := h.ticketService.List(c.Context(), params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *TicketHandler) ListMine(c *fiber.Ctx) error {
	var params domain.PaginationParams
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid query parameters")
	}

	resp, err := h.ticketService.ListForUser(c.Context(), middleware.GetCurrentUserID(c), params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func mapTicketErr(err error) error {
	switch err {
	case ticket.ErrTicketNotFound:
		return middleware.NotFound("Ticket not found")
	case ticket.ErrAccessDenied:
		return middleware.Forbidden("Access denied")
	case ticket.ErrTicketClosed:
		return middleware.Conflict("Ticket is closed")
	case ticket.ErrInvalidStatus:
		return middleware.BadRequest("Invalid ticket status")
	}
	return err
}
