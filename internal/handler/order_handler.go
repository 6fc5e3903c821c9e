package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cargobridge/internal/domain"
	"cargobridge/internal/middleware"
	"cargobridge/internal/service/order"
)

type OrderHandler struct {
	orderService order.Service
}

func NewOrderHandler(orderService order.Service) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateOrderInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	o, err := h.orderService.Create(c.Context(), middleware.GetCurrentUserID(c), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(o)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid order ID")
	}

	o, err := h.orderService.GetByID(c.Context(), middleware.GetCurrentUser(c), id)
	if err != nil {
		return mapOrderErr(err)
	}
	return c.Status(fiber.StatusOK).JSON(o)
}

func (h *OrderHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid order ID")
	}

	var input domain.UpdateOrderInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	o, err := h.orderService.Update(c.Context(), middleware.GetCurrentUser(c), id, input)
	if err != nil {
		return mapOrderErr(err)
	}
	return c.Status(fiber.StatusOK).JSON(o)
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	var params domain.PaginationParams
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid query parameters")
	}

	resp, err := h.orderService.List(c.Context(), params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	var params domain.PaginationParams
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid query parameters")
	}

	resp, err := h.orderService.ListForCustomer(c.Context(), middleware.GetCurrentUserID(c), params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *OrderHandler) ListAssigned(c *fiber.Ctx) error {
	var params domain.PaginationParams
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid query parameters")
	}

	resp, err := h.orderService.ListForAgent(c.Context(), middleware.GetCurrentUserID(c), params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func mapOrderErr(err error) error {
	switch err {
	case order.ErrOrderNotFound:
		return middleware.NotFound("Order not found")
	case order.ErrAccessDenied:
		return middleware.Forbidden("Access denied")
	case order.ErrInvalidStatus:
		return middleware.BadRequest("Invalid order status")
	}
	return err
}
