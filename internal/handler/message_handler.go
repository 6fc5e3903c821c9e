package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cargobridge/internal/domain"
	"cargobridge/internal/middleware"
	"cargobridge/internal/service/messaging"
)

type MessageHandler struct {
	messagingService messaging.Service
}

func NewMessageHandler(messagingService messaging.Service) *MessageHandler {
	return &MessageHandler{messagingService: messagingService}
}

func (h *MessageHandler) CreateThread(c *fiber.Ctx) error {
	var input domain.CreateThreadInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	thread, err := h.messagingService.CreateThread(c.Context(), middleware.GetCurrentUser(c), input)
	if err != nil {
		if err == messaging.ErrNoMembers {
			return middleware.BadRequest("Thread needs at least one other member")
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(thread)
}

func (h *MessageHandler) ListThreads(c *fiber.Ctx) error {
	threads, err := h.messagingService.ListThreads(c.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"threads": threads})
}

func (h *MessageHandler) SendMessage(c *fiber.Ctx) error {
	threadID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid thread ID")
	}

	var input domain.SendMessageInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	msg, err := h.messagingService.SendMessage(c.Context(), middleware.GetCurrentUser(c), threadID, input)
	if err != nil {
		return mapMessagingErr(err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

func (h *MessageHandler) ListMessages(c *fiber.Ctx) error {
	threadID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid thread ID")
	}

	var params domain.PaginationParams
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid query parameters")
	}

	resp, err := h.messagingService.ListMessages(c.Context(), middleware.GetCurrentUser(c), threadID, params)
	if err != nil {
		return mapMessagingErr(err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *MessageHandler) MarkThreadRead(c *fiber.Ctx) error {
	threadID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid thread ID")
	}

	if err := h.messagingService.MarkThreadRead(c.Context(), middleware.GetCurrentUser(c), threadID); err != nil {
		return mapMessagingErr(err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Thread marked as read",
	})
}

func mapMessagingErr(err error) error {
	switch err {
	case messaging.ErrThreadNotFound:
		return middleware.NotFound("Thread not found")
	case messaging.ErrNotAMember:
		return middleware.Forbidden("Not a member of this thread")
	}
	return err
}
