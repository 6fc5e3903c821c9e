package handler

import (
	"github.com/gofiber/fiber/v2"

	"cargobridge/internal/middleware"
	"cargobridge/internal/service/feed"
)

type NotificationHandler struct {
	feedService feed.Service
}

func NewNotificationHandler(feedService feed.Service) *NotificationHandler {
	return &NotificationHandler{feedService: feedService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	items, err := h.feedService.List(c.Context(), middleware.GetCurrentUser(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"notifications": items})
}

// Refresh forces a recompute against fresh source data; clients call it on
// reconnect or when they suspect they missed a change-feed nudge.
func (h *NotificationHandler) Refresh(c *fiber.Ctx) error {
	items, err := h.feedService.Refresh(c.Context(), middleware.GetCurrentUser(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"notifications": items})
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	count, err := h.feedService.UnreadCount(c.Context(), middleware.GetCurrentUser(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"unread": count})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	if err := h.feedService.MarkAsRead(c.Context(), middleware.GetCurrentUser(c), c.Params("id")); err != nil {
		if err == feed.ErrNotificationNotFound {
			return middleware.NotFound("Notification not found")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Notification marked as read",
	})
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	if err := h.feedService.MarkAllAsRead(c.Context(), middleware.GetCurrentUser(c)); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "All notifications marked as read",
	})
}

func (h *NotificationHandler) Remove(c *fiber.Ctx) error {
	if err := h.feedService.Remove(c.Context(), middleware.GetCurrentUser(c), c.Params("id")); err != nil {
		if err == feed.ErrNotificationNotFound {
			return middleware.NotFound("Notification not found")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Notification removed",
	})
}

// Open marks a notification read and tells the client which dashboard tab
// to navigate to.
func (h *NotificationHandler) Open(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	notificationID := c.Params("id")

	items, err := h.feedService.List(c.Context(), user)
	if err != nil {
		return err
	}

	for _, n := range items {
		if n.ID == notificationID {
			if err := h.feedService.MarkAsRead(c.Context(), user, notificationID); err != nil {
				return err
			}
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"notification": n,
				"target":       n.Target(),
			})
		}
	}
	return middleware.NotFound("Notification not found")
}
