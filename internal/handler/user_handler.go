package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cargobridge/internal/domain"
	"cargobridge/internal/middleware"
	"cargobridge/internal/service/user"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	var params domain.PaginationParams
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid query parameters")
	}

	resp, err := h.userService.List(c.Context(), params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *UserHandler) ListByRole(c *fiber.Ctx) error {
	role := c.Params("role")
	users, err := h.userService.ListByRole(c.Context(), role)
	if err != nil {
		if err == user.ErrInvalidRole {
			return middleware.BadRequest("Invalid role")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"users": users})
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	u, err := h.userService.GetByID(c.Context(), id)
	if err != nil {
		if err == user.ErrUserNotFound {
			return middleware.NotFound("User not found")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(u)
}

// UpdateMe lets a user edit their own profile.
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	var input domain.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	// Role changes go through the dedicated admin endpoint.
	input.Role = nil

	u, err := h.userService.Update(c.Context(), middleware.GetCurrentUserID(c), input)
	if err != nil {
		switch err {
		case user.ErrUserNotFound:
			return middleware.NotFound("User not found")
		case user.ErrEmailTaken:
			return middleware.Conflict("Email already in use")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(u)
}

func (h *UserHandler) AssignRole(c *fiber.Ctx) error {
	var input domain.AssignRoleInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	actor := middleware.GetCurrentUser(c)
	if err := h.userService.AssignRole(c.Context(), actor, input); err != nil {
		switch err {
		case user.ErrUserNotFound:
			return middleware.NotFound("User not found")
		case user.ErrInvalidRole:
			return middleware.BadRequest("Invalid role")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Role updated",
	})
}

func (h *UserHandler) Deactivate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	actor := middleware.GetCurrentUser(c)
	if err := h.userService.Deactivate(c.Context(), actor, id); err != nil {
		if err == user.ErrUserNotFound {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User deactivated",
	})
}
