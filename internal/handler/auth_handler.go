package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"cargobridge/internal/domain"
	"cargobridge/internal/middleware"
	"cargobridge/internal/service/auth"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input domain.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	user, err := h.authService.Register(c.Context(), input)
	if err != nil {
		if err == auth.ErrEmailExists {
			return middleware.Conflict("Email already registered")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":    user,
		"message": "Registration successful. Please check your email for verification.",
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	user, tokens, err := h.authService.Login(c.Context(), input)
	if err != nil {
		switch err {
		case auth.ErrInvalidCredentials:
			return middleware.Unauthorized("Invalid email or password")
		case auth.ErrEmailNotVerified:
			return middleware.Forbidden("Email not verified. Please verify your email first.")
		case auth.ErrAccountDisabled:
			return middleware.Forbidden("Account is disabled")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user":          user,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_in":    tokens.ExpiresIn,
	})
}

func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	tokens, err := h.authService.RefreshToken(c.Context(), input.RefreshToken)
	if err != nil {
		if err == auth.ErrInvalidToken || err == auth.ErrUserNotFound {
			return middleware.Unauthorized("Invalid refresh token")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_in":    tokens.ExpiresIn,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.authService.Logout(c.Context(), input.RefreshToken); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged out",
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("Not authenticated")
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.authService.RequestPasswordReset(c.Context(), input.Email); err != nil {
		if strings.Contains(err.Error(), "database") || strings.Contains(err.Error(), "connection") {
			return middleware.NewError(fiber.StatusInternalServerError, "Failed to process request")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "If the email exists, a reset link has been sent",
	})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var input struct {
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=8"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.authService.ResetPassword(c.Context(), input.Token, input.NewPassword); err != nil {
		if err == auth.ErrInvalidToken || err == auth.ErrTokenExpired {
			return middleware.BadRequest("Invalid or expired reset token")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Password has been reset successfully",
	})
}

func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return middleware.BadRequest("Verification token is required")
	}

	if err := h.authService.VerifyEmail(c.Context(), token); err != nil {
		if err == auth.ErrInvalidToken || err == auth.ErrVerificationTokenExpired {
			return middleware.BadRequest("Invalid or expired verification token")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Email verified successfully",
	})
}

func (h *AuthHandler) ResendVerificationEmail(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.authService.ResendVerificationEmail(c.Context(), input.Email); err != nil {
		if strings.Contains(err.Error(), "database") || strings.Contains(err.Error(), "connection") {
			return middleware.NewError(fiber.StatusInternalServerError, "Failed to process request")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "If the email exists and is not verified, a verification email has been sent",
	})
}
