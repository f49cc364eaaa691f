package server

import (
	"log/slog"

	"loppis/internal/middleware"
	"loppis/internal/models"
	"loppis/internal/service"

	"github.com/gofiber/fiber/v2"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is returned by both signup and login. The token is the one
// issued at registration; login never mints a new one.
type authResponse struct {
	AccessToken string       `json:"accessToken"`
	User        *models.User `json:"user"`
}

// Signup handles user registration. The access token in the response is
// issued exactly once, here; clients must store it, as there is no other way
// to retrieve it besides logging in again.
func (s *Server) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.authService.Register(c.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "user registered",
		slog.Uint64("user_id", uint64(user.ID)))

	return c.Status(fiber.StatusCreated).JSON(authResponse{
		AccessToken: user.AccessToken,
		User:        user,
	})
}

// Login verifies email/password and returns the user's stored access token.
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.authService.VerifyCredentials(c.Context(), req.Email, req.Password)
	if err != nil {
		if models.HasCode(err, models.CodeInvalidCredentials) {
			middleware.Logger.InfoContext(c.UserContext(), "login failed")
		}
		return models.RespondWithAppError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "user logged in",
		slog.Uint64("user_id", uint64(user.ID)))

	return c.Status(fiber.StatusOK).JSON(authResponse{
		AccessToken: user.AccessToken,
		User:        user,
	})
}
