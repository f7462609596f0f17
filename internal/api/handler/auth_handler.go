package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthlog/health-backend/internal/core/ports"
)

// AuthHandler handles registration and sessions.
type AuthHandler struct {
	service ports.AccountService
}

func NewAuthHandler(service ports.AccountService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register creates a new account and returns its session token.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Profile and password"
// @Success      201   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Age:      req.Age,
		WeightKg: req.WeightKg,
		HeightM:  req.HeightM,
		Password: req.Password,
		Gender:   req.Gender,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tokenResponse{Token: token})
}

// Login returns the session token bound to the account.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.service.Login(c.Request().Context(), req.Name, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// Logout unbinds the caller's token.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401   {object}  errorResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, err := sessionToken(c)
	if err != nil {
		return err
	}
	if err := h.service.Logout(c.Request().Context(), token); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
