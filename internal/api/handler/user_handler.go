package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthlog/health-backend/internal/core/ports"
)

// UserHandler serves the caller's own profile.
type UserHandler struct {
	service ports.AccountService
}

func NewUserHandler(service ports.AccountService) *UserHandler {
	return &UserHandler{service: service}
}

// Profile returns the caller's profile.
//
// @Summary      Get profile
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  domain.UserProfile
// @Failure      401   {object}  errorResponse
// @Router       /user/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	token, err := sessionToken(c)
	if err != nil {
		return err
	}
	profile, err := h.service.Profile(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile replaces age, weight, height, gender and password.
//
// @Summary      Update profile
// @Tags         user
// @Accept       json
// @Security     BearerAuth
// @Param        body  body      profileRequest  true  "New profile values"
// @Success      204
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /user/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	token, err := sessionToken(c)
	if err != nil {
		return err
	}
	var req profileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err = h.service.UpdateProfile(c.Request().Context(), token, ports.ProfileInput{
		Age:      req.Age,
		WeightKg: req.WeightKg,
		HeightM:  req.HeightM,
		Password: req.Password,
		Gender:   req.Gender,
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes the caller's account and all of its records.
//
// @Summary      Delete account
// @Tags         user
// @Security     BearerAuth
// @Success      204
// @Failure      401   {object}  errorResponse
// @Router       /user [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	token, err := sessionToken(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteUser(c.Request().Context(), token); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// BMI returns weight / height² for the caller, or 0 when not computable.
//
// @Summary      Body mass index
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  bmiResponse
// @Failure      401   {object}  errorResponse
// @Router       /user/bmi [get]
func (h *UserHandler) BMI(c echo.Context) error {
	token, err := sessionToken(c)
	if err != nil {
		return err
	}
	bmi, err := h.service.BMI(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bmiResponse{BMI: bmi})
}
