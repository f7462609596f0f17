package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthlog/health-backend/internal/core/ports"
)

// ActivityHandler serves exercise records.
type ActivityHandler struct {
	service ports.ActivityService
}

func NewActivityHandler(service ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// List returns all activity records in their current order.
//
// @Summary      List activities
// @Tags         activity
// @Produce      json
// @Security     BearerAuth
// @Success      200   {array}   domain.ActivityRecord
// @Router       /activities [get]
func (h *ActivityHandler) List(c echo.Context) error {
	token, err := sessionToken(c)
	if err != nil {
		return err
	}
	records, err := h.service.ListActivities(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

// Add appends an activity record.
//
// @Summary      Add activity
// @Tags         activity
// @Accept       json
// @Security     BearerAuth
// @Param        body  body      activityRequest  true  "Record"
// @Success      201
// @Failure      400   {object}  errorResponse
// @Router       /activities [post]
func (h *ActivityHandler) Add(c echo.Context) error {
	token, err := sessionToken(c)
	if err != nil {
		return err
	}
	var req activityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.AddActivity(c.Request().Context(), token, req.record()); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

// Update replaces the record at :index.
//
// @Summary      Update activity
// @Tags         activity
// @Accept       json
// @Security     BearerAuth
// @Param        index  path      int              true  "Zero-based position"
// @Param        body   body      activityRequest  true  "Record"
// @Success      204
// @Failure      404    {object}  errorResponse
// @Router       /activities/{index} [put]
func (h *ActivityHandler) Update(c echo.Context) error {
	token, err := sessionToken(c)
	if err != nil {
		return err
	}
	index, err := indexParam(c)
	if err != nil {
		return err
	}
	var req activityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.UpdateActivity(c.Request().Context(), token, index, req.record()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes the record at :index.
//
// @Summary      Delete activity
// @Tags         activity
// @Security     BearerAuth
// @Param        index  path      int  true  "Zero-based position"
// @Success      204
// @Failure      404    {object}  errorResponse
// @Router       /activities/{index} [delete]
func (h *ActivityHandler) Delete(c echo.Context) error {
	token, err := sessionToken(c)
	if err != nil {
		return err
	}
	index, err := indexParam(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteActivity(c.Request().Context(), token, index); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Sort reorders the stored activities by duration, longest first.
//
// @Summary      Sort activities by duration
// @Tags         activity
// @Security     BearerAuth
// @Success      204
// @Router       /activities/sort [post]
func (h *ActivityHandler) Sort(c echo.Context) error {
	token, err := sessionToken(c)
	if err != nil {
		return err
	}
	if err := h.service.SortActivitiesByDuration(c.Request().Context(), token); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
