package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthlog/health-backend/internal/core/ports"
)

// SleepHandler serves sleep records.
type SleepHandler struct {
	service ports.SleepService
}

func NewSleepHandler(service ports.SleepService) *SleepHandler {
	return &SleepHandler{service: service}
}

// List returns all sleep records in insertion order.
//
// @Summary      List sleep records
// @Tags         sleep
// @Produce      json
// @Security     BearerAuth
// @Success      200   {array}   domain.SleepRecord
// @Failure      401   {object}  errorResponse
// @Router       /sleeps [get]
func (h *SleepHandler) List(c echo.Context) error {
	token, err := sessionToken(c)
	if err != nil {
		return err
	}
	records, err := h.service.ListSleep(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

// Add appends a sleep record.
//
// @Summary      Add sleep record
// @Tags         sleep
// @Accept       json
// @Security     BearerAuth
// @Param        body  body      sleepRequest  true  "Record"
// @Success      201
// @Failure      400   {object}  errorResponse
// @Router       /sleeps [post]
func (h *SleepHandler) Add(c echo.Context) error {
	token, err := sessionToken(c)
	if err != nil {
		return err
	}
	var req sleepRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.AddSleep(c.Request().Context(), token, req.record()); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

// Update replaces the record at :index.
//
// @Summary      Update sleep record
// @Tags         sleep
// @Accept       json
// @Security     BearerAuth
// @Param        index  path      int           true  "Zero-based position"
// @Param        body   body      sleepRequest  true  "Record"
// @Success      204
// @Failure      404    {object}  errorResponse
// @Router       /sleeps/{index} [put]
func (h *SleepHandler) Update(c echo.Context) error {
	token, err := sessionToken(c)
	if err != nil {
		return err
	}
	index, err := indexParam(c)
	if err != nil {
		return err
	}
	var req sleepRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.UpdateSleep(c.Request().Context(), token, index, req.record()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes the record at :index.
//
// @Summary      Delete sleep record
// @Tags         sleep
// @Security     BearerAuth
// @Param        index  path      int  true  "Zero-based position"
// @Success      204
// @Failure      404    {object}  errorResponse
// @Router       /sleeps/{index} [delete]
func (h *SleepHandler) Delete(c echo.Context) error {
	token, err := sessionToken(c)
	if err != nil {
		return err
	}
	index, err := indexParam(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteSleep(c.Request().Context(), token, index); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Last returns the hours of the most recent record, 0 when there is none.
//
// @Summary      Last night's sleep
// @Tags         sleep
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  hoursResponse
// @Router       /sleeps/last [get]
func (h *SleepHandler) Last(c echo.Context) error {
	token, err := sessionToken(c)
	if err != nil {
		return err
	}
	hours, err := h.service.LastSleepHours(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, hoursResponse{Hours: hours})
}

// Enough reports whether last night reached ?min= hours.
//
// @Summary      Sleep goal check
// @Tags         sleep
// @Produce      json
// @Security     BearerAuth
// @Param        min   query     number  true  "Minimum hours"
// @Success      200   {object}  enoughResponse
// @Failure      400   {object}  errorResponse
// @Router       /sleeps/enough [get]
func (h *SleepHandler) Enough(c echo.Context) error {
	token, err := sessionToken(c)
	if err != nil {
		return err
	}
	minHours, err := floatQuery(c, "min")
	if err != nil {
		return err
	}
	ok, err := h.service.IsSleepEnough(c.Request().Context(), token, minHours)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, enoughResponse{Enough: ok})
}
