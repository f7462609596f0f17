package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthlog/health-backend/internal/core/ports"
)

// WaterHandler serves hydration records.
type WaterHandler struct {
	service ports.WaterService
}

func NewWaterHandler(service ports.WaterService) *WaterHandler {
	return &WaterHandler{service: service}
}

// List returns all water records in insertion order.
//
// @Summary      List water records
// @Tags         water
// @Produce      json
// @Security     BearerAuth
// @Success      200   {array}   domain.WaterRecord
// @Failure      401   {object}  errorResponse
// @Router       /waters [get]
func (h *WaterHandler) List(c echo.Context) error {
	token, err := sessionToken(c)
	if err != nil {
		return err
	}
	records, err := h.service.ListWater(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

// Add appends a water record.
//
// @Summary      Add water record
// @Tags         water
// @Accept       json
// @Security     BearerAuth
// @Param        body  body      waterRequest  true  "Record"
// @Success      201
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /waters [post]
func (h *WaterHandler) Add(c echo.Context) error {
	token, err := sessionToken(c)
	if err != nil {
		return err
	}
	var req waterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.AddWater(c.Request().Context(), token, req.record()); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

// Update replaces the record at :index.
//
// @Summary      Update water record
// @Tags         water
// @Accept       json
// @Security     BearerAuth
// @Param        index  path      int           true  "Zero-based position"
// @Param        body   body      waterRequest  true  "Record"
// @Success      204
// @Failure      400    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /waters/{index} [put]
func (h *WaterHandler) Update(c echo.Context) error {
	token, err := sessionToken(c)
	if err != nil {
		return err
	}
	index, err := indexParam(c)
	if err != nil {
		return err
	}
	var req waterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.UpdateWater(c.Request().Context(), token, index, req.record()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes the record at :index; later records shift down.
//
// @Summary      Delete water record
// @Tags         water
// @Security     BearerAuth
// @Param        index  path      int  true  "Zero-based position"
// @Success      204
// @Failure      404    {object}  errorResponse
// @Router       /waters/{index} [delete]
func (h *WaterHandler) Delete(c echo.Context) error {
	token, err := sessionToken(c)
	if err != nil {
		return err
	}
	index, err := indexParam(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteWater(c.Request().Context(), token, index); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Weekly returns the average amount over the last seven entries.
//
// @Summary      Weekly water average
// @Tags         water
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  averageResponse
// @Router       /waters/weekly [get]
func (h *WaterHandler) Weekly(c echo.Context) error {
	token, err := sessionToken(c)
	if err != nil {
		return err
	}
	avg, err := h.service.WeeklyWaterAverage(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, averageResponse{AverageMl: avg})
}

// Enough reports whether the weekly average meets ?goal= millilitres.
//
// @Summary      Water goal check
// @Tags         water
// @Produce      json
// @Security     BearerAuth
// @Param        goal  query     number  true  "Daily goal in ml"
// @Success      200   {object}  enoughResponse
// @Failure      400   {object}  errorResponse
// @Router       /waters/enough [get]
func (h *WaterHandler) Enough(c echo.Context) error {
	token, err := sessionToken(c)
	if err != nil {
		return err
	}
	goal, err := floatQuery(c, "goal")
	if err != nil {
		return err
	}
	ok, err := h.service.IsWaterEnough(c.Request().Context(), token, goal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, enoughResponse{Enough: ok})
}
