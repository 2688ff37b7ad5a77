package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/airxelerate/flightboard/internal/logging"
	"github.com/airxelerate/flightboard/internal/service"
	"github.com/airxelerate/flightboard/internal/transport"
	"github.com/airxelerate/flightboard/internal/util"
)

type FlightHandler struct {
	Svc *service.FlightService
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func (h *FlightHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "flight_create")

	var req transport.FlightRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	flight, err := h.Svc.Create(ctx, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidFlight):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrDuplicateFlight):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		l.Error("create failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "An unexpected error occurred")
	}

	return c.JSON(http.StatusCreated, transport.OK(flight, "Flight created successfully"))
}

func (h *FlightHandler) GetByID(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid flight id")
	}

	flight, err := h.Svc.GetByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrFlightNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "An unexpected error occurred")
	}

	return c.JSON(http.StatusOK, transport.OK(flight, "Flight retrieved successfully"))
}

func (h *FlightHandler) List(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, flights, err := h.Svc.List(c.Request().Context(), offset, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "An unexpected error occurred")
	}

	return c.JSON(http.StatusOK, transport.OK(map[string]any{
		"flights": flights,
		"meta": map[string]any{
			"page":     page,
			"size":     limit,
			"total":    total,
			"has_next": int64(offset+limit) < total,
		},
	}, "Flights retrieved successfully"))
}

func (h *FlightHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid flight id")
	}

	if err := h.Svc.Delete(c.Request().Context(), uint(id)); err != nil {
		if errors.Is(err, service.ErrFlightNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "An unexpected error occurred")
	}

	return c.JSON(http.StatusOK, transport.OK(nil, "Flight deleted successfully"))
}
