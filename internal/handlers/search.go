package handlers

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/airxelerate/flightboard/internal/service/search"
	"github.com/airxelerate/flightboard/internal/transport"
	"github.com/airxelerate/flightboard/internal/util"
)

type SearchHandler struct {
	ES    *elasticsearch.Client
	Index string
}

func (h *SearchHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter 'q' is required")
	}
	if h.ES == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not available")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, size := util.Calculate(page, size)

	total, flights, err := search.Search(c.Request().Context(), h.ES, h.Index, q, from, size)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "An unexpected error occurred")
	}

	return c.JSON(http.StatusOK, transport.OK(map[string]any{
		"total":   total,
		"flights": flights,
	}, "Flights retrieved successfully"))
}
