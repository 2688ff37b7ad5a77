package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/airxelerate/flightboard/internal/logging"
	authmw "github.com/airxelerate/flightboard/internal/middleware/auth"
	"github.com/airxelerate/flightboard/internal/service"
	"github.com/airxelerate/flightboard/internal/transport"
)

type AuthHandler struct {
	Svc *service.AuthService
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login rejected", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	res, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		// Disabled accounts answer exactly like bad credentials so the
		// response reveals nothing about the account's existence or state.
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrAccountDisabled) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
		}
		l.Error("login failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "An unexpected error occurred")
	}

	return c.JSON(http.StatusOK, transport.OK(transport.AuthResponse{
		Token:     res.Token,
		TokenType: "Bearer",
		Username:  res.Username,
		Role:      string(res.Role),
	}, "Authentication successful"))
}

func (h *AuthHandler) Logout(c echo.Context) error {
	raw, ok := authmw.BearerToken(c)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "No token found in request")
	}

	h.Svc.Logout(c.Request().Context(), raw)

	return c.JSON(http.StatusOK, transport.OK("Logged out successfully", "Logout successful"))
}
