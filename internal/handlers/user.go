package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/airxelerate/flightboard/internal/logging"
	authmw "github.com/airxelerate/flightboard/internal/middleware/auth"
	"github.com/airxelerate/flightboard/internal/models"
	"github.com/airxelerate/flightboard/internal/service"
	"github.com/airxelerate/flightboard/internal/token"
	"github.com/airxelerate/flightboard/internal/transport"
)

type UserHandler struct {
	Svc *service.UserService
}

func userResponse(u *models.User) transport.UserResponse {
	return transport.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		Enabled:   u.Enabled,
		CreatedAt: u.CreatedAt,
	}
}

func (h *UserHandler) register(c echo.Context, role token.Role, message string) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user_register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register rejected", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	user, err := h.Svc.Register(ctx, req.Username, req.Password, role)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			return echo.NewHTTPError(http.StatusConflict, "Username '"+req.Username+"' is already taken")
		}
		l.Error("register failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "An unexpected error occurred")
	}

	return c.JSON(http.StatusCreated, transport.OK(userResponse(user), message))
}

func (h *UserHandler) Register(c echo.Context) error {
	return h.register(c, token.RoleUser, "User registered successfully")
}

func (h *UserHandler) RegisterAdmin(c echo.Context) error {
	return h.register(c, token.RoleAdmin, "Admin user registered successfully")
}

func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "An unexpected error occurred")
	}

	responses := make([]transport.UserResponse, len(users))
	for i := range users {
		responses[i] = userResponse(&users[i])
	}
	return c.JSON(http.StatusOK, transport.OK(responses, "Users retrieved successfully"))
}

func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	user, err := h.Svc.GetByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found with ID: "+c.Param("id"))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "An unexpected error occurred")
	}

	return c.JSON(http.StatusOK, transport.OK(userResponse(user), "User retrieved successfully"))
}

func (h *UserHandler) Me(c echo.Context) error {
	p, ok := authmw.PrincipalFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, authmw.MsgUnauthenticated)
	}

	user, err := h.Svc.GetByUsername(c.Request().Context(), p.Username)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "An unexpected error occurred")
	}

	return c.JSON(http.StatusOK, transport.OK(userResponse(user), "Current user information retrieved"))
}
