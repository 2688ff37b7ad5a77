package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/airxelerate/flightboard/internal/handlers"
	authmw "github.com/airxelerate/flightboard/internal/middleware/auth"
	"github.com/airxelerate/flightboard/internal/token"
	"github.com/airxelerate/flightboard/internal/transport"
)

type Deps struct {
	Guard         *authmw.Guard
	AuthHandler   *handlers.AuthHandler
	UserHandler   *handlers.UserHandler
	FlightHandler *handlers.FlightHandler
	SearchHandler *handlers.SearchHandler
}

// APIErrorHandler renders every error in the uniform envelope. Internal
// failures keep a generic message; only status code and message vary.
func APIErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "An unexpected error occurred"

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			}
		}

		if err := c.JSON(code, transport.Error(message, c.Request().URL.Path)); err != nil {
			c.Logger().Errorf("error handler write: %v", err)
		}
	}
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = APIErrorHandler()

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1", d.Guard.Authenticate)

	v1.POST("/auth/login", d.AuthHandler.Login)
	v1.POST("/auth/logout", d.AuthHandler.Logout)

	anyRole := d.Guard.RequireRole(token.RoleAdmin, token.RoleUser)
	adminOnly := d.Guard.RequireRole(token.RoleAdmin)

	users := v1.Group("/users")
	users.POST("/register", d.UserHandler.Register)
	users.POST("/register/admin", d.UserHandler.RegisterAdmin, adminOnly)
	users.GET("", d.UserHandler.List, adminOnly)
	users.GET("/me", d.UserHandler.Me, anyRole)
	users.GET("/:id", d.UserHandler.GetByID, adminOnly)

	flights := v1.Group("/flights")
	flights.POST("", d.FlightHandler.Create, adminOnly)
	flights.GET("", d.FlightHandler.List, anyRole)
	flights.GET("/search", d.SearchHandler.Search, anyRole)
	flights.GET("/:id", d.FlightHandler.GetByID, anyRole)
	flights.DELETE("/:id", d.FlightHandler.Delete, adminOnly)
}
