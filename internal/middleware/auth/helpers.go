package auth

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/airxelerate/flightboard/internal/token"
)

const principalKey = "principal"

// Principal is the identity established for one request. It lives in the
// echo context only and is never shared across requests.
type Principal struct {
	Username string
	Role     token.Role
}

func setPrincipal(c echo.Context, p Principal) {
	c.Set(principalKey, p)
}

func PrincipalFrom(c echo.Context) (Principal, bool) {
	p, ok := c.Get(principalKey).(Principal)
	return p, ok
}

// BearerToken isolates the raw token from the Authorization header.
// A missing or non-Bearer header yields ok=false, which is not an error
// by itself: the request simply stays anonymous.
func BearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	raw := strings.TrimSpace(header[len(prefix):])
	if raw == "" {
		return "", false
	}
	return raw, true
}
