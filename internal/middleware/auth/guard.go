package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/airxelerate/flightboard/internal/logging"
	"github.com/airxelerate/flightboard/internal/token"
)

const (
	MsgUnauthenticated = "You are not authenticated"
	MsgForbidden       = "You are logged in but do not have the required permissions"
)

// Guard runs the per-request authentication pipeline. Both collaborators
// are injected; the blacklist is the only shared mutable state and does
// its own locking.
type Guard struct {
	Codec     *token.Codec
	Blacklist *token.Blacklist
}

func NewGuard(codec *token.Codec, blacklist *token.Blacklist) *Guard {
	return &Guard{Codec: codec, Blacklist: blacklist}
}

// Authenticate extracts and verifies the bearer token. No presented
// token leaves the request anonymous; a presented token must verify AND
// not be revoked, otherwise the request ends with 401. The external
// message never says which check failed.
func (g *Guard) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, ok := BearerToken(c)
		if !ok {
			return next(c)
		}

		l := logging.FromContext(c.Request().Context()).With("mw", "authenticate")

		claims, err := g.Codec.Verify(raw)
		if err != nil {
			l.Warn("token rejected", "reason", err.Error())
			return echo.NewHTTPError(http.StatusUnauthorized, MsgUnauthenticated)
		}

		// Verify alone cannot see logouts that happened after issuance.
		if g.Blacklist.IsRevoked(raw) {
			l.Warn("token rejected", "reason", "revoked", "sub", claims.Subject)
			return echo.NewHTTPError(http.StatusUnauthorized, MsgUnauthenticated)
		}

		setPrincipal(c, Principal{Username: claims.Subject, Role: claims.Role})
		return next(c)
	}
}

// RequireRole is the authorization gate, evaluated after Authenticate.
// Missing identity and insufficient role are different failures: 401
// tells the caller to log in, 403 tells them their account cannot do this.
func (g *Guard) RequireRole(roles ...token.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, MsgUnauthenticated)
			}
			for _, r := range roles {
				if p.Role == r {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, MsgForbidden)
		}
	}
}
