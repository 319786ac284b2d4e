package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Radityatama/produk_inventory/internal/session"
)

const contextKey = "session_user"

// RequireSession rejects requests without a verifiable session cookie and
// stores the session user in the echo context for downstream handlers.
func RequireSession(m *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := m.Current(c)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "sign in required")
			}
			c.Set(contextKey, user)
			return next(c)
		}
	}
}

// AdminOnly must run after RequireSession. Role checks happen here, on the
// verified session, never on anything the client controls directly.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "sign in required")
			}
			if !user.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "admin role required")
			}
			return next(c)
		}
	}
}

func CurrentUser(c echo.Context) (session.User, bool) {
	user, ok := c.Get(contextKey).(session.User)
	return user, ok
}
