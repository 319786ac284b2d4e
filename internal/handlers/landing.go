package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Radityatama/produk_inventory/internal/logging"
	"github.com/Radityatama/produk_inventory/internal/session"
)

// LandingHandler dispatches the page-level routes: the root redirect, the
// sign-in entry point and the dashboard payload.
type LandingHandler struct {
	Sessions *session.Manager
	Products *ProductHandler
}

// Root sends the visitor to the dashboard when a valid session cookie is
// present and to the sign-in screen otherwise.
func (h *LandingHandler) Root(c echo.Context) error {
	if _, err := h.Sessions.Current(c); err == nil {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	return c.Redirect(http.StatusSeeOther, "/signin")
}

// SignIn bounces already signed-in visitors straight to the dashboard.
func (h *LandingHandler) SignIn(c echo.Context) error {
	if _, err := h.Sessions.Current(c); err == nil {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "sign in required"})
}

// Dashboard requires a session before any product data is read. Non-admin
// sessions get can_manage=false, which is what hides the mutation controls.
func (h *LandingHandler) Dashboard(c echo.Context) error {
	user, err := h.Sessions.Current(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/signin")
	}

	products, err := h.Products.listOrdered(c.Request().Context())
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("dashboard load failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load dashboard")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":       user,
		"products":   products,
		"can_manage": user.IsAdmin(),
	})
}
