package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Radityatama/produk_inventory/internal/events"
	"github.com/Radityatama/produk_inventory/internal/hash"
	"github.com/Radityatama/produk_inventory/internal/logging"
	"github.com/Radityatama/produk_inventory/internal/models"
	"github.com/Radityatama/produk_inventory/internal/session"
)

type AuthHandler struct {
	DB       *gorm.DB
	Sessions *session.Manager
	Producer *events.Producer
}

func (h *AuthHandler) publish(c echo.Context, key string, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicUserEvents, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

// Login checks the submitted credentials and establishes the session cookie.
// Unknown username and wrong password produce the same generic message.
func (h *AuthHandler) Login(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "auth.login")

	var req struct {
		Username string `json:"username" form:"username"`
		Password string `json:"password" form:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	var user models.User
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			l.Error("login failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
		l.Warn("login failed", "status", 401, "reason", "unknown username")
		return echo.NewHTTPError(http.StatusUnauthorized, "username atau password invalid")
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login failed", "status", 401, "reason", "wrong password")
		return echo.NewHTTPError(http.StatusUnauthorized, "username atau password invalid")
	}

	if err := h.Sessions.Issue(c, &user); err != nil {
		l.Error("login failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	h.publish(c, user.ID.String(), map[string]interface{}{
		"type":     "user_signed_in",
		"user_id":  user.ID,
		"username": user.Username,
	})

	l.Info("login successful", "username", user.Username)
	return c.JSON(http.StatusOK, session.User{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
}

// Logout clears the session cookie. Works with or without a valid session so
// a stale client can always reset itself.
func (h *AuthHandler) Logout(c echo.Context) error {
	user, err := h.Sessions.Current(c)
	h.Sessions.Clear(c)

	if err == nil {
		h.publish(c, user.ID.String(), map[string]interface{}{
			"type":     "user_signed_out",
			"user_id":  user.ID,
			"username": user.Username,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "signed out"})
}

// Me returns the user record of the current session.
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.Sessions.Current(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "sign in required")
	}
	return c.JSON(http.StatusOK, user)
}
