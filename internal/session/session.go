// Package session implements the authentication cookie. The cookie value is
// a signed token verified on every protected request, so the id, username and
// role it carries cannot be edited client-side.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Radityatama/produk_inventory/internal/models"
)

const (
	CookieName = "user"
	TTL        = 7 * 24 * time.Hour
)

var ErrNoSession = errors.New("no valid session")

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// User is the session view of an authenticated user, as serialized to
// clients: id, username and role only.
type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

func (u User) IsAdmin() bool { return u.Role == "admin" }

type Manager struct {
	Secret []byte
}

func CreateCookie(name, value, path string, expTime time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expTime,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Issue signs a session token for the user and sets the cookie on the
// response.
func (m *Manager) Issue(c echo.Context, user *models.User) error {
	exp := time.Now().Add(TTL)
	claims := Claims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.Secret)
	if err != nil {
		return fmt.Errorf("sign session token: %w", err)
	}

	c.SetCookie(CreateCookie(CookieName, signed, "/", exp))
	return nil
}

// Current parses and verifies the session cookie of the request. Missing,
// expired or tampered cookies all yield ErrNoSession.
func (m *Manager) Current(c echo.Context) (User, error) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return User{}, ErrNoSession
	}

	claims := Claims{}
	token, err := jwt.ParseWithClaims(cookie.Value, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signature method: %v", t.Header["alg"])
		}
		return m.Secret, nil
	})
	if err != nil || !token.Valid {
		return User{}, ErrNoSession
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return User{}, ErrNoSession
	}

	return User{ID: id, Username: claims.Username, Role: claims.Role}, nil
}

// Clear overwrites the session cookie with an already expired one.
func (m *Manager) Clear(c echo.Context) {
	c.SetCookie(CreateCookie(CookieName, "", "/", time.Now().Add(-time.Hour)))
}
