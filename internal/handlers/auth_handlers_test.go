package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Radityatama/produk_inventory/internal/session"
)

func TestLoginSuccess(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("andi", "rahasia123", "admin")

	payload := map[string]string{"username": "andi", "password": "rahasia123"}
	rec, _, c := env.doJSONRequest(http.MethodPost, "/api/v1/login", payload)

	require.NoError(t, env.A.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp session.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, user.ID, resp.ID)
	require.Equal(t, "andi", resp.Username)
	require.Equal(t, "admin", resp.Role)

	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == session.CookieName {
			cookie = ck
		}
	}
	require.NotNil(t, cookie, "login must set the session cookie")
	require.True(t, cookie.HttpOnly)
	require.WithinDuration(t, time.Now().Add(session.TTL), cookie.Expires, time.Minute)

	// The cookie must verify back to the same user.
	_, _, c2 := env.doJSONRequest(http.MethodGet, "/api/v1/me", nil, cookie)
	got, err := env.Sessions.Current(c2)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
	require.Equal(t, "admin", got.Role)
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("andi", "rahasia123", "user")

	cases := []map[string]string{
		{"username": "andi", "password": "salah"},
		{"username": "tidak_ada", "password": "rahasia123"},
	}

	for _, payload := range cases {
		rec, _, c := env.doJSONRequest(http.MethodPost, "/api/v1/login", payload)

		err := env.A.Login(c)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok, "expected HTTPError")
		require.Equal(t, http.StatusUnauthorized, he.Code)
		require.Equal(t, "username atau password invalid", he.Message)
		require.Empty(t, rec.Result().Cookies(), "failed login must not set a cookie")
	}
}

func TestLoginEmptyFields(t *testing.T) {
	env := newTestEnv(t)

	for _, payload := range []map[string]string{
		{"username": "", "password": "x"},
		{"username": "x", "password": ""},
		{},
	} {
		_, _, c := env.doJSONRequest(http.MethodPost, "/api/v1/login", payload)

		err := env.A.Login(c)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok, "expected HTTPError")
		require.Equal(t, http.StatusBadRequest, he.Code)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("andi", "rahasia123", "user")
	cookie := env.sessionCookie("andi", "rahasia123")

	rec, _, c := env.doJSONRequest(http.MethodPost, "/api/v1/logout", nil, cookie)
	require.NoError(t, env.A.Logout(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var cleared *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == session.CookieName {
			cleared = ck
		}
	}
	require.NotNil(t, cleared)
	require.Empty(t, cleared.Value)
	require.True(t, cleared.Expires.Before(time.Now()))

	// A cleared cookie no longer resolves to a session.
	_, _, c2 := env.doJSONRequest(http.MethodGet, "/", nil, cleared)
	_, err := env.Sessions.Current(c2)
	require.ErrorIs(t, err, session.ErrNoSession)
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("andi", "rahasia123", "user")
	cookie := env.sessionCookie("andi", "rahasia123")

	rec, _, c := env.doJSONRequest(http.MethodGet, "/api/v1/me", nil, cookie)
	require.NoError(t, env.A.Me(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp session.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "andi", resp.Username)

	_, _, cNone := env.doJSONRequest(http.MethodGet, "/api/v1/me", nil)
	err := env.A.Me(cNone)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
}
