package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Radityatama/produk_inventory/internal/hash"
	"github.com/Radityatama/produk_inventory/internal/models"
	"github.com/Radityatama/produk_inventory/internal/session"
)

type testEnv struct {
	T        *testing.T
	E        *echo.Echo
	DB       *gorm.DB
	Sessions *session.Manager
	A        *AuthHandler
	P        *ProductHandler
	L        *LandingHandler
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect to in-memory db")

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}))

	sessions := &session.Manager{Secret: []byte("test_session_secret")}
	productHandler := &ProductHandler{DB: db}

	return &testEnv{
		T:        t,
		E:        echo.New(),
		DB:       db,
		Sessions: sessions,
		A:        &AuthHandler{DB: db, Sessions: sessions},
		P:        productHandler,
		L:        &LandingHandler{Sessions: sessions, Products: productHandler},
	}
}

func (env *testEnv) doJSONRequest(method, path string, payload interface{}, cookies ...*http.Cookie) (*httptest.ResponseRecorder, *http.Request, echo.Context) {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(env.T, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, req, c
}

func (env *testEnv) createUser(username, password, role string) *models.User {
	pwHash, err := hash.HashPassword(password)
	require.NoError(env.T, err)

	user := models.User{
		Username:     username,
		PasswordHash: pwHash,
		Role:         role,
	}
	require.NoError(env.T, env.DB.Create(&user).Error)
	return &user
}

// sessionCookie logs the user in through the handler and returns the session
// cookie from the response.
func (env *testEnv) sessionCookie(username, password string) *http.Cookie {
	payload := map[string]string{"username": username, "password": password}
	rec, _, c := env.doJSONRequest(http.MethodPost, "/api/v1/login", payload)
	require.NoError(env.T, env.A.Login(c))
	require.Equal(env.T, http.StatusOK, rec.Code)

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == session.CookieName {
			return ck
		}
	}
	env.T.Fatalf("login response did not set the %q cookie", session.CookieName)
	return nil
}
