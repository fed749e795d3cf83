package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"campusboard/internal/config"
	"campusboard/internal/models"
	"campusboard/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPassword = "supersecret1"

func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}, &models.Report{}, &models.Sanction{}))

	images, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret:     "test-secret-0123456789abcdef0123456789",
		PageSize:      10,
		FlagThreshold: 3,
		Env:           "test",
	}

	srv, err := NewServerWithDeps(cfg, db, nil, images)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError("Internal server error", err))
		},
	})
	srv.SetupRoutes(app)
	return srv, app
}

// seedAccount inserts a user with a bcrypt password and the given roles.
func seedAccount(t *testing.T, s *Server, username string, roles ...string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username: username,
		Email:    username + "2024@alumnos.ubiobio.cl",
		Password: string(hashed),
	}
	user.SetRoles(roles)
	require.NoError(t, s.userRepo.Create(context.Background(), user))
	return user
}

func bearerFor(t *testing.T, s *Server, user *models.User) string {
	t.Helper()
	token, err := s.generateAccessToken(user)
	require.NoError(t, err)
	return "Bearer " + token
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, dest), "body: %s", data)
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestSignupAndSignin(t *testing.T) {
	_, app := newTestServer(t)

	resp, err := app.Test(jsonRequest("POST", "/api/auth/signup", fiber.Map{
		"username": "jperez",
		"email":    "jperez2024@alumnos.ubiobio.cl",
		"password": testPassword,
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created models.User
	decodeBody(t, resp, &created)
	assert.Equal(t, "jperez", created.Username)
	assert.NotEmpty(t, created.ID)

	// duplicate username is rejected
	resp, err = app.Test(jsonRequest("POST", "/api/auth/signup", fiber.Map{
		"username": "jperez",
		"email":    "otro2024@alumnos.ubiobio.cl",
		"password": testPassword,
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// wrong password
	resp, err = app.Test(jsonRequest("POST", "/api/auth/signin", fiber.Map{
		"username": "jperez",
		"password": "wrong",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// successful signin returns the access token and sets the refresh cookie
	resp, err = app.Test(jsonRequest("POST", "/api/auth/signin", fiber.Map{
		"username": "jperez",
		"password": testPassword,
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var session struct {
		AccessToken    string       `json:"accessToken"`
		ExpirationDate string       `json:"expirationDate"`
		User           *models.User `json:"user"`
	}
	decodeBody(t, resp, &session)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.ExpirationDate)
	assert.Equal(t, "jperez", session.User.Username)

	cookie := findCookie(resp, "jwt")
	require.NotNil(t, cookie, "signin must set the refresh cookie")
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)
}

func TestSigninByEmail(t *testing.T) {
	s, app := newTestServer(t)
	seedAccount(t, s, "mlopez")

	resp, err := app.Test(jsonRequest("POST", "/api/auth/signin", fiber.Map{
		"email":    "mlopez2024@alumnos.ubiobio.cl",
		"password": testPassword,
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRefresh(t *testing.T) {
	s, app := newTestServer(t)
	seedAccount(t, s, "jperez")

	resp, err := app.Test(jsonRequest("POST", "/api/auth/signin", fiber.Map{
		"username": "jperez",
		"password": testPassword,
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cookie := findCookie(resp, "jwt")
	require.NotNil(t, cookie)

	req := httptest.NewRequest("POST", "/api/auth/refresh", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var refreshed struct {
		AccessToken string `json:"accessToken"`
	}
	decodeBody(t, resp, &refreshed)
	assert.NotEmpty(t, refreshed.AccessToken)

	// without the cookie
	resp, err = app.Test(httptest.NewRequest("POST", "/api/auth/refresh", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// an access token in the cookie is not accepted
	access, err := s.generateAccessToken(seedAccount(t, s, "otra"))
	require.NoError(t, err)
	req = httptest.NewRequest("POST", "/api/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: access})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLogout(t *testing.T) {
	s, app := newTestServer(t)
	seedAccount(t, s, "jperez")

	// logout without a session cookie is a client error
	resp, err := app.Test(httptest.NewRequest("POST", "/api/auth/logout", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(jsonRequest("POST", "/api/auth/signin", fiber.Map{
		"username": "jperez",
		"password": testPassword,
	}))
	require.NoError(t, err)
	cookie := findCookie(resp, "jwt")
	require.NotNil(t, cookie)

	req := httptest.NewRequest("POST", "/api/auth/logout", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	cleared := findCookie(resp, "jwt")
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value, "logout clears the refresh cookie")
}

func TestAuthRequired(t *testing.T) {
	s, app := newTestServer(t)
	user := seedAccount(t, s, "jperez")

	resp, err := app.Test(httptest.NewRequest("GET", "/api/usuarios/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest("GET", "/api/usuarios/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest("GET", "/api/usuarios/me", nil)
	req.Header.Set("Authorization", bearerFor(t, s, user))
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var me models.User
	decodeBody(t, resp, &me)
	assert.Equal(t, "jperez", me.Username)
}

func TestPermissions(t *testing.T) {
	s, app := newTestServer(t)
	plain := seedAccount(t, s, "jperez")
	moderator := seedAccount(t, s, "mod", models.RoleUser, models.RoleModerator)
	admin := seedAccount(t, s, "root", models.RoleUser, models.RoleAdmin)

	get := func(target, auth string) int {
		req := httptest.NewRequest("GET", target, nil)
		req.Header.Set("Authorization", auth)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	// report listing requires view-reports
	assert.Equal(t, fiber.StatusForbidden, get("/api/reporte/", bearerFor(t, s, plain)))
	assert.Equal(t, fiber.StatusOK, get("/api/reporte/", bearerFor(t, s, moderator)))

	// user administration is admin-only
	assert.Equal(t, fiber.StatusForbidden, get("/api/usuarios/", bearerFor(t, s, moderator)))
	assert.Equal(t, fiber.StatusOK, get("/api/usuarios/", bearerFor(t, s, admin)))

	// the whole moderation group is gated
	assert.Equal(t, fiber.StatusForbidden, get("/api/moderacion/sanciones", bearerFor(t, s, plain)))
	assert.Equal(t, fiber.StatusOK, get("/api/moderacion/sanciones", bearerFor(t, s, moderator)))
}

func TestHealthEndpoints(t *testing.T) {
	_, app := newTestServer(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/live", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/health/ready", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var health struct {
		Status string `json:"status"`
		Checks struct {
			Database string `json:"database"`
			Redis    string `json:"redis"`
		} `json:"checks"`
	}
	decodeBody(t, resp, &health)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "unavailable", health.Checks.Redis)
}
