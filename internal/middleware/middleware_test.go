package middleware_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"sgp/internal/middleware"
	"sgp/internal/services"
	"sgp/pkg/logutils"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const secret = "middleware_secret"

func protectedApp() *fiber.App {
	app := fiber.New()
	authService := services.NewAuthService(nil, nil, secret, time.Hour)
	app.Get("/me", middleware.AuthRequired(authService), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"usuario_id": c.Locals(middleware.LocalUsuarioID),
			"email":      c.Locals(middleware.LocalEmail),
		})
	})
	return app
}

func token(t *testing.T, key string, exp time.Time) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"usuario_id": 7,
		"email":      "ana@example.com",
		"exp":        exp.Unix(),
	}).SignedString([]byte(key))
	require.NoError(t, err)
	return signed
}

func TestAuthRequired(t *testing.T) {
	app := protectedApp()

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"expired token", "Bearer " + token(t, secret, time.Now().Add(-time.Minute)), http.StatusUnauthorized},
		{"foreign token", "Bearer " + token(t, "other", time.Now().Add(time.Hour)), http.StatusUnauthorized},
		{"valid token", "Bearer " + token(t, secret, time.Now().Add(time.Hour)), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)

			if tt.want == http.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				assert.JSONEq(t, `{"usuario_id":7,"email":"ana@example.com"}`, string(body))
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.RateLimiter(rate.Limit(1), 2))
	app.Get("/test", func(c *fiber.Ctx) error { return c.SendString("ok") })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/test", nil))
		require.NoError(t, err)
		codes = append(codes, resp.StatusCode)
		if resp.StatusCode == http.StatusTooManyRequests {
			assert.Equal(t, "1", resp.Header.Get("Retry-After"))
		}
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestPerMinute(t *testing.T) {
	assert.InDelta(t, 1.0, float64(middleware.PerMinute(60)), 1e-9)
	assert.InDelta(t, 10.0, float64(middleware.PerMinute(600)), 1e-9)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logutils.Log.SetOutput(&buf)
	t.Cleanup(func() { logutils.Log.SetOutput(os.Stderr) })

	app := fiber.New()
	app.Use(middleware.RequestLogger())
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "path=/ok")
	assert.Contains(t, out, "status=200")
	assert.Contains(t, out, "status=404")
	assert.Contains(t, out, "level=warning")
}
