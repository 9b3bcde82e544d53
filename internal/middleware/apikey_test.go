package middleware

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v3"
)

func TestRequireAPIKey(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		header     string
		wantStatus int
	}{
		{
			name:       "matching key",
			key:        "s3cret",
			header:     "s3cret",
			wantStatus: fiber.StatusOK,
		},
		{
			name:       "wrong key",
			key:        "s3cret",
			header:     "guess",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "missing header",
			key:        "s3cret",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "admin disabled",
			key:        "",
			header:     "",
			wantStatus: fiber.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			m := NewAPIKeyMiddleware(tt.key)
			app.Post("/admin", m.RequireAPIKey, func(c fiber.Ctx) error {
				return c.SendString("ok")
			})

			req, _ := http.NewRequest("POST", "/admin", nil)
			if tt.header != "" {
				req.Header.Set(APIKeyHeader, tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}
