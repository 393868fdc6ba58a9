package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/task-assistant-team/task-assistant/pkg/jwt"
)

func callWithAuth(t *testing.T, manager *jwt.Manager, authHeader string) (string, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcripts", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	service := ""
	next := func(c echo.Context) error {
		if s, ok := c.Get(ServiceContextKey).(string); ok {
			service = s
		}
		return nil
	}

	err := EchoAuth(manager)(next)(c)
	return service, err
}

func TestEchoAuth_ValidToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	token, err := manager.GenerateServiceToken("seed-script")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	service, err := callWithAuth(t, manager, "Bearer "+token)
	if err != nil {
		t.Fatalf("middleware rejected a valid token: %v", err)
	}
	if service != "seed-script" {
		t.Fatalf("expected service seed-script in context, got %q", service)
	}
}

func TestEchoAuth_MissingHeader(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)

	_, err := callWithAuth(t, manager, "")
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestEchoAuth_InvalidToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)

	_, err := callWithAuth(t, manager, "Bearer not-a-token")
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestEchoAuth_WrongScheme(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	token, err := manager.GenerateServiceToken("seed-script")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	_, err = callWithAuth(t, manager, "Basic "+token)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-bearer scheme, got %v", err)
	}
}
