package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"

	"volunteer-backend/internal/engine"
	"volunteer-backend/internal/store"
)

func loginApp(t *testing.T, s *store.Store) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: engine.ErrorHandler})
	h := NewHandler(NewStoreAuthenticator(s, PlainComparer{}), "test-secret")
	h.RegisterRoutes(app.Group("/api"))
	return app
}

func postLogin(t *testing.T, app *fiber.App, body map[string]any) (*http.Response, map[string]any) {
	t.Helper()
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", "/api/auth/login", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, out
}

func TestLogin_Officer(t *testing.T) {
	s := testStore(t)
	app := loginApp(t, s)

	resp, body := postLogin(t, app, map[string]any{
		"id": store.WellKnownOfficerID, "password": "NSS@OFFICER2025",
	})
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d (%v)", resp.StatusCode, body)
	}
	if body["role"] != "officer" {
		t.Errorf("expected officer role, got %v", body["role"])
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("expected a token in the response")
	}
	claims, err := ParseToken(token, "test-secret")
	if err != nil {
		t.Fatalf("issued token should verify: %v", err)
	}
	if claims.Role != "officer" {
		t.Errorf("token role mismatch: %s", claims.Role)
	}
	user, ok := body["user"].(map[string]any)
	if !ok || user["officerId"] != store.WellKnownOfficerID {
		t.Errorf("user record should carry the officer row: %v", body["user"])
	}
	if _, leaked := user["password"]; leaked {
		t.Error("password must not appear in the login response")
	}
}

func TestLogin_Failures(t *testing.T) {
	s := testStore(t)
	app := loginApp(t, s)

	resp, body := postLogin(t, app, map[string]any{"id": "NOBODY", "password": "x"})
	if resp.StatusCode != 401 || body["code"] != "INVALID_CREDENTIALS" {
		t.Fatalf("unknown account should 401 INVALID_CREDENTIALS, got %d %v", resp.StatusCode, body)
	}

	resp, body = postLogin(t, app, map[string]any{"id": "", "password": ""})
	if resp.StatusCode != 400 || body["code"] != "MISSING_CREDENTIALS" {
		t.Fatalf("blank credentials should 400 MISSING_CREDENTIALS, got %d %v", resp.StatusCode, body)
	}
}
