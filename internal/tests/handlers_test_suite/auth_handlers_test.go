package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"testing"

	api "github.com/rogerio-castellano/product-catalog/internal/http"
	handler "github.com/rogerio-castellano/product-catalog/internal/http/handlers"
)

func TestRegisterHandler(t *testing.T) {
	r := api.NewRouter(api.Options{})

	tests := []struct {
		name       string
		username   string
		password   string
		expectCode int
	}{
		{"valid registration", "carlos", "secret123", http.StatusCreated},
		{"duplicate username", "alice", "secret123", http.StatusConflict},
		{"short username", "ab", "secret123", http.StatusBadRequest},
		{"short password", "daniela", "123", http.StatusBadRequest},
		{"missing credentials", "", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := handler.CredentialsRequest{Username: tt.username, Password: tt.password}
			w := postJSON(r, "/api/v1/register", "", payload)
			if w.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d (%s)", tt.expectCode, w.Code, w.Body.String())
			}
			if tt.expectCode == http.StatusCreated {
				var resp handler.RegisterResult
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("error decoding response: %v", err)
				}
				if resp.Token == "" {
					t.Errorf("expected a token in the response")
				}
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	r := api.NewRouter(api.Options{})

	tests := []struct {
		name       string
		username   string
		password   string
		expectCode int
	}{
		{"valid credentials", "alice", "secret123", http.StatusOK},
		{"wrong password", "alice", "wrongpass", http.StatusUnauthorized},
		{"unknown user", "nadie", "secret123", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := handler.CredentialsRequest{Username: tt.username, Password: tt.password}
			w := postJSON(r, "/api/v1/login", "", payload)
			if w.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d (%s)", tt.expectCode, w.Code, w.Body.String())
			}
		})
	}
}

func TestAuthGuard_RejectsBadTokens(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter(api.Options{})

	tests := []struct {
		name   string
		header string
	}{
		{"malformed token", "Bearer not-a-jwt"},
		{"wrong scheme", "Basic " + aliceToken},
		{"empty header", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(validProduct("Producto Token", "TOK-12345"))
			req := newRequestWithBody(http.MethodPost, "/api/v1/products/", body)
			req.Header.Set("Content-Type", "application/json")
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := serve(r, req)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d (%s)", w.Code, w.Body.String())
			}

			var resp errorEnvelope
			json.NewDecoder(w.Body).Decode(&resp)
			if resp.Message != "No se pudieron validar las credenciales" {
				t.Errorf("unexpected message %q", resp.Message)
			}
		})
	}
}
