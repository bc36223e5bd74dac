package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	api "github.com/rogerio-castellano/product-catalog/internal/http"
	rl "github.com/rogerio-castellano/product-catalog/internal/http/rate_limiter"
)

func TestRateLimit_BlocksAfterMax(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter(api.Options{
		RateLimit: rl.Config{MaxRequests: 2, Window: time.Minute},
		Counter:   rl.NewInMemoryCounterStore(),
	})

	for i := 0; i < 2; i++ {
		w := postProduct(r, aliceToken, validProduct(fmt.Sprintf("Producto Limite %d", i), fmt.Sprintf("LIM-%05d", i)))
		if w.Code != http.StatusCreated {
			t.Fatalf("request %d: expected 201, got %d (%s)", i, w.Code, w.Body.String())
		}
	}

	w := postProduct(r, aliceToken, validProduct("Producto Limite 3", "LIM-00003"))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d (%s)", w.Code, w.Body.String())
	}

	var resp errorEnvelope
	json.NewDecoder(w.Body).Decode(&resp)
	if !strings.HasPrefix(resp.Message, "Rate limit excedido") {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestRateLimit_DistinguishesClients(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter(api.Options{
		RateLimit: rl.Config{MaxRequests: 1, Window: time.Minute},
		Counter:   rl.NewInMemoryCounterStore(),
	})

	w := postProduct(r, aliceToken, validProduct("Producto Cliente A", "CLI-00001"))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	// second call from the same address is over the limit
	w = postProduct(r, aliceToken, validProduct("Producto Cliente B", "CLI-00002"))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}

	// a different client address gets a fresh window
	body, _ := json.Marshal(validProduct("Producto Cliente C", "CLI-00003"))
	req := newRequestWithBody(http.MethodPost, "/api/v1/products/", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+aliceToken)
	req.Header.Set("X-Real-IP", "203.0.113.9")

	w = serve(r, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for second client, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestRequireAPIKey_OnValidate(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter(api.Options{APIKeys: []string{"clave-principal", "clave-secundaria"}})

	tests := []struct {
		name       string
		key        string
		expectCode int
		expectMsg  string
	}{
		{"missing key", "", http.StatusUnauthorized, "API Key requerida"},
		{"wrong key", "clave-falsa", http.StatusUnauthorized, "API Key inválida"},
		{"valid key", "clave-principal", http.StatusOK, ""},
		{"second valid key", "clave-secundaria", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(validProduct("Producto Clave", "KEY-12345"))
			req := newRequestWithBody(http.MethodPost, "/api/v1/products/validate", body)
			req.Header.Set("Content-Type", "application/json")
			if tt.key != "" {
				req.Header.Set("X-API-Key", tt.key)
			}

			w := serve(r, req)
			if w.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d (%s)", tt.expectCode, w.Code, w.Body.String())
			}
			if tt.expectMsg != "" {
				var resp errorEnvelope
				json.NewDecoder(w.Body).Decode(&resp)
				if resp.Message != tt.expectMsg {
					t.Errorf("expected message %q, got %q", tt.expectMsg, resp.Message)
				}
			}
		})
	}
}

func TestCORS_Preflight(t *testing.T) {
	r := api.NewRouter(api.Options{CORSOrigins: []string{"https://app.example.com"}})

	req := newRequestWithBody(http.MethodOptions, "/api/v1/products/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	w := serve(r, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("expected allow-origin header, got %q", got)
	}
}
