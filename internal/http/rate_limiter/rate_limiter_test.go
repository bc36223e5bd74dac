package rate_limiter

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestAllow_FixedWindow(t *testing.T) {
	store := NewInMemoryCounterStore()
	cfg := Config{MaxRequests: 3, Window: time.Minute}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if herr := Allow(ctx, store, cfg, "10.0.0.1"); herr != nil {
			t.Fatalf("request %d: expected allow, got %v", i, herr)
		}
	}

	herr := Allow(ctx, store, cfg, "10.0.0.1")
	if herr == nil {
		t.Fatal("expected the fourth request to be rejected")
	}
	if herr.Status != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", herr.Status)
	}
	if herr.Message != "Rate limit excedido. Máximo 3 requests por 1 minutos" {
		t.Errorf("unexpected message %q", herr.Message)
	}
}

func TestAllow_PerClientCounters(t *testing.T) {
	store := NewInMemoryCounterStore()
	cfg := Config{MaxRequests: 1, Window: time.Minute}
	ctx := context.Background()

	if herr := Allow(ctx, store, cfg, "10.0.0.1"); herr != nil {
		t.Fatalf("expected allow, got %v", herr)
	}
	if herr := Allow(ctx, store, cfg, "10.0.0.1"); herr == nil {
		t.Fatal("expected second request from the same client to be rejected")
	}
	if herr := Allow(ctx, store, cfg, "10.0.0.2"); herr != nil {
		t.Fatalf("expected different client to have its own window, got %v", herr)
	}
}

func TestAllow_WindowExpires(t *testing.T) {
	store := NewInMemoryCounterStore()
	cfg := Config{MaxRequests: 1, Window: time.Minute}
	ctx := context.Background()

	current := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return current })

	if herr := Allow(ctx, store, cfg, "10.0.0.1"); herr != nil {
		t.Fatalf("expected allow, got %v", herr)
	}
	if herr := Allow(ctx, store, cfg, "10.0.0.1"); herr == nil {
		t.Fatal("expected rejection inside the window")
	}

	current = current.Add(2 * time.Minute)

	if herr := Allow(ctx, store, cfg, "10.0.0.1"); herr != nil {
		t.Fatalf("expected a fresh window after expiry, got %v", herr)
	}
}

func TestGetVisitor_ReusesLimiterPerIP(t *testing.T) {
	t.Cleanup(CleanupAllVisitors)

	first := GetVisitor("203.0.113.1")
	second := GetVisitor("203.0.113.1")
	if first != second {
		t.Error("expected the same limiter instance for repeated calls")
	}

	other := GetVisitor("203.0.113.2")
	if first == other {
		t.Error("expected distinct limiters per IP")
	}
}
