package rate_limiter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/rogerio-castellano/product-catalog/internal/http/httperr"
)

// CounterStore is the keyed-counter contract the fixed-window limiter needs
// from the backing cache store. The redis service implements it in
// production; tests use the in-memory store in this package.
type CounterStore interface {
	Get(ctx context.Context, key string) (int64, bool, error)
	SetEx(ctx context.Context, key string, value int64, ttl time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
}

// Config is the immutable per-route configuration of the fixed-window
// limiter, bound at dependency-construction time.
type Config struct {
	MaxRequests int
	Window      time.Duration
}

// Allow applies fixed-window counting for one client: the first request in a
// window creates the counter with TTL=window, later requests increment it
// until the configured maximum. Get and Incr are only as atomic as the
// backing store makes them; exactness here is not safety-critical.
func Allow(ctx context.Context, store CounterStore, cfg Config, clientIP string) *httperr.Error {
	key := "rate_limit:" + clientIP

	current, found, err := store.Get(ctx, key)
	if err != nil {
		return httperr.Internal()
	}

	if !found {
		if err := store.SetEx(ctx, key, 1, cfg.Window); err != nil {
			return httperr.Internal()
		}
		return nil
	}

	if current >= int64(cfg.MaxRequests) {
		return httperr.TooManyRequests(fmt.Sprintf(
			"Rate limit excedido. Máximo %d requests por %d minutos",
			cfg.MaxRequests, int(cfg.Window.Minutes())))
	}

	if _, err := store.Incr(ctx, key); err != nil {
		return httperr.Internal()
	}
	return nil
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitors = make(map[string]*clientLimiter)
	mu       sync.Mutex
)

// GetVisitor returns the in-process burst limiter for an IP. This is a
// coarse process-local guard in front of the redis-backed window; it does
// not replace it.
func GetVisitor(ip string) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	v, exists := visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(50, 100)
		visitors[ip] = &clientLimiter{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func StartVisitorCleanupLoop() {
	for {
		time.Sleep(time.Minute)
		mu.Lock()
		for ip, v := range visitors {
			if time.Since(v.lastSeen) > 5*time.Minute {
				delete(visitors, ip)
			}
		}
		mu.Unlock()
	}
}

func CleanupAllVisitors() {
	mu.Lock()
	defer mu.Unlock()
	visitors = make(map[string]*clientLimiter)
}
