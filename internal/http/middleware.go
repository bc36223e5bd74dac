package http

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/rogerio-castellano/product-catalog/internal/http/guards"
	"github.com/rogerio-castellano/product-catalog/internal/http/httperr"
	rl "github.com/rogerio-castellano/product-catalog/internal/http/rate_limiter"
	"github.com/rogerio-castellano/product-catalog/pkg/logger"
)

type contextKey string

const requestIDKey = contextKey("request_id")

// GetRequestID returns the request id assigned by RequestLogger.
func GetRequestID(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// RequestLogger assigns a request id (honoring X-Request-ID when the client
// sends one) and logs method, path, status and duration.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}

			ctx := context.WithValue(r.Context(), requestIDKey, requestID)
			w.Header().Set("X-Request-ID", requestID)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rec, r.WithContext(ctx))

			log.Info("request",
				logger.String("request_id", requestID),
				logger.String("method", r.Method),
				logger.String("path", r.URL.Path),
				logger.String("user_agent", r.Header.Get("User-Agent")),
				logger.Int("status", rec.status),
				logger.Duration("duration", time.Since(start)),
			)
		})
	}
}

// Recoverer converts panics into a logged generic 500; nothing internal
// reaches the client.
func Recoverer(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("panic recovered",
						logger.String("request_id", GetRequestID(r)),
						logger.String("path", r.URL.Path),
						logger.String("panic", toString(rec)),
					)
					httperr.Write(w, httperr.Internal())
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func toString(v any) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	if s, ok := v.(string); ok {
		return s
	}
	return "unknown panic"
}

// CORS answers preflight requests and sets the allow headers for configured
// origins.
func CORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); allowed[origin] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-API-Key, X-Request-ID")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireJSON rejects request bodies that do not declare application/json.
func RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			httperr.Write(w, httperr.UnsupportedMediaType("Content-Type debe ser application/json"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAPIKey checks X-API-Key against the configured allow-list.
func RequireAPIKey(validKeys []string) func(http.Handler) http.Handler {
	keys := make(map[string]bool, len(validKeys))
	for _, k := range validKeys {
		keys[k] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get("X-API-Key")
			if apiKey == "" {
				httperr.Write(w, httperr.Unauthorized("API Key requerida"))
				return
			}
			if !keys[apiKey] {
				httperr.Write(w, httperr.Unauthorized("API Key inválida"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireBusinessHours rejects requests outside the 6 AM - 10 PM window.
func RequireBusinessHours(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if herr := guards.BusinessHours(); herr != nil {
			httperr.Write(w, herr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimit applies the fixed-window counter keyed by the client IP from
// X-Real-IP.
func RateLimit(cfg rl.Config, store rl.CounterStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.Header.Get("X-Real-IP")
			if ip == "" {
				ip = r.RemoteAddr
			}
			if herr := rl.Allow(r.Context(), store, cfg, ip); herr != nil {
				httperr.Write(w, herr)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Throttle is the process-local burst guard in front of the redis window.
func Throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.Header.Get("X-Real-IP")
		if ip == "" {
			ip = r.RemoteAddr
		}
		if !rl.GetVisitor(ip).Allow() {
			httperr.Write(w, httperr.TooManyRequests("Demasiadas solicitudes"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
