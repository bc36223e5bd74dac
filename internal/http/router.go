package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/product-catalog/internal/http/handlers"
	rl "github.com/rogerio-castellano/product-catalog/internal/http/rate_limiter"
	"github.com/rogerio-castellano/product-catalog/pkg/logger"
)

// Options carries the immutable router configuration, bound once at startup.
type Options struct {
	CORSOrigins []string
	APIKeys     []string
	RateLimit   rl.Config
	Counter     rl.CounterStore
	Log         logger.Logger

	// EnableThrottle turns on the process-local burst limiter. Off in tests.
	EnableThrottle bool
}

// NewRouter assembles the full HTTP surface. Request flow per route:
// throttle → rate limit → content type / API key → handler-level auth and
// validation guards.
func NewRouter(opts Options) http.Handler {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	if opts.Counter == nil {
		opts.Counter = rl.NewInMemoryCounterStore()
	}
	if opts.RateLimit.MaxRequests == 0 {
		opts.RateLimit = rl.Config{MaxRequests: 100, Window: time.Hour}
	}

	r := chi.NewRouter()
	r.Use(RequestLogger(opts.Log))
	r.Use(Recoverer(opts.Log))
	r.Use(CORS(opts.CORSOrigins))
	if opts.EnableThrottle {
		r.Use(Throttle)
	}

	r.Get("/", handlers.RootHandler)
	r.Get("/health", handlers.HealthHandler)

	r.Route("/api/v1", func(api chi.Router) {
		api.Post("/register", handlers.RegisterHandler)
		api.Post("/login", handlers.LoginHandler)

		api.Route("/products", func(products chi.Router) {
			products.With(
				RateLimit(opts.RateLimit, opts.Counter),
				RequireJSON,
			).Post("/", handlers.CreateProductHandler)

			validate := products.With(RequireJSON)
			if len(opts.APIKeys) > 0 {
				validate = validate.With(RequireAPIKey(opts.APIKeys))
			}
			validate.Post("/validate", handlers.ValidateProductHandler)

			products.Get("/", handlers.GetProductsHandler)
			products.Get("/{id}", handlers.GetProductByIDHandler)

			products.With(RequireBusinessHours).Post("/{id}/images", handlers.UploadProductImageHandler)
		})
	})

	return r
}
