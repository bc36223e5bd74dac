package main

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rogerio-castellano/product-catalog/internal/auth"
	"github.com/rogerio-castellano/product-catalog/internal/config"
	"github.com/rogerio-castellano/product-catalog/internal/db"
	router "github.com/rogerio-castellano/product-catalog/internal/http"
	"github.com/rogerio-castellano/product-catalog/internal/http/guards"
	"github.com/rogerio-castellano/product-catalog/internal/http/handlers"
	rl "github.com/rogerio-castellano/product-catalog/internal/http/rate_limiter"
	"github.com/rogerio-castellano/product-catalog/internal/redissvc"
	"github.com/rogerio-castellano/product-catalog/internal/repo"
	"github.com/rogerio-castellano/product-catalog/pkg/logger"
)

// @title Product Catalog API
// @version 1.0
// @description REST API for managing a product catalog with rigorous validation.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Environment, cfg.LogLevel, cfg.ProjectName)
	defer log.Sync()

	auth.SetSecret(cfg.SecretKey)

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr(),
		Password:     cfg.RedisPassword,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	defer rdb.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		cancel()
		log.Error("could not connect to redis", logger.Err(err))
		panic(err)
	}
	cancel()
	cache := redissvc.NewRedisService(rdb)

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Error("could not connect to database", logger.Err(err))
		panic(err)
	}
	defer database.Close()

	productRepo := repo.NewPostgresProductRepository(database)
	userRepo := repo.NewPostgresUserRepository(database)

	handlers.SetProductRepo(productRepo)
	handlers.SetUserRepo(userRepo)
	handlers.SetCache(cache)
	handlers.SetLogger(log)
	handlers.SetProjectInfo(cfg.ProjectName, cfg.Version)
	guards.SetProductRepo(productRepo)
	guards.SetUserRepo(userRepo)

	go rl.StartVisitorCleanupLoop()

	r := router.NewRouter(router.Options{
		CORSOrigins: cfg.CORSOrigins,
		APIKeys:     cfg.ValidAPIKeys,
		RateLimit: rl.Config{
			MaxRequests: cfg.RateLimitMaxRequests,
			Window:      cfg.RateLimitWindow(),
		},
		Counter:        cache,
		Log:            log,
		EnableThrottle: true,
	})

	log.Info("server running", logger.String("port", cfg.Port))
	if err := http.ListenAndServe(cfg.Port, r); err != nil {
		log.Error("server stopped", logger.Err(err))
		panic(err)
	}
}
