package handlers

import (
	"github.com/rogerio-castellano/product-catalog/internal/redissvc"
	"github.com/rogerio-castellano/product-catalog/internal/repo"
	"github.com/rogerio-castellano/product-catalog/internal/service"
	"github.com/rogerio-castellano/product-catalog/pkg/logger"
)

var (
	productRepo    repo.ProductRepository
	userRepo       repo.UserRepository
	productSvc     *service.ProductService
	validationSvc  *service.ValidationService
	cache          *redissvc.RedisService
	log            = logger.Nop()
	projectName    = "Product API"
	projectVersion = "1.0.0"
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
	productSvc = service.NewProductService(r)
	validationSvc = service.NewValidationService(r)
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

// SetCache installs the redis-backed response cache. Leaving it unset (as
// the test suites do) disables caching entirely.
func SetCache(c *redissvc.RedisService) {
	cache = c
}

func SetLogger(l logger.Logger) {
	log = l
}

func SetProjectInfo(name, version string) {
	projectName = name
	projectVersion = version
}
