package service

import (
	"time"

	"github.com/rogerio-castellano/product-catalog/internal/models"
	"github.com/rogerio-castellano/product-catalog/internal/repo"
)

// ProductService translates between validated input and persisted records.
type ProductService struct {
	repo repo.ProductRepository
}

func NewProductService(r repo.ProductRepository) *ProductService {
	return &ProductService{repo: r}
}

// Create persists a new product. The input is assumed structurally valid;
// storage-level constraint violations still surface as
// repo.ErrDuplicatedValueUnique and are the final word on uniqueness.
func (s *ProductService) Create(p models.Product) (models.Product, error) {
	p.CreatedAt = time.Now().UTC()
	return s.repo.Create(p)
}

// List returns a page of products.
func (s *ProductService) List(skip, limit int) ([]models.Product, error) {
	return s.repo.GetAll(skip, limit)
}

// GetByID returns a single product, or repo.ErrProductNotFound.
func (s *ProductService) GetByID(id int) (models.Product, error) {
	return s.repo.GetByID(id)
}

// Update persists changes to an existing product.
func (s *ProductService) Update(p models.Product) (models.Product, error) {
	return s.repo.Update(p)
}
