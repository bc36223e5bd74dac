package repo

import (
	"time"

	"github.com/rogerio-castellano/product-catalog/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of
// ProductRepository used by the handler test suites. It enforces the same
// name/SKU unique constraints as the database schema.
type InMemoryProductRepository struct {
	products []models.Product
	nextID   int
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
		nextID:   1,
	}
}

// Create adds a new product to the repository.
func (r *InMemoryProductRepository) Create(product models.Product) (models.Product, error) {
	for _, p := range r.products {
		if p.Name == product.Name || p.SKU == product.SKU {
			return models.Product{}, ErrDuplicatedValueUnique
		}
	}
	product.ID = r.nextID
	r.nextID++
	r.products = append(r.products, product)
	return product, nil
}

// GetAll retrieves products with the given offset and limit.
func (r *InMemoryProductRepository) GetAll(skip, limit int) ([]models.Product, error) {
	if skip >= len(r.products) {
		return []models.Product{}, nil
	}
	end := clamp(skip+limit, skip, len(r.products))
	return r.products[skip:end], nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(id int) (models.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Update modifies an existing product in the repository.
func (r *InMemoryProductRepository) Update(product models.Product) (models.Product, error) {
	for _, p := range r.products {
		if p.ID != product.ID && (p.Name == product.Name || p.SKU == product.SKU) {
			return models.Product{}, ErrDuplicatedValueUnique
		}
	}
	for i, p := range r.products {
		if p.ID == product.ID {
			now := time.Now().UTC()
			product.UpdatedAt = &now
			r.products[i] = product
			return product, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) ExistsBySKU(sku string) (bool, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryProductRepository) ExistsByName(name string) (bool, error) {
	for _, p := range r.products {
		if p.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryProductRepository) Clear() {
	r.products = []models.Product{}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
