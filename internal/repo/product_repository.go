package repo

import (
	"errors"

	"github.com/rogerio-castellano/product-catalog/internal/models"
)

// ErrProductNotFound is returned when a product is not found in the repository.
var ErrProductNotFound = errors.New("product not found")

// ErrDuplicatedValueUnique is returned when the storage layer rejects an
// insert or update because of a unique constraint (name or SKU). The
// constraint is the final authority on uniqueness; the pre-insert checks in
// the validation service only exist to produce friendlier errors.
var ErrDuplicatedValueUnique = errors.New("duplicated value for unique column")

// ProductRepository defines the interface for product data operations.
// Products are never hard-deleted in the current scope.
type ProductRepository interface {
	Create(product models.Product) (models.Product, error)
	GetAll(skip, limit int) ([]models.Product, error)
	GetByID(id int) (models.Product, error)
	Update(product models.Product) (models.Product, error)
	ExistsBySKU(sku string) (bool, error)
	ExistsByName(name string) (bool, error)
}
