package service

import (
	"github.com/rogerio-castellano/product-catalog/internal/repo"
)

// ValidationService runs the business validations that need database access.
// It returns a field→message map instead of failing on the first violation,
// so the validate-without-creating endpoint can report everything at once.
//
// These checks are a check-then-act pre-flight: a concurrent insert can still
// slip between check and create. That race is accepted; the unique
// constraints in the database remain the authority and map to a 409.
type ValidationService struct {
	repo repo.ProductRepository
}

func NewValidationService(r repo.ProductRepository) *ValidationService {
	return &ValidationService{repo: r}
}

// ValidateBusinessConstraints checks SKU and name uniqueness against
// existing records.
func (s *ValidationService) ValidateBusinessConstraints(name, sku string) (map[string]string, error) {
	errs := map[string]string{}

	skuTaken, err := s.repo.ExistsBySKU(sku)
	if err != nil {
		return nil, err
	}
	if skuTaken {
		errs["sku"] = "SKU ya existe en el sistema"
	}

	nameTaken, err := s.repo.ExistsByName(name)
	if err != nil {
		return nil, err
	}
	if nameTaken {
		errs["name"] = "Ya existe un producto con este nombre"
	}

	return errs, nil
}
