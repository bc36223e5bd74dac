package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/product-catalog/internal/repo"
)

func TestValidationService_NoConflicts(t *testing.T) {
	svc := NewValidationService(repo.NewInMemoryProductRepository())

	errs, err := svc.ValidateBusinessConstraints("Producto Nuevo", "NUE-10001")
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestValidationService_ReportsAllConflicts(t *testing.T) {
	productRepo := repo.NewInMemoryProductRepository()
	_, err := NewProductService(productRepo).Create(newProduct("Producto Existente", "EXI-10001"))
	require.NoError(t, err)

	svc := NewValidationService(productRepo)

	tests := []struct {
		name     string
		prodName string
		sku      string
		expected map[string]string
	}{
		{
			name:     "sku taken",
			prodName: "Otro Producto",
			sku:      "EXI-10001",
			expected: map[string]string{"sku": "SKU ya existe en el sistema"},
		},
		{
			name:     "name taken",
			prodName: "Producto Existente",
			sku:      "EXI-10002",
			expected: map[string]string{"name": "Ya existe un producto con este nombre"},
		},
		{
			name:     "both taken",
			prodName: "Producto Existente",
			sku:      "EXI-10001",
			expected: map[string]string{
				"sku":  "SKU ya existe en el sistema",
				"name": "Ya existe un producto con este nombre",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, err := svc.ValidateBusinessConstraints(tt.prodName, tt.sku)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, errs)
		})
	}
}
