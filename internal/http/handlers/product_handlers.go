package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/product-catalog/internal/http/guards"
	"github.com/rogerio-castellano/product-catalog/internal/http/httperr"
	"github.com/rogerio-castellano/product-catalog/internal/redissvc"
	"github.com/rogerio-castellano/product-catalog/internal/repo"
	"github.com/rogerio-castellano/product-catalog/pkg/logger"
)

const listCacheTTL = 30 * time.Second

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product to the catalog after structural and business validation
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to create"
// @Success 201 {object} ProductResponse
// @Failure 422 {object} map[string]any
// @Failure 409 {object} map[string]any
// @Router /api/v1/products/ [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	user, herr := guards.ActiveUser(r)
	if herr != nil {
		writeError(w, herr)
		return
	}

	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, httperr.BadRequest("Cuerpo de la solicitud inválido"))
		return
	}

	if fieldErrors := validateProduct(&req); len(fieldErrors) > 0 {
		writeError(w, httperr.Unprocessable("Error de validación en los datos enviados", fieldErrors))
		return
	}

	businessErrors, err := validationSvc.ValidateBusinessConstraints(req.Name, req.SKU)
	if err != nil {
		log.Error("business validation failed", logger.Err(err))
		writeError(w, httperr.Internal())
		return
	}
	if len(businessErrors) > 0 {
		writeError(w, httperr.Unprocessable("Errores de validación de negocio", businessErrors))
		return
	}

	created, err := productSvc.Create(req.toModel(user.ID))
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			conflict := httperr.Conflict("Error de integridad de datos")
			conflict.Detail = "Los datos enviados conflictan con restricciones existentes"
			writeError(w, conflict)
			return
		}
		log.Error("could not create product", logger.Err(err))
		writeError(w, httperr.Internal())
		return
	}

	log.Info("product created", logger.String("sku", created.SKU), logger.Int("id", created.ID))
	writeJSON(w, http.StatusCreated, toProductResponse(created))
}

// ValidateProductHandler godoc
// @Summary Validate product data without creating it
// @Tags products
// @Accept json
// @Produce json
// @Param product body ProductRequest true "Product to validate"
// @Success 200 {object} ValidationResponse
// @Failure 422 {object} map[string]any
// @Router /api/v1/products/validate [post]
func ValidateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, httperr.BadRequest("Cuerpo de la solicitud inválido"))
		return
	}

	if fieldErrors := validateProduct(&req); len(fieldErrors) > 0 {
		writeError(w, httperr.Unprocessable("Error de validación en los datos enviados", fieldErrors))
		return
	}

	businessErrors, err := validationSvc.ValidateBusinessConstraints(req.Name, req.SKU)
	if err != nil {
		log.Error("business validation failed", logger.Err(err))
		writeError(w, httperr.Internal())
		return
	}

	resp := ValidationResponse{Valid: len(businessErrors) == 0, Message: "Datos válidos"}
	if len(businessErrors) > 0 {
		resp.Errors = businessErrors
		resp.Message = "Se encontraron errores"
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetProductsHandler godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Page size (1-100)"
// @Param page query int false "Page number"
// @Param size query int false "Elements per page (1-100)"
// @Success 200 {array} ProductResponse
// @Router /api/v1/products/ [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	params, herr := guards.Pagination(r)
	if herr != nil {
		writeError(w, herr)
		return
	}

	cacheKey := redissvc.CacheKey("products:list", 0, map[string]string{
		"skip":  strconv.Itoa(params.Skip),
		"limit": strconv.Itoa(params.Limit),
	})
	if cache != nil {
		if body, hit, err := cache.CacheGet(r.Context(), cacheKey); err == nil && hit {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			w.Write([]byte(body))
			return
		}
	}

	products, err := productSvc.List(params.Skip, params.Limit)
	if err != nil {
		log.Error("could not fetch products", logger.Err(err))
		writeError(w, httperr.Internal())
		return
	}

	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = toProductResponse(p)
	}

	if cache != nil {
		if body, err := json.Marshal(response); err == nil {
			if err := cache.CacheSet(r.Context(), cacheKey, string(body), listCacheTTL); err != nil {
				log.Warn("could not cache product list", logger.Err(err))
			}
		}
	}
	writeJSON(w, http.StatusOK, response)
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 404 {object} map[string]any
// @Failure 403 {object} map[string]any
// @Router /api/v1/products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, httperr.BadRequest("ID de producto inválido"))
		return
	}

	product, _, herr := guards.ProductOwnership(r, id)
	if herr != nil {
		writeError(w, herr)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// HealthHandler godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// RootHandler returns the welcome message.
func RootHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Bienvenido a " + projectName,
		"version": projectVersion,
	})
}
