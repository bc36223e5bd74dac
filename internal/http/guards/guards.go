package guards

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rogerio-castellano/product-catalog/internal/http/httperr"
	"github.com/rogerio-castellano/product-catalog/internal/models"
	"github.com/rogerio-castellano/product-catalog/internal/repo"
)

var productRepo repo.ProductRepository

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

// PageParams are validated pagination values. Skip is derived from page and
// size and handed straight to the repository.
type PageParams struct {
	Page  int `json:"page"`
	Size  int `json:"size"`
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// Pagination validates page ≥ 1 and 1 ≤ size ≤ 100 and derives the offset.
// Raw skip/limit query parameters are accepted too and take precedence when
// present.
func Pagination(r *http.Request) (PageParams, *httperr.Error) {
	q := r.URL.Query()

	page, herr := intQuery(q.Get("page"), "page", 1)
	if herr != nil {
		return PageParams{}, herr
	}
	size, herr := intQuery(q.Get("size"), "size", 10)
	if herr != nil {
		return PageParams{}, herr
	}

	if page < 1 {
		return PageParams{}, httperr.UnprocessableEntityField("page", "debe ser mayor o igual a 1")
	}
	if size < 1 || size > 100 {
		return PageParams{}, httperr.UnprocessableEntityField("size", "debe estar entre 1 y 100")
	}

	p := PageParams{Page: page, Size: size, Skip: (page - 1) * size, Limit: size}

	if raw := q.Get("skip"); raw != "" {
		skip, herr := intQuery(raw, "skip", 0)
		if herr != nil {
			return PageParams{}, herr
		}
		if skip < 0 {
			return PageParams{}, httperr.UnprocessableEntityField("skip", "debe ser mayor o igual a 0")
		}
		p.Skip = skip
	}
	if raw := q.Get("limit"); raw != "" {
		limit, herr := intQuery(raw, "limit", 100)
		if herr != nil {
			return PageParams{}, herr
		}
		if limit < 1 || limit > 100 {
			return PageParams{}, httperr.UnprocessableEntityField("limit", "debe estar entre 1 y 100")
		}
		p.Limit = limit
	}

	return p, nil
}

func intQuery(raw, name string, def int) (int, *httperr.Error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, httperr.UnprocessableEntityField(name, "debe ser un número entero")
	}
	return v, nil
}

// ProductOwnership loads the product and checks the requester may access it:
// admins always can, otherwise the requester must own it. The loaded product
// is returned so handlers do not hit the database twice.
func ProductOwnership(r *http.Request, productID int) (models.Product, models.User, *httperr.Error) {
	user, herr := ActiveUser(r)
	if herr != nil {
		return models.Product{}, models.User{}, herr
	}

	product, err := productRepo.GetByID(productID)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			return models.Product{}, models.User{}, httperr.NotFound("Producto no encontrado")
		}
		return models.Product{}, models.User{}, httperr.Internal()
	}

	if !user.IsAdmin && product.OwnerID != user.ID {
		return models.Product{}, models.User{}, httperr.Forbidden("No tienes permisos para acceder a este producto")
	}
	return product, user, nil
}

var nowFunc = time.Now

// SetClock overrides the clock used by the business-hours guard. Tests pin
// it; production uses the server's local time.
func SetClock(now func() time.Time) {
	nowFunc = now
}

// BusinessHours allows requests only between 6 AM and 10 PM, server local
// time.
func BusinessHours() *httperr.Error {
	hour := nowFunc().Hour()
	if hour < 6 || hour > 22 {
		return httperr.Forbidden("API disponible solo en horarios de negocio (6 AM - 10 PM)")
	}
	return nil
}

// FileUploadConfig is the immutable configuration of the upload guard; Check
// is the stateless evaluation over it.
type FileUploadConfig struct {
	MaxSizeMB    int64
	AllowedTypes []string
}

// DefaultFileUpload returns the stock limits: 5 MB, common image types.
func DefaultFileUpload() FileUploadConfig {
	return FileUploadConfig{
		MaxSizeMB:    5,
		AllowedTypes: []string{"image/jpeg", "image/png", "image/gif"},
	}
}

// Check validates an upload's size and MIME type.
func (c FileUploadConfig) Check(size int64, contentType string) *httperr.Error {
	if size > c.MaxSizeMB*1024*1024 {
		return httperr.RequestEntityTooLarge(fmt.Sprintf("Archivo muy grande. Máximo %dMB", c.MaxSizeMB))
	}
	for _, t := range c.AllowedTypes {
		if contentType == t {
			return nil
		}
	}
	return httperr.UnsupportedMediaType(
		"Tipo de archivo no permitido. Usar: " + strings.Join(c.AllowedTypes, ", "))
}
