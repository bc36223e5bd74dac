package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/product-catalog/internal/http/guards"
	"github.com/rogerio-castellano/product-catalog/internal/http/httperr"
	"github.com/rogerio-castellano/product-catalog/internal/models"
	"github.com/rogerio-castellano/product-catalog/internal/repo"
	"github.com/rogerio-castellano/product-catalog/pkg/logger"
)

var fileUploadConfig = guards.DefaultFileUpload()

// SetFileUploadConfig overrides the upload limits bound at startup.
func SetFileUploadConfig(cfg guards.FileUploadConfig) {
	fileUploadConfig = cfg
}

// UploadProductImageHandler godoc
// @Summary Attach an image to a product
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param file formData file true "Image file"
// @Param alt_text formData string false "Alternative text"
// @Success 201 {object} ImageUploadResult
// @Failure 413 {object} map[string]any
// @Failure 415 {object} map[string]any
// @Router /api/v1/products/{id}/images [post]
func UploadProductImageHandler(w http.ResponseWriter, r *http.Request) {
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

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, httperr.BadRequest("Archivo requerido"))
		return
	}
	defer file.Close()

	if herr := fileUploadConfig.Check(header.Size, header.Header.Get("Content-Type")); herr != nil {
		writeError(w, herr)
		return
	}

	altText := r.FormValue("alt_text")
	if altText == "" {
		altText = header.Filename
	}

	image := models.Image{
		URL:     fmt.Sprintf("/media/products/%d/%s", product.ID, path.Base(header.Filename)),
		AltText: altText,
	}
	product.Images = append(product.Images, image)

	if _, err := productSvc.Update(product); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			writeError(w, httperr.NotFound("Producto no encontrado"))
			return
		}
		log.Error("could not attach image", logger.Err(err), logger.Int("product_id", product.ID))
		writeError(w, httperr.Internal())
		return
	}

	writeJSON(w, http.StatusCreated, ImageUploadResult{
		Message: "Imagen agregada",
		Image:   image,
	})
}
