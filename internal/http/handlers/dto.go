package handlers

import (
	"time"

	"github.com/rogerio-castellano/product-catalog/internal/models"
)

type PriceRequest struct {
	Amount   float64 `json:"amount" validate:"gt=0,price_amount"`
	Currency string  `json:"currency" validate:"required,currency_code"`
}

type DimensionsRequest struct {
	Width  float64 `json:"width" validate:"gt=0,lte=500"`
	Height float64 `json:"height" validate:"gt=0,lte=500"`
	Depth  float64 `json:"depth" validate:"gt=0,lte=500"`
}

type ImageRequest struct {
	URL     string `json:"url" validate:"required,url"`
	AltText string `json:"alt_text" validate:"required,min=1,max=100"`
}

// ProductRequest is the creation payload. Tags are lowercase-normalized
// before validation, so the unique rule catches case-only duplicates too.
type ProductRequest struct {
	Name        string             `json:"name" validate:"required,min=3,max=100,not_generic_name"`
	SKU         string             `json:"sku" validate:"required,sku"`
	Description string             `json:"description" validate:"omitempty,max=500"`
	Price       PriceRequest       `json:"price"`
	Tags        []string           `json:"tags" validate:"max=10,unique,dive,required,max=30"`
	Dimensions  *DimensionsRequest `json:"dimensions" validate:"omitempty"`
	Images      []ImageRequest     `json:"images" validate:"omitempty,dive"`
	InStock     *bool              `json:"in_stock"`
	CategoryID  *int               `json:"category_id" validate:"omitempty,gt=0"`
}

// toModel maps a validated request onto the domain entity.
func (req ProductRequest) toModel(ownerID int) models.Product {
	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}

	p := models.Product{
		Name:        req.Name,
		SKU:         req.SKU,
		Description: req.Description,
		Price:       models.Price{Amount: req.Price.Amount, Currency: req.Price.Currency},
		Tags:        req.Tags,
		InStock:     inStock,
		CategoryID:  req.CategoryID,
		OwnerID:     ownerID,
	}
	if req.Dimensions != nil {
		p.Dimensions = &models.Dimensions{
			Width:  req.Dimensions.Width,
			Height: req.Dimensions.Height,
			Depth:  req.Dimensions.Depth,
		}
	}
	for _, img := range req.Images {
		p.Images = append(p.Images, models.Image{URL: img.URL, AltText: img.AltText})
	}
	return p
}

type PriceResponse struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type ProductResponse struct {
	Id          int                `json:"id"`
	Name        string             `json:"name"`
	SKU         string             `json:"sku"`
	Description string             `json:"description,omitempty"`
	Price       PriceResponse      `json:"price"`
	Tags        []string           `json:"tags"`
	Dimensions  *models.Dimensions `json:"dimensions,omitempty"`
	Images      []models.Image     `json:"images"`
	InStock     bool               `json:"in_stock"`
	CategoryID  *int               `json:"category_id,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   *time.Time         `json:"updated_at,omitempty"`
}

func toProductResponse(p models.Product) ProductResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	images := p.Images
	if images == nil {
		images = []models.Image{}
	}
	return ProductResponse{
		Id:          p.ID,
		Name:        p.Name,
		SKU:         p.SKU,
		Description: p.Description,
		Price:       PriceResponse{Amount: p.Price.Amount, Currency: p.Price.Currency},
		Tags:        tags,
		Dimensions:  p.Dimensions,
		Images:      images,
		InStock:     p.InStock,
		CategoryID:  p.CategoryID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ValidationResponse is the body of the validate-without-creating endpoint.
type ValidationResponse struct {
	Valid   bool              `json:"valid"`
	Errors  map[string]string `json:"errors,omitempty"`
	Message string            `json:"message"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string `json:"token"`
}

type RegisterResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type ImageUploadResult struct {
	Message string       `json:"message"`
	Image   models.Image `json:"image"`
}
