package models

import "time"

// Price is a monetary amount in one of the supported ISO currencies.
type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Dimensions are the physical measures of a product, in centimeters.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

// Volume returns width*height*depth in cubic centimeters.
func (d Dimensions) Volume() float64 {
	return d.Width * d.Height * d.Depth
}

// Image is a product illustration.
type Image struct {
	URL     string `json:"url"`
	AltText string `json:"alt_text"`
}

// Product represents a catalog entity. Name and SKU are globally unique;
// the database enforces both with unique constraints.
type Product struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	SKU         string      `json:"sku"`
	Description string      `json:"description,omitempty"`
	Price       Price       `json:"price"`
	Tags        []string    `json:"tags"`
	Dimensions  *Dimensions `json:"dimensions,omitempty"`
	Images      []Image     `json:"images"`
	InStock     bool        `json:"in_stock"`
	CategoryID  *int        `json:"category_id,omitempty"`
	OwnerID     int         `json:"owner_id,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   *time.Time  `json:"updated_at,omitempty"`
}
