package types

import "time"

// Product is a catalogue item. Deletion is a soft delete: IsActive flips to
// false and the row stays.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" example:"Sourdough Loaf"`
	Description string    `json:"description"`
	Price       float64   `json:"price" example:"4.50"`
	Stock       int       `json:"stock" example:"12"`
	IsActive    bool      `json:"is_active"`
	CreatedBy   *int64    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateProductParams is the payload for creating a product.
type CreateProductParams struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

// UpdateProductParams is a partial update; nil fields keep their current
// value.
type UpdateProductParams struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}
