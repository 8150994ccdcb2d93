package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name       string          `json:"name"`
	Code       string          `json:"code"`
	Price      decimal.Decimal `json:"price"`
	CategoryID *int64          `json:"category_id,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id (campos opcionales).
type UpdateProductRequest struct {
	Name       *string          `json:"name,omitempty"`
	Code       *string          `json:"code,omitempty"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	CategoryID *int64           `json:"category_id,omitempty"`
	Active     *bool            `json:"active,omitempty"`
}

// ProductResponse representación de producto en respuestas.
type ProductResponse struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Code       string          `json:"code"`
	Price      decimal.Decimal `json:"price"`
	CategoryID *int64          `json:"category_id,omitempty"`
	Active     bool            `json:"active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
