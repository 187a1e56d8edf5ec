package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Presentation string          `json:"presentation,omitempty"`
	Laboratory   string          `json:"laboratory,omitempty"`
	Price        decimal.Decimal `json:"price"`
	MinStock     int             `json:"min_stock"`
}

// UpdateProductRequest body para PUT /api/products/:id (parcial).
type UpdateProductRequest struct {
	Name         *string          `json:"name,omitempty"`
	Presentation *string          `json:"presentation,omitempty"`
	Laboratory   *string          `json:"laboratory,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	MinStock     *int             `json:"min_stock,omitempty"`
}

// ProductResponse producto en respuestas, con los campos denormalizados
// que mantiene el agregador.
type ProductResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Presentation  string          `json:"presentation,omitempty"`
	Laboratory    string          `json:"laboratory,omitempty"`
	Price         decimal.Decimal `json:"price"`
	MinStock      int             `json:"min_stock"`
	Stock         int             `json:"stock"`
	State         string          `json:"state"`
	NearestExpiry *time.Time      `json:"nearest_expiry,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
