package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseItemRequest línea recibida; genera un lote nuevo.
type CreatePurchaseItemRequest struct {
	ProductID  string          `json:"product_id"`
	LocationID *string         `json:"location_id,omitempty"`
	LotCode    string          `json:"lot_code,omitempty"`
	Quantity   int             `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	ExpiresAt  *time.Time      `json:"expires_at,omitempty"`
}

// CreatePurchaseRequest body para POST /api/purchases (ingreso de mercadería).
type CreatePurchaseRequest struct {
	SupplierID    string                      `json:"supplier_id"`
	InvoiceNumber string                      `json:"invoice_number,omitempty"`
	Notes         string                      `json:"notes,omitempty"`
	Items         []CreatePurchaseItemRequest `json:"items"`
}

// PurchaseItemResponse línea de compra.
type PurchaseItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	LotID     string          `json:"lot_id"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// PurchaseResponse documento de compra.
type PurchaseResponse struct {
	ID            string                 `json:"id"`
	SupplierID    string                 `json:"supplier_id"`
	InvoiceNumber string                 `json:"invoice_number,omitempty"`
	Total         decimal.Decimal        `json:"total"`
	Notes         string                 `json:"notes,omitempty"`
	Items         []PurchaseItemResponse `json:"items,omitempty"`
	ReceivedAt    time.Time              `json:"received_at"`
	CreatedAt     time.Time              `json:"created_at"`
}

// PurchaseListResponse listado paginado de compras.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
