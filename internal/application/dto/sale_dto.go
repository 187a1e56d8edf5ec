package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleItemRequest línea de venta en el request.
type CreateSaleItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	CustomerName  string                  `json:"customer_name,omitempty"`
	CustomerPhone string                  `json:"customer_phone,omitempty"`
	PaymentMethod string                  `json:"payment_method"`
	Items         []CreateSaleItemRequest `json:"items"`
}

// ReturnSaleItemRequest línea a devolver.
type ReturnSaleItemRequest struct {
	SaleItemID string `json:"sale_item_id"`
	Quantity   int    `json:"quantity"`
}

// ReturnSaleRequest body para POST /api/sales/:id/returns.
type ReturnSaleRequest struct {
	Items  []ReturnSaleItemRequest `json:"items"`
	Reason string                  `json:"reason,omitempty"`
}

// SaleItemResponse línea de venta con su desglose por lote.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Returned  int             `json:"returned,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Lots      []AllocationDTO `json:"lots,omitempty"`
}

// SaleResponse venta completa.
type SaleResponse struct {
	ID            string             `json:"id"`
	Number        string             `json:"number"`
	CustomerName  string             `json:"customer_name,omitempty"`
	CustomerPhone string             `json:"customer_phone,omitempty"`
	PaymentMethod string             `json:"payment_method"`
	Total         decimal.Decimal    `json:"total"`
	Status        string             `json:"status"`
	Items         []SaleItemResponse `json:"items,omitempty"`
	CreatedBy     string             `json:"created_by,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// SaleListResponse listado paginado de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// WhatsAppLinkResponse enlace wa.me para enviar el comprobante.
type WhatsAppLinkResponse struct {
	SaleID string `json:"sale_id"`
	Phone  string `json:"phone"`
	Link   string `json:"link"`
}
