package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase representa un ingreso de mercadería (documento de compra a un
// proveedor). Cada línea recibida se convierte en un Lot nuevo.
type Purchase struct {
	ID            string
	SupplierID    string
	InvoiceNumber string // número de factura o guía del proveedor
	Total         decimal.Decimal
	Notes         string
	CreatedBy     string // UserID
	ReceivedAt    time.Time
	CreatedAt     time.Time
}

// PurchaseItem es una línea del documento de compra.
type PurchaseItem struct {
	ID         string
	PurchaseID string
	ProductID  string
	LotID      string // lote creado por esta línea
	Quantity   int
	UnitCost   decimal.Decimal
	Subtotal   decimal.Decimal
}
