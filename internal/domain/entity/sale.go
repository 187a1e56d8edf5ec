package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de venta.
const (
	SaleStatusIssued            = "emitida"
	SaleStatusPartiallyReturned = "devuelta-parcial"
	SaleStatusReturned          = "devuelta"
)

// Métodos de pago aceptados en caja.
const (
	PaymentCash     = "efectivo"
	PaymentCard     = "tarjeta"
	PaymentTransfer = "transferencia"
)

// Sale representa una venta de mostrador (ticket de POS).
type Sale struct {
	ID            string
	Number        string // correlativo legible, ej. "B-000123"
	CustomerName  string
	CustomerPhone string // para envío del comprobante por WhatsApp
	PaymentMethod string
	Total         decimal.Decimal
	Status        string // emitida, devuelta-parcial, devuelta
	CreatedBy     string // UserID del vendedor
	CreatedAt     time.Time
}

// SaleItem es una línea de la venta. La cantidad puede haberse surtido desde
// varios lotes; el detalle por lote vive en SaleItemLot.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int
	Returned  int // unidades ya devueltas de esta línea
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// SaleItemLot registra de qué lote salió cada porción de una línea de venta.
// Las devoluciones reponen exactamente a estos lotes.
type SaleItemLot struct {
	ID         string
	SaleItemID string
	LotID      string
	Quantity   int
	Returned   int // unidades devueltas a este lote
	UnitCost   decimal.Decimal
}
