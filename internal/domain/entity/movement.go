package entity

import "time"

// Direcciones de movimiento.
const (
	MovementIn  = "entrada"
	MovementOut = "salida"
)

// Motivos de movimiento.
const (
	ReasonPurchase   = "entrada-compra"
	ReasonSale       = "venta"
	ReasonReturn     = "devolucion"
	ReasonAdjustment = "ajuste-manual"
	ReasonExpiry     = "baja-vencimiento"
	ReasonVoid       = "anulacion"
)

// Movement es el registro inmutable de auditoría de cada cambio de cantidad
// sobre un lote. Se crea siempre junto con la mutación, nunca se actualiza
// ni se borra.
type Movement struct {
	ID             string
	LotID          *string
	ProductID      string
	Direction      string // entrada, salida
	Quantity       int    // delta en unidades, siempre positivo
	QuantityBefore int    // cantidad vendible del lote antes del cambio
	QuantityAfter  int    // cantidad vendible del lote después del cambio
	Reason         string // entrada-compra, venta, devolucion, ajuste-manual, baja-vencimiento, anulacion
	Reference      string // ID de venta/compra u otra referencia del origen
	Notes          string
	CreatedBy      string // UserID
	CreatedAt      time.Time
}
