package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de lote. Un lote nunca se elimina físicamente: agotarse, vencer o
// anularse son cambios de estado acompañados de un Movement.
const (
	LotStatusActive   = "activo"
	LotStatusDepleted = "agotado"
	LotStatusExpired  = "vencido"
	LotStatusVoided   = "anulado"
)

// Lot representa un lote (batch) recibido de un producto: cantidad propia,
// costo de adquisición, precio de venta sugerido y fecha de vencimiento.
// El stock del producto es la suma de sus lotes activos.
type Lot struct {
	ID         string
	ProductID  string
	SupplierID *string // opcional: proveedor de origen
	LocationID *string // opcional: ubicación en anaquel
	PurchaseID *string // opcional: documento de compra que lo originó
	Code       string  // número de lote impreso por el laboratorio
	Quantity   int     // unidades restantes; nunca negativo
	UnitCost   decimal.Decimal
	UnitPrice  decimal.Decimal
	ExpiresAt  *time.Time // nil = no vence (ej. material médico)
	ReceivedAt time.Time
	Status     string // activo, agotado, vencido, anulado
	VoidReason string // motivo cuando Status = anulado
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsSellable indica si el lote puede participar en una asignación de venta.
func (l *Lot) IsSellable() bool {
	return l.Status == LotStatusActive && l.Quantity > 0
}
