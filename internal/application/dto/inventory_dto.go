package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiveLotRequest body para POST /api/inventory/lots (ingreso directo de un lote).
type ReceiveLotRequest struct {
	ProductID  string          `json:"product_id"`
	SupplierID *string         `json:"supplier_id,omitempty"`
	LocationID *string         `json:"location_id,omitempty"`
	Code       string          `json:"code,omitempty"` // lote del laboratorio
	Quantity   int             `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	ExpiresAt  *time.Time      `json:"expires_at,omitempty"` // nil = no vence
}

// AdjustLotRequest body para POST /api/inventory/lots/:id/adjust.
// NewQuantity reemplaza la cantidad actual; el movimiento registra el delta.
type AdjustLotRequest struct {
	NewQuantity int    `json:"new_quantity"`
	Reason      string `json:"reason"`
}

// VoidLotRequest body para POST /api/inventory/lots/:id/void.
type VoidLotRequest struct {
	Reason string `json:"reason"`
}

// LotResponse lote en respuestas.
type LotResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	SupplierID *string         `json:"supplier_id,omitempty"`
	LocationID *string         `json:"location_id,omitempty"`
	PurchaseID *string         `json:"purchase_id,omitempty"`
	Code       string          `json:"code,omitempty"`
	Quantity   int             `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	ExpiresAt  *time.Time      `json:"expires_at,omitempty"`
	ReceivedAt time.Time       `json:"received_at"`
	Status     string          `json:"status"`
	VoidReason string          `json:"void_reason,omitempty"`
}

// AllocationDTO una toma del plan de asignación.
type AllocationDTO struct {
	LotID     string     `json:"lot_id"`
	LotCode   string     `json:"lot_code,omitempty"`
	Quantity  int        `json:"quantity"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// SimulateAllocationResponse respuesta de GET /api/inventory/allocations/simulate.
// Previsualiza qué lotes se usarían sin comprometer nada.
type SimulateAllocationResponse struct {
	ProductID string          `json:"product_id"`
	Requested int             `json:"requested"`
	Available int             `json:"available"`
	Plan      []AllocationDTO `json:"plan"`
}

// MovementResponse movimiento en respuestas.
type MovementResponse struct {
	ID             string    `json:"id"`
	LotID          *string   `json:"lot_id,omitempty"`
	ProductID      string    `json:"product_id"`
	Direction      string    `json:"direction"`
	Quantity       int       `json:"quantity"`
	QuantityBefore int       `json:"quantity_before"`
	QuantityAfter  int       `json:"quantity_after"`
	Reason         string    `json:"reason"`
	Reference      string    `json:"reference,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedBy      string    `json:"created_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// SweepResponse respuesta de POST /api/inventory/sweep-expired.
type SweepResponse struct {
	LotsExpired      int `json:"lots_expired"`
	ProductsAffected int `json:"products_affected"`
}

// ProductStateResponse respuesta del recálculo de estado.
type ProductStateResponse struct {
	ProductID        string     `json:"product_id"`
	Stock            int        `json:"stock"`
	State            string     `json:"state"`
	NearestExpiry    *time.Time `json:"nearest_expiry,omitempty"`
	LotsActive       int        `json:"lots_active"`
	LotsExpiringSoon int        `json:"lots_expiring_soon"`
	LotsExpired      int        `json:"lots_expired"`
}
