package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de producto. Primer match gana en el clasificador:
// VENCIDO > AGOTADO > POR_VENCER > STOCK_BAJO > NORMAL.
const (
	StateNormal     = "NORMAL"
	StateLowStock   = "STOCK_BAJO"
	StateExpiring   = "POR_VENCER"
	StateExpired    = "VENCIDO"
	StateOutOfStock = "AGOTADO"
)

// Product representa un producto de la botica. Stock, State y NearestExpiry
// son campos denormalizados: el agregador los reescribe después de cada
// operación que toca lotes, y nunca son fuente de verdad en escrituras.
type Product struct {
	ID            string
	SKU           string // código único (código de barras o interno)
	Name          string
	Presentation  string // ej. "caja x 10 tabletas"
	Laboratory    string
	Price         decimal.Decimal // precio de venta de lista
	MinStock      int             // umbral de stock bajo
	Stock         int             // Σ cantidad de lotes activos (denormalizado)
	State         string          // denormalizado, ver constantes State*
	NearestExpiry *time.Time      // vencimiento más próximo entre lotes activos (denormalizado)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
