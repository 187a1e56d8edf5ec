package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farmaviva/botica-api/internal/application/dto"
)

// AnalyticsRepository define consultas read-only para el dashboard.
// Devuelve DTOs directamente: son proyecciones de reporte, no agregados de dominio.
type AnalyticsRepository interface {
	// GetSalesMetrics devuelve ingresos y costo de lo vendido en el rango.
	GetSalesMetrics(ctx context.Context, from, to time.Time) (revenue, cost decimal.Decimal, err error)
	// GetTopProducts devuelve los productos más vendidos por unidades en el rango.
	GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]dto.TopProductDTO, error)
	// GetInventoryValuation devuelve Σ cantidad * costo de los lotes activos.
	GetInventoryValuation(ctx context.Context) (decimal.Decimal, error)
	// GetStateCounts devuelve cuántos productos hay en cada estado.
	GetStateCounts(ctx context.Context) (map[string]int, error)
}
