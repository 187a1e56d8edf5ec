package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farmaviva/botica-api/internal/application/dto"
	"github.com/farmaviva/botica-api/internal/domain/entity"
	"github.com/farmaviva/botica-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas read-only para el dashboard. Las devoluciones se
// descuentan: una unidad devuelta no cuenta como vendida ni como costo.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica. Siempre sobre el pool.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetSalesMetrics devuelve ingresos y costo de lo vendido en el rango.
func (r *AnalyticsRepo) GetSalesMetrics(ctx context.Context, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM((si.quantity - si.returned) * si.unit_price), 0) AS revenue,
			COALESCE(SUM(sil.net_cost), 0) AS cost
		FROM sales s
		JOIN sale_items si ON si.sale_id = s.id
		LEFT JOIN LATERAL (
			SELECT SUM((l.quantity - l.returned) * l.unit_cost) AS net_cost
			FROM sale_item_lots l WHERE l.sale_item_id = si.id
		) sil ON true
		WHERE s.created_at BETWEEN $1 AND $2`
	var revenue, cost decimal.Decimal
	err := r.q.QueryRow(ctx, query, from, to).Scan(&revenue, &cost)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("sales metrics: %w", err)
	}
	return revenue, cost, nil
}

// GetTopProducts devuelve los productos más vendidos por unidades en el rango.
func (r *AnalyticsRepo) GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]dto.TopProductDTO, error) {
	query := `
		SELECT p.id, p.sku, p.name,
			SUM(si.quantity - si.returned) AS units_sold,
			SUM((si.quantity - si.returned) * si.unit_price) AS revenue
		FROM sales s
		JOIN sale_items si ON si.sale_id = s.id
		JOIN products p ON p.id = si.product_id
		WHERE s.created_at BETWEEN $1 AND $2
		GROUP BY p.id, p.sku, p.name
		HAVING SUM(si.quantity - si.returned) > 0
		ORDER BY units_sold DESC, revenue DESC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()
	var list []dto.TopProductDTO
	for rows.Next() {
		var t dto.TopProductDTO
		if err := rows.Scan(&t.ProductID, &t.SKU, &t.Name, &t.UnitsSold, &t.Revenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// GetInventoryValuation devuelve Σ cantidad * costo de los lotes activos.
func (r *AnalyticsRepo) GetInventoryValuation(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity * unit_cost), 0) FROM lots WHERE status = $1`,
		entity.LotStatusActive,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("inventory valuation: %w", err)
	}
	return total, nil
}

// GetStateCounts devuelve cuántos productos hay en cada estado.
func (r *AnalyticsRepo) GetStateCounts(ctx context.Context) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `SELECT state, COUNT(*) FROM products GROUP BY state`)
	if err != nil {
		return nil, fmt.Errorf("state counts: %w", err)
	}
	defer rows.Close()
	counts := map[string]int{
		entity.StateNormal:     0,
		entity.StateLowStock:   0,
		entity.StateExpiring:   0,
		entity.StateExpired:    0,
		entity.StateOutOfStock: 0,
	}
	for rows.Next() {
		var state string
		var count int
		if err := rows.Scan(&state, &count); err != nil {
			return nil, fmt.Errorf("scan state count: %w", err)
		}
		counts[state] = count
	}
	return counts, rows.Err()
}
