package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/farmaviva/botica-api/internal/domain/entity"
)

// StockSummary es el resultado de agregar los lotes de un producto.
type StockSummary struct {
	Stock            int        // Σ cantidad de lotes activos
	NearestExpiry    *time.Time // mínimo vencimiento entre lotes activos con cantidad > 0
	LotsActive       int
	LotsExpiringSoon int // lotes activos que vencen dentro del horizonte
	LotsExpired      int // lotes con vencimiento pasado y cantidad > 0 aún no barridos
	Valuation        decimal.Decimal // Σ cantidad * costo unitario de lotes activos
}

// Summarize recalcula el agregado de stock de un producto desde sus lotes.
// Debe invocarse, dentro de la misma transacción, inmediatamente después de
// cualquier operación que afecte cantidades (ingreso, venta, ajuste, barrido).
func Summarize(lots []*entity.Lot, now time.Time, horizonDays int) StockSummary {
	if horizonDays <= 0 {
		horizonDays = DefaultExpiryHorizonDays
	}
	s := StockSummary{Valuation: decimal.Zero}
	for _, l := range lots {
		if l.Status != entity.LotStatusActive {
			continue
		}
		s.LotsActive++
		s.Stock += l.Quantity
		s.Valuation = s.Valuation.Add(l.UnitCost.Mul(decimal.NewFromInt(int64(l.Quantity))))
		if l.ExpiresAt == nil {
			continue
		}
		days := DaysUntil(now, *l.ExpiresAt)
		if days < 0 && l.Quantity > 0 {
			// Vencido pero aún no marcado por el barrido periódico.
			s.LotsExpired++
		}
		if days > 0 && days <= horizonDays {
			s.LotsExpiringSoon++
		}
		if l.Quantity > 0 {
			if s.NearestExpiry == nil || l.ExpiresAt.Before(*s.NearestExpiry) {
				exp := *l.ExpiresAt
				s.NearestExpiry = &exp
			}
		}
	}
	return s
}
