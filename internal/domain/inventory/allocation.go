package inventory

import (
	"sort"
	"time"

	"github.com/farmaviva/botica-api/internal/domain"
	"github.com/farmaviva/botica-api/internal/domain/entity"
)

// Allocation indica cuántas unidades tomar de un lote dentro de un plan.
type Allocation struct {
	LotID     string
	LotCode   string
	Quantity  int
	ExpiresAt *time.Time
}

// SortCandidates ordena lotes según la política FIFO-por-urgencia-de-frescura:
// vencimiento ascendente (sin vencimiento al final, "nunca vence") y fecha de
// ingreso ascendente como desempate. Ordena in-place y devuelve el slice.
//
// El mismo orden se usa para bloquear filas (FOR UPDATE): un orden de bloqueo
// determinista entre transacciones concurrentes evita deadlocks.
func SortCandidates(lots []*entity.Lot) []*entity.Lot {
	sort.SliceStable(lots, func(i, j int) bool {
		ei, ej := lots[i].ExpiresAt, lots[j].ExpiresAt
		switch {
		case ei == nil && ej == nil:
			return lots[i].ReceivedAt.Before(lots[j].ReceivedAt)
		case ei == nil:
			return false
		case ej == nil:
			return true
		case ei.Equal(*ej):
			return lots[i].ReceivedAt.Before(lots[j].ReceivedAt)
		default:
			return ei.Before(*ej)
		}
	})
	return lots
}

// Plan arma el plan de asignación para retirar requested unidades: recorre
// los candidatos (status activo y cantidad > 0) en orden FIFO-por-vencimiento
// tomando min(restante, lote.Quantity) de cada uno.
//
// Es una función de planificación pura, sin efectos: el commit lo aplica un
// caso de uso dentro de una transacción. Si el total disponible no alcanza,
// devuelve ErrInsufficientStock y ningún plan parcial.
func Plan(lots []*entity.Lot, requested int) ([]Allocation, error) {
	if requested <= 0 {
		return nil, domain.ErrInvalidInput
	}
	candidates := make([]*entity.Lot, 0, len(lots))
	for _, l := range lots {
		if l.IsSellable() {
			candidates = append(candidates, l)
		}
	}
	SortCandidates(candidates)

	var plan []Allocation
	remaining := requested
	for _, l := range candidates {
		if remaining == 0 {
			break
		}
		take := l.Quantity
		if take > remaining {
			take = remaining
		}
		plan = append(plan, Allocation{LotID: l.ID, LotCode: l.Code, Quantity: take, ExpiresAt: l.ExpiresAt})
		remaining -= take
	}
	if remaining > 0 {
		return nil, domain.ErrInsufficientStock
	}
	return plan, nil
}

// Available suma las unidades vendibles del conjunto de lotes.
func Available(lots []*entity.Lot) int {
	total := 0
	for _, l := range lots {
		if l.IsSellable() {
			total += l.Quantity
		}
	}
	return total
}
