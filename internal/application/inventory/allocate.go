package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farmaviva/botica-api/internal/application/dto"
	"github.com/farmaviva/botica-api/internal/domain"
	"github.com/farmaviva/botica-api/internal/domain/entity"
	"github.com/farmaviva/botica-api/internal/domain/inventory"
	"github.com/farmaviva/botica-api/internal/domain/repository"
	"github.com/farmaviva/botica-api/pkg/clock"
)

// CommittedAllocation es una toma ya aplicada sobre un lote, con el costo
// unitario del lote para valorizar la salida.
type CommittedAllocation struct {
	LotID    string
	LotCode  string
	Quantity int
	UnitCost decimal.Decimal
}

// AllocateUseCase expone el motor de asignación FIFO-por-vencimiento en sus
// dos modos: simulación (solo lectura, previsualiza qué lotes se usarían) y
// commit dentro de la transacción de un caller (venta, ajuste).
type AllocateUseCase struct {
	lotRepo     repository.LotRepository
	productRepo repository.ProductRepository
	clk         clock.Clock
	horizonDays int
}

// NewAllocateUseCase construye el caso de uso con repositorios de solo
// lectura (pool) para la simulación.
func NewAllocateUseCase(lotRepo repository.LotRepository, productRepo repository.ProductRepository, clk clock.Clock, horizonDays int) *AllocateUseCase {
	return &AllocateUseCase{lotRepo: lotRepo, productRepo: productRepo, clk: clk, horizonDays: horizonDays}
}

// Simulate arma el plan de asignación sin comprometer nada: mismos candidatos
// y mismo orden que el commit, sin bloqueos ni escrituras.
func (uc *AllocateUseCase) Simulate(ctx context.Context, productID string, quantity int) (*dto.SimulateAllocationResponse, error) {
	if productID == "" || quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	lots, err := uc.lotRepo.ListByProduct(productID, entity.LotStatusActive)
	if err != nil {
		return nil, err
	}
	resp := &dto.SimulateAllocationResponse{
		ProductID: productID,
		Requested: quantity,
		Available: inventory.Available(lots),
	}
	plan, err := inventory.Plan(lots, quantity)
	if err != nil {
		return nil, err
	}
	for _, a := range plan {
		resp.Plan = append(resp.Plan, dto.AllocationDTO{
			LotID:     a.LotID,
			LotCode:   a.LotCode,
			Quantity:  a.Quantity,
			ExpiresAt: a.ExpiresAt,
		})
	}
	return resp, nil
}

// CommitInTx ejecuta una asignación usando los repositorios del caller (misma
// transacción): bloquea los lotes activos del producto (SELECT FOR UPDATE en
// orden determinista), replanifica sobre las cantidades ya bloqueadas,
// descuenta cada lote, registra un movimiento por lote afectado y recalcula
// el estado del producto. Si el stock bloqueado no alcanza, devuelve
// ErrInsufficientStock sin efecto alguno (el caller hace rollback).
//
// Siempre se planifica sobre las filas bloqueadas, nunca sobre el stock
// denormalizado del producto: el valor almacenado no es fuente de verdad
// para decisiones de escritura.
func (uc *AllocateUseCase) CommitInTx(
	_ context.Context,
	lotRepo repository.LotRepository,
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	productID string,
	quantity int,
	userID, reference, reason string,
) ([]CommittedAllocation, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	now := uc.clk.Now()

	lots, err := lotRepo.ListActiveByProductForUpdate(productID)
	if err != nil {
		return nil, err
	}
	plan, err := inventory.Plan(lots, quantity)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*entity.Lot, len(lots))
	for _, l := range lots {
		byID[l.ID] = l
	}

	committed := make([]CommittedAllocation, 0, len(plan))
	for _, a := range plan {
		lot := byID[a.LotID]
		before := lot.Quantity
		lot.Quantity -= a.Quantity
		if lot.Quantity == 0 {
			lot.Status = entity.LotStatusDepleted
		}
		lot.UpdatedAt = now
		if err := lotRepo.Update(lot); err != nil {
			return nil, err
		}
		mov := &entity.Movement{
			ID:             uuid.New().String(),
			LotID:          &lot.ID,
			ProductID:      productID,
			Direction:      entity.MovementOut,
			Quantity:       a.Quantity,
			QuantityBefore: before,
			QuantityAfter:  lot.Quantity,
			Reason:         reason,
			Reference:      reference,
			CreatedBy:      userID,
			CreatedAt:      now,
		}
		if err := movRepo.Create(mov); err != nil {
			return nil, err
		}
		committed = append(committed, CommittedAllocation{
			LotID:    lot.ID,
			LotCode:  lot.Code,
			Quantity: a.Quantity,
			UnitCost: lot.UnitCost,
		})
	}

	if _, err := RefreshProductState(lotRepo, productRepo, productID, now, uc.horizonDays); err != nil {
		return nil, err
	}
	return committed, nil
}
