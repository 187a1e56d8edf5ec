package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/farmaviva/botica-api/internal/domain"
	"github.com/farmaviva/botica-api/internal/domain/entity"
	"github.com/farmaviva/botica-api/internal/domain/repository"
	"github.com/farmaviva/botica-api/pkg/clock"
)

// AdjustLotUseCase ajustes manuales sobre un lote: fijar una cantidad nueva
// (conteo físico) o anularlo. Toda edición de cantidad pasa por aquí o por el
// commit de asignación; ambas emiten siempre un Movement.
type AdjustLotUseCase struct {
	txRunner    TxRunner
	clk         clock.Clock
	horizonDays int
}

// NewAdjustLotUseCase construye el caso de uso.
func NewAdjustLotUseCase(txRunner TxRunner, clk clock.Clock, horizonDays int) *AdjustLotUseCase {
	return &AdjustLotUseCase{txRunner: txRunner, clk: clk, horizonDays: horizonDays}
}

// Adjust fija la cantidad del lote en newQuantity (>= 0). Bloquea la fila,
// registra el movimiento con el delta y los snapshots antes/después, marca el
// lote como agotado si queda en cero y recalcula el estado del producto.
// Solo se permite sobre lotes activos o agotados (reponer un agotado lo
// reactiva); un lote vencido o anulado devuelve ErrInvalidLotState.
func (uc *AdjustLotUseCase) Adjust(ctx context.Context, lotID string, newQuantity int, reason, userID string) (*entity.Lot, error) {
	if lotID == "" || newQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if reason == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.clk.Now()

	var adjusted *entity.Lot
	err := uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		lot, err := lotRepo.GetByIDForUpdate(lotID)
		if err != nil {
			return err
		}
		if lot == nil {
			return domain.ErrNotFound
		}
		if lot.Status != entity.LotStatusActive && lot.Status != entity.LotStatusDepleted {
			return domain.ErrInvalidLotState
		}
		before := lot.Quantity
		if newQuantity == before {
			adjusted = lot
			return nil
		}

		direction := entity.MovementIn
		delta := newQuantity - before
		if delta < 0 {
			direction = entity.MovementOut
			delta = -delta
		}
		lot.Quantity = newQuantity
		switch {
		case newQuantity == 0:
			lot.Status = entity.LotStatusDepleted
		default:
			lot.Status = entity.LotStatusActive
		}
		lot.UpdatedAt = now
		if err := lotRepo.Update(lot); err != nil {
			return err
		}
		mov := &entity.Movement{
			ID:             uuid.New().String(),
			LotID:          &lot.ID,
			ProductID:      lot.ProductID,
			Direction:      direction,
			Quantity:       delta,
			QuantityBefore: before,
			QuantityAfter:  newQuantity,
			Reason:         entity.ReasonAdjustment,
			Notes:          reason,
			CreatedBy:      userID,
			CreatedAt:      now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		if _, err := RefreshProductState(lotRepo, productRepo, lot.ProductID, now, uc.horizonDays); err != nil {
			return err
		}
		adjusted = lot
		return nil
	})
	if err != nil {
		return nil, err
	}
	return adjusted, nil
}

// Void anula un lote: cambio de estado más movimiento de salida por la
// cantidad vendible restante. El registro y su cantidad se conservan para
// auditoría; requiere motivo.
func (uc *AdjustLotUseCase) Void(ctx context.Context, lotID, reason, userID string) (*entity.Lot, error) {
	if lotID == "" || reason == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.clk.Now()

	var voided *entity.Lot
	err := uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		lot, err := lotRepo.GetByIDForUpdate(lotID)
		if err != nil {
			return err
		}
		if lot == nil {
			return domain.ErrNotFound
		}
		if lot.Status == entity.LotStatusVoided {
			return domain.ErrInvalidLotState
		}
		wasSellable := lot.IsSellable()
		before := lot.Quantity
		lot.Status = entity.LotStatusVoided
		lot.VoidReason = reason
		lot.UpdatedAt = now
		if err := lotRepo.Update(lot); err != nil {
			return err
		}
		if wasSellable {
			// Solo hay salida de stock vendible si el lote aportaba unidades.
			// QuantityAfter queda en 0 aunque la columna quantity del lote
			// conserve lo recibido como dato de auditoría.
			mov := &entity.Movement{
				ID:             uuid.New().String(),
				LotID:          &lot.ID,
				ProductID:      lot.ProductID,
				Direction:      entity.MovementOut,
				Quantity:       before,
				QuantityBefore: before,
				QuantityAfter:  0,
				Reason:         entity.ReasonVoid,
				Notes:          reason,
				CreatedBy:      userID,
				CreatedAt:      now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}
		if _, err := RefreshProductState(lotRepo, productRepo, lot.ProductID, now, uc.horizonDays); err != nil {
			return err
		}
		voided = lot
		return nil
	})
	if err != nil {
		return nil, err
	}
	return voided, nil
}
