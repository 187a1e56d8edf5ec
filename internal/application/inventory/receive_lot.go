package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farmaviva/botica-api/internal/application/dto"
	"github.com/farmaviva/botica-api/internal/domain"
	"github.com/farmaviva/botica-api/internal/domain/entity"
	"github.com/farmaviva/botica-api/internal/domain/repository"
	"github.com/farmaviva/botica-api/pkg/clock"
)

// ReceiveLotUseCase registra el ingreso directo de un lote (mercadería que
// llega sin documento de compra, ej. muestra médica o regularización).
// El ingreso con documento pasa por purchases.CreatePurchaseUseCase.
type ReceiveLotUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	clk         clock.Clock
	horizonDays int
}

// NewReceiveLotUseCase construye el caso de uso.
func NewReceiveLotUseCase(txRunner TxRunner, productRepo repository.ProductRepository, clk clock.Clock, horizonDays int) *ReceiveLotUseCase {
	return &ReceiveLotUseCase{txRunner: txRunner, productRepo: productRepo, clk: clk, horizonDays: horizonDays}
}

// Receive crea el lote con su cantidad completa, registra el movimiento de
// entrada y recalcula el estado del producto, todo en una transacción.
func (uc *ReceiveLotUseCase) Receive(ctx context.Context, userID string, in dto.ReceiveLotRequest) (*entity.Lot, error) {
	if in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost.LessThan(decimal.Zero) || in.UnitPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.clk.Now()
	lot := newLotFromReceipt(in, now)

	err = uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := lotRepo.Create(lot); err != nil {
			return err
		}
		mov := &entity.Movement{
			ID:             uuid.New().String(),
			LotID:          &lot.ID,
			ProductID:      lot.ProductID,
			Direction:      entity.MovementIn,
			Quantity:       lot.Quantity,
			QuantityBefore: 0,
			QuantityAfter:  lot.Quantity,
			Reason:         entity.ReasonPurchase,
			CreatedBy:      userID,
			CreatedAt:      now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		_, err := RefreshProductState(lotRepo, productRepo, lot.ProductID, now, uc.horizonDays)
		return err
	})
	if err != nil {
		return nil, err
	}
	return lot, nil
}

// newLotFromReceipt arma la entidad Lot para un ingreso.
func newLotFromReceipt(in dto.ReceiveLotRequest, now time.Time) *entity.Lot {
	return &entity.Lot{
		ID:         uuid.New().String(),
		ProductID:  in.ProductID,
		SupplierID: in.SupplierID,
		LocationID: in.LocationID,
		Code:       in.Code,
		Quantity:   in.Quantity,
		UnitCost:   in.UnitCost,
		UnitPrice:  in.UnitPrice,
		ExpiresAt:  in.ExpiresAt,
		ReceivedAt: now,
		Status:     entity.LotStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
