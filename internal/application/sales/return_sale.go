package sales

import (
	"context"

	"github.com/google/uuid"

	appinventory "github.com/farmaviva/botica-api/internal/application/inventory"
	"github.com/farmaviva/botica-api/internal/application/dto"
	"github.com/farmaviva/botica-api/internal/domain"
	"github.com/farmaviva/botica-api/internal/domain/entity"
	"github.com/farmaviva/botica-api/internal/domain/repository"
	"github.com/farmaviva/botica-api/pkg/clock"
)

// ReturnSaleUseCase procesa devoluciones parciales o totales. Las unidades
// regresan a los lotes exactos de los que salieron (registrados en
// sale_item_lots), nunca a un lote arbitrario, para que el costo y la
// trazabilidad por lote se mantengan.
type ReturnSaleUseCase struct {
	txRunner    TxRunner
	clk         clock.Clock
	horizonDays int
}

// NewReturnSaleUseCase construye el caso de uso.
func NewReturnSaleUseCase(txRunner TxRunner, clk clock.Clock, horizonDays int) *ReturnSaleUseCase {
	return &ReturnSaleUseCase{txRunner: txRunner, clk: clk, horizonDays: horizonDays}
}

// Return aplica la devolución en una sola transacción: bloquea la venta,
// repone cantidades lote por lote con movimientos de entrada, actualiza los
// contadores de devuelto y el estado de la venta, y recalcula cada producto
// afectado.
func (uc *ReturnSaleUseCase) Return(ctx context.Context, saleID, userID string, in dto.ReturnSaleRequest) (*dto.SaleResponse, error) {
	if saleID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.SaleItemID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	now := uc.clk.Now()
	var resp *dto.SaleResponse

	err := uc.txRunner.RunSale(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		sale, err := saleRepo.GetByIDForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Status == entity.SaleStatusReturned {
			return domain.ErrInvalidInput
		}

		items, err := saleRepo.ListItems(saleID)
		if err != nil {
			return err
		}
		byID := make(map[string]*entity.SaleItem, len(items))
		for _, it := range items {
			byID[it.ID] = it
		}

		touched := make(map[string]bool) // productos a recalcular
		for _, req := range in.Items {
			item, ok := byID[req.SaleItemID]
			if !ok {
				return domain.ErrNotFound
			}
			remaining := item.Quantity - item.Returned
			if req.Quantity > remaining {
				return domain.ErrInvalidInput
			}

			itemLots, err := saleRepo.ListItemLots(item.ID)
			if err != nil {
				return err
			}
			pending := req.Quantity
			for _, il := range itemLots {
				if pending == 0 {
					break
				}
				room := il.Quantity - il.Returned
				if room <= 0 {
					continue
				}
				give := pending
				if give > room {
					give = room
				}

				lot, err := lotRepo.GetByIDForUpdate(il.LotID)
				if err != nil {
					return err
				}
				if lot == nil {
					return domain.ErrNotFound
				}
				before := lot.Quantity
				lot.Quantity += give
				// Un lote agotado vuelve a ser vendible; uno vencido o anulado
				// recibe las unidades pero conserva su estado.
				if lot.Status == entity.LotStatusDepleted {
					lot.Status = entity.LotStatusActive
				}
				lot.UpdatedAt = now
				if err := lotRepo.Update(lot); err != nil {
					return err
				}

				mov := &entity.Movement{
					ID:             uuid.New().String(),
					LotID:          &lot.ID,
					ProductID:      item.ProductID,
					Direction:      entity.MovementIn,
					Quantity:       give,
					QuantityBefore: before,
					QuantityAfter:  lot.Quantity,
					Reason:         entity.ReasonReturn,
					Reference:      saleID,
					Notes:          in.Reason,
					CreatedBy:      userID,
					CreatedAt:      now,
				}
				if err := movRepo.Create(mov); err != nil {
					return err
				}

				il.Returned += give
				if err := saleRepo.UpdateItemLotReturned(il.ID, il.Returned); err != nil {
					return err
				}
				pending -= give
			}
			if pending > 0 {
				// El desglose por lote no cubre lo pedido: datos inconsistentes.
				return domain.ErrInvalidInput
			}

			item.Returned += req.Quantity
			if err := saleRepo.UpdateItemReturned(item.ID, item.Returned); err != nil {
				return err
			}
			touched[item.ProductID] = true
		}

		for productID := range touched {
			if _, err := appinventory.RefreshProductState(lotRepo, productRepo, productID, now, uc.horizonDays); err != nil {
				return err
			}
		}

		allReturned := true
		for _, it := range items {
			if it.Returned < it.Quantity {
				allReturned = false
				break
			}
		}
		status := entity.SaleStatusPartiallyReturned
		if allReturned {
			status = entity.SaleStatusReturned
		}
		if err := saleRepo.UpdateStatus(saleID, status); err != nil {
			return err
		}
		sale.Status = status

		resp = buildSaleResponse(sale, items, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
