package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/farmaviva/botica-api/internal/application/dto"
	"github.com/farmaviva/botica-api/internal/domain/entity"
	"github.com/farmaviva/botica-api/internal/domain/inventory"
	"github.com/farmaviva/botica-api/internal/domain/repository"
	"github.com/farmaviva/botica-api/pkg/clock"
)

// SweepExpiredUseCase barrido periódico de vencimientos: marca como vencidos
// los lotes activos cuya fecha ya pasó y registra la baja de sus unidades.
// Lo dispara un scheduler externo contra el endpoint correspondiente; es un
// caller más de las operaciones síncronas del núcleo.
type SweepExpiredUseCase struct {
	txRunner    TxRunner
	lotRepo     repository.LotRepository
	clk         clock.Clock
	horizonDays int
}

// NewSweepExpiredUseCase construye el caso de uso. lotRepo (pool) solo se usa
// para descubrir candidatos; las mutaciones bloquean dentro de la tx.
func NewSweepExpiredUseCase(txRunner TxRunner, lotRepo repository.LotRepository, clk clock.Clock, horizonDays int) *SweepExpiredUseCase {
	return &SweepExpiredUseCase{txRunner: txRunner, lotRepo: lotRepo, clk: clk, horizonDays: horizonDays}
}

// Sweep procesa los lotes vencidos producto por producto, cada producto en su
// propia transacción: así un fallo en uno no revierte el barrido completo y
// cada producto queda con su estado recalculado atómicamente con sus bajas.
func (uc *SweepExpiredUseCase) Sweep(ctx context.Context, userID string) (*dto.SweepResponse, error) {
	now := uc.clk.Now()
	today := inventory.StartOfDay(now)

	candidates, err := uc.lotRepo.ListExpiredActive(today)
	if err != nil {
		return nil, err
	}
	byProduct := make(map[string][]string) // productID -> lotIDs
	for _, l := range candidates {
		byProduct[l.ProductID] = append(byProduct[l.ProductID], l.ID)
	}

	resp := &dto.SweepResponse{}
	for productID, lotIDs := range byProduct {
		err := uc.txRunner.Run(ctx, func(
			lotRepo repository.LotRepository,
			movRepo repository.MovementRepository,
			productRepo repository.ProductRepository,
		) error {
			for _, lotID := range lotIDs {
				lot, err := lotRepo.GetByIDForUpdate(lotID)
				if err != nil {
					return err
				}
				// Revalidar bajo el lock: otro barrido o un ajuste pudo ganarnos.
				if lot == nil || lot.Status != entity.LotStatusActive {
					continue
				}
				if lot.ExpiresAt == nil || !inventory.StartOfDay(lot.ExpiresAt.In(now.Location())).Before(today) {
					continue
				}
				before := lot.Quantity
				lot.Status = entity.LotStatusExpired
				lot.UpdatedAt = now
				if err := lotRepo.Update(lot); err != nil {
					return err
				}
				if before > 0 {
					// La baja es de unidades vendibles: QuantityAfter queda en 0
					// aunque la columna quantity del lote conserve lo recibido
					// como dato de auditoría.
					mov := &entity.Movement{
						ID:             uuid.New().String(),
						LotID:          &lot.ID,
						ProductID:      productID,
						Direction:      entity.MovementOut,
						Quantity:       before,
						QuantityBefore: before,
						QuantityAfter:  0,
						Reason:         entity.ReasonExpiry,
						CreatedBy:      userID,
						CreatedAt:      now,
					}
					if err := movRepo.Create(mov); err != nil {
						return err
					}
				}
				resp.LotsExpired++
			}
			_, err := RefreshProductState(lotRepo, productRepo, productID, now, uc.horizonDays)
			return err
		})
		if err != nil {
			return nil, err
		}
		resp.ProductsAffected++
	}
	return resp, nil
}
