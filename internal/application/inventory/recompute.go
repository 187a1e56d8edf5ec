package inventory

import (
	"context"

	"github.com/farmaviva/botica-api/internal/application/dto"
	"github.com/farmaviva/botica-api/internal/domain"
	"github.com/farmaviva/botica-api/internal/domain/inventory"
	"github.com/farmaviva/botica-api/internal/domain/repository"
	"github.com/farmaviva/botica-api/pkg/clock"
)

// RecomputeUseCase recalcula a demanda el estado denormalizado de un producto
// (o de todos). Idempotente: dos llamadas seguidas sin mutación intermedia
// producen el mismo resultado.
type RecomputeUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	clk         clock.Clock
	horizonDays int
}

// NewRecomputeUseCase construye el caso de uso.
func NewRecomputeUseCase(txRunner TxRunner, productRepo repository.ProductRepository, clk clock.Clock, horizonDays int) *RecomputeUseCase {
	return &RecomputeUseCase{txRunner: txRunner, productRepo: productRepo, clk: clk, horizonDays: horizonDays}
}

// Recompute recalcula el estado de un producto dentro de una transacción.
func (uc *RecomputeUseCase) Recompute(ctx context.Context, productID string) (*dto.ProductStateResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.clk.Now()
	var summary inventory.StockSummary
	err = uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		_ repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		summary, err = RefreshProductState(lotRepo, productRepo, productID, now, uc.horizonDays)
		return err
	})
	if err != nil {
		return nil, err
	}

	state := inventory.Classify(summary.Stock, product.MinStock, summary.NearestExpiry, now, uc.horizonDays)
	return &dto.ProductStateResponse{
		ProductID:        productID,
		Stock:            summary.Stock,
		State:            state,
		NearestExpiry:    summary.NearestExpiry,
		LotsActive:       summary.LotsActive,
		LotsExpiringSoon: summary.LotsExpiringSoon,
		LotsExpired:      summary.LotsExpired,
	}, nil
}

// RecomputeAll recalcula el estado de todos los productos con lotes activos.
// Pensado para el mismo scheduler que dispara el barrido de vencimientos.
func (uc *RecomputeUseCase) RecomputeAll(ctx context.Context) (int, error) {
	ids, err := uc.productRepo.ListIDsWithActiveLots()
	if err != nil {
		return 0, err
	}
	now := uc.clk.Now()
	count := 0
	for _, id := range ids {
		err := uc.txRunner.Run(ctx, func(
			lotRepo repository.LotRepository,
			_ repository.MovementRepository,
			productRepo repository.ProductRepository,
		) error {
			_, err := RefreshProductState(lotRepo, productRepo, id, now, uc.horizonDays)
			return err
		})
		if err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
