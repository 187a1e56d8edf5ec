package inventory

import (
	"time"

	"github.com/farmaviva/botica-api/internal/application/dto"
	"github.com/farmaviva/botica-api/internal/domain"
	"github.com/farmaviva/botica-api/internal/domain/entity"
	"github.com/farmaviva/botica-api/internal/domain/repository"
)

// LedgerUseCase consultas de solo lectura sobre el libro de lotes y el
// registro de movimientos.
type LedgerUseCase struct {
	lotRepo repository.LotRepository
	movRepo repository.MovementRepository
}

// NewLedgerUseCase construye el caso de uso con repositorios sobre el pool.
func NewLedgerUseCase(lotRepo repository.LotRepository, movRepo repository.MovementRepository) *LedgerUseCase {
	return &LedgerUseCase{lotRepo: lotRepo, movRepo: movRepo}
}

// ListLots lista los lotes de un producto, opcionalmente filtrados por estado,
// ordenados por vencimiento.
func (uc *LedgerUseCase) ListLots(productID, status string) ([]dto.LotResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	switch status {
	case "", entity.LotStatusActive, entity.LotStatusDepleted, entity.LotStatusExpired, entity.LotStatusVoided:
	default:
		return nil, domain.ErrInvalidInput
	}
	lots, err := uc.lotRepo.ListByProduct(productID, status)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LotResponse, 0, len(lots))
	for _, l := range lots {
		out = append(out, ToLotResponse(l))
	}
	return out, nil
}

// GetLot devuelve un lote por ID.
func (uc *LedgerUseCase) GetLot(lotID string) (*dto.LotResponse, error) {
	lot, err := uc.lotRepo.GetByID(lotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, domain.ErrNotFound
	}
	resp := ToLotResponse(lot)
	return &resp, nil
}

// ListMovements lista los movimientos de un producto en un rango de fechas.
func (uc *LedgerUseCase) ListMovements(productID string, from, to *time.Time, limit, offset int) ([]dto.MovementResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	movs, err := uc.movRepo.ListByProduct(productID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovementResponse{
			ID:             m.ID,
			LotID:          m.LotID,
			ProductID:      m.ProductID,
			Direction:      m.Direction,
			Quantity:       m.Quantity,
			QuantityBefore: m.QuantityBefore,
			QuantityAfter:  m.QuantityAfter,
			Reason:         m.Reason,
			Reference:      m.Reference,
			Notes:          m.Notes,
			CreatedBy:      m.CreatedBy,
			CreatedAt:      m.CreatedAt,
		})
	}
	return out, nil
}

// ToLotResponse convierte la entidad a DTO.
func ToLotResponse(l *entity.Lot) dto.LotResponse {
	return dto.LotResponse{
		ID:         l.ID,
		ProductID:  l.ProductID,
		SupplierID: l.SupplierID,
		LocationID: l.LocationID,
		PurchaseID: l.PurchaseID,
		Code:       l.Code,
		Quantity:   l.Quantity,
		UnitCost:   l.UnitCost,
		UnitPrice:  l.UnitPrice,
		ExpiresAt:  l.ExpiresAt,
		ReceivedAt: l.ReceivedAt,
		Status:     l.Status,
		VoidReason: l.VoidReason,
	}
}
