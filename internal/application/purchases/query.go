package purchases

import (
	"time"

	"github.com/farmaviva/botica-api/internal/application/dto"
	"github.com/farmaviva/botica-api/internal/domain"
	"github.com/farmaviva/botica-api/internal/domain/entity"
	"github.com/farmaviva/botica-api/internal/domain/repository"
)

// QueryUseCase consultas de solo lectura sobre compras.
type QueryUseCase struct {
	purchaseRepo repository.PurchaseRepository
}

// NewQueryUseCase construye el caso de uso con el repositorio sobre el pool.
func NewQueryUseCase(purchaseRepo repository.PurchaseRepository) *QueryUseCase {
	return &QueryUseCase{purchaseRepo: purchaseRepo}
}

// Get devuelve una compra con sus líneas.
func (uc *QueryUseCase) Get(id string) (*dto.PurchaseResponse, error) {
	purchase, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.purchaseRepo.ListItems(id)
	if err != nil {
		return nil, err
	}
	resp := toPurchaseResponse(purchase)
	for _, it := range items {
		resp.Items = append(resp.Items, dto.PurchaseItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			LotID:     it.LotID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
			Subtotal:  it.Subtotal,
		})
	}
	return resp, nil
}

// List lista compras en un rango de fechas, paginadas, sin detalle de líneas.
func (uc *QueryUseCase) List(from, to *time.Time, page dto.PageRequest) (*dto.PurchaseListResponse, error) {
	page.DefaultPage()
	purchases, err := uc.purchaseRepo.List(from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.PurchaseListResponse{
		Items: make([]dto.PurchaseResponse, 0, len(purchases)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, p := range purchases {
		out.Items = append(out.Items, *toPurchaseResponse(p))
	}
	return out, nil
}

func toPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	return &dto.PurchaseResponse{
		ID:            p.ID,
		SupplierID:    p.SupplierID,
		InvoiceNumber: p.InvoiceNumber,
		Total:         p.Total,
		Notes:         p.Notes,
		ReceivedAt:    p.ReceivedAt,
		CreatedAt:     p.CreatedAt,
	}
}
