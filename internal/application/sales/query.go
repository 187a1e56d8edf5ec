package sales

import (
	"time"

	"github.com/farmaviva/botica-api/internal/application/dto"
	"github.com/farmaviva/botica-api/internal/domain"
	"github.com/farmaviva/botica-api/internal/domain/entity"
	"github.com/farmaviva/botica-api/internal/domain/repository"
)

// QueryUseCase consultas de solo lectura sobre ventas.
type QueryUseCase struct {
	saleRepo repository.SaleRepository
	lotRepo  repository.LotRepository
}

// NewQueryUseCase construye el caso de uso con repositorios sobre el pool.
func NewQueryUseCase(saleRepo repository.SaleRepository, lotRepo repository.LotRepository) *QueryUseCase {
	return &QueryUseCase{saleRepo: saleRepo, lotRepo: lotRepo}
}

// Get devuelve una venta con sus líneas y el desglose por lote.
func (uc *QueryUseCase) Get(saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.ListItems(saleID)
	if err != nil {
		return nil, err
	}

	lotsByItem := make(map[string][]dto.AllocationDTO, len(items))
	for _, it := range items {
		itemLots, err := uc.saleRepo.ListItemLots(it.ID)
		if err != nil {
			return nil, err
		}
		for _, il := range itemLots {
			code := ""
			if lot, err := uc.lotRepo.GetByID(il.LotID); err == nil && lot != nil {
				code = lot.Code
			}
			lotsByItem[it.ID] = append(lotsByItem[it.ID], dto.AllocationDTO{
				LotID:    il.LotID,
				LotCode:  code,
				Quantity: il.Quantity,
			})
		}
	}
	return buildSaleResponse(sale, items, lotsByItem), nil
}

// List lista ventas en un rango de fechas, paginadas, sin detalle de líneas.
func (uc *QueryUseCase) List(from, to *time.Time, page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	sales, err := uc.saleRepo.List(from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.SaleListResponse{
		Items: make([]dto.SaleResponse, 0, len(sales)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, s := range sales {
		out.Items = append(out.Items, *buildSaleResponse(s, nil, nil))
	}
	return out, nil
}

func buildSaleResponse(sale *entity.Sale, items []*entity.SaleItem, lotsByItem map[string][]dto.AllocationDTO) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            sale.ID,
		Number:        sale.Number,
		CustomerName:  sale.CustomerName,
		CustomerPhone: sale.CustomerPhone,
		PaymentMethod: sale.PaymentMethod,
		Total:         sale.Total,
		Status:        sale.Status,
		CreatedBy:     sale.CreatedBy,
		CreatedAt:     sale.CreatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Returned:  it.Returned,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
			Lots:      lotsByItem[it.ID],
		})
	}
	return resp
}
