package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appinventory "github.com/farmaviva/botica-api/internal/application/inventory"
	"github.com/farmaviva/botica-api/internal/application/dto"
	"github.com/farmaviva/botica-api/internal/domain"
	"github.com/farmaviva/botica-api/internal/domain/entity"
	"github.com/farmaviva/botica-api/internal/domain/repository"
	"github.com/farmaviva/botica-api/pkg/clock"
)

// CreateSaleUseCase procesa una venta de mostrador: cada línea se surte desde
// los lotes del producto en orden FIFO-por-vencimiento, con bloqueo de filas,
// movimientos por lote y recálculo de estado — todo en una sola transacción.
// El desglose por lote se persiste para que las devoluciones repongan a los
// lotes exactos de los que salió la mercadería.
type CreateSaleUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	allocate    *appinventory.AllocateUseCase
	clk         clock.Clock
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(txRunner TxRunner, productRepo repository.ProductRepository, allocate *appinventory.AllocateUseCase, clk clock.Clock) *CreateSaleUseCase {
	return &CreateSaleUseCase{txRunner: txRunner, productRepo: productRepo, allocate: allocate, clk: clk}
}

// Create valida el request, surte cada línea y persiste la venta completa.
// Cualquier fallo (stock insuficiente incluido) revierte la transacción
// entera: no hay ventas parcialmente surtidas.
func (uc *CreateSaleUseCase) Create(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	switch in.PaymentMethod {
	case entity.PaymentCash, entity.PaymentCard, entity.PaymentTransfer:
	default:
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
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
		number, err := saleRepo.NextNumber()
		if err != nil {
			return err
		}
		sale := &entity.Sale{
			ID:            uuid.New().String(),
			Number:        number,
			CustomerName:  in.CustomerName,
			CustomerPhone: in.CustomerPhone,
			PaymentMethod: in.PaymentMethod,
			Total:         decimal.Zero,
			Status:        entity.SaleStatusIssued,
			CreatedBy:     userID,
			CreatedAt:     now,
		}

		// Primera pasada: resolver productos y calcular el total, para poder
		// insertar la cabecera antes que sus líneas (las FKs de sale_items y
		// sale_item_lots exigen que la venta exista primero).
		type pricedLine struct {
			product  *entity.Product
			quantity int
		}
		lines := make([]pricedLine, 0, len(in.Items))
		for _, line := range in.Items {
			product, err := productRepo.GetByID(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			sale.Total = sale.Total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
			lines = append(lines, pricedLine{product: product, quantity: line.Quantity})
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}

		items := make([]dto.SaleItemResponse, 0, len(lines))
		for _, line := range lines {
			committed, err := uc.allocate.CommitInTx(ctx, lotRepo, movRepo, productRepo,
				line.product.ID, line.quantity, userID, sale.ID, entity.ReasonSale)
			if err != nil {
				return err
			}

			qty := decimal.NewFromInt(int64(line.quantity))
			subtotal := line.product.Price.Mul(qty)
			item := &entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    sale.ID,
				ProductID: line.product.ID,
				Quantity:  line.quantity,
				UnitPrice: line.product.Price,
				Subtotal:  subtotal,
			}

			itemResp := dto.SaleItemResponse{
				ID:        item.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				Subtotal:  item.Subtotal,
			}
			itemLots := make([]*entity.SaleItemLot, 0, len(committed))
			for _, c := range committed {
				itemLots = append(itemLots, &entity.SaleItemLot{
					ID:         uuid.New().String(),
					SaleItemID: item.ID,
					LotID:      c.LotID,
					Quantity:   c.Quantity,
					UnitCost:   c.UnitCost,
				})
				itemResp.Lots = append(itemResp.Lots, dto.AllocationDTO{
					LotID:    c.LotID,
					LotCode:  c.LotCode,
					Quantity: c.Quantity,
				})
			}

			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
			for _, il := range itemLots {
				if err := saleRepo.CreateItemLot(il); err != nil {
					return err
				}
			}
			items = append(items, itemResp)
		}

		resp = &dto.SaleResponse{
			ID:            sale.ID,
			Number:        sale.Number,
			CustomerName:  sale.CustomerName,
			CustomerPhone: sale.CustomerPhone,
			PaymentMethod: sale.PaymentMethod,
			Total:         sale.Total,
			Status:        sale.Status,
			Items:         items,
			CreatedBy:     sale.CreatedBy,
			CreatedAt:     sale.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
