package purchases

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

// CreatePurchaseUseCase registra el ingreso de mercadería con documento de
// compra: cada línea recibida genera un lote nuevo con su movimiento de
// entrada, y el documento queda ligado a sus lotes para trazabilidad.
type CreatePurchaseUseCase struct {
	txRunner     TxRunner
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	clk          clock.Clock
	horizonDays  int
}

// NewCreatePurchaseUseCase construye el caso de uso.
func NewCreatePurchaseUseCase(txRunner TxRunner, supplierRepo repository.SupplierRepository, productRepo repository.ProductRepository, clk clock.Clock, horizonDays int) *CreatePurchaseUseCase {
	return &CreatePurchaseUseCase{
		txRunner:     txRunner,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		clk:          clk,
		horizonDays:  horizonDays,
	}
}

// Create valida el documento y lo persiste junto con sus lotes y movimientos
// en una sola transacción.
func (uc *CreatePurchaseUseCase) Create(ctx context.Context, userID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.SupplierID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if item.UnitCost.LessThan(decimal.Zero) || item.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	for _, item := range in.Items {
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
	}

	// El total sale de las líneas del documento; calcularlo antes permite
	// insertar la cabecera primero (la FK de purchase_items exige que la
	// compra exista antes que sus líneas).
	total := decimal.Zero
	for _, item := range in.Items {
		total = total.Add(item.UnitCost.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	now := uc.clk.Now()
	purchase := &entity.Purchase{
		ID:            uuid.New().String(),
		SupplierID:    in.SupplierID,
		InvoiceNumber: in.InvoiceNumber,
		Total:         total,
		Notes:         in.Notes,
		CreatedBy:     userID,
		ReceivedAt:    now,
		CreatedAt:     now,
	}

	var resp *dto.PurchaseResponse
	err = uc.txRunner.RunPurchase(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		if err := purchaseRepo.Create(purchase); err != nil {
			return err
		}

		items := make([]dto.PurchaseItemResponse, 0, len(in.Items))
		touched := make(map[string]bool)
		for _, line := range in.Items {
			lot := &entity.Lot{
				ID:         uuid.New().String(),
				ProductID:  line.ProductID,
				SupplierID: &purchase.SupplierID,
				LocationID: line.LocationID,
				PurchaseID: &purchase.ID,
				Code:       line.LotCode,
				Quantity:   line.Quantity,
				UnitCost:   line.UnitCost,
				UnitPrice:  line.UnitPrice,
				ExpiresAt:  line.ExpiresAt,
				ReceivedAt: now,
				Status:     entity.LotStatusActive,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
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
				Reference:      purchase.ID,
				CreatedBy:      userID,
				CreatedAt:      now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}

			subtotal := line.UnitCost.Mul(decimal.NewFromInt(int64(line.Quantity)))
			item := &entity.PurchaseItem{
				ID:         uuid.New().String(),
				PurchaseID: purchase.ID,
				ProductID:  line.ProductID,
				LotID:      lot.ID,
				Quantity:   line.Quantity,
				UnitCost:   line.UnitCost,
				Subtotal:   subtotal,
			}
			if err := purchaseRepo.CreateItem(item); err != nil {
				return err
			}
			items = append(items, dto.PurchaseItemResponse{
				ID:        item.ID,
				ProductID: item.ProductID,
				LotID:     item.LotID,
				Quantity:  item.Quantity,
				UnitCost:  item.UnitCost,
				Subtotal:  item.Subtotal,
			})
			touched[line.ProductID] = true
		}

		for productID := range touched {
			if _, err := appinventory.RefreshProductState(lotRepo, productRepo, productID, now, uc.horizonDays); err != nil {
				return err
			}
		}

		resp = &dto.PurchaseResponse{
			ID:            purchase.ID,
			SupplierID:    purchase.SupplierID,
			InvoiceNumber: purchase.InvoiceNumber,
			Total:         purchase.Total,
			Notes:         purchase.Notes,
			Items:         items,
			ReceivedAt:    purchase.ReceivedAt,
			CreatedAt:     purchase.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
