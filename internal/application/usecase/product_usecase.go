package usecase

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farmaviva/botica-api/internal/application/dto"
	"github.com/farmaviva/botica-api/internal/domain"
	"github.com/farmaviva/botica-api/internal/domain/entity"
	"github.com/farmaviva/botica-api/internal/domain/repository"
	"github.com/farmaviva/botica-api/pkg/clock"
)

// ProductUseCase mantenimiento del catálogo de productos. El stock y el
// estado no se editan por aquí: los mantiene el agregador de inventario.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	lotRepo     repository.LotRepository
	clk         clock.Clock
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, lotRepo repository.LotRepository, clk clock.Clock) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, lotRepo: lotRepo, clk: clk}
}

// Create registra un producto nuevo. Nace sin lotes: stock cero y AGOTADO.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.LessThan(decimal.Zero) || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.productRepo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := uc.clk.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		SKU:          in.SKU,
		Name:         in.Name,
		Presentation: in.Presentation,
		Laboratory:   in.Laboratory,
		Price:        in.Price,
		MinStock:     in.MinStock,
		Stock:        0,
		State:        entity.StateOutOfStock,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Get devuelve un producto por ID.
func (uc *ProductUseCase) Get(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// GetBySKU busca un producto por su código (escaneo en caja).
func (uc *ProductUseCase) GetBySKU(sku string) (*dto.ProductResponse, error) {
	if sku == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update aplica cambios parciales al catálogo. Un cambio de MinStock no
// recalcula el estado al instante; lo hará la siguiente operación de
// inventario o el recálculo programado.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Presentation != nil {
		product.Presentation = *in.Presentation
	}
	if in.Laboratory != nil {
		product.Laboratory = *in.Laboratory
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MinStock = *in.MinStock
	}
	product.UpdatedAt = uc.clk.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con filtro por estado y búsqueda por nombre o SKU.
func (uc *ProductUseCase) List(state, search string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	switch state {
	case "", entity.StateNormal, entity.StateLowStock, entity.StateExpiring, entity.StateExpired, entity.StateOutOfStock:
	default:
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	products, err := uc.productRepo.List(state, search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(products)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, p := range products {
		out.Items = append(out.Items, *toProductResponse(p))
	}
	return out, nil
}

// Delete elimina un producto del catálogo. Se rechaza si aún tiene lotes
// activos con unidades; primero hay que anularlos o venderlos.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	lots, err := uc.lotRepo.ListByProduct(id, entity.LotStatusActive)
	if err != nil {
		return err
	}
	for _, l := range lots {
		if l.Quantity > 0 {
			return domain.ErrInvalidLotState
		}
	}
	return uc.productRepo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Presentation:  p.Presentation,
		Laboratory:    p.Laboratory,
		Price:         p.Price,
		MinStock:      p.MinStock,
		Stock:         p.Stock,
		State:         p.State,
		NearestExpiry: p.NearestExpiry,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
