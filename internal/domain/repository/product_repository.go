package repository

import (
	"time"

	"github.com/farmaviva/botica-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStockState escribe los campos denormalizados que mantiene el agregador.
	UpdateStockState(productID string, stock int, state string, nearestExpiry *time.Time) error
	List(state string, search string, limit, offset int) ([]*entity.Product, error)
	// ListIDsWithActiveLots devuelve los IDs de productos con al menos un lote activo
	// (usado por el barrido de vencimientos y el recálculo masivo).
	ListIDsWithActiveLots() ([]string, error)
	Delete(id string) error
}
