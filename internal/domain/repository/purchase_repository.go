package repository

import (
	"time"

	"github.com/farmaviva/botica-api/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para compras (ingresos
// de mercadería) y sus líneas.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	CreateItem(item *entity.PurchaseItem) error
	GetByID(id string) (*entity.Purchase, error)
	ListItems(purchaseID string) ([]*entity.PurchaseItem, error)
	List(from, to *time.Time, limit, offset int) ([]*entity.Purchase, error)
}
