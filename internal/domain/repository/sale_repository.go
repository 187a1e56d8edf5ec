package repository

import (
	"time"

	"github.com/farmaviva/botica-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas y su detalle.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	CreateItemLot(itemLot *entity.SaleItemLot) error
	GetByID(id string) (*entity.Sale, error)
	GetByIDForUpdate(id string) (*entity.Sale, error)
	ListItems(saleID string) ([]*entity.SaleItem, error)
	ListItemLots(saleItemID string) ([]*entity.SaleItemLot, error)
	UpdateStatus(saleID string, status string) error
	UpdateItemReturned(itemID string, returned int) error
	UpdateItemLotReturned(itemLotID string, returned int) error
	List(from, to *time.Time, limit, offset int) ([]*entity.Sale, error)
	// NextNumber devuelve el siguiente correlativo de ticket (ej. "B-000124").
	NextNumber() (string, error)
}
