package repository

import (
	"time"

	"github.com/farmaviva/botica-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para el registro de
// movimientos. Solo inserta y lee: los movimientos nunca se actualizan ni
// se borran.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	ListByLot(lotID string, limit, offset int) ([]*entity.Movement, error)
}
