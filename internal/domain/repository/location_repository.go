package repository

import "github.com/farmaviva/botica-api/internal/domain/entity"

// LocationRepository define el puerto de persistencia para ubicaciones físicas.
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	Update(location *entity.Location) error
	List(limit, offset int) ([]*entity.Location, error)
	Delete(id string) error
}
