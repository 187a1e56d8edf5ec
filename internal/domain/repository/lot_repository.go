package repository

import (
	"time"

	"github.com/farmaviva/botica-api/internal/domain/entity"
)

// LotRepository define el puerto de persistencia para lotes.
// Los métodos *ForUpdate bloquean filas (SELECT FOR UPDATE) y solo tienen
// sentido dentro de una transacción.
type LotRepository interface {
	Create(lot *entity.Lot) error
	GetByID(id string) (*entity.Lot, error)
	GetByIDForUpdate(id string) (*entity.Lot, error)
	Update(lot *entity.Lot) error
	ListByProduct(productID string, status string) ([]*entity.Lot, error)
	// ListActiveByProductForUpdate devuelve los lotes activos de un producto
	// bloqueados, en el mismo orden FIFO-por-vencimiento del planificador
	// (vencimiento asc, NULLS LAST, ingreso asc) para un orden de bloqueo
	// determinista entre transacciones concurrentes.
	ListActiveByProductForUpdate(productID string) ([]*entity.Lot, error)
	// ListExpiredActive lista lotes activos cuyo vencimiento es anterior a before
	// y con cantidad > 0 (candidatos del barrido).
	ListExpiredActive(before time.Time) ([]*entity.Lot, error)
}
