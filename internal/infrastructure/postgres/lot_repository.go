package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/farmaviva/botica-api/internal/domain/entity"
	"github.com/farmaviva/botica-api/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

const lotColumns = `id, product_id, supplier_id, location_id, purchase_id, code, quantity,
		unit_cost, unit_price, expires_at, received_at, status, void_reason, created_at, updated_at`

// LotRepo implementación del puerto LotRepository sobre PostgreSQL (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador de persistencia para lotes. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

// Create persiste un lote nuevo.
func (r *LotRepo) Create(lot *entity.Lot) error {
	query := `
		INSERT INTO lots (` + lotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.ProductID, lot.SupplierID, lot.LocationID, lot.PurchaseID, lot.Code,
		lot.Quantity, lot.UnitCost, lot.UnitPrice, lot.ExpiresAt, lot.ReceivedAt,
		lot.Status, lot.VoidReason, lot.CreatedAt, lot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *LotRepo) GetByID(id string) (*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByIDForUpdate obtiene un lote y bloquea la fila (SELECT FOR UPDATE).
func (r *LotRepo) GetByIDForUpdate(id string) (*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Update reescribe los campos mutables del lote.
func (r *LotRepo) Update(lot *entity.Lot) error {
	query := `
		UPDATE lots SET quantity = $2, unit_cost = $3, unit_price = $4, expires_at = $5,
			location_id = $6, status = $7, void_reason = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.Quantity, lot.UnitCost, lot.UnitPrice, lot.ExpiresAt,
		lot.LocationID, lot.Status, lot.VoidReason, lot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lot: %w", err)
	}
	return nil
}

// ListByProduct lista los lotes de un producto en orden FIFO-por-vencimiento,
// opcionalmente filtrados por estado.
func (r *LotRepo) ListByProduct(productID string, status string) ([]*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE product_id = $1`
	args := []any{productID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY expires_at ASC NULLS LAST, received_at ASC`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	return r.scanRows(rows)
}

// ListActiveByProductForUpdate bloquea los lotes activos de un producto en el
// mismo orden del planificador FIFO. El ORDER BY fija el orden de bloqueo:
// dos transacciones concurrentes sobre el mismo producto toman los locks en el
// mismo orden y no pueden interbloquearse.
func (r *LotRepo) ListActiveByProductForUpdate(productID string) ([]*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots
		WHERE product_id = $1 AND status = $2
		ORDER BY expires_at ASC NULLS LAST, received_at ASC
		FOR UPDATE`
	rows, err := r.q.Query(context.Background(), query, productID, entity.LotStatusActive)
	if err != nil {
		return nil, fmt.Errorf("list lots for update: %w", err)
	}
	return r.scanRows(rows)
}

// ListExpiredActive lista lotes activos vencidos antes de before (candidatos
// del barrido).
func (r *LotRepo) ListExpiredActive(before time.Time) ([]*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots
		WHERE status = $1 AND expires_at IS NOT NULL AND expires_at < $2
		ORDER BY product_id, expires_at ASC`
	rows, err := r.q.Query(context.Background(), query, entity.LotStatusActive, before)
	if err != nil {
		return nil, fmt.Errorf("list expired lots: %w", err)
	}
	return r.scanRows(rows)
}

func (r *LotRepo) scanOne(row pgx.Row) (*entity.Lot, error) {
	var l entity.Lot
	err := row.Scan(
		&l.ID, &l.ProductID, &l.SupplierID, &l.LocationID, &l.PurchaseID, &l.Code,
		&l.Quantity, &l.UnitCost, &l.UnitPrice, &l.ExpiresAt, &l.ReceivedAt,
		&l.Status, &l.VoidReason, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return &l, nil
}

func (r *LotRepo) scanRows(rows pgx.Rows) ([]*entity.Lot, error) {
	defer rows.Close()
	var list []*entity.Lot
	for rows.Next() {
		var l entity.Lot
		if err := rows.Scan(
			&l.ID, &l.ProductID, &l.SupplierID, &l.LocationID, &l.PurchaseID, &l.Code,
			&l.Quantity, &l.UnitCost, &l.UnitPrice, &l.ExpiresAt, &l.ReceivedAt,
			&l.Status, &l.VoidReason, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
