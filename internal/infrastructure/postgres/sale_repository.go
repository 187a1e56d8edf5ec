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

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, number, customer_name, customer_phone, payment_method,
		total, status, created_by, created_at`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de la venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.Number, sale.CustomerName, sale.CustomerPhone, sale.PaymentMethod,
		sale.Total, sale.Status, sale.CreatedBy, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de venta.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, returned, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.Quantity, item.Returned, item.UnitPrice, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// CreateItemLot persiste el desglose por lote de una línea.
func (r *SaleRepo) CreateItemLot(itemLot *entity.SaleItemLot) error {
	query := `
		INSERT INTO sale_item_lots (id, sale_item_id, lot_id, quantity, returned, unit_cost)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		itemLot.ID, itemLot.SaleItemID, itemLot.LotID, itemLot.Quantity, itemLot.Returned, itemLot.UnitCost,
	)
	if err != nil {
		return fmt.Errorf("insert sale item lot: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByIDForUpdate obtiene una venta y bloquea la fila. Serializa devoluciones
// concurrentes sobre la misma venta.
func (r *SaleRepo) GetByIDForUpdate(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// ListItems lista las líneas de una venta en orden de inserción.
func (r *SaleRepo) ListItems(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, returned, unit_price, subtotal
		FROM sale_items WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.Returned, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ListItemLots lista el desglose por lote de una línea, en el orden FIFO en
// que se surtió.
func (r *SaleRepo) ListItemLots(saleItemID string) ([]*entity.SaleItemLot, error) {
	query := `
		SELECT id, sale_item_id, lot_id, quantity, returned, unit_cost
		FROM sale_item_lots WHERE sale_item_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, saleItemID)
	if err != nil {
		return nil, fmt.Errorf("list sale item lots: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleItemLot
	for rows.Next() {
		var il entity.SaleItemLot
		if err := rows.Scan(&il.ID, &il.SaleItemID, &il.LotID, &il.Quantity, &il.Returned, &il.UnitCost); err != nil {
			return nil, fmt.Errorf("scan sale item lot: %w", err)
		}
		list = append(list, &il)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de la venta.
func (r *SaleRepo) UpdateStatus(saleID string, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sales SET status = $2 WHERE id = $1`, saleID, status)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	return nil
}

// UpdateItemReturned actualiza el contador de devuelto de una línea.
func (r *SaleRepo) UpdateItemReturned(itemID string, returned int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sale_items SET returned = $2 WHERE id = $1`, itemID, returned)
	if err != nil {
		return fmt.Errorf("update sale item returned: %w", err)
	}
	return nil
}

// UpdateItemLotReturned actualiza el contador de devuelto de un desglose por lote.
func (r *SaleRepo) UpdateItemLotReturned(itemLotID string, returned int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sale_item_lots SET returned = $2 WHERE id = $1`, itemLotID, returned)
	if err != nil {
		return fmt.Errorf("update sale item lot returned: %w", err)
	}
	return nil
}

// List lista ventas más recientes primero, con filtro opcional por fechas.
func (r *SaleRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE 1=1`
	args := []any{}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.Number, &s.CustomerName, &s.CustomerPhone, &s.PaymentMethod,
			&s.Total, &s.Status, &s.CreatedBy, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// NextNumber devuelve el siguiente correlativo de ticket desde la secuencia.
func (r *SaleRepo) NextNumber() (string, error) {
	var n int64
	err := r.q.QueryRow(context.Background(), `SELECT nextval('sale_number_seq')`).Scan(&n)
	if err != nil {
		return "", fmt.Errorf("next sale number: %w", err)
	}
	return fmt.Sprintf("B-%06d", n), nil
}

func (r *SaleRepo) scanOne(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.Number, &s.CustomerName, &s.CustomerPhone, &s.PaymentMethod,
		&s.Total, &s.Status, &s.CreatedBy, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}
