package postgres

import (
	"context"
	"fmt"

	"github.com/farmaviva/botica-api/internal/domain/entity"
	"github.com/farmaviva/botica-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementación del puerto NotificationRepository sobre PostgreSQL.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador de persistencia para notificaciones.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create inserta una notificación.
func (r *NotificationRepo) Create(notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, product_id, type, message, read, created_at, read_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		notification.ID, notification.ProductID, notification.Type, notification.Message,
		notification.Read, notification.CreatedAt, notification.ReadAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ExistsUnread indica si ya hay una notificación no leída del mismo tipo para
// el producto.
func (r *NotificationRepo) ExistsUnread(productID, notificationType string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM notifications WHERE product_id = $1 AND type = $2 AND read = false)`,
		productID, notificationType,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists unread notification: %w", err)
	}
	return exists, nil
}

// List lista notificaciones más recientes primero, opcionalmente solo las no leídas.
func (r *NotificationRepo) List(onlyUnread bool, limit, offset int) ([]*entity.Notification, error) {
	query := `
		SELECT id, product_id, type, message, read, created_at, read_at
		FROM notifications`
	if onlyUnread {
		query += ` WHERE read = false`
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.ProductID, &n.Type, &n.Message, &n.Read, &n.CreatedAt, &n.ReadAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// MarkRead marca una notificación como leída.
func (r *NotificationRepo) MarkRead(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE notifications SET read = true, read_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}
