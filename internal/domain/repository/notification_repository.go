package repository

import "github.com/farmaviva/botica-api/internal/domain/entity"

// NotificationRepository define el puerto de persistencia para notificaciones.
type NotificationRepository interface {
	Create(notification *entity.Notification) error
	// ExistsUnread indica si ya hay una notificación no leída del mismo tipo
	// para el producto (deduplicación del generador).
	ExistsUnread(productID, notificationType string) (bool, error)
	List(onlyUnread bool, limit, offset int) ([]*entity.Notification, error)
	MarkRead(id string) error
}
