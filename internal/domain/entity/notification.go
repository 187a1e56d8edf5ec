package entity

import "time"

// Tipos de notificación generados a partir del estado de productos.
const (
	NotificationLowStock = "stock-bajo"
	NotificationExpiring = "por-vencer"
	NotificationExpired  = "vencido"
)

// Notification es un aviso para el personal de la botica. Se deduplica por
// producto+tipo mientras exista una notificación no leída.
type Notification struct {
	ID        string
	ProductID string
	Type      string // stock-bajo, por-vencer, vencido
	Message   string
	Read      bool
	CreatedAt time.Time
	ReadAt    *time.Time
}
