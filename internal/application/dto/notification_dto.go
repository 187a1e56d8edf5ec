package dto

import "time"

// NotificationResponse notificación en respuestas.
type NotificationResponse struct {
	ID        string     `json:"id"`
	ProductID string     `json:"product_id"`
	Type      string     `json:"type"`
	Message   string     `json:"message"`
	Read      bool       `json:"read"`
	CreatedAt time.Time  `json:"created_at"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
}

// GenerateNotificationsResponse respuesta de POST /api/notifications/generate.
type GenerateNotificationsResponse struct {
	Created int `json:"created"`
}
