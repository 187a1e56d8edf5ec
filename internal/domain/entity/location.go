package entity

import "time"

// Location representa una ubicación física de almacenamiento (anaquel,
// vitrina, refrigerador). Los lotes pueden referenciarla opcionalmente.
type Location struct {
	ID          string
	Name        string // ej. "Anaquel A-3"
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
