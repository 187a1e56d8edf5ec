package entity

import "time"

// Supplier representa un proveedor o droguería que abastece la botica.
type Supplier struct {
	ID        string
	Name      string
	RUC       string // registro tributario (Perú)
	Contact   string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
