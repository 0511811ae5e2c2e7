package entity

import "time"

// Warehouse representa una bodega o depósito donde se almacena inventario.
type Warehouse struct {
	ID        int64
	Code      string // código único
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
