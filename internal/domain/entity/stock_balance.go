package entity

import "time"

// StockBalance representa el saldo actual de un producto en una bodega.
// Se crea perezosamente en cero con el primer movimiento del par
// (producto, bodega) y nunca se elimina. Quantity nunca es negativa.
type StockBalance struct {
	ProductID   int64
	WarehouseID int64
	Quantity    int64
	UpdatedAt   time.Time
}
