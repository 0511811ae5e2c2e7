package repository

import "github.com/movemais/estoque-api/internal/domain/entity"

// StockBalanceRepository define el puerto para consultar/actualizar el saldo
// por producto+bodega. Usado dentro de transacciones para garantizar
// consistencia. Get y GetForUpdate devuelven nil (sin error) si el par no
// tiene fila de saldo todavía.
type StockBalanceRepository interface {
	Get(productID, warehouseID int64) (*entity.StockBalance, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(productID, warehouseID int64) (*entity.StockBalance, error)
	Upsert(balance *entity.StockBalance) error
}
