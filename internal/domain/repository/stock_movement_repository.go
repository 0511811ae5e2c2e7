package repository

import "github.com/movemais/estoque-api/internal/domain/entity"

// StockMovementRepository define el puerto de persistencia para la bitácora
// de movimientos (append-only: sin update ni delete).
type StockMovementRepository interface {
	// Create persiste el movimiento y completa ID y OccurredAt generados.
	Create(movement *entity.StockMovement) error
	GetByID(id int64) (*entity.StockMovement, error)
	// List devuelve movimientos ordenados por id ascendente.
	List(limit, offset int) ([]*entity.StockMovement, error)
	Count() (int64, error)
}
