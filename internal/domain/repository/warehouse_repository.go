package repository

import "github.com/movemais/estoque-api/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id int64) (*entity.Warehouse, error)
	GetByCode(code string) (*entity.Warehouse, error)
	List(limit, offset int) ([]*entity.Warehouse, error)
}
