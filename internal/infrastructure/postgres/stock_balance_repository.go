package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/movemais/estoque-api/internal/domain/entity"
	"github.com/movemais/estoque-api/internal/domain/repository"
)

var _ repository.StockBalanceRepository = (*StockBalanceRepo)(nil)

// StockBalanceRepo implementación de StockBalanceRepository sobre PostgreSQL
// (usable con pool o tx).
type StockBalanceRepo struct {
	q Querier
}

// NewStockBalanceRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewStockBalanceRepository(q Querier) *StockBalanceRepo {
	return &StockBalanceRepo{q: q}
}

// Get obtiene el saldo actual de un producto en una bodega.
// Devuelve nil si el par no tiene fila todavía.
func (r *StockBalanceRepo) Get(productID, warehouseID int64) (*entity.StockBalance, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock_balances WHERE product_id = $1 AND warehouse_id = $2`
	var b entity.StockBalance
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&b.ProductID, &b.WarehouseID, &b.Quantity, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock balance: %w", err)
	}
	return &b, nil
}

// GetForUpdate obtiene el saldo y bloquea la fila (SELECT FOR UPDATE) para
// serializar escritores concurrentes del mismo par. Devuelve nil si el par
// no tiene fila todavía.
func (r *StockBalanceRepo) GetForUpdate(productID, warehouseID int64) (*entity.StockBalance, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock_balances WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	var b entity.StockBalance
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&b.ProductID, &b.WarehouseID, &b.Quantity, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock balance for update: %w", err)
	}
	return &b, nil
}

// Upsert inserta o actualiza el saldo (por producto y bodega).
func (r *StockBalanceRepo) Upsert(balance *entity.StockBalance) error {
	query := `
		INSERT INTO stock_balances (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, balance.ProductID, balance.WarehouseID, balance.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock balance: %w", err)
	}
	return nil
}
