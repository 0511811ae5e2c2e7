package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/movemais/estoque-api/internal/domain/entity"
	"github.com/movemais/estoque-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// La tabla es append-only: no hay UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento y completa ID y OccurredAt generados.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (transaction_id, kind, product_id, warehouse_id, quantity, occurred_at, note, responsible_user)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, occurred_at`
	note := (*string)(nil)
	if movement.Note != "" {
		note = &movement.Note
	}
	err := r.q.QueryRow(context.Background(), query,
		movement.TransactionID, movement.Kind, movement.ProductID, movement.WarehouseID,
		movement.Quantity, movement.OccurredAt, note, movement.ResponsibleUser,
	).Scan(&movement.ID, &movement.OccurredAt)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(id int64) (*entity.StockMovement, error) {
	query := `
		SELECT id, transaction_id, kind, product_id, warehouse_id, quantity, occurred_at, note, responsible_user
		FROM stock_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// List lista movimientos ordenados por id ascendente, con paginación.
func (r *StockMovementRepo) List(limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, transaction_id, kind, product_id, warehouse_id, quantity, occurred_at, note, responsible_user
		FROM stock_movements ORDER BY id ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Count devuelve el total de movimientos registrados.
func (r *StockMovementRepo) Count() (int64, error) {
	var total int64
	err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM stock_movements`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count stock movements: %w", err)
	}
	return total, nil
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var note *string
	if err := row.Scan(&m.ID, &m.TransactionID, &m.Kind, &m.ProductID, &m.WarehouseID,
		&m.Quantity, &m.OccurredAt, &note, &m.ResponsibleUser); err != nil {
		return nil, err
	}
	if note != nil {
		m.Note = *note
	}
	return &m, nil
}
