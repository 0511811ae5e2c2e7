package ledger

import (
	"context"

	"github.com/movemais/estoque-api/internal/application/dto"
	"github.com/movemais/estoque-api/internal/domain/repository"
)

// MovementReader lista el histórico de movimientos. Proyección pura sobre la
// bitácora append-only, sin invariantes propias.
type MovementReader struct {
	movementRepo repository.StockMovementRepository
}

// NewMovementReader construye el lector.
func NewMovementReader(movementRepo repository.StockMovementRepository) *MovementReader {
	return &MovementReader{movementRepo: movementRepo}
}

// List devuelve una página de movimientos ordenados por id ascendente.
// Los parámetros de página inválidos se normalizan, no se rechazan.
func (r *MovementReader) List(ctx context.Context, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.Normalize()

	list, err := r.movementRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := r.movementRepo.Count()
	if err != nil {
		return nil, err
	}

	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}
