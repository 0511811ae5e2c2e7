package ledger

import (
	"context"

	"github.com/movemais/estoque-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el libro de stock:
// la mutación del saldo y el append del movimiento comprometen o se
// revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		balanceRepo repository.StockBalanceRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
