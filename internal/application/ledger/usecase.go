package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/movemais/estoque-api/internal/application/dto"
	"github.com/movemais/estoque-api/internal/domain"
	"github.com/movemais/estoque-api/internal/domain/entity"
	"github.com/movemais/estoque-api/internal/domain/repository"
)

// LedgerUseCase registra movimientos de stock (entradas y salidas) de forma
// transaccional, con bloqueo de fila sobre el saldo (SELECT FOR UPDATE) y
// Commit/Rollback. No guarda estado mutable propio: todas las dependencias
// se inyectan en la construcción.
type LedgerUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// RecordInbound registra una entrada: crea el saldo en cero si el par
// (producto, bodega) no lo tiene todavía, suma la cantidad y agrega el
// movimiento INBOUND en la misma transacción. userID es la identidad
// autenticada del solicitante y se estampa como responsible_user.
func (uc *LedgerUseCase) RecordInbound(ctx context.Context, userID string, in dto.MovementCreateRequest) (*dto.MovementResponse, error) {
	product, warehouse, err := uc.resolve(in)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	txID := uuid.New().String()

	var created *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(
		balanceRepo repository.StockBalanceRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		balance, err := balanceRepo.GetForUpdate(product.ID, warehouse.ID)
		if err != nil {
			return err
		}
		if balance == nil {
			balance = &entity.StockBalance{ProductID: product.ID, WarehouseID: warehouse.ID, Quantity: 0}
		}
		balance.Quantity += in.Quantity
		balance.UpdatedAt = now
		if err := balanceRepo.Upsert(balance); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			TransactionID:   txID,
			Kind:            entity.MovementKindInbound,
			ProductID:       product.ID,
			WarehouseID:     warehouse.ID,
			Quantity:        in.Quantity,
			OccurredAt:      now,
			Note:            in.Note,
			ResponsibleUser: userID,
		}
		if err := movementRepo.Create(mov); err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(created), nil
}

// RecordOutbound registra una salida: exige fila de saldo existente y saldo
// suficiente, resta la cantidad y agrega el movimiento OUTBOUND en la misma
// transacción. La verificación de suficiencia ocurre estrictamente antes de
// mutar nada (check-then-act dentro de la tx, sin decremento parcial).
// Una salida por exactamente el saldo actual es legal y deja el saldo en cero.
func (uc *LedgerUseCase) RecordOutbound(ctx context.Context, userID string, in dto.MovementCreateRequest) (*dto.MovementResponse, error) {
	product, warehouse, err := uc.resolve(in)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	txID := uuid.New().String()

	var created *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(
		balanceRepo repository.StockBalanceRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		balance, err := balanceRepo.GetForUpdate(product.ID, warehouse.ID)
		if err != nil {
			return err
		}
		if balance == nil {
			return domain.ErrNoStock
		}
		if balance.Quantity < in.Quantity {
			return domain.ErrInsufficientStock
		}
		balance.Quantity -= in.Quantity
		balance.UpdatedAt = now
		if err := balanceRepo.Upsert(balance); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			TransactionID:   txID,
			Kind:            entity.MovementKindOutbound,
			ProductID:       product.ID,
			WarehouseID:     warehouse.ID,
			Quantity:        in.Quantity,
			OccurredAt:      now,
			Note:            in.Note,
			ResponsibleUser: userID,
		}
		if err := movementRepo.Create(mov); err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(created), nil
}

// resolve valida la cantidad y resuelve producto y bodega en el catálogo.
// Cantidades no positivas se rechazan aquí aunque la validación externa ya
// debió hacerlo.
func (uc *LedgerUseCase) resolve(in dto.MovementCreateRequest) (*entity.Product, *entity.Warehouse, error) {
	if in.Quantity <= 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.ErrNotFound
	}
	warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, nil, err
	}
	if warehouse == nil {
		return nil, nil, domain.ErrNotFound
	}
	return product, warehouse, nil
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:              m.ID,
		Kind:            m.Kind,
		ProductID:       m.ProductID,
		WarehouseID:     m.WarehouseID,
		Quantity:        m.Quantity,
		OccurredAt:      m.OccurredAt,
		Note:            m.Note,
		ResponsibleUser: m.ResponsibleUser,
	}
}
