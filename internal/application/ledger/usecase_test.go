package ledger_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movemais/estoque-api/internal/application/dto"
	"github.com/movemais/estoque-api/internal/application/ledger"
	"github.com/movemais/estoque-api/internal/domain"
	"github.com/movemais/estoque-api/internal/domain/entity"
	"github.com/movemais/estoque-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los puertos del libro de stock
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[int64]*entity.Product
}

func (f *fakeProductRepo) Create(p *entity.Product) error { f.products[p.ID] = p; return nil }

func (f *fakeProductRepo) GetByID(id int64) (*entity.Product, error) {
	return f.products[id], nil
}
func (f *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (f *fakeProductRepo) Update(*entity.Product) error { return nil }
func (f *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

type fakeWarehouseRepo struct {
	warehouses map[int64]*entity.Warehouse
}

func (f *fakeWarehouseRepo) Create(w *entity.Warehouse) error { f.warehouses[w.ID] = w; return nil }
func (f *fakeWarehouseRepo) GetByID(id int64) (*entity.Warehouse, error) {
	return f.warehouses[id], nil
}
func (f *fakeWarehouseRepo) GetByCode(code string) (*entity.Warehouse, error) {
	for _, w := range f.warehouses {
		if w.Code == code {
			return w, nil
		}
	}
	return nil, nil
}
func (f *fakeWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	return nil, nil
}

type balanceKey struct{ productID, warehouseID int64 }

type fakeStore struct {
	balances  map[balanceKey]*entity.StockBalance
	movements []*entity.StockMovement
	nextID    int64
	upserts   int // mutaciones de saldo aplicadas
}

func (s *fakeStore) Get(productID, warehouseID int64) (*entity.StockBalance, error) {
	b, ok := s.balances[balanceKey{productID, warehouseID}]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (s *fakeStore) GetForUpdate(productID, warehouseID int64) (*entity.StockBalance, error) {
	return s.Get(productID, warehouseID)
}

func (s *fakeStore) Upsert(b *entity.StockBalance) error {
	cp := *b
	s.balances[balanceKey{b.ProductID, b.WarehouseID}] = &cp
	s.upserts++
	return nil
}

func (s *fakeStore) Create(m *entity.StockMovement) error {
	s.nextID++
	m.ID = s.nextID
	if m.OccurredAt.IsZero() {
		m.OccurredAt = time.Now()
	}
	cp := *m
	s.movements = append(s.movements, &cp)
	return nil
}

func (s *fakeStore) GetByID(id int64) (*entity.StockMovement, error) {
	for _, m := range s.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) List(limit, offset int) ([]*entity.StockMovement, error) {
	if offset >= len(s.movements) {
		return nil, nil
	}
	end := offset + limit
	if end > len(s.movements) {
		end = len(s.movements)
	}
	return s.movements[offset:end], nil
}

func (s *fakeStore) Count() (int64, error) { return int64(len(s.movements)), nil }

// fakeTxRunner emula la semántica transaccional: si fn falla, el estado del
// store vuelve al snapshot previo (rollback, todo-o-nada).
type fakeTxRunner struct {
	store *fakeStore
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	balanceRepo repository.StockBalanceRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	snapBalances := make(map[balanceKey]*entity.StockBalance, len(r.store.balances))
	for k, v := range r.store.balances {
		cp := *v
		snapBalances[k] = &cp
	}
	snapMovs := len(r.store.movements)
	snapID := r.store.nextID
	snapUpserts := r.store.upserts

	if err := fn(r.store, r.store); err != nil {
		r.store.balances = snapBalances
		r.store.movements = r.store.movements[:snapMovs]
		r.store.nextID = snapID
		r.store.upserts = snapUpserts
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const testUserID = "11111111-1111-1111-1111-111111111111"

func newTestLedger(t *testing.T) (*ledger.LedgerUseCase, *fakeStore) {
	t.Helper()
	now := time.Now()
	products := &fakeProductRepo{products: map[int64]*entity.Product{
		1: {ID: 1, SKU: "SKU-001", Name: "Tornillo 3/8", Active: true, CreatedAt: now, UpdatedAt: now},
	}}
	warehouses := &fakeWarehouseRepo{warehouses: map[int64]*entity.Warehouse{
		1: {ID: 1, Code: "BOD-01", Name: "Bodega central", CreatedAt: now, UpdatedAt: now},
	}}
	store := &fakeStore{balances: make(map[balanceKey]*entity.StockBalance)}
	uc := ledger.NewLedgerUseCase(&fakeTxRunner{store: store}, products, warehouses)
	return uc, store
}

func balanceOf(t *testing.T, store *fakeStore, productID, warehouseID int64) int64 {
	t.Helper()
	b, err := store.Get(productID, warehouseID)
	require.NoError(t, err)
	if b == nil {
		return 0
	}
	return b.Quantity
}

func inbound(qty int64) dto.MovementCreateRequest {
	return dto.MovementCreateRequest{ProductID: 1, WarehouseID: 1, Quantity: qty}
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordInbound
// ──────────────────────────────────────────────────────────────────────────────

// Saldo ausente: la entrada crea la fila en cero y suma.
func TestRecordInbound_CreaSaldoDesdeCero(t *testing.T) {
	uc, store := newTestLedger(t)

	resp, err := uc.RecordInbound(context.Background(), testUserID, inbound(10))
	require.NoError(t, err)

	assert.Equal(t, entity.MovementKindInbound, resp.Kind)
	assert.Equal(t, int64(10), resp.Quantity)
	assert.Equal(t, int64(1), resp.ProductID)
	assert.Equal(t, int64(1), resp.WarehouseID)
	assert.Equal(t, testUserID, resp.ResponsibleUser,
		"el movimiento debe estampar la identidad autenticada, no un placeholder")
	assert.NotZero(t, resp.ID)
	assert.False(t, resp.OccurredAt.IsZero())

	assert.Equal(t, int64(10), balanceOf(t, store, 1, 1))
}

func TestRecordInbound_ProductoInexistente_NotFound(t *testing.T) {
	uc, store := newTestLedger(t)

	in := dto.MovementCreateRequest{ProductID: 999, WarehouseID: 1, Quantity: 1}
	_, err := uc.RecordInbound(context.Background(), testUserID, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Falla antes de cualquier escritura: ni movimiento ni saldo.
	assert.Empty(t, store.movements)
	assert.Zero(t, store.upserts)
}

func TestRecordInbound_BodegaInexistente_NotFound(t *testing.T) {
	uc, store := newTestLedger(t)

	in := dto.MovementCreateRequest{ProductID: 1, WarehouseID: 999, Quantity: 1}
	_, err := uc.RecordInbound(context.Background(), testUserID, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.movements)
}

// El libro rechaza defensivamente cantidades no positivas aunque la
// validación del request ya debió filtrarlas.
func TestRecordInbound_CantidadNoPositiva_Invalida(t *testing.T) {
	uc, store := newTestLedger(t)

	for _, qty := range []int64{0, -5} {
		_, err := uc.RecordInbound(context.Background(), testUserID, inbound(qty))
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %d", qty)
	}
	assert.Empty(t, store.movements)
}

func TestRecordInbound_ConNota(t *testing.T) {
	uc, _ := newTestLedger(t)

	in := inbound(3)
	in.Note = "reposición semanal"
	resp, err := uc.RecordInbound(context.Background(), testUserID, in)
	require.NoError(t, err)
	assert.Equal(t, "reposición semanal", resp.Note)
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordOutbound
// ──────────────────────────────────────────────────────────────────────────────

// Sin fila de saldo: regla de negocio, no se crea movimiento.
func TestRecordOutbound_SinFilaDeSaldo_ReglaDeNegocio(t *testing.T) {
	uc, store := newTestLedger(t)

	_, err := uc.RecordOutbound(context.Background(), testUserID, inbound(1))
	assert.ErrorIs(t, err, domain.ErrNoStock)
	assert.True(t, domain.IsBusinessRule(err))
	assert.Empty(t, store.movements)
	assert.Zero(t, store.upserts)
}

// Saldo 2, salida de 5: falla y el saldo queda intacto.
func TestRecordOutbound_SaldoInsuficiente_NoMutaNada(t *testing.T) {
	uc, store := newTestLedger(t)

	_, err := uc.RecordInbound(context.Background(), testUserID, inbound(2))
	require.NoError(t, err)

	_, err = uc.RecordOutbound(context.Background(), testUserID, inbound(5))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, domain.IsBusinessRule(err))

	assert.Equal(t, int64(2), balanceOf(t, store, 1, 1), "el saldo no debe cambiar")
	assert.Len(t, store.movements, 1, "solo el movimiento de entrada previo")
}

func TestRecordOutbound_DescuentaSaldo(t *testing.T) {
	uc, store := newTestLedger(t)

	_, err := uc.RecordInbound(context.Background(), testUserID, inbound(10))
	require.NoError(t, err)

	resp, err := uc.RecordOutbound(context.Background(), testUserID, inbound(5))
	require.NoError(t, err)
	assert.Equal(t, entity.MovementKindOutbound, resp.Kind)
	assert.Equal(t, int64(5), resp.Quantity)
	assert.Equal(t, int64(5), balanceOf(t, store, 1, 1))
}

// Salida por exactamente el saldo actual: legal, el saldo queda en cero.
func TestRecordOutbound_SaldoExacto_QuedaEnCero(t *testing.T) {
	uc, store := newTestLedger(t)

	_, err := uc.RecordInbound(context.Background(), testUserID, inbound(7))
	require.NoError(t, err)

	_, err = uc.RecordOutbound(context.Background(), testUserID, inbound(7))
	require.NoError(t, err)
	assert.Equal(t, int64(0), balanceOf(t, store, 1, 1))

	// Y una salida más sobre saldo cero vuelve a fallar por insuficiencia.
	_, err = uc.RecordOutbound(context.Background(), testUserID, inbound(1))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestRecordOutbound_ProductoInexistente_NotFound(t *testing.T) {
	uc, store := newTestLedger(t)

	in := dto.MovementCreateRequest{ProductID: 999, WarehouseID: 1, Quantity: 1}
	_, err := uc.RecordOutbound(context.Background(), testUserID, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades del libro
// ──────────────────────────────────────────────────────────────────────────────

// Para cualquier secuencia de entradas/salidas sobre un mismo par, el saldo
// final es suma(entradas) - suma(salidas exitosas) y nunca negativo.
func TestSecuencia_ConservacionDeSaldo(t *testing.T) {
	uc, store := newTestLedger(t)
	ctx := context.Background()

	type op struct {
		kind string
		qty  int64
		ok   bool
	}
	seq := []op{
		{"in", 10, true},
		{"out", 3, true},
		{"out", 20, false}, // insuficiente
		{"in", 5, true},
		{"out", 12, true}, // saldo exacto
		{"out", 1, false}, // saldo cero
		{"in", 2, true},
	}

	var expected int64
	for i, o := range seq {
		var err error
		if o.kind == "in" {
			_, err = uc.RecordInbound(ctx, testUserID, inbound(o.qty))
		} else {
			_, err = uc.RecordOutbound(ctx, testUserID, inbound(o.qty))
		}
		if o.ok {
			require.NoError(t, err, "paso %d", i)
			if o.kind == "in" {
				expected += o.qty
			} else {
				expected -= o.qty
			}
		} else {
			require.Error(t, err, "paso %d", i)
		}
		got := balanceOf(t, store, 1, 1)
		assert.Equal(t, expected, got, "paso %d", i)
		assert.GreaterOrEqual(t, got, int64(0), "el saldo nunca puede ser negativo")
	}
}

// Cada operación exitosa produce exactamente un movimiento nuevo y una
// mutación de saldo: nunca cero, nunca dos.
func TestOperacionExitosa_UnMovimientoYUnaMutacion(t *testing.T) {
	uc, store := newTestLedger(t)
	ctx := context.Background()

	_, err := uc.RecordInbound(ctx, testUserID, inbound(4))
	require.NoError(t, err)
	assert.Len(t, store.movements, 1)
	assert.Equal(t, 1, store.upserts)

	_, err = uc.RecordOutbound(ctx, testUserID, inbound(2))
	require.NoError(t, err)
	assert.Len(t, store.movements, 2)
	assert.Equal(t, 2, store.upserts)

	// Los movimientos registrados reflejan fielmente las solicitudes.
	assert.Equal(t, entity.MovementKindInbound, store.movements[0].Kind)
	assert.Equal(t, entity.MovementKindOutbound, store.movements[1].Kind)
	for _, m := range store.movements {
		assert.Positive(t, m.Quantity)
		assert.NotEmpty(t, m.TransactionID)
	}
}

// Pares (producto, bodega) distintos llevan saldos independientes.
func TestPares_SaldosIndependientes(t *testing.T) {
	uc, store := newTestLedger(t)
	ctx := context.Background()

	now := time.Now()
	// Segunda bodega para el mismo producto.
	whRepo := &fakeWarehouseRepo{warehouses: map[int64]*entity.Warehouse{
		1: {ID: 1, Code: "BOD-01", Name: "Bodega central", CreatedAt: now, UpdatedAt: now},
		2: {ID: 2, Code: "BOD-02", Name: "Bodega norte", CreatedAt: now, UpdatedAt: now},
	}}
	prodRepo := &fakeProductRepo{products: map[int64]*entity.Product{
		1: {ID: 1, SKU: "SKU-001", Name: "Tornillo 3/8", Active: true},
	}}
	uc = ledger.NewLedgerUseCase(&fakeTxRunner{store: store}, prodRepo, whRepo)

	_, err := uc.RecordInbound(ctx, testUserID, dto.MovementCreateRequest{ProductID: 1, WarehouseID: 1, Quantity: 8})
	require.NoError(t, err)
	_, err = uc.RecordInbound(ctx, testUserID, dto.MovementCreateRequest{ProductID: 1, WarehouseID: 2, Quantity: 3})
	require.NoError(t, err)
	_, err = uc.RecordOutbound(ctx, testUserID, dto.MovementCreateRequest{ProductID: 1, WarehouseID: 2, Quantity: 3})
	require.NoError(t, err)

	assert.Equal(t, int64(8), balanceOf(t, store, 1, 1))
	assert.Equal(t, int64(0), balanceOf(t, store, 1, 2))
}

// Reenviar una solicitud idéntica no se deduplica: crea un segundo
// movimiento y aplica el delta dos veces (comportamiento esperado).
func TestReplay_NoDeduplica(t *testing.T) {
	uc, store := newTestLedger(t)
	ctx := context.Background()

	in := inbound(5)
	for i := 0; i < 2; i++ {
		_, err := uc.RecordInbound(ctx, testUserID, in)
		require.NoError(t, err, fmt.Sprintf("intento %d", i))
	}
	assert.Equal(t, int64(10), balanceOf(t, store, 1, 1))
	assert.Len(t, store.movements, 2)
	assert.NotEqual(t, store.movements[0].TransactionID, store.movements[1].TransactionID)
}
