package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementKindInbound  = "INBOUND"  // entrada
	MovementKindOutbound = "OUTBOUND" // salida
)

// StockMovement representa un movimiento de stock (entrada o salida).
// Es inmutable una vez creado: bitácora append-only, nunca se actualiza
// ni se elimina. Cada movimiento corresponde exactamente a una mutación
// de StockBalance hecha en la misma transacción.
type StockMovement struct {
	ID              int64
	TransactionID   string // uuid que agrupa la operación que lo generó
	Kind            string
	ProductID       int64
	WarehouseID     int64
	Quantity        int64 // siempre estrictamente positiva
	OccurredAt      time.Time
	Note            string // opcional, vacío = NULL
	ResponsibleUser string // identidad autenticada del solicitante
}
