package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo. Es dato maestro de
// solo lectura para el libro de stock: las cantidades viven en StockBalance.
type Product struct {
	ID        int64
	SKU       string // código único
	Name      string
	Price     decimal.Decimal // precio unitario de venta
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
