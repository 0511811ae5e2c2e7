package dto

import "time"

// MovementCreateRequest body para POST /api/movements/inbound y /outbound.
type MovementCreateRequest struct {
	ProductID   int64  `json:"product_id" validate:"required"`
	WarehouseID int64  `json:"warehouse_id" validate:"required"`
	Quantity    int64  `json:"quantity" validate:"required,gt=0"`
	Note        string `json:"note,omitempty" validate:"omitempty,max=500"`
}

// MovementResponse proyección de un movimiento registrado.
type MovementResponse struct {
	ID              int64     `json:"id"`
	Kind            string    `json:"kind"` // INBOUND | OUTBOUND
	ProductID       int64     `json:"product_id"`
	WarehouseID     int64     `json:"warehouse_id"`
	Quantity        int64     `json:"quantity"`
	OccurredAt      time.Time `json:"occurred_at"` // RFC 3339 con offset
	Note            string    `json:"note,omitempty"`
	ResponsibleUser string    `json:"responsible_user"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
