package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/movemais/estoque-api/internal/application/dto"
	"github.com/movemais/estoque-api/internal/application/ledger"
	"github.com/movemais/estoque-api/internal/domain"
	"github.com/rs/zerolog/log"
)

// MovementHandler maneja las peticiones HTTP de movimientos de stock (protegido).
type MovementHandler struct {
	ledger *ledger.LedgerUseCase
	reader *ledger.MovementReader
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *ledger.LedgerUseCase, reader *ledger.MovementReader) *MovementHandler {
	return &MovementHandler{ledger: uc, reader: reader}
}

// RecordInbound godoc
// @Summary      Registrar entrada de stock
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementCreateRequest  true  "product_id, warehouse_id, quantity, note (opcional)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements/inbound [post]
func (h *MovementHandler) RecordInbound(c *fiber.Ctx) error {
	return h.record(c, h.ledger.RecordInbound)
}

// RecordOutbound godoc
// @Summary      Registrar salida de stock
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementCreateRequest  true  "product_id, warehouse_id, quantity, note (opcional)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/outbound [post]
func (h *MovementHandler) RecordOutbound(c *fiber.Ctx) error {
	return h.record(c, h.ledger.RecordOutbound)
}

// record parsea el body, resuelve la identidad autenticada y delega en la
// operación del libro (entrada o salida). El mapeo de errores es común.
func (h *MovementHandler) record(
	c *fiber.Ctx,
	op func(ctx context.Context, userID string, in dto.MovementCreateRequest) (*dto.MovementResponse, error),
) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.MovementCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity debe ser mayor que cero"})
	}

	resp, err := op(c.Context(), userID, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto o bodega no encontrado"})
		case errors.Is(err, domain.ErrNoStock):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_STOCK", Message: "no hay stock del producto en la bodega indicada"})
		case errors.Is(err, domain.ErrInsufficientStock):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "saldo insuficiente"})
		}
		log.Error().Err(err).
			Int64("product_id", in.ProductID).
			Int64("warehouse_id", in.WarehouseID).
			Str("user_id", userID).
			Msg("registrar movimiento de stock")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List godoc
// @Summary      Listar movimientos de stock
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (1-100, default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		// Parámetros inválidos se normalizan, no se rechazan.
		page = dto.PageRequest{}
	}
	out, err := h.reader.List(c.Context(), page)
	if err != nil {
		log.Error().Err(err).Msg("listar movimientos de stock")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(out)
}
