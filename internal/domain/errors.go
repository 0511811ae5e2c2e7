package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// Reglas de negocio del libro de stock.
	ErrNoStock           = errors.New("no hay stock del producto en la bodega indicada")
	ErrInsufficientStock = errors.New("saldo insuficiente para la salida de stock")
)

// IsBusinessRule indica si el error es una violación de regla de negocio
// del libro de stock (distinta de NotFound para el mapeo HTTP).
func IsBusinessRule(err error) bool {
	return errors.Is(err, ErrNoStock) || errors.Is(err, ErrInsufficientStock)
}
