package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/movemais/estoque-api/internal/application/auth"
	"github.com/movemais/estoque-api/internal/application/ledger"
	"github.com/movemais/estoque-api/internal/application/usecase"
	"github.com/movemais/estoque-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC      *usecase.ProductUseCase
	WarehouseUC    *usecase.WarehouseUseCase
	Ledger         *ledger.LedgerUseCase
	MovementReader *ledger.MovementReader
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)

	// Movimientos de stock: escribir exige rol admin o bodeguero; listar
	// solo exige token.
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.Ledger, deps.MovementReader)
	movements.Post("/inbound", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), movementHandler.RecordInbound)
	movements.Post("/outbound", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), movementHandler.RecordOutbound)
	movements.Get("/", movementHandler.List)
}
