package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-inventario/internal/application/inventory"
	"github.com/jhoicas/retail-inventario/internal/application/usecase"
	"github.com/jhoicas/retail-inventario/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC        *inventory.LedgerUseCase
	PriceUC         *inventory.PriceUseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	ArticleUC       *usecase.ArticleUseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	writers := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleBodeguero, entity.RoleVendedor)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Libro de inventario
	inv := protected.Group("/inventario")
	invHandler := NewInventoryHandler(deps.LedgerUC, deps.PriceUC, deps.ReplenishmentUC)
	inv.Post("/movimientos", writers, invHandler.ApplyMovement)
	inv.Post("/traspasos", writers, invHandler.Transfer)
	inv.Post("/masivo", writers, invHandler.BulkApply)
	inv.Put("/precios", adminOnly, invHandler.UpdatePrice)
	inv.Get("/reposicion/:tienda_id", anyRole, invHandler.GetReplenishmentList)
	inv.Get("/:articulo_id/tiendas/:tienda_id", anyRole, invHandler.GetBalance)
	inv.Get("/:articulo_id/tiendas/:tienda_id/movimientos", anyRole, invHandler.ListMovements)
	inv.Get("/:articulo_id/tiendas/:tienda_id/verificacion", anyRole, invHandler.VerifyBalance)

	// SKU y artículos
	skuHandler := NewSKUHandler(deps.ArticleUC)
	protected.Post("/sku/generar", writers, skuHandler.Generate)

	articles := protected.Group("/articulos")
	articleHandler := NewArticleHandler(deps.ArticleUC)
	articles.Post("/", adminOnly, articleHandler.Create)
	articles.Get("/:id", anyRole, articleHandler.GetByID)
}
