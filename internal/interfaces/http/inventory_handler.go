package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-inventario/internal/application/dto"
	"github.com/jhoicas/retail-inventario/internal/application/inventory"
)

// InventoryHandler expone el libro de movimientos y el cambio de precios (protegido).
type InventoryHandler struct {
	ledger        *inventory.LedgerUseCase
	prices        *inventory.PriceUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, prices *inventory.PriceUseCase, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, prices: prices, replenishment: replenishment}
}

// ApplyMovement godoc
// @Summary      Aplicar movimiento de stock
// @Description  cantidad > 0 registra ENTRADA, cantidad < 0 registra SALIDA.
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ApplyMovementRequest  true  "articulo_id, tienda_id, cantidad, precio opcional"
// @Success      200   {object}  dto.ApplyMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventario/movimientos [post]
func (h *InventoryHandler) ApplyMovement(c *fiber.Ctx) error {
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.ledger.ApplyMovement(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Transfer godoc
// @Summary      Traspaso entre tiendas
// @Description  Registra TRANSFERENCIA_SALIDA y TRANSFERENCIA_ENTRADA en una sola transacción.
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.TransferRequest  true  "articulo_id, tienda_origen_id, tienda_destino_id, cantidad"
// @Success      200   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/traspasos [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.ledger.Transfer(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// BulkApply godoc
// @Summary      Actualización masiva de stock
// @Description  Cada artículo se aplica por separado; los errores de un ítem no revierten a los demás.
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.BulkRequest  true  "tienda_id y lista de articulos"
// @Success      200   {object}  dto.BulkResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventario/masivo [post]
func (h *InventoryHandler) BulkApply(c *fiber.Ctx) error {
	var in dto.BulkRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.ledger.BulkApply(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdatePrice godoc
// @Summary      Cambiar precio de venta
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.PriceUpdateRequest  true  "articulo_id, tienda_id, nuevo_precio"
// @Success      200   {object}  dto.PriceUpdateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventario/precios [put]
func (h *InventoryHandler) UpdatePrice(c *fiber.Ctx) error {
	var in dto.PriceUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.prices.UpdatePrice(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetBalance godoc
// @Summary      Saldo de un artículo en una tienda
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        articulo_id  path      string  true  "ID del artículo"
// @Param        tienda_id    path      string  true  "ID de la tienda"
// @Success      200          {object}  dto.BalanceResponse
// @Failure      404          {object}  dto.ErrorResponse
// @Router       /api/inventario/{articulo_id}/tiendas/{tienda_id} [get]
func (h *InventoryHandler) GetBalance(c *fiber.Ctx) error {
	out, err := h.ledger.GetBalance(c.Context(), c.Params("articulo_id"), c.Params("tienda_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Movimientos de un artículo en una tienda
// @Description  Más recientes primero.
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        articulo_id  path      string  true   "ID del artículo"
// @Param        tienda_id    path      string  true   "ID de la tienda"
// @Param        limit        query     int     false  "Máximo 100 (default 20)"
// @Param        offset       query     int     false  "Desplazamiento"
// @Success      200          {object}  dto.MovementListResponse
// @Failure      404          {object}  dto.ErrorResponse
// @Router       /api/inventario/{articulo_id}/tiendas/{tienda_id}/movimientos [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de paginación inválidos"})
	}
	out, err := h.ledger.ListMovements(c.Context(), c.Params("articulo_id"), c.Params("tienda_id"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// VerifyBalance godoc
// @Summary      Verificar saldo contra el libro
// @Description  Compara stock_actual con el stock_nuevo del último movimiento.
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        articulo_id  path      string  true  "ID del artículo"
// @Param        tienda_id    path      string  true  "ID de la tienda"
// @Success      200          {object}  dto.VerifyBalanceResponse
// @Failure      404          {object}  dto.ErrorResponse
// @Router       /api/inventario/{articulo_id}/tiendas/{tienda_id}/verificacion [get]
func (h *InventoryHandler) VerifyBalance(c *fiber.Ctx) error {
	out, err := h.ledger.VerifyBalance(c.Context(), c.Params("articulo_id"), c.Params("tienda_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición de una tienda
// @Description  Artículos en o bajo su stock mínimo con la cantidad sugerida de pedido,
//
//	ordenados por margen y déficit.
//
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        tienda_id  path      string  true  "ID de la tienda"
// @Success      200        {array}   dto.ReplenishmentSuggestion
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/inventario/reposicion/{tienda_id} [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	out, err := h.replenishment.GenerateReplenishmentList(c.Context(), c.Params("tienda_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
