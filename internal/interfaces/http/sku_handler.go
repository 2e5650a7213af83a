package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-inventario/internal/application/dto"
	"github.com/jhoicas/retail-inventario/internal/application/usecase"
)

// SKUHandler expone el generador de SKU sin reservar el código.
type SKUHandler struct {
	uc *usecase.ArticleUseCase
}

// NewSKUHandler construye el handler.
func NewSKUHandler(uc *usecase.ArticleUseCase) *SKUHandler {
	return &SKUHandler{uc: uc}
}

// Generate godoc
// @Summary      Proponer SKU
// @Description  is_unique refleja el último sondeo; la unicidad se garantiza solo al crear el artículo.
// @Tags         sku
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.GenerateSKURequest  true  "Prefijos directos o producto_master_id + color_id"
// @Success      200   {object}  dto.GenerateSKUResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/sku/generar [post]
func (h *SKUHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateSKURequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.GenerateSKU(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
