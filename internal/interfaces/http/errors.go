package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-inventario/internal/application/dto"
	"github.com/jhoicas/retail-inventario/internal/domain"
)

var statusByCode = map[string]int{
	domain.CodeValidation:        fiber.StatusBadRequest,
	domain.CodeInvalidQuantity:   fiber.StatusUnprocessableEntity,
	domain.CodeInvalidPrice:      fiber.StatusUnprocessableEntity,
	domain.CodeInsufficientStock: fiber.StatusConflict,
	domain.CodeConflict:          fiber.StatusConflict,
	domain.CodeNotFound:          fiber.StatusNotFound,
	domain.CodeStoreUnavailable:  fiber.StatusServiceUnavailable,
	domain.CodeUnauthorized:      fiber.StatusUnauthorized,
	domain.CodeForbidden:         fiber.StatusForbidden,
}

// writeError traduce un error del dominio a status HTTP + dto.ErrorResponse.
// Los errores internos no exponen el detalle al cliente.
func writeError(c *fiber.Ctx, err error) error {
	code := domain.Code(err)
	status, ok := statusByCode[code]
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: domain.CodeInternal, Message: "error interno"})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: domain.CodeValidation, Message: "cuerpo inválido"})
}
