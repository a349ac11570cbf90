package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/sales-insight/internal/application/dto"
	"github.com/tu-usuario/sales-insight/internal/domain"
	"github.com/tu-usuario/sales-insight/internal/domain/sales"
	"github.com/tu-usuario/sales-insight/pkg/logger"
)

// respondError mapea errores de dominio a códigos HTTP. Los errores no
// reconocidos se registran con su contexto y responden un mensaje genérico:
// el texto crudo de la fuente de datos nunca llega al cliente.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	switch {
	case errors.Is(err, domain.ErrYearRequired):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "YEAR_REQUIRED", Message: "esta consulta requiere el año",
		})
	case errors.Is(err, domain.ErrUnknownIntent):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "UNKNOWN_INTENT", Message: "intent no soportado",
		})
	case errors.Is(err, domain.ErrUnknownDimension):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "UNKNOWN_DIMENSION", Message: "dimensión no soportada",
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_INPUT", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "UNAUTHORIZED", Message: "credenciales inválidas",
		})
	default:
		log.Error().
			Str("request_id", GetRequestID(c)).
			Str("path", c.Path()).
			Err(err).
			Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: "error interno del servidor",
		})
	}
}

// queryFilter parsea el filtro común de los reportes desde la query string.
func queryFilter(c *fiber.Ctx) (sales.Filter, error) {
	var q dto.ReportFilterQuery
	if err := c.QueryParser(&q); err != nil {
		return sales.Filter{}, fmt.Errorf("%w: parámetros de consulta", domain.ErrInvalidInput)
	}
	return q.ToFilter()
}
