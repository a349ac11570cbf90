package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/sales-insight/internal/application/reports"
	"github.com/tu-usuario/sales-insight/pkg/logger"
)

// DimensionHandler maneja la enumeración de dimensiones para los filtros.
type DimensionHandler struct {
	uc  *reports.DimensionsUseCase
	log *logger.Logger
}

func NewDimensionHandler(uc *reports.DimensionsUseCase, log *logger.Logger) *DimensionHandler {
	return &DimensionHandler{uc: uc, log: log}
}

// Values godoc
// @Summary      Valores distintos de una dimensión
// @Description  Lista los valores de la dimensión bajo los filtros vigentes:
//               reps | customers | suppliers | categories | product-groups |
//               products (nombres canónicos).
// @Tags         dimensions
// @Security     Bearer
// @Produce      json
// @Param        dimension  path   string  true   "Dimensión"
// @Param        year       query  int     false  "Año"
// @Param        sales_rep  query  string  false  "Vendedor"
// @Success      200  {object}  dto.DimensionValuesDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dimensions/{dimension} [get]
func (h *DimensionHandler) Values(c *fiber.Ctx) error {
	f, err := queryFilter(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	values, err := h.uc.Values(c.Context(), c.Params("dimension"), f)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(values)
}
