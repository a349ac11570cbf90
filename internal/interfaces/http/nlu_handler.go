package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/sales-insight/internal/application/dto"
	"github.com/tu-usuario/sales-insight/internal/application/nlu"
	"github.com/tu-usuario/sales-insight/pkg/logger"
)

// NLUHandler maneja el puente de consultas en lenguaje natural.
type NLUHandler struct {
	uc  *nlu.UseCase
	log *logger.Logger
}

func NewNLUHandler(uc *nlu.UseCase, log *logger.Logger) *NLUHandler {
	return &NLUHandler{uc: uc, log: log}
}

// Query godoc
// @Summary      Consulta en lenguaje natural
// @Description  Recibe un intent ya resuelto con sus slots y devuelve el
//               valor resumen más una frase legible. Intents: sales-volume-
//               liters, revenue-total, monthly-breakdown, channel-
//               distribution, year-comparison, top-products, capabilities.
// @Tags         nlu
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        request  body  dto.NLUQueryRequest  true  "Intent + slots"
// @Success      200  {object}  dto.NLUQueryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/nlu/query [post]
func (h *NLUHandler) Query(c *fiber.Ctx) error {
	var req dto.NLUQueryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo JSON inválido",
		})
	}
	resp, err := h.uc.Query(c.Context(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(resp)
}
