package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/sales-insight/internal/application/reports"
	"github.com/tu-usuario/sales-insight/pkg/logger"
)

// ReportHandler maneja los endpoints de reportes comerciales.
type ReportHandler struct {
	profitability *reports.ProfitabilityUseCase
	performance   *reports.PerformanceUseCase
	trend         *reports.TrendUseCase
	customers     *reports.CustomersUseCase
	potential     *reports.PotentialUseCase
	pdf           reports.ProfitabilityPDFGenerator
	log           *logger.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(
	profitability *reports.ProfitabilityUseCase,
	performance *reports.PerformanceUseCase,
	trend *reports.TrendUseCase,
	customers *reports.CustomersUseCase,
	potential *reports.PotentialUseCase,
	pdf reports.ProfitabilityPDFGenerator,
	log *logger.Logger,
) *ReportHandler {
	return &ReportHandler{
		profitability: profitability,
		performance:   performance,
		trend:         trend,
		customers:     customers,
		potential:     potential,
		pdf:           pdf,
		log:           log,
	}
}

// RepPerformance godoc
// @Summary      Desempeño de vendedores
// @Description  KPIs globales del período y desglose por vendedor (ingreso,
//               utilidad, margen, clientes), neto de devoluciones.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        year        query  int     false  "Año"
// @Param        month       query  int     false  "Mes (1-12)"
// @Param        sales_rep   query  string  false  "Vendedor"
// @Param        customer    query  string  false  "Cliente"
// @Param        supplier    query  string  false  "Proveedor"
// @Success      200  {object}  dto.RepPerformanceDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/rep-performance [get]
func (h *ReportHandler) RepPerformance(c *fiber.Ctx) error {
	log := h.log.WithReport("rep-performance")
	f, err := queryFilter(c)
	if err != nil {
		return respondError(c, log, err)
	}
	rep, err := h.performance.RepPerformance(c.Context(), f)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(rep)
}

// RepComparison godoc
// @Summary      Comparación de dos vendedores
// @Description  Los dos vendedores lado a lado sobre la misma población
//               (ingreso, utilidad, clientes, unidades, litros).
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        rep_a       query  string  true   "Primer vendedor"
// @Param        rep_b       query  string  true   "Segundo vendedor"
// @Param        start_date  query  string  false  "Inicio (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Fin (YYYY-MM-DD)"
// @Param        supplier    query  string  false  "Proveedor"
// @Param        category    query  string  false  "Categoría"
// @Success      200  {object}  dto.RepComparisonDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/rep-comparison [get]
func (h *ReportHandler) RepComparison(c *fiber.Ctx) error {
	log := h.log.WithReport("rep-comparison")
	f, err := queryFilter(c)
	if err != nil {
		return respondError(c, log, err)
	}
	rep, err := h.performance.RepComparison(c.Context(), c.Query("rep_a"), c.Query("rep_b"), f)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(rep)
}

// ProductProfitability godoc
// @Summary      Rentabilidad por producto
// @Description  Rollup de ingreso y utilidad por producto canónico con el
//               costo real atribuido, más bloque de KPIs. Con ?format=pdf
//               devuelve el reporte como PDF descargable.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Produce      application/pdf
// @Param        product        query  string  false  "Producto (nombre canónico)"
// @Param        category       query  string  false  "Categoría"
// @Param        product_group  query  string  false  "Grupo de producto"
// @Param        supplier       query  string  false  "Proveedor"
// @Param        start_date     query  string  false  "Inicio (YYYY-MM-DD)"
// @Param        end_date       query  string  false  "Fin (YYYY-MM-DD)"
// @Param        period         query  string  false  "Atajo: this_month | last_month | this_year"
// @Param        format         query  string  false  "pdf para versión descargable"
// @Success      200  {object}  dto.ProductProfitabilityDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/product-profitability [get]
func (h *ReportHandler) ProductProfitability(c *fiber.Ctx) error {
	log := h.log.WithReport("product-profitability")
	f, err := queryFilter(c)
	if err != nil {
		return respondError(c, log, err)
	}
	rep, err := h.profitability.ProductProfitability(c.Context(), f)
	if err != nil {
		return respondError(c, log, err)
	}

	if c.Query("format") == "pdf" {
		doc, err := h.pdf.Generate(c.Context(), rep, time.Now())
		if err != nil {
			return respondError(c, log, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="rentabilidad-productos.pdf"`)
		return c.Send(doc)
	}
	return c.JSON(rep)
}

// ProductComparison godoc
// @Summary      Comparación mensual de un producto entre años
// @Description  Serie de unidades del producto por mes en los años de la
//               ventana comercial; 12 filas, meses sin venta en cero.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        product  query  string  true  "Producto (nombre canónico)"
// @Success      200  {object}  dto.ProductComparisonDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/product-comparison [get]
func (h *ReportHandler) ProductComparison(c *fiber.Ctx) error {
	log := h.log.WithReport("product-comparison")
	f, err := queryFilter(c)
	if err != nil {
		return respondError(c, log, err)
	}
	product := c.Query("product")
	f.Product = ""
	rep, err := h.trend.ProductComparison(c.Context(), product, f)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(rep)
}

// MonthlyTrend godoc
// @Summary      Tendencia mensual
// @Description  Serie (año, mes) de ingreso y utilidad netos, cronológica.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MonthlyTrendDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/monthly-trend [get]
func (h *ReportHandler) MonthlyTrend(c *fiber.Ctx) error {
	log := h.log.WithReport("monthly-trend")
	f, err := queryFilter(c)
	if err != nil {
		return respondError(c, log, err)
	}
	rep, err := h.trend.MonthlyTrend(c.Context(), f)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(rep)
}

// ABC godoc
// @Summary      Clasificación ABC de clientes
// @Description  Pareto de cartera: participación y acumulado por cliente,
//               bandas A (≤80%), B (≤95%) y C.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ABCReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/abc [get]
func (h *ReportHandler) ABC(c *fiber.Ctx) error {
	log := h.log.WithReport("abc")
	f, err := queryFilter(c)
	if err != nil {
		return respondError(c, log, err)
	}
	rep, err := h.customers.ABC(c.Context(), f)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(rep)
}

// Churn godoc
// @Summary      Clientes perdidos y nuevos
// @Description  Diferencia de conjuntos entre el año anterior y el actual,
//               con el ingreso perdido de los clientes que no volvieron.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ChurnReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/churn [get]
func (h *ReportHandler) Churn(c *fiber.Ctx) error {
	log := h.log.WithReport("churn")
	f, err := queryFilter(c)
	if err != nil {
		return respondError(c, log, err)
	}
	rep, err := h.customers.Churn(c.Context(), f)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(rep)
}

// Retention godoc
// @Summary      Retención de cartera por vendedor
// @Description  Porcentaje de clientes del año anterior que siguen comprando
//               este año, por vendedor.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RetentionReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/retention [get]
func (h *ReportHandler) Retention(c *fiber.Ctx) error {
	log := h.log.WithReport("retention")
	f, err := queryFilter(c)
	if err != nil {
		return respondError(c, log, err)
	}
	rep, err := h.customers.Retention(c.Context(), f)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(rep)
}

// OrderRisk godoc
// @Summary      Riesgo de pérdida por ritmo de pedidos
// @Description  Intervalo promedio entre pedidos por cliente y días desde el
//               último; bandas safe / risky / very_risky. Clientes con un
//               único pedido quedan fuera.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OrderRiskReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/order-risk [get]
func (h *ReportHandler) OrderRisk(c *fiber.Ctx) error {
	log := h.log.WithReport("order-risk")
	f, err := queryFilter(c)
	if err != nil {
		return respondError(c, log, err)
	}
	rep, err := h.customers.OrderRisk(c.Context(), f)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(rep)
}

// ProductPotential godoc
// @Summary      Potencial de productos de un cliente
// @Description  Productos que el cliente ya compra contra el resto del
//               surtido bajo el filtro.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        customer  query  string  true  "Cliente"
// @Success      200  {object}  dto.PotentialDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/product-potential [get]
func (h *ReportHandler) ProductPotential(c *fiber.Ctx) error {
	log := h.log.WithReport("product-potential")
	f, err := queryFilter(c)
	if err != nil {
		return respondError(c, log, err)
	}
	customer := c.Query("customer")
	f.Customer = ""
	rep, err := h.potential.ProductPotential(c.Context(), customer, f)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(rep)
}

// CustomerPotential godoc
// @Summary      Potencial de clientes de un producto
// @Description  Clientes que ya compran el producto contra el resto de la
//               cartera bajo el filtro.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        product  query  string  true  "Producto (nombre canónico)"
// @Success      200  {object}  dto.PotentialDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/customer-potential [get]
func (h *ReportHandler) CustomerPotential(c *fiber.Ctx) error {
	log := h.log.WithReport("customer-potential")
	f, err := queryFilter(c)
	if err != nil {
		return respondError(c, log, err)
	}
	product := c.Query("product")
	f.Product = ""
	rep, err := h.potential.CustomerPotential(c.Context(), product, f)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(rep)
}

// PriceElasticity godoc
// @Summary      Elasticidad de precio de un producto
// @Description  Serie mensual de precio unitario promedio y unidades del
//               producto; líneas con cantidad o monto no positivos no
//               entran al promedio.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        product  query  string  true  "Producto (nombre canónico)"
// @Success      200  {object}  dto.ElasticityReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/price-elasticity [get]
func (h *ReportHandler) PriceElasticity(c *fiber.Ctx) error {
	log := h.log.WithReport("price-elasticity")
	f, err := queryFilter(c)
	if err != nil {
		return respondError(c, log, err)
	}
	product := c.Query("product")
	f.Product = ""
	rep, err := h.trend.PriceElasticity(c.Context(), product, f)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(rep)
}

// SalesMatrix godoc
// @Summary      Matriz de ventas categoría → grupo → mes
// @Description  Ingreso neto mensual anidado por categoría y grupo de
//               producto.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SalesMatrixDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/sales-matrix [get]
func (h *ReportHandler) SalesMatrix(c *fiber.Ctx) error {
	log := h.log.WithReport("sales-matrix")
	f, err := queryFilter(c)
	if err != nil {
		return respondError(c, log, err)
	}
	rep, err := h.trend.SalesMatrix(c.Context(), f)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(rep)
}
