package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/sales-insight/internal/application/auth"
	"github.com/tu-usuario/sales-insight/internal/application/nlu"
	"github.com/tu-usuario/sales-insight/internal/application/reports"
	"github.com/tu-usuario/sales-insight/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Profitability *reports.ProfitabilityUseCase
	Performance   *reports.PerformanceUseCase
	Trend         *reports.TrendUseCase
	Customers     *reports.CustomersUseCase
	Potential     *reports.PotentialUseCase
	Dimensions    *reports.DimensionsUseCase
	NLU           *nlu.UseCase
	AuthUC        *auth.UseCase
	PDF           reports.ProfitabilityPDFGenerator
	JWTSecret     string
	Log           *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Reportes (protegido)
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(
		deps.Profitability, deps.Performance, deps.Trend,
		deps.Customers, deps.Potential, deps.PDF, deps.Log,
	)
	reportsGroup.Get("/rep-performance", reportHandler.RepPerformance)
	reportsGroup.Get("/rep-comparison", reportHandler.RepComparison)
	reportsGroup.Get("/product-profitability", reportHandler.ProductProfitability)
	reportsGroup.Get("/product-comparison", reportHandler.ProductComparison)
	reportsGroup.Get("/monthly-trend", reportHandler.MonthlyTrend)
	reportsGroup.Get("/abc", reportHandler.ABC)
	reportsGroup.Get("/churn", reportHandler.Churn)
	reportsGroup.Get("/retention", reportHandler.Retention)
	reportsGroup.Get("/order-risk", reportHandler.OrderRisk)
	reportsGroup.Get("/product-potential", reportHandler.ProductPotential)
	reportsGroup.Get("/customer-potential", reportHandler.CustomerPotential)
	reportsGroup.Get("/price-elasticity", reportHandler.PriceElasticity)
	reportsGroup.Get("/sales-matrix", reportHandler.SalesMatrix)

	// Dimensiones para poblar filtros (protegido)
	dimensionHandler := NewDimensionHandler(deps.Dimensions, deps.Log)
	protected.Get("/dimensions/:dimension", dimensionHandler.Values)

	// Puente de lenguaje natural (protegido)
	nluHandler := NewNLUHandler(deps.NLU, deps.Log)
	protected.Post("/nlu/query", nluHandler.Query)
}
