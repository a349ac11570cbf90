package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/sales-insight/internal/application/auth"
	"github.com/tu-usuario/sales-insight/internal/application/nlu"
	"github.com/tu-usuario/sales-insight/internal/application/reports"
	"github.com/tu-usuario/sales-insight/internal/domain/sales"
	infrapdf "github.com/tu-usuario/sales-insight/internal/infrastructure/pdf"
	"github.com/tu-usuario/sales-insight/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/sales-insight/internal/interfaces/http"
	"github.com/tu-usuario/sales-insight/pkg/config"
	"github.com/tu-usuario/sales-insight/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	policy := sales.Policy{
		Years:              cfg.Report.Years,
		ServiceProductName: cfg.Report.ServiceProductName,
		InternalSupplier:   cfg.Report.InternalSupplier,
	}
	salesRepo := postgres.NewSalesRepo(pool, policy)

	profitabilityUC := reports.NewProfitabilityUseCase(salesRepo, time.Now)
	performanceUC := reports.NewPerformanceUseCase(salesRepo, time.Now)
	trendUC := reports.NewTrendUseCase(salesRepo, policy, time.Now)
	customersUC := reports.NewCustomersUseCase(salesRepo, policy, time.Now)
	potentialUC := reports.NewPotentialUseCase(salesRepo, time.Now)
	dimensionsUC := reports.NewDimensionsUseCase(salesRepo, time.Now)
	nluUC := nlu.NewUseCase(salesRepo, policy)

	pdfGenerator := infrapdf.NewMarotoProfitabilityGenerator()

	authUC := auth.NewUseCase(
		auth.Credential{
			Username:     cfg.Auth.User,
			PasswordHash: cfg.Auth.PasswordHash,
		},
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 70, // mayor que el statement_timeout de la fuente
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Sales Insight API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Profitability: profitabilityUC,
		Performance:   performanceUC,
		Trend:         trendUC,
		Customers:     customersUC,
		Potential:     potentialUC,
		Dimensions:    dimensionsUC,
		NLU:           nluUC,
		AuthUC:        authUC,
		PDF:           pdfGenerator,
		JWTSecret:     cfg.JWT.Secret,
		Log:           log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
