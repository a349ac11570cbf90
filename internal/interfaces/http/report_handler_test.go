package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/sales-insight/internal/application/reports"
	"github.com/tu-usuario/sales-insight/internal/domain/repository"
	"github.com/tu-usuario/sales-insight/internal/domain/sales"
	apphttp "github.com/tu-usuario/sales-insight/internal/interfaces/http"
	"github.com/tu-usuario/sales-insight/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del repositorio para handlers
// ──────────────────────────────────────────────────────────────────────────────

type stubRepo struct {
	rows []sales.Row
	err  error
}

func (s *stubRepo) CommercialRows(_ context.Context, f sales.Filter) ([]sales.Row, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]sales.Row, 0, len(s.rows))
	for _, r := range s.rows {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubRepo) AllRows(ctx context.Context, f sales.Filter) ([]sales.Row, error) {
	return s.CommercialRows(ctx, f)
}

func (s *stubRepo) FallbackCosts(context.Context) (sales.FallbackCosts, error) {
	return sales.FallbackCosts{}, nil
}

func (s *stubRepo) CanonicalNames(context.Context) (map[string]string, error) {
	return map[string]string{}, nil
}

func (s *stubRepo) Distinct(context.Context, repository.Dimension, sales.Filter) ([]string, error) {
	return []string{"CARLOS"}, nil
}

func testClock() time.Time {
	return time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func buildReportApp(repo *stubRepo) *fiber.App {
	log := testLogger()
	profitability := reports.NewProfitabilityUseCase(repo, testClock)
	performance := reports.NewPerformanceUseCase(repo, testClock)
	trend := reports.NewTrendUseCase(repo, sales.DefaultPolicy(), testClock)
	customers := reports.NewCustomersUseCase(repo, sales.DefaultPolicy(), testClock)
	potential := reports.NewPotentialUseCase(repo, testClock)

	h := apphttp.NewReportHandler(profitability, performance, trend, customers, potential, nil, log)
	dims := apphttp.NewDimensionHandler(reports.NewDimensionsUseCase(repo, testClock), log)

	app := fiber.New()
	app.Get("/api/reports/product-profitability", h.ProductProfitability)
	app.Get("/api/reports/rep-comparison", h.RepComparison)
	app.Get("/api/dimensions/:dimension", dims.Values)
	return app
}

func get(t *testing.T, app *fiber.App, path string) *stdhttp.Response {
	t.Helper()
	req := httptest.NewRequest(stdhttp.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestProductProfitability_JSON(t *testing.T) {
	repo := &stubRepo{
		rows: []sales.Row{
			{
				Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Year: 2025, Month: 3,
				CustomerName: "BAKKAL A", ProductCode: "P1", ProductName: "VODKA X",
				Quantity: decimal.NewFromInt(10), Amount: decimal.NewFromInt(200),
				Cost:        decimal.NewNullDecimal(decimal.NewFromInt(6)),
				ReceiptType: sales.ReceiptWholesaleSale,
			},
		},
	}
	app := buildReportApp(repo)

	resp := get(t, app, "/api/reports/product-profitability?year=2025")
	defer resp.Body.Close()

	assert.Equal(t, stdhttp.StatusOK, resp.StatusCode)

	var body struct {
		Summary struct {
			Revenue   string `json:"revenue"`
			Profit    string `json:"profit"`
			MarginPct string `json:"margin_pct"`
		} `json:"summary"`
		ProductCount int `json:"product_count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "200", body.Summary.Revenue)
	assert.Equal(t, "140", body.Summary.Profit)
	assert.Equal(t, "70", body.Summary.MarginPct)
	assert.Equal(t, 1, body.ProductCount)
}

func TestProductProfitability_FechaInvalida_Retorna400(t *testing.T) {
	app := buildReportApp(&stubRepo{})

	resp := get(t, app, "/api/reports/product-profitability?start_date=ayer")
	defer resp.Body.Close()

	assert.Equal(t, stdhttp.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_INPUT")
}

func TestProductProfitability_FallaDeLaFuente_Retorna500Generico(t *testing.T) {
	app := buildReportApp(&stubRepo{err: errors.New("pgx: connection refused host=10.0.0.7")})

	resp := get(t, app, "/api/reports/product-profitability")
	defer resp.Body.Close()

	assert.Equal(t, stdhttp.StatusInternalServerError, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "error interno del servidor")
	assert.NotContains(t, string(body), "pgx", "el error crudo de la fuente no debe llegar a la respuesta")
}

func TestRepComparison_SinVendedores_Retorna400(t *testing.T) {
	app := buildReportApp(&stubRepo{})

	resp := get(t, app, "/api/reports/rep-comparison?rep_a=CARLOS")
	defer resp.Body.Close()

	assert.Equal(t, stdhttp.StatusBadRequest, resp.StatusCode)
}

func TestDimensions_Desconocida_Retorna400(t *testing.T) {
	app := buildReportApp(&stubRepo{})

	resp := get(t, app, "/api/dimensions/planetas")
	defer resp.Body.Close()

	assert.Equal(t, stdhttp.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UNKNOWN_DIMENSION")
}

func TestDimensions_Conocida_ListaValores(t *testing.T) {
	app := buildReportApp(&stubRepo{})

	resp := get(t, app, "/api/dimensions/reps")
	defer resp.Body.Close()

	assert.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "CARLOS")
}
