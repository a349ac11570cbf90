package nlu_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/sales-insight/internal/application/dto"
	"github.com/tu-usuario/sales-insight/internal/application/nlu"
	"github.com/tu-usuario/sales-insight/internal/domain"
	"github.com/tu-usuario/sales-insight/internal/domain/repository"
	"github.com/tu-usuario/sales-insight/internal/domain/sales"
)

type fakeRepo struct {
	rows       []sales.Row
	canonical  map[string]string
	lastFilter sales.Filter
}

func (f *fakeRepo) CommercialRows(ctx context.Context, flt sales.Filter) ([]sales.Row, error) {
	return f.AllRows(ctx, flt)
}

func (f *fakeRepo) AllRows(_ context.Context, flt sales.Filter) ([]sales.Row, error) {
	f.lastFilter = flt
	out := make([]sales.Row, 0, len(f.rows))
	for _, r := range f.rows {
		if flt.Matches(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) FallbackCosts(context.Context) (sales.FallbackCosts, error) {
	return sales.FallbackCosts{}, nil
}

func (f *fakeRepo) CanonicalNames(context.Context) (map[string]string, error) {
	if f.canonical == nil {
		return map[string]string{}, nil
	}
	return f.canonical, nil
}

func (f *fakeRepo) Distinct(context.Context, repository.Dimension, sales.Filter) ([]string, error) {
	return nil, nil
}

func volumeRow(year, month int, code string, liters float64, rt sales.ReceiptType) sales.Row {
	return sales.Row{
		Date:         time.Date(year, time.Month(month), 5, 0, 0, 0, 0, time.UTC),
		Year:         year,
		Month:        month,
		ProductCode:  code,
		ProductName:  code,
		VolumeLiters: decimal.NewFromFloat(liters),
		Quantity:     decimal.NewFromInt(1),
		Amount:       decimal.NewFromInt(100),
		ReceiptType:  rt,
	}
}

func TestQuery_IntentDesconocido(t *testing.T) {
	uc := nlu.NewUseCase(&fakeRepo{}, sales.DefaultPolicy())

	_, err := uc.Query(context.Background(), dto.NLUQueryRequest{Intent: "weather-forecast"})
	assert.ErrorIs(t, err, domain.ErrUnknownIntent)
}

func TestQuery_VolumenSinAnio(t *testing.T) {
	uc := nlu.NewUseCase(&fakeRepo{}, sales.DefaultPolicy())

	_, err := uc.Query(context.Background(), dto.NLUQueryRequest{Intent: nlu.IntentVolumeLiters})
	assert.ErrorIs(t, err, domain.ErrYearRequired)
}

func TestQuery_VolumenNetoDeDevoluciones(t *testing.T) {
	repo := &fakeRepo{
		rows: []sales.Row{
			volumeRow(2025, 3, "P1", 10, sales.ReceiptWholesaleSale),
			volumeRow(2025, 4, "P1", 2, sales.ReceiptWholesaleReturn), // resta
		},
	}
	uc := nlu.NewUseCase(repo, sales.DefaultPolicy())

	resp, err := uc.Query(context.Background(), dto.NLUQueryRequest{
		Intent: nlu.IntentVolumeLiters,
		Slots:  dto.NLUSlots{Year: 2025},
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Value)
	assert.True(t, resp.Value.Equal(decimal.NewFromInt(8)),
		"volumen neto esperado 8, obtenido %s", resp.Value)
	assert.Contains(t, resp.Message, "litre")
	assert.Contains(t, resp.Message, "2025")
	assert.Equal(t, 2025, repo.lastFilter.Year)
}

func TestQuery_NormalizaGrupoConMayusculasTurcas(t *testing.T) {
	repo := &fakeRepo{}
	uc := nlu.NewUseCase(repo, sales.DefaultPolicy())

	_, err := uc.Query(context.Background(), dto.NLUQueryRequest{
		Intent: nlu.IntentRevenueTotal,
		Slots:  dto.NLUSlots{Year: 2025, ProductGroup: "rakı"},
	})
	require.NoError(t, err)
	assert.Equal(t, "RAKI", repo.lastFilter.ProductGroup,
		"rakı debe normalizarse con mayúsculas turcas a RAKI")
}

func TestQuery_TokensDesconocidosNoRestringen(t *testing.T) {
	repo := &fakeRepo{
		rows: []sales.Row{volumeRow(2025, 3, "P1", 10, sales.ReceiptWholesaleSale)},
	}
	uc := nlu.NewUseCase(repo, sales.DefaultPolicy())

	resp, err := uc.Query(context.Background(), dto.NLUQueryRequest{
		Intent: nlu.IntentVolumeLiters,
		Slots:  dto.NLUSlots{Year: 2025, Channel: "teleferik", ProductGroup: "LIMONATA"},
	})
	require.NoError(t, err)

	assert.Equal(t, sales.ChannelNone, repo.lastFilter.Channel)
	assert.Equal(t, "", repo.lastFilter.ProductGroup)
	assert.True(t, resp.Value.Equal(decimal.NewFromInt(10)))
}

func TestQuery_ComparacionDeAniosSoloVentana(t *testing.T) {
	// Años fuera de la ventana de la política no entran a la comparación.
	repo := &fakeRepo{
		rows: []sales.Row{
			volumeRow(2023, 3, "P1", 4, sales.ReceiptWholesaleSale),
			volumeRow(2024, 3, "P1", 7, sales.ReceiptWholesaleSale),
			volumeRow(2025, 3, "P1", 9, sales.ReceiptWholesaleSale),
		},
	}
	uc := nlu.NewUseCase(repo, sales.DefaultPolicy())

	resp, err := uc.Query(context.Background(), dto.NLUQueryRequest{Intent: nlu.IntentYearComparison})
	require.NoError(t, err)

	data, ok := resp.Data.([]dto.NLUYearValueDTO)
	require.True(t, ok)
	require.Len(t, data, 2)
	assert.Equal(t, 2024, data[0].Year)
	assert.Equal(t, 2025, data[1].Year)
	assert.Equal(t, 0, repo.lastFilter.Year, "el slot de año no se exige")
	assert.NotContains(t, resp.Message, "2023")
}

func TestQuery_TopProductosUsaNombresCanonicos(t *testing.T) {
	repo := &fakeRepo{
		rows: []sales.Row{
			volumeRow(2025, 1, "P1", 10, sales.ReceiptWholesaleSale),
			volumeRow(2025, 2, "P2", 30, sales.ReceiptWholesaleSale),
		},
		canonical: map[string]string{"P1": "GIN A", "P2": "VODKA B"},
	}
	uc := nlu.NewUseCase(repo, sales.DefaultPolicy())

	resp, err := uc.Query(context.Background(), dto.NLUQueryRequest{
		Intent: nlu.IntentTopProducts,
		Slots:  dto.NLUSlots{Year: 2025},
	})
	require.NoError(t, err)

	data, ok := resp.Data.([]dto.NLUProductValueDTO)
	require.True(t, ok)
	require.Len(t, data, 2)
	assert.Equal(t, "VODKA B", data[0].ProductName, "ordenado por litros descendente")
}

func TestQuery_Capacidades(t *testing.T) {
	uc := nlu.NewUseCase(&fakeRepo{}, sales.DefaultPolicy())

	resp, err := uc.Query(context.Background(), dto.NLUQueryRequest{Intent: nlu.IntentCapabilities})
	require.NoError(t, err)

	caps, ok := resp.Data.([]dto.NLUCapabilityDTO)
	require.True(t, ok)
	assert.Len(t, caps, 6)
	assert.NotEmpty(t, resp.Message)
}
