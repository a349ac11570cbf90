// Package nlu implementa el puente entre el intérprete de lenguaje natural
// y los agregados de ventas. El intérprete corre fuera del servicio; aquí
// llega el intent resuelto con sus slots y sale un valor resumen más una
// frase en turco lista para mostrar.
package nlu

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/tu-usuario/sales-insight/internal/application/dto"
	"github.com/tu-usuario/sales-insight/internal/domain"
	"github.com/tu-usuario/sales-insight/internal/domain/report"
	"github.com/tu-usuario/sales-insight/internal/domain/repository"
	"github.com/tu-usuario/sales-insight/internal/domain/sales"
)

// Intents soportados por el puente.
const (
	IntentVolumeLiters        = "sales-volume-liters"
	IntentRevenueTotal        = "revenue-total"
	IntentMonthlyBreakdown    = "monthly-breakdown"
	IntentChannelDistribution = "channel-distribution"
	IntentYearComparison      = "year-comparison"
	IntentTopProducts         = "top-products"
	IntentCapabilities        = "capabilities"
)

const topProductCount = 5

// Grupos de producto reconocidos. La normalización usa mayúsculas turcas
// (rakı → RAKI, likör → LIKOR); un token fuera de la lista no restringe.
var knownProductGroups = map[string]string{
	"WHISKY": "WHISKY",
	"VODKA":  "VODKA",
	"GIN":    "GIN",
	"RAKI":   "RAKI",
	"LIKOR":  "LIKOR",
}

var turkishUpper = cases.Upper(language.Turkish)

// UseCase resuelve un intent contra el hecho de ventas completo (el puente
// no aplica las exclusiones comerciales: responde sobre todo lo
// registrado). La comparación interanual sí se acota a la ventana de años
// de la política.
type UseCase struct {
	repo    repository.SalesRepository
	policy  sales.Policy
	printer *message.Printer
}

func NewUseCase(repo repository.SalesRepository, policy sales.Policy) *UseCase {
	return &UseCase{
		repo:    repo,
		policy:  policy,
		printer: message.NewPrinter(language.Turkish),
	}
}

// Query despacha el intent. Año faltante donde se exige →
// domain.ErrYearRequired; intent no reconocido → domain.ErrUnknownIntent.
func (uc *UseCase) Query(ctx context.Context, req dto.NLUQueryRequest) (*dto.NLUQueryResponse, error) {
	switch req.Intent {
	case IntentVolumeLiters:
		return uc.volumeLiters(ctx, req.Slots)
	case IntentRevenueTotal:
		return uc.revenueTotal(ctx, req.Slots)
	case IntentMonthlyBreakdown:
		return uc.monthlyBreakdown(ctx, req.Slots)
	case IntentChannelDistribution:
		return uc.channelDistribution(ctx, req.Slots)
	case IntentYearComparison:
		return uc.yearComparison(ctx, req.Slots)
	case IntentTopProducts:
		return uc.topProducts(ctx, req.Slots)
	case IntentCapabilities:
		return uc.capabilities(), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownIntent, req.Intent)
	}
}

// slotFilter traduce los slots a un filtro. Canal o grupo no reconocidos no
// restringen nada (tolerancia por contrato).
func slotFilter(s dto.NLUSlots) sales.Filter {
	f := sales.Filter{
		Year:    s.Year,
		Channel: sales.ParseChannel(s.Channel),
	}
	if s.ProductGroup != "" {
		if pg, ok := knownProductGroups[turkishUpper.String(s.ProductGroup)]; ok {
			f.ProductGroup = pg
		}
	}
	return f
}

// inWindow indica si el año pertenece a la ventana de la política.
func (uc *UseCase) inWindow(year int) bool {
	for _, y := range uc.policy.Years {
		if y == year {
			return true
		}
	}
	return false
}

func requireYear(s dto.NLUSlots) error {
	if s.Year == 0 {
		return domain.ErrYearRequired
	}
	return nil
}

func (uc *UseCase) rows(ctx context.Context, s dto.NLUSlots) ([]sales.Row, error) {
	rows, err := uc.repo.AllRows(ctx, slotFilter(s))
	if err != nil {
		return nil, fmt.Errorf("nlu: %w", err)
	}
	return rows, nil
}

// fmtNumber formatea con separadores tr-TR (12.345,67).
func (uc *UseCase) fmtNumber(d decimal.Decimal) string {
	return uc.printer.Sprintf("%v", number.Decimal(d.InexactFloat64(), number.Scale(2)))
}

// qualifier arma el sujeto de la frase: "2025 yılında", más canal y grupo si
// vinieron.
func qualifier(s dto.NLUSlots, f sales.Filter) string {
	q := fmt.Sprintf("%d yılında", s.Year)
	if f.Channel == sales.ChannelWholesale {
		q += " toptan kanalında"
	} else if f.Channel == sales.ChannelRetail {
		q += " market kanalında"
	}
	if f.ProductGroup != "" {
		q += " " + f.ProductGroup + " grubunda"
	}
	return q
}

func (uc *UseCase) volumeLiters(ctx context.Context, s dto.NLUSlots) (*dto.NLUQueryResponse, error) {
	if err := requireYear(s); err != nil {
		return nil, err
	}
	rows, err := uc.rows(ctx, s)
	if err != nil {
		return nil, err
	}

	total := report.TotalVolume(rows).Round(2)
	return &dto.NLUQueryResponse{
		Intent:  IntentVolumeLiters,
		Value:   &total,
		Message: fmt.Sprintf("%s toplam satış hacmi %s litre.", qualifier(s, slotFilter(s)), uc.fmtNumber(total)),
	}, nil
}

func (uc *UseCase) revenueTotal(ctx context.Context, s dto.NLUSlots) (*dto.NLUQueryResponse, error) {
	if err := requireYear(s); err != nil {
		return nil, err
	}
	rows, err := uc.rows(ctx, s)
	if err != nil {
		return nil, err
	}

	total := report.TotalRevenue(rows).Round(2)
	return &dto.NLUQueryResponse{
		Intent:  IntentRevenueTotal,
		Value:   &total,
		Message: fmt.Sprintf("%s toplam ciro %s TL.", qualifier(s, slotFilter(s)), uc.fmtNumber(total)),
	}, nil
}

func (uc *UseCase) monthlyBreakdown(ctx context.Context, s dto.NLUSlots) (*dto.NLUQueryResponse, error) {
	if err := requireYear(s); err != nil {
		return nil, err
	}
	rows, err := uc.rows(ctx, s)
	if err != nil {
		return nil, err
	}

	months := report.VolumeByMonth(rows)
	data := make([]dto.NLUMonthValueDTO, 0, len(months))
	total := decimal.Zero
	for _, m := range months {
		data = append(data, dto.NLUMonthValueDTO{Month: m.Month, Value: m.Liters.Round(2)})
		total = total.Add(m.Liters)
	}
	total = total.Round(2)

	return &dto.NLUQueryResponse{
		Intent:  IntentMonthlyBreakdown,
		Value:   &total,
		Data:    data,
		Message: fmt.Sprintf("%s aylık satış hacmi kırılımı; toplam %s litre.", qualifier(s, slotFilter(s)), uc.fmtNumber(total)),
	}, nil
}

func (uc *UseCase) channelDistribution(ctx context.Context, s dto.NLUSlots) (*dto.NLUQueryResponse, error) {
	if err := requireYear(s); err != nil {
		return nil, err
	}
	// La distribución por canal no respeta un slot de canal: se comparan
	// todos los canales del año.
	s.Channel = ""
	rows, err := uc.rows(ctx, s)
	if err != nil {
		return nil, err
	}

	channels := report.VolumeByChannel(rows)
	data := make([]dto.NLUChannelValueDTO, 0, len(channels))
	total := decimal.Zero
	for _, c := range channels {
		data = append(data, dto.NLUChannelValueDTO{Channel: c.Channel, Value: c.Liters.Round(2)})
		total = total.Add(c.Liters)
	}
	total = total.Round(2)

	return &dto.NLUQueryResponse{
		Intent:  IntentChannelDistribution,
		Value:   &total,
		Data:    data,
		Message: fmt.Sprintf("%d yılı kanal bazında satış hacmi; toplam %s litre.", s.Year, uc.fmtNumber(total)),
	}, nil
}

func (uc *UseCase) yearComparison(ctx context.Context, s dto.NLUSlots) (*dto.NLUQueryResponse, error) {
	// La comparación define sus propios años: el slot de año no se exige y
	// solo entran los años de la ventana de la política.
	s.Year = 0
	rows, err := uc.rows(ctx, s)
	if err != nil {
		return nil, err
	}

	years := report.VolumeByYear(rows)
	data := make([]dto.NLUYearValueDTO, 0, len(years))
	parts := ""
	for _, y := range years {
		if !uc.inWindow(y.Year) {
			continue
		}
		data = append(data, dto.NLUYearValueDTO{Year: y.Year, Value: y.Liters.Round(2)})
		if parts != "" {
			parts += ", "
		}
		parts += fmt.Sprintf("%d: %s litre", y.Year, uc.fmtNumber(y.Liters))
	}
	if parts == "" {
		parts = "kayıt yok"
	}

	return &dto.NLUQueryResponse{
		Intent:  IntentYearComparison,
		Data:    data,
		Message: "Yıllara göre satış hacmi — " + parts + ".",
	}, nil
}

func (uc *UseCase) topProducts(ctx context.Context, s dto.NLUSlots) (*dto.NLUQueryResponse, error) {
	if err := requireYear(s); err != nil {
		return nil, err
	}

	type namesResult struct {
		names map[string]string
		err   error
	}
	namesCh := make(chan namesResult, 1)
	go func() {
		names, err := uc.repo.CanonicalNames(ctx)
		namesCh <- namesResult{names, err}
	}()

	rows, err := uc.rows(ctx, s)
	if err != nil {
		return nil, err
	}
	names := <-namesCh
	if names.err != nil {
		return nil, fmt.Errorf("nlu: nombres canónicos: %w", names.err)
	}

	top := report.TopProductsByVolume(rows, names.names, topProductCount)
	data := make([]dto.NLUProductValueDTO, 0, len(top))
	for _, p := range top {
		data = append(data, dto.NLUProductValueDTO{ProductName: p.ProductName, Liters: p.Liters.Round(2)})
	}

	return &dto.NLUQueryResponse{
		Intent:  IntentTopProducts,
		Data:    data,
		Message: fmt.Sprintf("%s hacme göre ilk %d ürün.", qualifier(s, slotFilter(s)), topProductCount),
	}, nil
}

// capabilities respuesta de ayuda: qué puede preguntarse y con qué slots.
func (uc *UseCase) capabilities() *dto.NLUQueryResponse {
	caps := []dto.NLUCapabilityDTO{
		{Intent: IntentVolumeLiters, Description: "Yıllık toplam satış hacmi (litre)", Slots: []string{"year", "channel", "product_group"}},
		{Intent: IntentRevenueTotal, Description: "Yıllık toplam ciro (TL)", Slots: []string{"year", "channel", "product_group"}},
		{Intent: IntentMonthlyBreakdown, Description: "Aylık satış hacmi kırılımı", Slots: []string{"year", "channel", "product_group"}},
		{Intent: IntentChannelDistribution, Description: "Kanal bazında satış hacmi dağılımı", Slots: []string{"year", "product_group"}},
		{Intent: IntentYearComparison, Description: "Yıllara göre satış hacmi karşılaştırması", Slots: []string{"channel", "product_group"}},
		{Intent: IntentTopProducts, Description: "Hacme göre ilk 5 ürün", Slots: []string{"year", "channel", "product_group"}},
	}
	return &dto.NLUQueryResponse{
		Intent:  IntentCapabilities,
		Data:    caps,
		Message: "Sorabilecekleriniz: satış hacmi, ciro, aylık kırılım, kanal dağılımı, yıl karşılaştırması, en çok satan ürünler.",
	}
}
