package report

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/sales-insight/internal/domain/sales"
)

// Agregados de volumen para el puente de lenguaje natural. Operan sobre
// filas crudas (sales.Row): las consultas del puente no necesitan costeo.

// TotalVolume litros netos totales de la población.
func TotalVolume(rows []sales.Row) decimal.Decimal {
	var total decimal.Decimal
	for _, r := range rows {
		total = total.Add(r.NetVolume())
	}
	return total
}

// TotalRevenue ingreso neto total de la población.
func TotalRevenue(rows []sales.Row) decimal.Decimal {
	var total decimal.Decimal
	for _, r := range rows {
		total = total.Add(r.NetAmount())
	}
	return total
}

// MonthVolume litros netos de un mes.
type MonthVolume struct {
	Month  int
	Liters decimal.Decimal
}

// VolumeByMonth serie mensual de litros netos, orden por mes ascendente;
// solo meses con datos.
func VolumeByMonth(rows []sales.Row) []MonthVolume {
	sums := make(map[int]decimal.Decimal)
	for _, r := range rows {
		sums[r.Month] = sums[r.Month].Add(r.NetVolume())
	}
	out := make([]MonthVolume, 0, len(sums))
	for month, liters := range sums {
		out = append(out, MonthVolume{Month: month, Liters: liters})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// ChannelVolume litros netos de un canal. Los comprobantes fuera de los
// conjuntos mayorista/market se reportan bajo "diger".
type ChannelVolume struct {
	Channel string
	Liters  decimal.Decimal
}

// VolumeByChannel distribución de litros netos por canal.
func VolumeByChannel(rows []sales.Row) []ChannelVolume {
	sums := make(map[string]decimal.Decimal)
	for _, r := range rows {
		label := string(sales.ChannelOf(r.ReceiptType))
		if label == "" {
			label = "diger"
		}
		sums[label] = sums[label].Add(r.NetVolume())
	}
	out := make([]ChannelVolume, 0, len(sums))
	for channel, liters := range sums {
		out = append(out, ChannelVolume{Channel: channel, Liters: liters})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Channel < out[j].Channel })
	return out
}

// YearVolume litros netos de un año.
type YearVolume struct {
	Year   int
	Liters decimal.Decimal
}

// VolumeByYear litros netos por año, ascendente (comparación interanual).
func VolumeByYear(rows []sales.Row) []YearVolume {
	sums := make(map[int]decimal.Decimal)
	for _, r := range rows {
		sums[r.Year] = sums[r.Year].Add(r.NetVolume())
	}
	out := make([]YearVolume, 0, len(sums))
	for year, liters := range sums {
		out = append(out, YearVolume{Year: year, Liters: liters})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// ProductVolume litros netos de un producto (nombre canónico).
type ProductVolume struct {
	ProductName string
	Liters      decimal.Decimal
}

// TopProductsByVolume los n productos con más litros netos. canonical mapea
// código → nombre vigente; filas sin código usan el nombre de la fila.
func TopProductsByVolume(rows []sales.Row, canonical map[string]string, n int) []ProductVolume {
	sums := make(map[string]decimal.Decimal)
	for _, r := range rows {
		name := r.ProductName
		if c, ok := canonical[r.ProductCode]; ok && c != "" {
			name = c
		}
		sums[name] = sums[name].Add(r.NetVolume())
	}
	out := make([]ProductVolume, 0, len(sums))
	for name, liters := range sums {
		out = append(out, ProductVolume{ProductName: name, Liters: liters})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Liters.Equal(out[j].Liters) {
			return out[i].Liters.GreaterThan(out[j].Liters)
		}
		return out[i].ProductName < out[j].ProductName
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
