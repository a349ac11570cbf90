package dto

import "github.com/shopspring/decimal"

// NLUQueryRequest cuerpo de POST /api/nlu/query. El intérprete de lenguaje
// natural corre fuera de este servicio; aquí llega el intent ya resuelto con
// sus slots.
type NLUQueryRequest struct {
	Intent string   `json:"intent"`
	Slots  NLUSlots `json:"slots"`
}

// NLUSlots slots extraídos de la pregunta. Año 0 = no informado; canal y
// grupo de producto no reconocidos NO restringen (tolerancia por contrato).
type NLUSlots struct {
	Year         int    `json:"year"`
	Channel      string `json:"channel"`
	ProductGroup string `json:"product_group"`
}

// NLUQueryResponse respuesta del puente: valor resumen + frase legible
// lista para mostrar al usuario. Data lleva el desglose cuando el intent
// produce una serie (mensual, por canal, por año, top productos).
type NLUQueryResponse struct {
	Intent  string           `json:"intent"`
	Message string           `json:"message"`
	Value   *decimal.Decimal `json:"value,omitempty"`
	Data    any              `json:"data,omitempty"`
}

// NLUMonthValueDTO punto de un desglose mensual.
type NLUMonthValueDTO struct {
	Month int             `json:"month"`
	Value decimal.Decimal `json:"value"`
}

// NLUChannelValueDTO punto de una distribución por canal.
type NLUChannelValueDTO struct {
	Channel string          `json:"channel"`
	Value   decimal.Decimal `json:"value"`
}

// NLUYearValueDTO punto de una comparación entre años.
type NLUYearValueDTO struct {
	Year  int             `json:"year"`
	Value decimal.Decimal `json:"value"`
}

// NLUProductValueDTO fila del top de productos por volumen.
type NLUProductValueDTO struct {
	ProductName string          `json:"product_name"`
	Liters      decimal.Decimal `json:"liters"`
}

// NLUCapabilityDTO descripción de un intent soportado (respuesta de ayuda).
type NLUCapabilityDTO struct {
	Intent      string   `json:"intent"`
	Description string   `json:"description"`
	Slots       []string `json:"slots"`
}
