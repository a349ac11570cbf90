// Package sales contiene el núcleo de cálculo del servicio de reportes:
// la fila de detalle de venta, la normalización neta de devoluciones,
// el motor de atribución de costos y el resolutor de filtros.
//
// Todo el paquete es puro: opera sobre filas ya cargadas, sin I/O, para que
// cada etapa sea testeable de forma aislada (a diferencia del sistema
// original, donde esta lógica vivía incrustada en CTEs de SQL).
package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptType código de tipo de comprobante. Particiona las ventas en
// canales y marca las devoluciones.
type ReceiptType int

// Códigos conocidos del ledger de origen.
const (
	ReceiptWholesaleSale   ReceiptType = 21  // venta mayorista
	ReceiptWholesaleReturn ReceiptType = 23  // devolución mayorista
	ReceiptRetailSale      ReceiptType = 101 // venta market/minorista
	ReceiptRetailReturn    ReceiptType = 102 // devolución market/minorista
)

// IsReturn indica si el comprobante es una devolución. Las cantidades,
// montos y litros de estas filas se registran positivos en origen y deben
// invertirse de signo antes de cualquier agregación.
func (rt ReceiptType) IsReturn() bool {
	return rt == ReceiptWholesaleReturn || rt == ReceiptRetailReturn
}

// Row una línea del hecho de ventas (tabla sales_detail). Inmutable,
// append-only; el servicio nunca escribe sobre ella.
//
// Los campos de texto con valor "" equivalen a NULL en origen (los nombres
// de cliente/representante/proveedor son texto libre y la identidad es por
// igualdad exacta de string).
type Row struct {
	Date         time.Time
	Year         int
	Month        int
	CustomerName string
	SalesRep     string
	Supplier     string
	ProductCode  string // vacío en algunas filas; excluir de joins por producto
	ProductName  string // mutable en el tiempo: un código puede renombrarse
	Category     string
	ProductGroup string

	Quantity     decimal.Decimal
	VolumeLiters decimal.Decimal
	Amount       decimal.Decimal

	Cost          decimal.NullDecimal // costo de la línea; preferido
	PurchasePrice decimal.NullDecimal // precio de compra; fallback

	ReceiptType ReceiptType
}

// ── Normalizador neto ─────────────────────────────────────────────────────────
//
// Ley de signos: si el comprobante es devolución, cada valor crudo se niega;
// si no, pasa sin cambios. Toda agregación debe consumir los valores netos —
// sumar Amount crudo contaría las devoluciones como ventas.

// NetQuantity cantidad neta de devoluciones.
func (r Row) NetQuantity() decimal.Decimal {
	if r.ReceiptType.IsReturn() {
		return r.Quantity.Neg()
	}
	return r.Quantity
}

// NetAmount monto neto de devoluciones.
func (r Row) NetAmount() decimal.Decimal {
	if r.ReceiptType.IsReturn() {
		return r.Amount.Neg()
	}
	return r.Amount
}

// NetVolume litros netos de devoluciones.
func (r Row) NetVolume() decimal.Decimal {
	if r.ReceiptType.IsReturn() {
		return r.VolumeLiters.Neg()
	}
	return r.VolumeLiters
}

// UnitCostOrPurchase base de costo de la línea: Cost si existe, si no
// PurchasePrice, si no cero.
func (r Row) UnitCostOrPurchase() decimal.Decimal {
	if r.Cost.Valid {
		return r.Cost.Decimal
	}
	if r.PurchasePrice.Valid {
		return r.PurchasePrice.Decimal
	}
	return decimal.Zero
}

// DateKey fecha calendario en formato YYYY-MM-DD; clave de agrupación del
// motor de costos.
func (r Row) DateKey() string {
	return r.Date.Format("2006-01-02")
}
