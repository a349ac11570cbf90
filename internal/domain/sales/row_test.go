package sales_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/sales-insight/internal/domain/sales"
)

func row(rt sales.ReceiptType, qty, amount, liters float64) sales.Row {
	return sales.Row{
		Date:         time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Year:         2025,
		Month:        3,
		CustomerName: "ACME",
		Quantity:     decimal.NewFromFloat(qty),
		Amount:       decimal.NewFromFloat(amount),
		VolumeLiters: decimal.NewFromFloat(liters),
		ReceiptType:  rt,
	}
}

// Ley de signos: devoluciones se niegan, el resto pasa sin cambios.
func TestNetNormalizer_LeyDeSignos(t *testing.T) {
	tests := []struct {
		name     string
		rt       sales.ReceiptType
		isReturn bool
	}{
		{"venta mayorista", sales.ReceiptWholesaleSale, false},
		{"devolución mayorista", sales.ReceiptWholesaleReturn, true},
		{"venta market", sales.ReceiptRetailSale, false},
		{"devolución market", sales.ReceiptRetailReturn, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := row(tc.rt, 3, 150, 4.5)
			if tc.isReturn {
				assert.True(t, r.NetAmount().Equal(decimal.NewFromInt(-150)))
				assert.True(t, r.NetQuantity().Equal(decimal.NewFromInt(-3)))
				assert.True(t, r.NetVolume().Equal(decimal.NewFromFloat(-4.5)))
			} else {
				assert.True(t, r.NetAmount().Equal(r.Amount))
				assert.True(t, r.NetQuantity().Equal(r.Quantity))
				assert.True(t, r.NetVolume().Equal(r.VolumeLiters))
			}
		})
	}
}

// Una fila con cantidad 0 y monto positivo es legal: contribuye cero a los
// cálculos ponderados por cantidad, sin caso especial.
func TestNetNormalizer_CantidadCeroEsLegal(t *testing.T) {
	r := row(sales.ReceiptRetailSale, 0, 99.90, 0)
	assert.True(t, r.NetQuantity().IsZero())
	assert.True(t, r.NetAmount().Equal(decimal.NewFromFloat(99.90)))
}

func TestUnitCostOrPurchase_Prioridad(t *testing.T) {
	r := row(sales.ReceiptRetailSale, 1, 10, 1)

	// Sin costo ni precio de compra → 0
	assert.True(t, r.UnitCostOrPurchase().IsZero())

	// Solo precio de compra → precio de compra
	r.PurchasePrice = decimal.NewNullDecimal(decimal.NewFromInt(7))
	assert.True(t, r.UnitCostOrPurchase().Equal(decimal.NewFromInt(7)))

	// Costo presente → costo, aunque exista precio de compra
	r.Cost = decimal.NewNullDecimal(decimal.NewFromInt(5))
	assert.True(t, r.UnitCostOrPurchase().Equal(decimal.NewFromInt(5)))
}

func TestParseChannel(t *testing.T) {
	assert.Equal(t, sales.ChannelWholesale, sales.ParseChannel("toptan"))
	assert.Equal(t, sales.ChannelWholesale, sales.ParseChannel(" Wholesale "))
	assert.Equal(t, sales.ChannelRetail, sales.ParseChannel("MARKET"))
	assert.Equal(t, sales.ChannelRetail, sales.ParseChannel("perakende"))
	// Token desconocido: sin restricción, nunca error.
	assert.Equal(t, sales.ChannelNone, sales.ParseChannel("online"))
	assert.Equal(t, sales.ChannelNone, sales.ParseChannel(""))
}

func TestChannelReceiptTypes(t *testing.T) {
	assert.ElementsMatch(t,
		[]sales.ReceiptType{21, 23},
		sales.ChannelWholesale.ReceiptTypes())
	assert.ElementsMatch(t,
		[]sales.ReceiptType{101, 102},
		sales.ChannelRetail.ReceiptTypes())
	assert.Nil(t, sales.ChannelNone.ReceiptTypes())
}
