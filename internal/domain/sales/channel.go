package sales

import "strings"

// Channel canal comercial derivado del tipo de comprobante.
type Channel string

const (
	// ChannelNone sin restricción de canal.
	ChannelNone Channel = ""
	// ChannelWholesale canal mayorista (toptan): comprobantes 21 y 23.
	ChannelWholesale Channel = "toptan"
	// ChannelRetail canal market/minorista: comprobantes 101 y 102.
	ChannelRetail Channel = "market"
)

// ReceiptTypes devuelve los códigos de comprobante que componen el canal.
// ChannelNone devuelve nil (sin restricción).
func (c Channel) ReceiptTypes() []ReceiptType {
	switch c {
	case ChannelWholesale:
		return []ReceiptType{ReceiptWholesaleSale, ReceiptWholesaleReturn}
	case ChannelRetail:
		return []ReceiptType{ReceiptRetailSale, ReceiptRetailReturn}
	default:
		return nil
	}
}

// ParseChannel normaliza un token de canal de usuario (turco o inglés).
// Un token no reconocido resuelve a ChannelNone: ausencia de filtro, nunca
// un error (política del resolutor de parámetros).
func ParseChannel(s string) Channel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "toptan", "wholesale":
		return ChannelWholesale
	case "market", "perakende", "retail":
		return ChannelRetail
	default:
		return ChannelNone
	}
}

// ChannelOf clasifica un comprobante en su canal; códigos fuera de los
// conjuntos conocidos caen en ChannelNone ("diger" en los reportes).
func ChannelOf(rt ReceiptType) Channel {
	switch rt {
	case ReceiptWholesaleSale, ReceiptWholesaleReturn:
		return ChannelWholesale
	case ReceiptRetailSale, ReceiptRetailReturn:
		return ChannelRetail
	default:
		return ChannelNone
	}
}
