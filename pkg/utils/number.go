package utils

import "github.com/shopspring/decimal"

// MoneyFloat quantiza um valor monetário em duas casas decimais e o converte
// para float64, pronto para serialização
func MoneyFloat(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
