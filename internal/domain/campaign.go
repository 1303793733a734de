package domain

import "github.com/shopspring/decimal"

// Campaign representa uma campanha de anúncios. DailySpend é uma taxa de
// gasto por dia de calendário, não um total acumulado.
type Campaign struct {
	ID         int64
	AgencyID   int64
	AgencyName string
	Platform   string
	Name       string
	DailySpend decimal.Decimal
}
