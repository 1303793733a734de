package dashboarding

import (
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/commerce-dashboard-api/internal/domain"
	"github.com/vfg2006/commerce-dashboard-api/pkg/utils"
)

const (
	lowOrdersFloor       = 5.0
	lowOrdersAvgFactor   = 0.6
	highCPOFloor         = 20.0
	highCPOAvgFactor     = 1.35
	demoFallbackAgencies = 3
)

// buildUnderperformingAgencies aplica a heurística de agências com baixo
// desempenho: compara pedidos e CPO de cada agência contra limiares derivados
// das médias do próprio conjunto. Quando nenhuma agência viola os limiares,
// retorna as três piores por CPO marcadas como demonstração, para que a
// seção do dashboard nunca fique vazia.
func buildUnderperformingAgencies(orders []*domain.Order, spendByCampaign map[int64]decimal.Decimal, daysCount int) []domain.AgencyPerformance {
	type agencyAgg struct {
		name    string
		orders  int
		revenue decimal.Decimal
		spend   decimal.Decimal
		cpo     decimal.Decimal
	}

	aggByName := make(map[string]*agencyAgg)
	aggs := make([]*agencyAgg, 0)
	for _, order := range orders {
		agg, ok := aggByName[order.AgencyName]
		if !ok {
			agg = &agencyAgg{
				name:    order.AgencyName,
				revenue: decimal.Zero,
				spend:   decimal.Zero,
			}
			aggByName[order.AgencyName] = agg
			aggs = append(aggs, agg)
		}
		agg.orders++
		agg.revenue = agg.revenue.Add(order.OrderValue)
	}

	if len(aggs) == 0 {
		return []domain.AgencyPerformance{}
	}

	// O gasto de cada agência soma cada taxa diária distinta uma única vez:
	// duas campanhas da mesma agência com a mesma taxa contam como uma
	type pairKey struct {
		agency string
		spend  string
	}
	seenPairs := make(map[pairKey]bool)
	for _, order := range orders {
		dailySpend, ok := spendByCampaign[order.CampaignID]
		if !ok {
			continue
		}
		key := pairKey{agency: order.AgencyName, spend: dailySpend.String()}
		if seenPairs[key] {
			continue
		}
		seenPairs[key] = true
		aggByName[order.AgencyName].spend = aggByName[order.AgencyName].spend.Add(dailySpend)
	}

	days := decimal.NewFromInt(int64(daysCount))
	for _, agg := range aggs {
		agg.spend = agg.spend.Mul(days).Round(2)
		if agg.orders > 0 {
			agg.cpo = agg.spend.Div(decimal.NewFromInt(int64(agg.orders))).Round(2)
		}
	}

	sort.SliceStable(aggs, func(i, j int) bool {
		return aggs[i].orders > aggs[j].orders
	})

	totalOrders := 0
	totalCPO := 0.0
	for _, agg := range aggs {
		totalOrders += agg.orders
		totalCPO += agg.cpo.InexactFloat64()
	}
	avgOrders := float64(totalOrders) / float64(len(aggs))
	avgCPO := totalCPO / float64(len(aggs))

	lowOrdersThreshold := math.Max(lowOrdersFloor, avgOrders*lowOrdersAvgFactor)
	highCPOThreshold := math.Max(highCPOFloor, avgCPO*highCPOAvgFactor)

	rows := make([]domain.AgencyPerformance, 0, len(aggs))
	flagged := make([]domain.AgencyPerformance, 0, len(aggs))
	for _, agg := range aggs {
		reasons := make([]string, 0, 2)
		if float64(agg.orders) < lowOrdersThreshold {
			reasons = append(reasons, "Low Orders")
		}
		if agg.cpo.InexactFloat64() > highCPOThreshold {
			reasons = append(reasons, "High CPO")
		}

		status := "OK"
		if len(reasons) > 0 {
			status = strings.Join(reasons, " / ")
		}

		row := domain.AgencyPerformance{
			Agency:  agg.name,
			Orders:  agg.orders,
			Revenue: utils.MoneyFloat(agg.revenue),
			Spend:   agg.spend.InexactFloat64(),
			CPO:     agg.cpo.InexactFloat64(),
			Status:  status,
		}
		rows = append(rows, row)
		if status != "OK" {
			flagged = append(flagged, row)
		}
	}

	// Só as agências sinalizadas aparecem na seção
	if len(flagged) > 0 {
		return flagged
	}

	// Fallback de demonstração: piores agências por CPO (pedidos como
	// desempate ascendente)
	demo := make([]domain.AgencyPerformance, len(rows))
	copy(demo, rows)
	sort.SliceStable(demo, func(i, j int) bool {
		if demo[i].CPO != demo[j].CPO {
			return demo[i].CPO > demo[j].CPO
		}
		return demo[i].Orders < demo[j].Orders
	})
	if len(demo) > demoFallbackAgencies {
		demo = demo[:demoFallbackAgencies]
	}
	for i := range demo {
		demo[i].Status = "Needs Attention (Demo)"
		demo[i].IsDemo = true
	}
	return demo
}
