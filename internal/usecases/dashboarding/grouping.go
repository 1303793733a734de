package dashboarding

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/commerce-dashboard-api/internal/domain"
)

// Os agrupamentos preservam a ordem da primeira ocorrência de cada chave.
// Combinado com sort.SliceStable, isso garante um critério de desempate
// determinístico: empatados ficam na ordem em que apareceram nos pedidos.

type revenueGroup struct {
	key     string
	revenue decimal.Decimal
}

type countGroup struct {
	key   string
	count int
}

func groupRevenue(orders []*domain.Order, keyFn func(*domain.Order) string) []*revenueGroup {
	groupByKey := make(map[string]*revenueGroup)
	groups := make([]*revenueGroup, 0)
	for _, order := range orders {
		key := keyFn(order)
		group, ok := groupByKey[key]
		if !ok {
			group = &revenueGroup{key: key, revenue: decimal.Zero}
			groupByKey[key] = group
			groups = append(groups, group)
		}
		group.revenue = group.revenue.Add(order.OrderValue)
	}
	return groups
}

func groupCount(orders []*domain.Order, keyFn func(*domain.Order) string) []*countGroup {
	groupByKey := make(map[string]*countGroup)
	groups := make([]*countGroup, 0)
	for _, order := range orders {
		key := keyFn(order)
		group, ok := groupByKey[key]
		if !ok {
			group = &countGroup{key: key}
			groupByKey[key] = group
			groups = append(groups, group)
		}
		group.count++
	}
	return groups
}

func sortCountGroupsDesc(groups []*countGroup) {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].count > groups[j].count
	})
}

func limitRevenueGroups(groups []*revenueGroup, limit int) []*revenueGroup {
	if len(groups) > limit {
		return groups[:limit]
	}
	return groups
}

func limitCountGroups(groups []*countGroup, limit int) []*countGroup {
	if len(groups) > limit {
		return groups[:limit]
	}
	return groups
}
