package dashboarding

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/commerce-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/commerce-dashboard-api/internal/domain"
	"github.com/vfg2006/commerce-dashboard-api/pkg/utils"
)

const (
	topProductsLimit  = 10
	topAgenciesLimit  = 3
	topAdsLimit       = 3
	campaignPerfLimit = 10
	orderListLimit    = 10
)

// Margem bruta assumida para o cálculo de lucro (constante de demonstração)
var assumedMargin = decimal.RequireFromString("0.38")

// Service implementa a interface Dashboarder sobre os repositórios de
// pedidos e campanhas. Cada chamada é uma função pura dos parâmetros e do
// conteúdo atual da base; nenhum estado é mantido entre chamadas.
type Service struct {
	orderRepo    repository.OrderRepository
	campaignRepo repository.CampaignRepository
	now          func() time.Time
}

// NewService cria uma nova instância do serviço de dashboard
func NewService(
	orderRepo repository.OrderRepository,
	campaignRepo repository.CampaignRepository,
) Dashboarder {
	return &Service{
		orderRepo:    orderRepo,
		campaignRepo: campaignRepo,
		now:          time.Now,
	}
}

// BuildDashboardPayload monta o payload completo do dashboard
func (s *Service) BuildDashboardPayload(params *domain.DashboardParams) (*domain.DashboardPayload, error) {
	startDate, endDate := ResolveDateRange(params.Preset, params.FromDate, params.ToDate, s.now())
	daysCount := DaysBetween(startDate, endDate)

	filters := domain.OrderFilters{
		StartDate: startDate,
		EndDate:   endDate,
		Platform:  normalizeFilter(params.Platform),
		Agency:    normalizeFilter(params.Agency),
	}

	orders, err := s.orderRepo.ListByPeriod(filters)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar pedidos do período: %w", err)
	}

	campaigns, err := s.campaignRepo.GetByIDs(distinctCampaignIDs(orders))
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar campanhas referenciadas: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"start_date": startDate.Format(time.DateOnly),
		"end_date":   endDate.Format(time.DateOnly),
		"days_count": daysCount,
		"orders":     len(orders),
		"campaigns":  len(campaigns),
	}).Debug("Pedidos do período carregados para montagem do dashboard")

	spendByCampaign := make(map[int64]decimal.Decimal, len(campaigns))
	for _, campaign := range campaigns {
		spendByCampaign[campaign.ID] = campaign.DailySpend
	}

	return &domain.DashboardPayload{
		Meta: domain.DashboardMeta{
			StartDate: startDate.Format(time.DateOnly),
			EndDate:   endDate.Format(time.DateOnly),
		},
		KPIs:   buildKPIs(orders, campaigns, daysCount),
		Charts: buildCharts(orders, spendByCampaign, daysCount),
		Lists: domain.DashboardLists{
			RecentOrders:            buildRecentOrders(orders),
			WaitingPickup:           buildWaitingPickup(orders),
			Delivered:               buildDelivered(orders),
			UnderperformingAgencies: buildUnderperformingAgencies(orders, spendByCampaign, daysCount),
		},
	}, nil
}

// normalizeFilter traduz os valores de UI ("" e "All") para "sem filtro"
func normalizeFilter(value string) string {
	if value == "All" {
		return ""
	}
	return value
}

// distinctCampaignIDs retorna os IDs distintos de campanha referenciados
// pelos pedidos, na ordem da primeira ocorrência
func distinctCampaignIDs(orders []*domain.Order) []int64 {
	seen := make(map[int64]bool)
	ids := make([]int64, 0)
	for _, order := range orders {
		if !seen[order.CampaignID] {
			seen[order.CampaignID] = true
			ids = append(ids, order.CampaignID)
		}
	}
	return ids
}

// buildKPIs calcula os indicadores escalares do período. Valores
// intermediários permanecem em precisão decimal completa; a quantização em
// duas casas acontece apenas na finalização de cada valor de saída.
func buildKPIs(orders []*domain.Order, campaigns []*domain.Campaign, daysCount int) domain.DashboardKPIs {
	totalOrders := len(orders)

	totalRevenue := decimal.Zero
	totalItems := 0
	for _, order := range orders {
		totalRevenue = totalRevenue.Add(order.OrderValue)
		totalItems += order.Quantity
	}

	// A taxa diária de cada campanha distinta entra uma única vez no gasto,
	// independente de quantos pedidos a referenciam
	dailyRate := decimal.Zero
	for _, campaign := range campaigns {
		dailyRate = dailyRate.Add(campaign.DailySpend)
	}
	totalAdsSpend := dailyRate.Mul(decimal.NewFromInt(int64(daysCount))).Round(2)

	kpis := domain.DashboardKPIs{
		TotalOrders:   totalOrders,
		TotalRevenue:  utils.MoneyFloat(totalRevenue),
		TotalItems:    totalItems,
		TotalAdsSpend: totalAdsSpend.InexactFloat64(),
	}

	if totalOrders > 0 {
		ordersDec := decimal.NewFromInt(int64(totalOrders))
		kpis.AvgOrderValue = utils.MoneyFloat(totalRevenue.Div(ordersDec))
		kpis.CPO = utils.MoneyFloat(totalAdsSpend.Div(ordersDec))
	}

	grossProfit := totalRevenue.Mul(assumedMargin).Sub(totalAdsSpend).Round(2)
	kpis.GrossProfit = grossProfit.InexactFloat64()

	if totalAdsSpend.IsPositive() {
		kpis.ROI = utils.MoneyFloat(grossProfit.Div(totalAdsSpend).Mul(decimal.NewFromInt(100)))
	}

	return kpis
}

// buildCharts calcula os agrupamentos usados pelos gráficos do dashboard
func buildCharts(orders []*domain.Order, spendByCampaign map[int64]decimal.Decimal, daysCount int) domain.DashboardCharts {
	return domain.DashboardCharts{
		DailyRevenue:  buildDailyRevenue(orders),
		PlatformSplit: buildPlatformSplit(orders),
		TopProducts:   buildTopProducts(orders),
		TopAgencies:   buildTopAgencies(orders),
		TopAds:        buildTopAds(orders),
		CampaignPerf:  buildCampaignPerf(orders, spendByCampaign, daysCount),
	}
}

func buildDailyRevenue(orders []*domain.Order) []domain.DailyRevenuePoint {
	groups := groupRevenue(orders, func(o *domain.Order) string {
		return o.OrderDate.Format(time.DateOnly)
	})

	// Dias sem pedidos são omitidos, não zerados
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].key < groups[j].key
	})

	points := make([]domain.DailyRevenuePoint, 0, len(groups))
	for _, group := range groups {
		points = append(points, domain.DailyRevenuePoint{
			Date:    group.key,
			Revenue: utils.MoneyFloat(group.revenue),
		})
	}
	return points
}

func buildPlatformSplit(orders []*domain.Order) []domain.PlatformSplitEntry {
	groups := groupCount(orders, func(o *domain.Order) string { return o.Platform })
	sortCountGroupsDesc(groups)

	entries := make([]domain.PlatformSplitEntry, 0, len(groups))
	for _, group := range groups {
		entries = append(entries, domain.PlatformSplitEntry{
			Platform: group.key,
			Orders:   group.count,
		})
	}
	return entries
}

func buildTopProducts(orders []*domain.Order) []domain.ProductRevenueEntry {
	groups := groupRevenue(orders, func(o *domain.Order) string { return o.ProductName })
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].revenue.GreaterThan(groups[j].revenue)
	})
	groups = limitRevenueGroups(groups, topProductsLimit)

	entries := make([]domain.ProductRevenueEntry, 0, len(groups))
	for _, group := range groups {
		entries = append(entries, domain.ProductRevenueEntry{
			Product: group.key,
			Revenue: utils.MoneyFloat(group.revenue),
		})
	}
	return entries
}

func buildTopAgencies(orders []*domain.Order) []domain.AgencyOrdersEntry {
	groups := groupCount(orders, func(o *domain.Order) string { return o.AgencyName })
	sortCountGroupsDesc(groups)
	groups = limitCountGroups(groups, topAgenciesLimit)

	entries := make([]domain.AgencyOrdersEntry, 0, len(groups))
	for _, group := range groups {
		entries = append(entries, domain.AgencyOrdersEntry{
			Agency: group.key,
			Orders: group.count,
		})
	}
	return entries
}

func buildTopAds(orders []*domain.Order) []domain.CampaignOrdersEntry {
	groups := groupCount(orders, func(o *domain.Order) string { return o.CampaignName })
	sortCountGroupsDesc(groups)
	groups = limitCountGroups(groups, topAdsLimit)

	entries := make([]domain.CampaignOrdersEntry, 0, len(groups))
	for _, group := range groups {
		entries = append(entries, domain.CampaignOrdersEntry{
			Campaign: group.key,
			Orders:   group.count,
		})
	}
	return entries
}

func buildCampaignPerf(orders []*domain.Order, spendByCampaign map[int64]decimal.Decimal, daysCount int) []domain.CampaignPerfEntry {
	type campaignGroup struct {
		id     int64
		name   string
		orders int
	}

	groupByID := make(map[int64]*campaignGroup)
	groups := make([]*campaignGroup, 0)
	for _, order := range orders {
		group, ok := groupByID[order.CampaignID]
		if !ok {
			group = &campaignGroup{id: order.CampaignID, name: order.CampaignName}
			groupByID[order.CampaignID] = group
			groups = append(groups, group)
		}
		group.orders++
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].orders > groups[j].orders
	})
	if len(groups) > campaignPerfLimit {
		groups = groups[:campaignPerfLimit]
	}

	days := decimal.NewFromInt(int64(daysCount))

	entries := make([]domain.CampaignPerfEntry, 0, len(groups))
	for _, group := range groups {
		dailySpend := spendByCampaign[group.id]
		spend := dailySpend.Mul(days).Round(2)

		entry := domain.CampaignPerfEntry{
			Campaign:   group.name,
			DailySpend: dailySpend.InexactFloat64(),
			Orders:     group.orders,
			Spend:      spend.InexactFloat64(),
		}
		if group.orders > 0 {
			entry.CPO = utils.MoneyFloat(spend.Div(decimal.NewFromInt(int64(group.orders))))
		}
		entries = append(entries, entry)
	}
	return entries
}

func buildRecentOrders(orders []*domain.Order) []domain.OrderListEntry {
	recent := sortedByRecency(orders)
	if len(recent) > orderListLimit {
		recent = recent[:orderListLimit]
	}

	entries := make([]domain.OrderListEntry, 0, len(recent))
	for _, order := range recent {
		entries = append(entries, domain.OrderListEntry{
			Date:       order.OrderDate.Format(time.DateOnly),
			Product:    order.ProductName,
			Agency:     order.AgencyName,
			OrderValue: utils.MoneyFloat(order.OrderValue),
			Status:     string(order.Status),
		})
	}
	return entries
}

func buildWaitingPickup(orders []*domain.Order) []domain.OrderListEntry {
	waiting := filterByStatus(orders, domain.OrderStatusWaitingPickup)
	waiting = sortedByRecency(waiting)
	if len(waiting) > orderListLimit {
		waiting = waiting[:orderListLimit]
	}

	entries := make([]domain.OrderListEntry, 0, len(waiting))
	for _, order := range waiting {
		entries = append(entries, domain.OrderListEntry{
			Date:       order.OrderDate.Format(time.DateOnly),
			Product:    order.ProductName,
			Campaign:   order.CampaignName,
			OrderValue: utils.MoneyFloat(order.OrderValue),
		})
	}
	return entries
}

func buildDelivered(orders []*domain.Order) []domain.OrderListEntry {
	delivered := filterByStatus(orders, domain.OrderStatusDelivered)
	delivered = sortedByRecency(delivered)
	if len(delivered) > orderListLimit {
		delivered = delivered[:orderListLimit]
	}

	entries := make([]domain.OrderListEntry, 0, len(delivered))
	for _, order := range delivered {
		entries = append(entries, domain.OrderListEntry{
			Date:       order.OrderDate.Format(time.DateOnly),
			Product:    order.ProductName,
			Agency:     order.AgencyName,
			OrderValue: utils.MoneyFloat(order.OrderValue),
		})
	}
	return entries
}

// sortedByRecency retorna uma cópia ordenada por (data desc, id desc)
func sortedByRecency(orders []*domain.Order) []*domain.Order {
	sorted := make([]*domain.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].OrderDate.Equal(sorted[j].OrderDate) {
			return sorted[i].OrderDate.After(sorted[j].OrderDate)
		}
		return sorted[i].ID > sorted[j].ID
	})
	return sorted
}

func filterByStatus(orders []*domain.Order, status domain.OrderStatus) []*domain.Order {
	filtered := make([]*domain.Order, 0)
	for _, order := range orders {
		if order.Status == status {
			filtered = append(filtered, order)
		}
	}
	return filtered
}
