package dashboarding

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/commerce-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/commerce-dashboard-api/internal/domain"
	"go.uber.org/mock/gomock"
)

// fixedNow é a data de referência dos testes (quarta-feira)
var fixedNow = time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

func newTestService(orderRepo *mocks.MockOrderRepository, campaignRepo *mocks.MockCampaignRepository) *Service {
	return &Service{
		orderRepo:    orderRepo,
		campaignRepo: campaignRepo,
		now:          func() time.Time { return fixedNow },
	}
}

func testOrder(id int64, date string, agencyID int64, agencyName string, campaignID int64, campaignName string, value int64) *domain.Order {
	orderDate, _ := time.Parse(time.DateOnly, date)
	return &domain.Order{
		ID:           id,
		Platform:     "Instagram",
		AgencyID:     agencyID,
		AgencyName:   agencyName,
		CampaignID:   campaignID,
		CampaignName: campaignName,
		ProductID:    1,
		ProductName:  "Shoe 1",
		OrderDate:    orderDate,
		OrderValue:   decimal.NewFromInt(value),
		Quantity:     1,
		Status:       domain.OrderStatusDelivered,
		CustomerName: "Customer 1",
		City:         "London",
	}
}

func TestBuildDashboardPayload_KPIs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrderRepo := mocks.NewMockOrderRepository(ctrl)
	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	service := newTestService(mockOrderRepo, mockCampaignRepo)

	// 5 pedidos de 100 referenciando a mesma campanha em um período de 3 dias
	orders := []*domain.Order{
		testOrder(1, "2025-08-18", 1, "Agency A", 1, "Agency A - Campaign 1", 100),
		testOrder(2, "2025-08-18", 1, "Agency A", 1, "Agency A - Campaign 1", 100),
		testOrder(3, "2025-08-19", 1, "Agency A", 1, "Agency A - Campaign 1", 100),
		testOrder(4, "2025-08-19", 1, "Agency A", 1, "Agency A - Campaign 1", 100),
		testOrder(5, "2025-08-20", 1, "Agency A", 1, "Agency A - Campaign 1", 100),
	}

	mockOrderRepo.EXPECT().ListByPeriod(gomock.Any()).Return(orders, nil)
	mockCampaignRepo.EXPECT().GetByIDs([]int64{1}).Return([]*domain.Campaign{
		{ID: 1, AgencyID: 1, AgencyName: "Agency A", Platform: "Meta", Name: "Agency A - Campaign 1", DailySpend: decimal.NewFromInt(10)},
	}, nil)

	payload, err := service.BuildDashboardPayload(&domain.DashboardParams{
		Preset:   "custom",
		FromDate: "2025-08-18",
		ToDate:   "2025-08-20",
		Platform: "All",
		Agency:   "All",
	})

	assert.NoError(t, err)
	assert.Equal(t, "2025-08-18", payload.Meta.StartDate)
	assert.Equal(t, "2025-08-20", payload.Meta.EndDate)

	// A campanha entra uma única vez no gasto: 10 por dia x 3 dias
	assert.Equal(t, 5, payload.KPIs.TotalOrders)
	assert.Equal(t, 500.0, payload.KPIs.TotalRevenue)
	assert.Equal(t, 5, payload.KPIs.TotalItems)
	assert.Equal(t, 30.0, payload.KPIs.TotalAdsSpend)
	assert.Equal(t, 100.0, payload.KPIs.AvgOrderValue)
	assert.Equal(t, 6.0, payload.KPIs.CPO)

	// 500 * 0.38 - 30 = 160; ROI = 160 / 30 * 100 = 533.33
	assert.Equal(t, 160.0, payload.KPIs.GrossProfit)
	assert.Equal(t, 533.33, payload.KPIs.ROI)
}

func TestBuildDashboardPayload_PeriodoSemPedidos(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrderRepo := mocks.NewMockOrderRepository(ctrl)
	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	service := newTestService(mockOrderRepo, mockCampaignRepo)

	mockOrderRepo.EXPECT().ListByPeriod(gomock.Any()).Return([]*domain.Order{}, nil)
	mockCampaignRepo.EXPECT().GetByIDs([]int64{}).Return([]*domain.Campaign{}, nil)

	payload, err := service.BuildDashboardPayload(&domain.DashboardParams{Preset: PresetToday})

	assert.NoError(t, err)
	assert.Equal(t, 0, payload.KPIs.TotalOrders)
	assert.Equal(t, 0.0, payload.KPIs.TotalRevenue)
	assert.Equal(t, 0.0, payload.KPIs.TotalAdsSpend)
	assert.Equal(t, 0.0, payload.KPIs.GrossProfit)
	assert.Equal(t, 0.0, payload.KPIs.ROI)
	assert.Equal(t, 0.0, payload.KPIs.AvgOrderValue)
	assert.Equal(t, 0.0, payload.KPIs.CPO)

	assert.Empty(t, payload.Charts.DailyRevenue)
	assert.Empty(t, payload.Lists.RecentOrders)
	assert.Empty(t, payload.Lists.UnderperformingAgencies)
}

func TestBuildDashboardPayload_NormalizacaoDeFiltros(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrderRepo := mocks.NewMockOrderRepository(ctrl)
	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	service := newTestService(mockOrderRepo, mockCampaignRepo)

	// "All" na entrada deve chegar ao repositório como filtro vazio
	mockOrderRepo.EXPECT().
		ListByPeriod(gomock.Any()).
		DoAndReturn(func(filters domain.OrderFilters) ([]*domain.Order, error) {
			assert.Equal(t, "", filters.Platform)
			assert.Equal(t, "Agency B", filters.Agency)
			return []*domain.Order{}, nil
		})
	mockCampaignRepo.EXPECT().GetByIDs(gomock.Any()).Return([]*domain.Campaign{}, nil)

	_, err := service.BuildDashboardPayload(&domain.DashboardParams{
		Preset:   PresetToday,
		Platform: "All",
		Agency:   "Agency B",
	})

	assert.NoError(t, err)
}

func TestBuildDashboardPayload_ErroDoRepositorio(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrderRepo := mocks.NewMockOrderRepository(ctrl)
	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	service := newTestService(mockOrderRepo, mockCampaignRepo)

	mockOrderRepo.EXPECT().ListByPeriod(gomock.Any()).Return(nil, errors.New("connection refused"))

	payload, err := service.BuildDashboardPayload(&domain.DashboardParams{Preset: PresetToday})

	assert.Error(t, err)
	assert.Nil(t, payload)
	assert.Contains(t, err.Error(), "erro ao buscar pedidos do período")
}

func TestBuildDashboardPayload_ChartsELimites(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrderRepo := mocks.NewMockOrderRepository(ctrl)
	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	service := newTestService(mockOrderRepo, mockCampaignRepo)

	orders := []*domain.Order{
		testOrder(1, "2025-08-18", 1, "Agency A", 1, "Agency A - Campaign 1", 100),
		testOrder(2, "2025-08-19", 1, "Agency A", 1, "Agency A - Campaign 1", 50),
		testOrder(3, "2025-08-19", 2, "Agency B", 2, "Agency B - Campaign 1", 200),
		testOrder(4, "2025-08-20", 3, "Agency C", 3, "Agency C - Campaign 1", 80),
		testOrder(5, "2025-08-20", 4, "Agency D", 4, "Agency D - Campaign 1", 60),
	}
	orders[2].Platform = "Facebook"
	orders[2].ProductName = "Shoe 2"
	orders[2].ProductID = 2
	orders[4].Status = domain.OrderStatusWaitingPickup

	mockOrderRepo.EXPECT().ListByPeriod(gomock.Any()).Return(orders, nil)
	mockCampaignRepo.EXPECT().GetByIDs([]int64{1, 2, 3, 4}).Return([]*domain.Campaign{
		{ID: 1, DailySpend: decimal.NewFromInt(10)},
		{ID: 2, DailySpend: decimal.NewFromInt(20)},
		{ID: 3, DailySpend: decimal.NewFromInt(30)},
		{ID: 4, DailySpend: decimal.NewFromInt(40)},
	}, nil)

	payload, err := service.BuildDashboardPayload(&domain.DashboardParams{
		Preset:   "custom",
		FromDate: "2025-08-18",
		ToDate:   "2025-08-20",
	})
	assert.NoError(t, err)

	// Receita diária em ordem cronológica ascendente, dias sem pedidos omitidos
	assert.Equal(t, []domain.DailyRevenuePoint{
		{Date: "2025-08-18", Revenue: 100.0},
		{Date: "2025-08-19", Revenue: 250.0},
		{Date: "2025-08-20", Revenue: 140.0},
	}, payload.Charts.DailyRevenue)

	// Divisão por plataforma em ordem decrescente de pedidos
	assert.Equal(t, []domain.PlatformSplitEntry{
		{Platform: "Instagram", Orders: 4},
		{Platform: "Facebook", Orders: 1},
	}, payload.Charts.PlatformSplit)

	// Top produtos por receita
	assert.Equal(t, []domain.ProductRevenueEntry{
		{Product: "Shoe 1", Revenue: 290.0},
		{Product: "Shoe 2", Revenue: 200.0},
	}, payload.Charts.TopProducts)

	// Top agências limitado a 3, empates na ordem de primeira ocorrência
	assert.Len(t, payload.Charts.TopAgencies, 3)
	assert.Equal(t, domain.AgencyOrdersEntry{Agency: "Agency A", Orders: 2}, payload.Charts.TopAgencies[0])
	assert.Equal(t, domain.AgencyOrdersEntry{Agency: "Agency B", Orders: 1}, payload.Charts.TopAgencies[1])

	// Desempenho de campanhas: gasto = taxa diária x 3 dias
	assert.Len(t, payload.Charts.CampaignPerf, 4)
	first := payload.Charts.CampaignPerf[0]
	assert.Equal(t, "Agency A - Campaign 1", first.Campaign)
	assert.Equal(t, 2, first.Orders)
	assert.Equal(t, 30.0, first.Spend)
	assert.Equal(t, 15.0, first.CPO)

	// Listas: pedidos recentes em ordem decrescente de data, waiting_pickup filtrada
	assert.Len(t, payload.Lists.RecentOrders, 5)
	assert.Equal(t, "2025-08-20", payload.Lists.RecentOrders[0].Date)
	assert.Len(t, payload.Lists.WaitingPickup, 1)
	assert.Equal(t, "Agency D - Campaign 1", payload.Lists.WaitingPickup[0].Campaign)
	assert.Len(t, payload.Lists.Delivered, 4)
}

func TestBuildDashboardPayload_ListasLimitadasADez(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrderRepo := mocks.NewMockOrderRepository(ctrl)
	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	service := newTestService(mockOrderRepo, mockCampaignRepo)

	orders := make([]*domain.Order, 0, 15)
	for i := int64(1); i <= 15; i++ {
		orders = append(orders, testOrder(i, "2025-08-20", 1, "Agency A", 1, "Agency A - Campaign 1", 100))
	}

	mockOrderRepo.EXPECT().ListByPeriod(gomock.Any()).Return(orders, nil)
	mockCampaignRepo.EXPECT().GetByIDs([]int64{1}).Return([]*domain.Campaign{
		{ID: 1, DailySpend: decimal.NewFromInt(10)},
	}, nil)

	payload, err := service.BuildDashboardPayload(&domain.DashboardParams{Preset: PresetToday})
	assert.NoError(t, err)

	assert.Len(t, payload.Lists.RecentOrders, 10)
	assert.Len(t, payload.Lists.Delivered, 10)

	// Em empate de data, os IDs mais altos vêm primeiro
	assert.Equal(t, 15, payload.KPIs.TotalOrders)
}
