package domain

import "time"

// DashboardParams são os parâmetros de entrada do pipeline do dashboard,
// como recebidos da query string. As tags JSON seguem os nomes dos
// parâmetros, para ecoar a seleção de filtros de volta à página
type DashboardParams struct {
	Preset   string `json:"preset"`
	FromDate string `json:"from"`
	ToDate   string `json:"to"`
	Platform string `json:"platform"`
	Agency   string `json:"agency"`
}

// DashboardPayload é a saída única do pipeline, serializável em JSON
type DashboardPayload struct {
	Meta   DashboardMeta   `json:"meta"`
	KPIs   DashboardKPIs   `json:"kpis"`
	Charts DashboardCharts `json:"charts"`
	Lists  DashboardLists  `json:"lists"`
}

type DashboardMeta struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// DashboardKPIs contém os indicadores escalares do período. Valores
// monetários já quantizados em duas casas decimais.
type DashboardKPIs struct {
	TotalOrders   int     `json:"total_orders"`
	TotalRevenue  float64 `json:"total_revenue"`
	TotalItems    int     `json:"total_items"`
	TotalAdsSpend float64 `json:"total_ads_spend"`
	GrossProfit   float64 `json:"gross_profit"`
	ROI           float64 `json:"roi"`
	AvgOrderValue float64 `json:"avg_order_value"`
	CPO           float64 `json:"cpo"`
}

type DashboardCharts struct {
	DailyRevenue  []DailyRevenuePoint   `json:"daily_revenue"`
	PlatformSplit []PlatformSplitEntry  `json:"platform_split"`
	TopProducts   []ProductRevenueEntry `json:"top_products"`
	TopAgencies   []AgencyOrdersEntry   `json:"top_agencies"`
	TopAds        []CampaignOrdersEntry `json:"top_ads"`
	CampaignPerf  []CampaignPerfEntry   `json:"campaign_perf"`
}

type DashboardLists struct {
	RecentOrders            []OrderListEntry    `json:"recent_orders"`
	WaitingPickup           []OrderListEntry    `json:"waiting_pickup"`
	Delivered               []OrderListEntry    `json:"delivered"`
	UnderperformingAgencies []AgencyPerformance `json:"underperforming_agencies"`
}

type DailyRevenuePoint struct {
	Date    string  `json:"order_date"`
	Revenue float64 `json:"revenue"`
}

type PlatformSplitEntry struct {
	Platform string `json:"platform"`
	Orders   int    `json:"orders"`
}

type ProductRevenueEntry struct {
	Product string  `json:"product"`
	Revenue float64 `json:"revenue"`
}

type AgencyOrdersEntry struct {
	Agency string `json:"agency"`
	Orders int    `json:"orders"`
}

type CampaignOrdersEntry struct {
	Campaign string `json:"campaign"`
	Orders   int    `json:"orders"`
}

// CampaignPerfEntry traz o desempenho de uma campanha no período:
// Spend = DailySpend × dias do período, CPO = Spend / Orders
type CampaignPerfEntry struct {
	Campaign   string  `json:"campaign"`
	DailySpend float64 `json:"daily_spend"`
	Orders     int     `json:"orders"`
	Spend      float64 `json:"spend"`
	CPO        float64 `json:"cpo"`
}

// OrderListEntry é uma linha das listas de pedidos. Agency e Campaign são
// mutuamente exclusivos conforme a lista (recent/delivered usam Agency,
// waiting_pickup usa Campaign) e Status só aparece em recent_orders.
type OrderListEntry struct {
	Date       string  `json:"order_date"`
	Product    string  `json:"product"`
	Agency     string  `json:"agency,omitempty"`
	Campaign   string  `json:"campaign,omitempty"`
	OrderValue float64 `json:"order_value"`
	Status     string  `json:"status,omitempty"`
}

// AgencyPerformance é uma linha da análise de agências com baixo desempenho
type AgencyPerformance struct {
	Agency  string  `json:"agency"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
	Spend   float64 `json:"spend"`
	CPO     float64 `json:"cpo"`
	Status  string  `json:"status"`
	IsDemo  bool    `json:"is_demo"`
}

// DashboardFilterOptions são as listas fixas de opções selecionáveis da UI
type DashboardFilterOptions struct {
	PlatformOptions []string `json:"platform_options"`
	AgencyOptions   []string `json:"agency_options"`
}

// DashboardSnapshot é um payload diário pré-calculado pelo agendador
type DashboardSnapshot struct {
	ID        int64
	Date      time.Time
	Payload   *DashboardPayload
	CreatedAt time.Time
	UpdatedAt time.Time
}
