package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus representa o status de processamento de um pedido
type OrderStatus string

const (
	OrderStatusWaitingPickup OrderStatus = "WAITING_PICKUP"
	OrderStatusShipped       OrderStatus = "SHIPPED"
	OrderStatusDelivered     OrderStatus = "DELIVERED"
	OrderStatusReturned      OrderStatus = "RETURNED"
)

// Order representa um pedido já materializado com os nomes das entidades
// relacionadas (agência, campanha e produto), como retornado pelo repositório
type Order struct {
	ID           int64
	Platform     string
	AgencyID     int64
	AgencyName   string
	CampaignID   int64
	CampaignName string
	ProductID    int64
	ProductName  string
	OrderDate    time.Time
	OrderValue   decimal.Decimal
	Quantity     int
	Status       OrderStatus
	CustomerName string
	City         string
}

// OrderFilters define o período (inclusivo) e os filtros opcionais de
// igualdade aplicados à listagem de pedidos. Strings vazias desativam o filtro.
type OrderFilters struct {
	StartDate time.Time
	EndDate   time.Time
	Platform  string
	Agency    string
}
