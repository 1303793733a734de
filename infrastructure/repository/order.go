package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/commerce-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/commerce-dashboard-api/internal/domain"
)

const (
	ordersTable = "orders o"
)

type OrderRepository interface {
	ListByPeriod(filters domain.OrderFilters) ([]*domain.Order, error)
}

type orderRepository struct {
	conn postgres.Queryer
}

func NewOrderRepository(conn postgres.Queryer) OrderRepository {
	return &orderRepository{
		conn: conn,
	}
}

// ListByPeriod retorna os pedidos do intervalo inclusivo de datas, com os
// nomes de agência, campanha e produto já resolvidos. Platform e Agency
// vazios desabilitam o filtro correspondente.
func (r *orderRepository) ListByPeriod(filters domain.OrderFilters) ([]*domain.Order, error) {
	builder := squirrel.
		Select(`o.id, o.platform, o.agency_id, a.name AS agency_name,
			o.campaign_id, c.name AS campaign_name, o.product_id, p.name AS product_name,
			o.order_date, o.order_value, o.quantity, o.status, o.customer_name, o.city`).
		From(ordersTable).
		Join("agencies a ON a.id = o.agency_id").
		Join("ad_campaigns c ON c.id = o.campaign_id").
		Join("products p ON p.id = o.product_id").
		Where(squirrel.GtOrEq{"o.order_date": filters.StartDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"o.order_date": filters.EndDate.Format(time.DateOnly)}).
		OrderBy("o.order_date ASC", "o.id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filters.Platform != "" {
		builder = builder.Where(squirrel.Eq{"o.platform": filters.Platform})
	}

	if filters.Agency != "" {
		builder = builder.Where(squirrel.Eq{"a.name": filters.Agency})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear pedido: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) scanOrder(rows *sql.Rows) (*domain.Order, error) {
	order := &domain.Order{}

	err := rows.Scan(
		&order.ID,
		&order.Platform,
		&order.AgencyID,
		&order.AgencyName,
		&order.CampaignID,
		&order.CampaignName,
		&order.ProductID,
		&order.ProductName,
		&order.OrderDate,
		&order.OrderValue,
		&order.Quantity,
		&order.Status,
		&order.CustomerName,
		&order.City,
	)
	if err != nil {
		return nil, err
	}

	return order, nil
}
