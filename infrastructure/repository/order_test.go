package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/commerce-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/commerce-dashboard-api/internal/domain"
)

func newMockConnection(t *testing.T) (*postgres.Connection, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("erro ao criar mock do banco: %v", err)
	}
	return &postgres.Connection{DB: db}, mock
}

func orderColumns() []string {
	return []string{
		"id", "platform", "agency_id", "agency_name",
		"campaign_id", "campaign_name", "product_id", "product_name",
		"order_date", "order_value", "quantity", "status", "customer_name", "city",
	}
}

func TestOrderRepository_ListByPeriod(t *testing.T) {
	conn, mock := newMockConnection(t)
	defer conn.Close()

	repo := NewOrderRepository(conn)

	orderDate := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(orderColumns()).
		AddRow(1, "Instagram", 1, "Agency A", 1, "Agency A - Campaign 1", 1, "Shoe 1",
			orderDate, "100.00", 1, "DELIVERED", "Customer 1", "London").
		AddRow(2, "Facebook", 2, "Agency B", 2, "Agency B - Campaign 1", 2, "Shoe 2",
			orderDate, "59.90", 2, "WAITING_PICKUP", "Customer 2", "Leeds")

	mock.ExpectQuery(`SELECT (.+) FROM orders o JOIN agencies a`).
		WithArgs("2025-08-18", "2025-08-20").
		WillReturnRows(rows)

	orders, err := repo.ListByPeriod(domain.OrderFilters{
		StartDate: time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	assert.Len(t, orders, 2)

	assert.Equal(t, int64(1), orders[0].ID)
	assert.Equal(t, "Agency A", orders[0].AgencyName)
	assert.Equal(t, "Agency A - Campaign 1", orders[0].CampaignName)
	assert.Equal(t, "100.00", orders[0].OrderValue.String())
	assert.Equal(t, domain.OrderStatusDelivered, orders[0].Status)

	assert.Equal(t, int64(2), orders[1].ID)
	assert.Equal(t, "59.90", orders[1].OrderValue.String())
	assert.Equal(t, domain.OrderStatusWaitingPickup, orders[1].Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_ListByPeriod_ComFiltros(t *testing.T) {
	conn, mock := newMockConnection(t)
	defer conn.Close()

	repo := NewOrderRepository(conn)

	// Plataforma e agência preenchidas viram condições adicionais da query
	mock.ExpectQuery(`SELECT (.+) FROM orders o JOIN agencies a`).
		WithArgs("2025-08-18", "2025-08-20", "Instagram", "Agency A").
		WillReturnRows(sqlmock.NewRows(orderColumns()))

	orders, err := repo.ListByPeriod(domain.OrderFilters{
		StartDate: time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC),
		Platform:  "Instagram",
		Agency:    "Agency A",
	})

	assert.NoError(t, err)
	assert.Empty(t, orders)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_ListByPeriod_ErroDeQuery(t *testing.T) {
	conn, mock := newMockConnection(t)
	defer conn.Close()

	repo := NewOrderRepository(conn)

	mock.ExpectQuery(`SELECT (.+) FROM orders o JOIN agencies a`).
		WillReturnError(errors.New("connection refused"))

	orders, err := repo.ListByPeriod(domain.OrderFilters{
		StartDate: time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC),
	})

	assert.Error(t, err)
	assert.Nil(t, orders)
	assert.Contains(t, err.Error(), "erro ao executar a query")
}

func TestCampaignRepository_GetByIDs(t *testing.T) {
	conn, mock := newMockConnection(t)
	defer conn.Close()

	repo := NewCampaignRepository(conn)

	rows := sqlmock.NewRows([]string{"id", "agency_id", "agency_name", "platform", "name", "daily_spend"}).
		AddRow(1, 1, "Agency A", "Meta", "Agency A - Campaign 1", "45.00").
		AddRow(2, 2, "Agency B", "Meta", "Agency B - Campaign 1", "120.00")

	mock.ExpectQuery(`SELECT (.+) FROM ad_campaigns c JOIN agencies a`).
		WillReturnRows(rows)

	campaigns, err := repo.GetByIDs([]int64{1, 2})

	assert.NoError(t, err)
	assert.Len(t, campaigns, 2)
	assert.Equal(t, "45.00", campaigns[0].DailySpend.String())
	assert.Equal(t, "Agency B", campaigns[1].AgencyName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCampaignRepository_GetByIDs_ListaVazia(t *testing.T) {
	conn, _ := newMockConnection(t)
	defer conn.Close()

	repo := NewCampaignRepository(conn)

	// Lista vazia de IDs não deve tocar no banco
	campaigns, err := repo.GetByIDs([]int64{})

	assert.NoError(t, err)
	assert.Empty(t, campaigns)
}

func TestSnapshotRepository_GetByDate(t *testing.T) {
	conn, mock := newMockConnection(t)
	defer conn.Close()

	repo := NewSnapshotRepository(conn)

	date := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	payloadJSON := []byte(`{"meta":{"start_date":"2025-08-20","end_date":"2025-08-20"},"kpis":{"total_orders":12}}`)

	// Colunas DATE chegam do driver como time.Time
	rows := sqlmock.NewRows([]string{"id", "date", "payload", "created_at", "updated_at"}).
		AddRow(1, date, payloadJSON, time.Now(), time.Now())

	mock.ExpectQuery(`SELECT (.+) FROM dashboard_snapshots ds`).
		WithArgs("2025-08-20").
		WillReturnRows(rows)

	snapshot, err := repo.GetByDate(date)

	assert.NoError(t, err)
	assert.NotNil(t, snapshot)
	assert.True(t, date.Equal(snapshot.Date))
	assert.Equal(t, "2025-08-20", snapshot.Payload.Meta.StartDate)
	assert.Equal(t, 12, snapshot.Payload.KPIs.TotalOrders)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_GetByDate_SemRegistro(t *testing.T) {
	conn, mock := newMockConnection(t)
	defer conn.Close()

	repo := NewSnapshotRepository(conn)

	mock.ExpectQuery(`SELECT (.+) FROM dashboard_snapshots ds`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "payload", "created_at", "updated_at"}))

	snapshot, err := repo.GetByDate(time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC))

	assert.NoError(t, err)
	assert.Nil(t, snapshot)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_SaveOrUpdate(t *testing.T) {
	conn, mock := newMockConnection(t)
	defer conn.Close()

	repo := NewSnapshotRepository(conn)

	mock.ExpectExec(`INSERT INTO dashboard_snapshots`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.SaveOrUpdate(&domain.DashboardSnapshot{
		Date: time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC),
		Payload: &domain.DashboardPayload{
			Meta: domain.DashboardMeta{StartDate: "2025-08-20", EndDate: "2025-08-20"},
		},
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_DeleteOlderThan(t *testing.T) {
	conn, mock := newMockConnection(t)
	defer conn.Close()

	repo := NewSnapshotRepository(conn)

	mock.ExpectExec(`DELETE FROM dashboard_snapshots`).
		WillReturnResult(sqlmock.NewResult(0, 7))

	removed, err := repo.DeleteOlderThan(120)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
