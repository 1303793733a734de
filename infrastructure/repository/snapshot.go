package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/commerce-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/commerce-dashboard-api/internal/domain"
)

const (
	snapshotsTable = "dashboard_snapshots ds"
)

type SnapshotRepository interface {
	GetByDate(date time.Time) (*domain.DashboardSnapshot, error)
	SaveOrUpdate(snapshot *domain.DashboardSnapshot) error
	DeleteOlderThan(days int) (int64, error)
}

type snapshotRepository struct {
	conn postgres.Queryer
}

func NewSnapshotRepository(conn postgres.Queryer) SnapshotRepository {
	return &snapshotRepository{
		conn: conn,
	}
}

func (r *snapshotRepository) GetByDate(date time.Time) (*domain.DashboardSnapshot, error) {
	query, args, err := squirrel.
		Select("ds.id, ds.date, ds.payload, ds.created_at, ds.updated_at").
		From(snapshotsTable).
		Where(squirrel.Eq{"ds.date": date.Format(time.DateOnly)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)

	snapshot := &domain.DashboardSnapshot{}
	var payloadJSON []byte

	// Colunas DATE chegam do driver como time.Time
	err = row.Scan(
		&snapshot.ID,
		&snapshot.Date,
		&payloadJSON,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear snapshot: %w", err)
	}

	if payloadJSON != nil {
		payload := &domain.DashboardPayload{}
		if err := json.Unmarshal(payloadJSON, payload); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON do payload: %w", err)
		}
		snapshot.Payload = payload
	}

	return snapshot, nil
}

func (r *snapshotRepository) SaveOrUpdate(snapshot *domain.DashboardSnapshot) error {
	var payloadJSON []byte
	var err error

	if snapshot.Payload != nil {
		payloadJSON, err = json.Marshal(snapshot.Payload)
		if err != nil {
			return fmt.Errorf("erro ao serializar payload para JSON: %w", err)
		}
	}

	query := squirrel.StatementBuilder.
		Insert("dashboard_snapshots").
		Columns("date", "payload").
		Values(
			snapshot.Date.Format(time.DateOnly),
			payloadJSON,
		).
		Suffix(`
			ON CONFLICT (date) DO UPDATE SET
				payload = EXCLUDED.payload,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *snapshotRepository) DeleteOlderThan(days int) (int64, error) {
	cutoffDate := time.Now().AddDate(0, 0, -days).Format(time.DateOnly)

	query, args, err := squirrel.
		Delete("dashboard_snapshots").
		Where(squirrel.Lt{"date": cutoffDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}
