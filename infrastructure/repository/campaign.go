package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/commerce-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/commerce-dashboard-api/internal/domain"
)

const (
	campaignsTable = "ad_campaigns c"
)

type CampaignRepository interface {
	GetByIDs(ids []int64) ([]*domain.Campaign, error)
}

type campaignRepository struct {
	conn postgres.Queryer
}

func NewCampaignRepository(conn postgres.Queryer) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

// GetByIDs retorna as campanhas dos IDs informados com o nome da agência
// resolvido. Lista vazia de IDs retorna lista vazia sem tocar no banco.
func (r *campaignRepository) GetByIDs(ids []int64) ([]*domain.Campaign, error) {
	if len(ids) == 0 {
		return []*domain.Campaign{}, nil
	}

	query, args, err := squirrel.
		Select("c.id, c.agency_id, a.name AS agency_name, c.platform, c.name, c.daily_spend").
		From(campaignsTable).
		Join("agencies a ON a.id = c.agency_id").
		Where(squirrel.Eq{"c.id": ids}).
		OrderBy("c.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
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

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		campaign := &domain.Campaign{}
		err := rows.Scan(
			&campaign.ID,
			&campaign.AgencyID,
			&campaign.AgencyName,
			&campaign.Platform,
			&campaign.Name,
			&campaign.DailySpend,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return campaigns, nil
}
