package dashboarding

import (
	"github.com/vfg2006/commerce-dashboard-api/internal/domain"
)

// Dashboarder define a interface do pipeline de agregação do dashboard
type Dashboarder interface {
	// BuildDashboardPayload monta o payload completo (meta, KPIs, gráficos e
	// listas) para os parâmetros informados
	BuildDashboardPayload(params *domain.DashboardParams) (*domain.DashboardPayload, error)
}
