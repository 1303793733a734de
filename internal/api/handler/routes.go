package handler

import (
	"net/http"

	"github.com/vfg2006/commerce-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/commerce-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/commerce-dashboard-api/internal/config"
	"github.com/vfg2006/commerce-dashboard-api/internal/usecases/dashboarding"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Dashboard(cfg *config.Config, service dashboarding.Dashboarder, snapshots repository.SnapshotRepository) []router.Route {
	return []router.Route{
		{
			Path:    "/dashboard",
			Method:  http.MethodGet,
			Handler: DashboardPage(cfg, service),
		},
		{
			Path:    "/v1/dashboard/data",
			Method:  http.MethodGet,
			Handler: GetDashboardData(service, snapshots),
		},
		{
			Path:    "/v1/dashboard/filters",
			Method:  http.MethodGet,
			Handler: GetDashboardFilters(cfg),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
