package handler

import (
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/vfg2006/commerce-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/commerce-dashboard-api/internal/config"
	"github.com/vfg2006/commerce-dashboard-api/internal/domain"
	"github.com/vfg2006/commerce-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/commerce-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/commerce-dashboard-api/pkg/log"
)

// parseDashboardParams extrai os parâmetros do dashboard da query string,
// aplicando os defaults (hoje, sem filtros)
func parseDashboardParams(r *http.Request) *domain.DashboardParams {
	query := r.URL.Query()

	preset := query.Get("preset")
	if preset == "" {
		preset = dashboarding.PresetToday
	}

	platform := query.Get("platform")
	if platform == "" {
		platform = "All"
	}

	agency := query.Get("agency")
	if agency == "" {
		agency = "All"
	}

	return &domain.DashboardParams{
		Preset:   preset,
		FromDate: query.Get("from"),
		ToDate:   query.Get("to"),
		Platform: platform,
		Agency:   agency,
	}
}

// precomputedSnapshotDate identifica consultas cobertas pelos snapshots
// diários do agendador: um único dia já encerrado, sem filtros de plataforma
// ou agência
func precomputedSnapshotDate(params *domain.DashboardParams, now time.Time) (time.Time, bool) {
	if params.Preset != "custom" || params.Platform != "All" || params.Agency != "All" {
		return time.Time{}, false
	}
	if params.FromDate == "" || params.FromDate != params.ToDate {
		return time.Time{}, false
	}

	date, err := time.ParseInLocation(time.DateOnly, params.FromDate, now.Location())
	if err != nil {
		return time.Time{}, false
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if !date.Before(today) {
		return time.Time{}, false
	}

	return date, true
}

// GetDashboardData retorna o payload completo do dashboard em JSON. Consultas
// de um único dia já encerrado, sem filtros, são servidas do snapshot
// pré-calculado quando ele existe, sem reexecutar o pipeline
func GetDashboardData(service dashboarding.Dashboarder, snapshots repository.SnapshotRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		params := parseDashboardParams(r)

		logger.WithFields(log.Fields{
			"preset":   params.Preset,
			"from":     params.FromDate,
			"to":       params.ToDate,
			"platform": params.Platform,
			"agency":   params.Agency,
		}).Info("dashboard: building payload")

		if date, ok := precomputedSnapshotDate(params, time.Now()); ok {
			snapshot, err := snapshots.GetByDate(date)
			if err != nil {
				logger.WithError(err).Warn("dashboard: failed to load snapshot, rebuilding payload")
			} else if snapshot != nil && snapshot.Payload != nil {
				logger.WithFields(log.Fields{
					"start_date": snapshot.Payload.Meta.StartDate,
					"end_date":   snapshot.Payload.Meta.EndDate,
				}).Info("dashboard: serving precomputed snapshot")

				w.Header().Set("Content-Type", "application/json")
				if err := json.NewEncoder(w).Encode(snapshot.Payload); err != nil {
					logger.WithError(err).Error("dashboard: failed to encode response")
					http.Error(w, err.Error(), http.StatusInternalServerError)
				}
				return
			}
		}

		payload, err := service.BuildDashboardPayload(params)
		if err != nil {
			logger.WithFields(log.Fields{
				"preset": params.Preset,
				"error":  err.Error(),
			}).Error("dashboard: failed to build payload")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao montar os dados do dashboard", nil)
			return
		}

		logger.WithFields(log.Fields{
			"start_date":   payload.Meta.StartDate,
			"end_date":     payload.Meta.EndDate,
			"total_orders": payload.KPIs.TotalOrders,
		}).Info("dashboard: payload built successfully")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.WithError(err).Error("dashboard: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetDashboardFilters retorna as listas de opções de filtro da UI
func GetDashboardFilters(cfg *config.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		options := domain.DashboardFilterOptions{
			PlatformOptions: cfg.Dashboard.PlatformOptions,
			AgencyOptions:   cfg.Dashboard.AgencyOptions,
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(options); err != nil {
			logger.WithError(err).Error("dashboard: failed to encode filter options")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

var dashboardPageTemplate = template.Must(template.New("dashboard").Parse(dashboardPageHTML))

type dashboardPageData struct {
	Payload template.JS
	Options template.JS
	Params  template.JS
}

// DashboardPage renderiza a página HTML do dashboard com o payload inicial
// embutido, evitando uma segunda requisição no carregamento. Os parâmetros
// de filtro são ecoados de volta para a página restaurar a seleção
func DashboardPage(cfg *config.Config, service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		params := parseDashboardParams(r)

		payload, err := service.BuildDashboardPayload(params)
		if err != nil {
			logger.WithError(err).Error("dashboard: failed to build payload for page")
			http.Error(w, "Erro ao montar os dados do dashboard", http.StatusInternalServerError)
			return
		}

		payloadJSON, err := json.Marshal(payload)
		if err != nil {
			logger.WithError(err).Error("dashboard: failed to marshal payload for page")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		optionsJSON, err := json.Marshal(domain.DashboardFilterOptions{
			PlatformOptions: cfg.Dashboard.PlatformOptions,
			AgencyOptions:   cfg.Dashboard.AgencyOptions,
		})
		if err != nil {
			logger.WithError(err).Error("dashboard: failed to marshal filter options for page")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		paramsJSON, err := json.Marshal(params)
		if err != nil {
			logger.WithError(err).Error("dashboard: failed to marshal params for page")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err = dashboardPageTemplate.Execute(w, dashboardPageData{
			Payload: template.JS(payloadJSON),
			Options: template.JS(optionsJSON),
			Params:  template.JS(paramsJSON),
		})
		if err != nil {
			logger.WithError(err).Error("dashboard: failed to render page")
		}
	})
}

const dashboardPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8">
	<meta name="viewport" content="width=device-width, initial-scale=1">
	<title>Commerce Dashboard</title>
	<style>
		body { font-family: system-ui, sans-serif; margin: 0; background: #f4f5f7; color: #1f2430; }
		header { background: #1f2430; color: #fff; padding: 16px 24px; }
		main { padding: 24px; }
		.kpis { display: grid; grid-template-columns: repeat(auto-fit, minmax(160px, 1fr)); gap: 12px; }
		.kpi { background: #fff; border-radius: 8px; padding: 16px; box-shadow: 0 1px 2px rgba(0,0,0,.08); }
		.kpi .label { font-size: 12px; text-transform: uppercase; color: #6b7280; }
		.kpi .value { font-size: 22px; font-weight: 600; margin-top: 4px; }
		section { margin-top: 24px; background: #fff; border-radius: 8px; padding: 16px; box-shadow: 0 1px 2px rgba(0,0,0,.08); }
		table { width: 100%; border-collapse: collapse; font-size: 14px; }
		th, td { text-align: left; padding: 6px 8px; border-bottom: 1px solid #e5e7eb; }
		.flagged { color: #b91c1c; font-weight: 600; }
		#filters { display: flex; flex-wrap: wrap; gap: 8px; margin-bottom: 24px; }
		#filters select, #filters input, #filters button { padding: 6px 8px; border: 1px solid #d1d5db; border-radius: 6px; background: #fff; }
	</style>
</head>
<body>
	<header><h1>Commerce Dashboard</h1></header>
	<main>
		<form id="filters" method="get" action="/dashboard">
			<select name="preset" id="preset">
				<option value="today">Today</option>
				<option value="this_week">This Week</option>
				<option value="this_month">This Month</option>
				<option value="last_month">Last Month</option>
				<option value="this_quarter">This Quarter</option>
				<option value="custom">Custom</option>
			</select>
			<input type="date" name="from" id="from">
			<input type="date" name="to" id="to">
			<select name="platform" id="platform"></select>
			<select name="agency" id="agency"></select>
			<button type="submit">Apply</button>
		</form>
		<div class="kpis" id="kpis"></div>
		<section>
			<h2>Underperforming Agencies</h2>
			<table id="agencies"><thead><tr>
				<th>Agency</th><th>Orders</th><th>Revenue</th><th>Spend</th><th>CPO</th><th>Status</th>
			</tr></thead><tbody></tbody></table>
		</section>
		<section>
			<h2>Recent Orders</h2>
			<table id="recent"><thead><tr>
				<th>Date</th><th>Product</th><th>Agency</th><th>Value</th><th>Status</th>
			</tr></thead><tbody></tbody></table>
		</section>
	</main>
	<script>
		const payload = {{.Payload}};
		const options = {{.Options}};
		const params = {{.Params}};

		function fillSelect(id, values, selected) {
			const el = document.getElementById(id);
			for (const value of values) {
				const opt = document.createElement("option");
				opt.value = value;
				opt.textContent = value;
				if (value === selected) opt.selected = true;
				el.appendChild(opt);
			}
		}

		fillSelect("platform", options.platform_options, params.platform);
		fillSelect("agency", options.agency_options, params.agency);
		document.getElementById("preset").value = params.preset;
		document.getElementById("from").value = params.from;
		document.getElementById("to").value = params.to;

		const kpiLabels = {
			total_orders: "Total Orders",
			total_revenue: "Total Revenue",
			total_items: "Total Items",
			total_ads_spend: "Ads Spend",
			gross_profit: "Gross Profit",
			roi: "ROI %",
			avg_order_value: "Avg Order Value",
			cpo: "CPO"
		};

		const kpisEl = document.getElementById("kpis");
		for (const [key, label] of Object.entries(kpiLabels)) {
			const div = document.createElement("div");
			div.className = "kpi";
			div.innerHTML = '<div class="label">' + label + '</div><div class="value">' + payload.kpis[key] + '</div>';
			kpisEl.appendChild(div);
		}

		const agenciesBody = document.querySelector("#agencies tbody");
		for (const row of payload.lists.underperforming_agencies) {
			const tr = document.createElement("tr");
			const statusClass = row.status === "OK" ? "" : "flagged";
			tr.innerHTML = "<td>" + row.agency + "</td><td>" + row.orders + "</td><td>" + row.revenue +
				"</td><td>" + row.spend + "</td><td>" + row.cpo +
				'</td><td class="' + statusClass + '">' + row.status + "</td>";
			agenciesBody.appendChild(tr);
		}

		const recentBody = document.querySelector("#recent tbody");
		for (const row of payload.lists.recent_orders) {
			const tr = document.createElement("tr");
			tr.innerHTML = "<td>" + row.order_date + "</td><td>" + row.product + "</td><td>" + row.agency +
				"</td><td>" + row.order_value + "</td><td>" + (row.status || "") + "</td>";
			recentBody.appendChild(tr);
		}
	</script>
</body>
</html>
`
