package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/commerce-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/commerce-dashboard-api/internal/config"
	"github.com/vfg2006/commerce-dashboard-api/internal/domain"
	"github.com/vfg2006/commerce-dashboard-api/internal/usecases/dashboarding"
)

// SnapshotSyncConfig representa a configuração do agendador de snapshots do dashboard
type SnapshotSyncConfig struct {
	CronSchedule  string
	LookbackDays  int
	RetentionDays int
	SyncEnabled   bool
}

// SnapshotSyncService gerencia o agendamento e execução do pré-cálculo diário
// de payloads do dashboard. Cada execução monta o payload de cada dia da
// janela de lookback (sem filtros de plataforma ou agência) e persiste o
// resultado na tabela de snapshots.
type SnapshotSyncService struct {
	scheduler           *gocron.Scheduler
	config              SnapshotSyncConfig
	dashboardService    dashboarding.Dashboarder
	snapshotRepo        repository.SnapshotRepository
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewSnapshotSyncService cria uma nova instância do serviço de sincronização de snapshots
func NewSnapshotSyncService(
	dashboardService dashboarding.Dashboarder,
	snapshotRepo repository.SnapshotRepository,
	appConfig *config.Config,
) *SnapshotSyncService {
	// Criar a configuração com base na config global
	syncConfig := SnapshotSyncConfig{
		CronSchedule:  appConfig.SnapshotSync.CronSchedule,
		LookbackDays:  appConfig.SnapshotSync.LookbackDays,
		RetentionDays: appConfig.SnapshotSync.RetentionDays,
		SyncEnabled:   appConfig.SnapshotSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  syncConfig.CronSchedule,
		"lookback_days":  syncConfig.LookbackDays,
		"retention_days": syncConfig.RetentionDays,
		"sync_enabled":   syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de snapshots do dashboard carregada")

	return &SnapshotSyncService{
		scheduler:        scheduler,
		config:           syncConfig,
		dashboardService: dashboardService,
		snapshotRepo:     snapshotRepo,
		syncRunning:      false,
	}
}

// Start inicia o agendador
func (s *SnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de snapshots do dashboard desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de snapshots do dashboard")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllSnapshots()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de snapshots do dashboard: %w", err)
	}

	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de snapshots do dashboard")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAllSnapshots recalcula os snapshots de toda a janela de lookback
func (s *SnapshotSyncService) syncAllSnapshots() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de snapshots já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando sincronização de snapshots do dashboard")

	dates := s.getDatesToProcess()
	logrus.WithFields(logrus.Fields{
		"days":       s.config.LookbackDays,
		"start_date": dates[len(dates)-1].Format(time.DateOnly),
		"end_date":   dates[0].Format(time.DateOnly),
	}).Info("Período para sincronização de snapshots do dashboard")

	processed := 0
	for _, date := range dates {
		if s.processSnapshotForDate(date) {
			processed++
		}
	}

	removed, err := s.snapshotRepo.DeleteOlderThan(s.config.RetentionDays)
	if err != nil {
		logrus.WithError(err).Error("Erro ao remover snapshots antigos")
	} else if removed > 0 {
		logrus.WithField("removed", removed).Info("Snapshots antigos removidos")
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration":  duration.String(),
		"processed": processed,
		"days":      s.config.LookbackDays,
	}).Info("Sincronização de snapshots do dashboard concluída")

	s.lastSyncCompletedAt = time.Now()
}

// getDatesToProcess cria um conjunto de datas para processar
func (s *SnapshotSyncService) getDatesToProcess() []time.Time {
	dates := make([]time.Time, s.config.LookbackDays)
	for i := 0; i < s.config.LookbackDays; i++ {
		dates[i] = time.Now().AddDate(0, 0, -i) // Começar de hoje e ir para trás
	}
	return dates
}

// processSnapshotForDate monta e persiste o snapshot de uma data específica
func (s *SnapshotSyncService) processSnapshotForDate(date time.Time) bool {
	dateStr := date.Format(time.DateOnly)

	params := &domain.DashboardParams{
		Preset:   "custom",
		FromDate: dateStr,
		ToDate:   dateStr,
		Platform: "All",
		Agency:   "All",
	}

	payload, err := s.dashboardService.BuildDashboardPayload(params)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"date":  dateStr,
			"error": err.Error(),
		}).Error("Erro ao montar payload do dashboard para snapshot")
		return false
	}

	snapshot := &domain.DashboardSnapshot{
		Date:    date,
		Payload: payload,
	}

	if err := s.snapshotRepo.SaveOrUpdate(snapshot); err != nil {
		logrus.WithFields(logrus.Fields{
			"date":  dateStr,
			"error": err.Error(),
		}).Error("Erro ao salvar snapshot do dashboard no banco de dados")
		return false
	}

	logrus.WithField("date", dateStr).Info("Snapshot do dashboard salvo com sucesso")
	return true
}

// TriggerManualSync inicia manualmente uma sincronização de snapshots
func (s *SnapshotSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de snapshots já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de snapshots do dashboard")
	go s.syncAllSnapshots()
}

// GetStatus retorna o status atual do agendador
func (s *SnapshotSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"sync_retention_days":    s.config.RetentionDays,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
