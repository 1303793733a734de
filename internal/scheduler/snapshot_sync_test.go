package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	repomocks "github.com/vfg2006/commerce-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/commerce-dashboard-api/internal/domain"
	dashmocks "github.com/vfg2006/commerce-dashboard-api/internal/usecases/dashboarding/mocks"
	"go.uber.org/mock/gomock"
)

func TestSnapshotSyncService_processSnapshotForDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDashboard := dashmocks.NewMockDashboarder(ctrl)
	mockSnapshotRepo := repomocks.NewMockSnapshotRepository(ctrl)

	service := &SnapshotSyncService{
		dashboardService: mockDashboard,
		snapshotRepo:     mockSnapshotRepo,
	}

	date := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	payload := &domain.DashboardPayload{
		Meta: domain.DashboardMeta{StartDate: "2025-08-20", EndDate: "2025-08-20"},
	}

	// O snapshot cobre um único dia, sem filtros de plataforma ou agência
	mockDashboard.EXPECT().
		BuildDashboardPayload(gomock.Any()).
		DoAndReturn(func(params *domain.DashboardParams) (*domain.DashboardPayload, error) {
			assert.Equal(t, "custom", params.Preset)
			assert.Equal(t, "2025-08-20", params.FromDate)
			assert.Equal(t, "2025-08-20", params.ToDate)
			assert.Equal(t, "All", params.Platform)
			assert.Equal(t, "All", params.Agency)
			return payload, nil
		})

	mockSnapshotRepo.EXPECT().
		SaveOrUpdate(gomock.Any()).
		DoAndReturn(func(snapshot *domain.DashboardSnapshot) error {
			assert.True(t, date.Equal(snapshot.Date))
			assert.Equal(t, payload, snapshot.Payload)
			return nil
		})

	ok := service.processSnapshotForDate(date)
	assert.True(t, ok)
}

func TestSnapshotSyncService_processSnapshotForDate_ErroNoPipeline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDashboard := dashmocks.NewMockDashboarder(ctrl)
	mockSnapshotRepo := repomocks.NewMockSnapshotRepository(ctrl)

	service := &SnapshotSyncService{
		dashboardService: mockDashboard,
		snapshotRepo:     mockSnapshotRepo,
	}

	mockDashboard.EXPECT().
		BuildDashboardPayload(gomock.Any()).
		Return(nil, errors.New("connection refused"))

	// Em caso de erro nada é salvo
	ok := service.processSnapshotForDate(time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)
}

func TestSnapshotSyncService_syncAllSnapshots(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDashboard := dashmocks.NewMockDashboarder(ctrl)
	mockSnapshotRepo := repomocks.NewMockSnapshotRepository(ctrl)

	service := &SnapshotSyncService{
		config: SnapshotSyncConfig{
			LookbackDays:  3,
			RetentionDays: 120,
			SyncEnabled:   true,
		},
		dashboardService: mockDashboard,
		snapshotRepo:     mockSnapshotRepo,
	}

	mockDashboard.EXPECT().
		BuildDashboardPayload(gomock.Any()).
		Return(&domain.DashboardPayload{}, nil).
		Times(3)

	mockSnapshotRepo.EXPECT().
		SaveOrUpdate(gomock.Any()).
		Return(nil).
		Times(3)

	mockSnapshotRepo.EXPECT().
		DeleteOlderThan(120).
		Return(int64(0), nil)

	service.syncAllSnapshots()

	assert.False(t, service.lastSyncStartedAt.IsZero())
	assert.False(t, service.lastSyncCompletedAt.IsZero())
}

func TestSnapshotSyncService_GetStatus(t *testing.T) {
	service := &SnapshotSyncService{
		config: SnapshotSyncConfig{
			CronSchedule:  "0 2 * * *",
			LookbackDays:  7,
			RetentionDays: 120,
			SyncEnabled:   true,
		},
	}

	status := service.GetStatus()

	assert.Equal(t, true, status["sync_enabled"])
	assert.Equal(t, "0 2 * * *", status["sync_cron"])
	assert.Equal(t, 7, status["sync_lookback_days"])
	assert.Equal(t, 120, status["sync_retention_days"])
}
