package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-metrics-sync/internal/config"
	"github.com/vfg2006/campaign-metrics-sync/internal/domain"
	"github.com/vfg2006/campaign-metrics-sync/internal/usecases/syncing"
	"github.com/vfg2006/campaign-metrics-sync/internal/usecases/syncing/mocks"
	"go.uber.org/mock/gomock"
)

func testConfig(enabled bool) *config.Config {
	return &config.Config{
		Meta:        config.Meta{LookbackDays: 30},
		MetricsSync: config.MetricsSync{CronSchedule: "0 3 * * *", Enabled: enabled},
	}
}

func TestMetricsSyncService_RunNow(t *testing.T) {
	ctrl := gomock.NewController(t)
	syncer := mocks.NewMockSyncer(ctrl)

	report := &domain.SyncReport{RunID: "run-1", MetricsWritten: 10}
	syncer.EXPECT().
		Run(gomock.Any(), syncing.RunOptions{ClientFilter: "centro"}).
		Return(report, nil)

	service := NewMetricsSyncService(syncer, testConfig(false))

	got, err := service.RunNow(context.Background(), syncing.RunOptions{ClientFilter: "centro"})

	require.NoError(t, err)
	assert.Equal(t, report, got)
	assert.False(t, service.IsRunning())

	status := service.GetStatus()
	assert.Equal(t, report, status["last_report"])
	assert.Equal(t, false, status["sync_running"])
	assert.NotContains(t, status, "last_error")
}

func TestMetricsSyncService_RunNow_RecordsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	syncer := mocks.NewMockSyncer(ctrl)

	runErr := errors.New("credencial inválida")
	syncer.EXPECT().Run(gomock.Any(), gomock.Any()).Return(&domain.SyncReport{Aborted: true}, runErr)

	service := NewMetricsSyncService(syncer, testConfig(false))

	_, err := service.RunNow(context.Background(), syncing.RunOptions{})

	assert.ErrorIs(t, err, runErr)
	assert.Equal(t, "credencial inválida", service.GetStatus()["last_error"])
	assert.False(t, service.IsRunning())
}

func TestMetricsSyncService_SingleRunAtATime(t *testing.T) {
	ctrl := gomock.NewController(t)
	syncer := mocks.NewMockSyncer(ctrl)

	started := make(chan struct{})
	release := make(chan struct{})

	syncer.EXPECT().
		Run(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ syncing.RunOptions) (*domain.SyncReport, error) {
			close(started)
			<-release
			return &domain.SyncReport{RunID: "run-1"}, nil
		}).
		Times(1)

	service := NewMetricsSyncService(syncer, testConfig(false))

	require.NoError(t, service.TriggerManualSync(syncing.RunOptions{}))
	<-started

	assert.True(t, service.IsRunning())
	assert.ErrorIs(t, service.TriggerManualSync(syncing.RunOptions{}), syncing.ErrSyncAlreadyRunning)

	_, err := service.RunNow(context.Background(), syncing.RunOptions{})
	assert.ErrorIs(t, err, syncing.ErrSyncAlreadyRunning)

	close(release)

	assert.Eventually(t, func() bool { return !service.IsRunning() }, time.Second, 10*time.Millisecond)
}

func TestMetricsSyncService_Start(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.Config
		wantErr bool
	}{
		{
			name: "desabilitado não agenda",
			cfg:  testConfig(false),
		},
		{
			name: "habilitado com cron válido",
			cfg:  testConfig(true),
		},
		{
			name: "cron inválido",
			cfg: &config.Config{
				MetricsSync: config.MetricsSync{CronSchedule: "todo dia", Enabled: true},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := NewMetricsSyncService(mocks.NewMockSyncer(ctrl), tt.cfg)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			err := service.Start(ctx)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
