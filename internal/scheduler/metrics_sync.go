package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-metrics-sync/internal/config"
	"github.com/vfg2006/campaign-metrics-sync/internal/domain"
	"github.com/vfg2006/campaign-metrics-sync/internal/usecases/syncing"
)

// MetricsSyncConfig representa a configuração do agendador de métricas de campanha
type MetricsSyncConfig struct {
	CronSchedule string
	LookbackDays int
	SyncEnabled  bool
}

// MetricsSyncService agenda a sincronização diária e garante que só uma execução rode por vez
type MetricsSyncService struct {
	scheduler *gocron.Scheduler
	config    MetricsSyncConfig
	syncer    syncing.Syncer

	baseCtx             context.Context
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastReport          *domain.SyncReport
	lastError           string
}

func NewMetricsSyncService(syncer syncing.Syncer, appConfig *config.Config) *MetricsSyncService {
	syncConfig := MetricsSyncConfig{
		CronSchedule: appConfig.MetricsSync.CronSchedule,
		LookbackDays: appConfig.Meta.LookbackDays,
		SyncEnabled:  appConfig.MetricsSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"lookback_days": syncConfig.LookbackDays,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de métricas carregada")

	return &MetricsSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    syncConfig,
		syncer:    syncer,
		baseCtx:   context.Background(),
	}
}

// Start agenda a execução e para o agendador quando o contexto for cancelado
func (s *MetricsSyncService) Start(ctx context.Context) error {
	s.baseCtx = ctx

	if !s.config.SyncEnabled {
		logrus.Info("Sincronização agendada de métricas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de métricas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.RunNow(s.baseCtx, syncing.RunOptions{}); err != nil {
			logrus.WithError(err).Error("Sincronização agendada terminou com erro")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de métricas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de métricas")
		s.scheduler.Stop()
	}()

	return nil
}

// RunNow executa a sincronização de forma síncrona. Devolve syncing.ErrSyncAlreadyRunning
// se outra execução (agendada ou manual) estiver em andamento.
func (s *MetricsSyncService) RunNow(ctx context.Context, opts syncing.RunOptions) (*domain.SyncReport, error) {
	if !s.acquire() {
		logrus.Info("Sincronização de métricas já em andamento, ignorando")
		return nil, syncing.ErrSyncAlreadyRunning
	}

	return s.run(ctx, opts)
}

// TriggerManualSync inicia uma sincronização em background e retorna imediatamente
func (s *MetricsSyncService) TriggerManualSync(opts syncing.RunOptions) error {
	if !s.acquire() {
		logrus.Info("Sincronização de métricas já em andamento, ignorando solicitação manual")
		return syncing.ErrSyncAlreadyRunning
	}

	logrus.WithField("client_filter", opts.ClientFilter).Info("Iniciando sincronização manual de métricas")
	go func() {
		if _, err := s.run(s.baseCtx, opts); err != nil {
			logrus.WithError(err).Error("Sincronização manual terminou com erro")
		}
	}()

	return nil
}

func (s *MetricsSyncService) acquire() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	return true
}

func (s *MetricsSyncService) run(ctx context.Context, opts syncing.RunOptions) (*domain.SyncReport, error) {
	report, err := s.syncer.Run(ctx, opts)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastReport = report
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
	}

	return report, err
}

// IsRunning indica se há uma sincronização em andamento
func (s *MetricsSyncService) IsRunning() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.syncRunning
}

// GetStatus retorna o status atual do agendador e o resumo da última execução
func (s *MetricsSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_report":            s.lastReport,
	}
	if s.lastError != "" {
		status["last_error"] = s.lastError
	}

	return status
}
