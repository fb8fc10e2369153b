package syncing

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/campaign-metrics-sync/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/campaign-metrics-sync/infrastructure/repository"
	"github.com/vfg2006/campaign-metrics-sync/internal/domain"
	"github.com/vfg2006/campaign-metrics-sync/internal/usecases/classifying"
	"github.com/vfg2006/campaign-metrics-sync/pkg/log"
)

type RunOptions struct {
	// ClientFilter seleciona clientes pelo nome (substring, sem diferenciar maiúsculas). Vazio = todos.
	ClientFilter string
	// Since e Until sobrescrevem a janela padrão de lookback
	Since *time.Time
	Until *time.Time
	// SkipTokenCheck pula a consulta ao /me quando o chamador já validou o token
	SkipTokenCheck bool
}

type Service struct {
	meta       MetaIntegrator
	writer     MetricsWriter
	clientRepo repository.ClientRepository
	auditRepo  repository.AuditLogRepository
	now        func() time.Time
}

func NewService(
	meta MetaIntegrator,
	writer MetricsWriter,
	clientRepo repository.ClientRepository,
	auditRepo repository.AuditLogRepository,
) *Service {
	return &Service{
		meta:       meta,
		writer:     writer,
		clientRepo: clientRepo,
		auditRepo:  auditRepo,
		now:        time.Now,
	}
}

// Run processa os clientes ativos um por vez. Falhas de cliente ou campanha ficam
// no relatório e no audit log; só credencial inválida e falha ao listar clientes
// interrompem a execução e são devolvidas como erro.
func (s *Service) Run(ctx context.Context, opts RunOptions) (*domain.SyncReport, error) {
	ctx, runID := log.WithRunID(ctx)
	logger := log.ForContext(ctx)

	report := &domain.SyncReport{
		RunID:        runID,
		ClientFilter: opts.ClientFilter,
		StartedAt:    s.now(),
		Clients:      make([]*domain.ClientSyncReport, 0),
	}

	logger.WithField("client_filter", opts.ClientFilter).Info("Iniciando sincronização de métricas da Meta")

	if err := s.verifyToken(ctx, opts); err != nil {
		if metaclient.IsCredentialError(err) {
			return s.abort(ctx, report, fmt.Errorf("%w: %w", ErrInvalidCredentials, err))
		}
		logger.WithError(err).Warn("Não foi possível validar o token da Meta, seguindo com a sincronização")
	}

	clients, err := s.clientRepo.ListActive(ctx)
	if err != nil {
		return s.abort(ctx, report, fmt.Errorf("%w: %w", ErrListClients, err))
	}

	selected := make([]*domain.Client, 0, len(clients))
	for _, client := range clients {
		if client.MatchesFilter(opts.ClientFilter) {
			selected = append(selected, client)
		}
	}

	if len(selected) == 0 {
		logger.WithField("client_filter", opts.ClientFilter).Warn("Nenhum cliente ativo para sincronizar")
	}

	var runErr error
	for _, client := range selected {
		clientReport, err := s.syncClient(ctx, client, opts)
		report.Clients = append(report.Clients, clientReport)
		report.MetricsWritten += clientReport.MetricsWritten
		if clientReport.State == domain.ClientSyncErrored {
			report.ClientsFailed++
		}

		if err != nil && metaclient.IsCredentialError(err) {
			runErr = fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
			break
		}
	}

	if runErr != nil {
		return s.abort(ctx, report, runErr)
	}

	s.finish(ctx, report)
	return report, nil
}

func (s *Service) verifyToken(ctx context.Context, opts RunOptions) error {
	if opts.SkipTokenCheck {
		return nil
	}
	return s.meta.VerifyToken(ctx)
}

func (s *Service) syncClient(ctx context.Context, client *domain.Client, opts RunOptions) (*domain.ClientSyncReport, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"client_id":   client.ID,
		"client_name": client.Name,
	})

	report := &domain.ClientSyncReport{
		ClientID:     client.ID,
		ClientName:   client.Name,
		AdAccountRef: client.AdAccountRef,
		State:        domain.ClientSyncPending,
	}

	if client.AdAccountRef == "" {
		report.State = domain.ClientSyncDone
		report.Severity = domain.AuditSeverityWarning
		logger.Warn("Cliente sem conta de anúncios configurada")
		s.audit(ctx, &client.ID, domain.AuditSeverityWarning, "Cliente sem conta de anúncios configurada", map[string]any{
			"client_name": client.Name,
		})
		return report, nil
	}

	report.State = domain.ClientSyncFetchingCampaigns
	campaigns, err := s.meta.ListCampaigns(ctx, client.AdAccountRef)
	if err != nil {
		return report, s.failClient(ctx, report, newSyncError(err, report.State, client.ID, ""))
	}

	report.CampaignsFound = len(campaigns)
	if len(campaigns) == 0 {
		report.State = domain.ClientSyncDone
		report.Severity = domain.AuditSeverityWarning
		logger.Warn("Nenhuma campanha encontrada para o cliente")
		s.audit(ctx, &client.ID, domain.AuditSeverityWarning, "Nenhuma campanha encontrada", map[string]any{
			"client_name":    client.Name,
			"ad_account_ref": client.AdAccountRef,
		})
		return report, nil
	}

	for _, campaign := range campaigns {
		result, err := s.syncCampaign(ctx, client, campaign, report, opts)
		if err != nil {
			syncErr := newSyncError(err, report.State, client.ID, campaign.ID)
			if metaclient.IsCredentialError(err) {
				return report, s.failClient(ctx, report, syncErr)
			}

			report.CampaignsFailed++
			logger.WithFields(log.Fields{
				"campaign_id":   campaign.ID,
				"campaign_name": campaign.Name,
				"error":         err.Error(),
			}).Error("Erro ao sincronizar campanha")
			s.audit(ctx, &client.ID, domain.AuditSeverityError, fmt.Sprintf("Erro ao sincronizar campanha %s", campaign.Name), map[string]any{
				"campaign_id": campaign.ID,
				"stage":       string(syncErr.Stage),
				"error":       err.Error(),
			})
			continue
		}

		report.CampaignsProcessed++
		report.MetricsWritten += result.Written
		report.MetricsFailed += len(result.Failed)

		if len(result.Failed) > 0 {
			s.audit(ctx, &client.ID, domain.AuditSeverityWarning, fmt.Sprintf("Falha ao gravar %d métrica(s) da campanha %s", len(result.Failed), campaign.Name), map[string]any{
				"campaign_id": campaign.ID,
				"failed_rows": result.Failed,
			})
		}
	}

	if report.CampaignsProcessed == 0 {
		return report, s.failClient(ctx, report, newSyncError(fmt.Errorf("todas as %d campanhas falharam", report.CampaignsFailed), report.State, client.ID, ""))
	}

	report.State = domain.ClientSyncAccountSummaryUpdate
	summaryErr := s.updateAccountSummary(ctx, client)

	report.State = domain.ClientSyncDone
	report.Severity = domain.AuditSeveritySuccess

	auditContext := map[string]any{
		"campaigns_found":     report.CampaignsFound,
		"campaigns_processed": report.CampaignsProcessed,
		"campaigns_failed":    report.CampaignsFailed,
		"metrics_written":     report.MetricsWritten,
		"metrics_failed":      report.MetricsFailed,
	}
	if summaryErr != nil {
		auditContext["account_summary_error"] = summaryErr.Error()
	}

	logger.WithFields(log.Fields{
		"client_campaigns": report.CampaignsProcessed,
		"client_metrics":   report.MetricsWritten,
	}).Info("Cliente sincronizado")

	s.audit(ctx, &client.ID, domain.AuditSeveritySuccess, fmt.Sprintf("%d métricas sincronizadas de %d campanhas", report.MetricsWritten, report.CampaignsProcessed), auditContext)

	return report, nil
}

func (s *Service) syncCampaign(
	ctx context.Context,
	client *domain.Client,
	campaign domain.Campaign,
	report *domain.ClientSyncReport,
	opts RunOptions,
) (*domain.UpsertResult, error) {
	report.State = domain.ClientSyncFetchingInsights
	rows, err := s.meta.GetCampaignInsights(ctx, campaign.ID, opts.Since, opts.Until)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		log.ForContext(ctx).WithFields(log.Fields{
			"campaign_id":     campaign.ID,
			"campaign_status": campaign.Status,
		}).Debug("Campanha sem insights no período")
		return &domain.UpsertResult{}, nil
	}

	report.State = domain.ClientSyncClassifying
	records := make([]domain.MetricRecord, 0, len(rows))
	for _, row := range rows {
		result := classifying.Classify(domain.NewActionCounters(row.Actions), campaign.Objective, campaign.Name, row)
		log.ForContext(ctx).WithFields(log.Fields{
			"campaign_id":           campaign.ID,
			"campaign_date":         row.DateStart.Format(time.DateOnly),
			"campaign_result_label": result.LabelOrEmpty(),
			"campaign_result_value": result.Value,
		}).Debug("Resultado classificado")

		records = append(records, domain.MetricRecord{
			ClientID:      client.ID,
			CampaignID:    campaign.ID,
			CampaignName:  campaign.Name,
			ReferenceDate: row.DateStart,
			Spend:         row.Spend,
			Impressions:   row.Impressions,
			Clicks:        row.Clicks,
			Reach:         row.Reach,
			ResultValue:   result.Value,
			ResultLabel:   result.Label,
		})
	}

	report.State = domain.ClientSyncReconciling
	return s.writer.UpsertDailyMetrics(ctx, client.ID, campaign.ID, records)
}

// updateAccountSummary é informativo: a falha é registrada mas não derruba o cliente
func (s *Service) updateAccountSummary(ctx context.Context, client *domain.Client) error {
	logger := log.ForContext(ctx).WithField("client_id", client.ID)

	summary, err := s.meta.GetAccountSummary(ctx, client.AdAccountRef)
	if err != nil {
		logger.WithError(err).Warn("Erro ao buscar resumo de 30 dias da conta")
		return err
	}

	if err := s.clientRepo.UpdateAccountSummary(ctx, client.ID, *summary); err != nil {
		logger.WithError(err).Warn("Erro ao gravar resumo de 30 dias da conta")
		return err
	}

	return nil
}

func (s *Service) failClient(ctx context.Context, report *domain.ClientSyncReport, err *SyncError) error {
	report.State = domain.ClientSyncErrored
	report.Severity = domain.AuditSeverityError
	report.Error = err.Error()

	log.ForContext(ctx).WithFields(log.Fields{
		"client_id": report.ClientID,
		"stage":     string(err.Stage),
		"error":     err.Err.Error(),
	}).Error("Erro ao sincronizar cliente")

	s.audit(ctx, &report.ClientID, domain.AuditSeverityError, fmt.Sprintf("Erro ao sincronizar cliente %s", report.ClientName), map[string]any{
		"stage":               string(err.Stage),
		"error":               err.Err.Error(),
		"campaigns_processed": report.CampaignsProcessed,
		"metrics_written":     report.MetricsWritten,
	})

	return err
}

// abort registra o erro da execução e o resumo final
func (s *Service) abort(ctx context.Context, report *domain.SyncReport, err error) (*domain.SyncReport, error) {
	report.Aborted = true

	log.ForContext(ctx).WithError(err).Error("Sincronização interrompida")
	s.audit(ctx, nil, domain.AuditSeverityError, "Sincronização interrompida", map[string]any{
		"error": err.Error(),
	})

	s.finish(ctx, report)
	return report, err
}

func (s *Service) finish(ctx context.Context, report *domain.SyncReport) {
	report.FinishedAt = s.now()

	severity := domain.AuditSeveritySuccess
	switch {
	case report.Aborted || (len(report.Clients) > 0 && report.ClientsFailed == len(report.Clients)):
		severity = domain.AuditSeverityError
	case report.ClientsFailed > 0:
		severity = domain.AuditSeverityWarning
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"clients":         len(report.Clients),
		"clients_failed":  report.ClientsFailed,
		"metrics_written": report.MetricsWritten,
		"duration":        report.Duration().String(),
	}).Info("Sincronização finalizada")

	s.audit(ctx, nil, severity, fmt.Sprintf("Sincronização finalizada: %d cliente(s), %d com erro, %d métricas gravadas", len(report.Clients), report.ClientsFailed, report.MetricsWritten), map[string]any{
		"clients":         len(report.Clients),
		"clients_failed":  report.ClientsFailed,
		"metrics_written": report.MetricsWritten,
		"client_filter":   report.ClientFilter,
		"aborted":         report.Aborted,
		"duration_ms":     report.Duration().Milliseconds(),
	})
}

// audit nunca interrompe a sincronização: falha ao gravar o log só vai para o console
func (s *Service) audit(ctx context.Context, clientID *string, severity domain.AuditSeverity, message string, fields map[string]any) {
	if fields == nil {
		fields = make(map[string]any)
	}
	fields["run_id"] = log.GetRunID(ctx)

	entry := &domain.AuditLogEntry{
		ClientID: clientID,
		Category: domain.AuditCategoryMetricsSync,
		Severity: severity,
		Message:  message,
		Context:  fields,
	}

	if err := s.auditRepo.Insert(ctx, entry); err != nil {
		log.ForContext(ctx).WithError(err).WithField("audit_message", message).Error("Erro ao gravar audit log")
	}
}
