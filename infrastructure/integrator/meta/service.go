package meta

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/campaign-metrics-sync/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaign-metrics-sync/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/campaign-metrics-sync/internal/config"
	"github.com/vfg2006/campaign-metrics-sync/internal/domain"
	"github.com/vfg2006/campaign-metrics-sync/pkg/utils"
)

const defaultLookbackDays = 30

type MetaIntegrator struct {
	cfg    *config.Config
	Client metaclient.Client
	now    func() time.Time
}

func New(cfg *config.Config, client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		cfg:    cfg,
		Client: client,
		now:    time.Now,
	}
}

func (s *MetaIntegrator) lookbackDays() int {
	if s.cfg != nil && s.cfg.Meta.LookbackDays > 0 {
		return s.cfg.Meta.LookbackDays
	}
	return defaultLookbackDays
}

// VerifyToken falha com metaclient.ErrInvalidCredentials se o token não for aceito
func (s *MetaIntegrator) VerifyToken(ctx context.Context) error {
	_, err := s.Client.VerifyToken(ctx)
	return err
}

// ListCampaigns retorna todas as campanhas da conta. Lista vazia não é erro.
func (s *MetaIntegrator) ListCampaigns(ctx context.Context, adAccountRef string) ([]domain.Campaign, error) {
	adAccountRef = domain.NormalizeAdAccountRef(adAccountRef)

	resp, err := s.Client.GetAdCampaignsByAccountID(ctx, adAccountRef)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"ad_account": adAccountRef,
			"error":      err.Error(),
		}).Error("campaigns: failed to list campaigns from API")
		return nil, err
	}

	campaigns := make([]domain.Campaign, 0, len(resp))
	for _, c := range resp {
		campaigns = append(campaigns, domain.Campaign{
			ID:        c.ID,
			Name:      c.Name,
			Status:    c.Status,
			Objective: c.Objective,
		})
	}

	logrus.WithFields(logrus.Fields{
		"ad_account": adAccountRef,
		"campaigns":  len(campaigns),
	}).Debug("campaigns: successfully listed campaigns")

	return campaigns, nil
}

// GetCampaignInsights retorna as linhas diárias da campanha. Sem datas, usa a janela
// de lookback terminando hoje. Dias sem atividade podem não vir na resposta.
func (s *MetaIntegrator) GetCampaignInsights(ctx context.Context, campaignID string, since, until *time.Time) ([]domain.DailyInsight, error) {
	filters := s.window(since, until)

	resp, err := s.Client.GetAdCampaignInsightsByID(ctx, campaignID, filters)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"campaign_id": campaignID,
			"error":       err.Error(),
		}).Error("insights: failed to get campaign insights")
		return nil, err
	}

	rows := make([]domain.DailyInsight, 0, len(resp))
	for i := range resp {
		row, err := FactoryDailyInsight(&resp[i])
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"campaign_id": campaignID,
				"date_start":  resp[i].DateStart,
				"error":       err.Error(),
			}).Warn("insights: skipping row with invalid date")
			continue
		}
		if row.CampaignID == "" {
			row.CampaignID = campaignID
		}
		rows = append(rows, *row)
	}

	return rows, nil
}

// GetAccountSummary busca alcance, impressões e gasto agregados da conta na janela de lookback
func (s *MetaIntegrator) GetAccountSummary(ctx context.Context, adAccountRef string) (*domain.AccountSummary, error) {
	adAccountRef = domain.NormalizeAdAccountRef(adAccountRef)

	resp, err := s.Client.GetAdAccountInsightsByID(ctx, adAccountRef, s.window(nil, nil))
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"ad_account": adAccountRef,
			"error":      err.Error(),
		}).Error("insights: failed to get ad account insights from API")
		return nil, err
	}

	syncedAt := s.now()
	summary := &domain.AccountSummary{LastSyncAt: &syncedAt}
	if resp == nil {
		return summary, nil
	}

	summary.Reach30d = parseInt(resp.Reach, "reach", adAccountRef)
	summary.Impressions30d = parseInt(resp.Impressions, "impressions", adAccountRef)
	summary.Spend30d = utils.RoundWithTwoDecimalPlace(parseFloat(resp.Spend, "spend", adAccountRef))

	return summary, nil
}

func (s *MetaIntegrator) window(since, until *time.Time) *domain.InsightFilters {
	start, end := utils.LookbackWindow(s.now(), s.lookbackDays())
	if until != nil {
		start, end = utils.LookbackWindow(*until, s.lookbackDays())
	}
	if since != nil {
		start = *since
	}

	return &domain.InsightFilters{StartDate: &start, EndDate: &end}
}

// FactoryDailyInsight converte a linha textual da Graph API. Campos numéricos
// ausentes ou inválidos viram 0; só a data é obrigatória.
func FactoryDailyInsight(in *metadomain.CampaignInsight) (*domain.DailyInsight, error) {
	dateStart, err := time.Parse(time.DateOnly, in.DateStart)
	if err != nil {
		return nil, fmt.Errorf("date_start inválido %q: %w", in.DateStart, err)
	}

	dateStop := dateStart
	if in.DateStop != "" {
		if parsed, err := time.Parse(time.DateOnly, in.DateStop); err == nil {
			dateStop = parsed
		}
	}

	actions := make([]domain.Action, 0, len(in.Actions))
	for _, action := range in.Actions {
		actions = append(actions, domain.Action{
			ActionType: action.ActionType,
			Value:      parseFloat(action.Value, action.ActionType, in.CampaignID),
		})
	}

	return &domain.DailyInsight{
		CampaignID:  in.CampaignID,
		DateStart:   dateStart,
		DateStop:    dateStop,
		Spend:       parseFloat(in.Spend, "spend", in.CampaignID),
		Impressions: parseInt(in.Impressions, "impressions", in.CampaignID),
		Reach:       parseInt(in.Reach, "reach", in.CampaignID),
		Clicks:      parseInt(in.Clicks, "clicks", in.CampaignID),
		Actions:     actions,
	}, nil
}

func parseFloat(value, field, owner string) float64 {
	f, err := utils.ParseFloat(value)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"owner": owner,
			"field": field,
			"value": value,
		}).Warn("insights: error converting value to float")
		return 0
	}
	return f
}

func parseInt(value, field, owner string) int64 {
	n, err := utils.ParseInt(value)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"owner": owner,
			"field": field,
			"value": value,
		}).Warn("insights: error converting value to int")
		return 0
	}
	return n
}
