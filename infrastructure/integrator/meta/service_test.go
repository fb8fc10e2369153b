package meta

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/campaign-metrics-sync/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaign-metrics-sync/infrastructure/integrator/meta/mocks"
	"github.com/vfg2006/campaign-metrics-sync/internal/config"
	"github.com/vfg2006/campaign-metrics-sync/internal/domain"
	"go.uber.org/mock/gomock"
)

func newTestIntegrator(t *testing.T) (*MetaIntegrator, *mocks.MockClient) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	integrator := New(&config.Config{Meta: config.Meta{LookbackDays: 30}}, client)
	integrator.now = func() time.Time {
		return time.Date(2024, 3, 31, 10, 0, 0, 0, time.UTC)
	}

	return integrator, client
}

func TestMetaIntegrator_ListCampaigns(t *testing.T) {
	integrator, client := newTestIntegrator(t)

	client.EXPECT().
		GetAdCampaignsByAccountID(gomock.Any(), "act_123").
		Return([]metadomain.Campaign{
			{ID: "1", Name: "Leads Março", Status: "ACTIVE", Objective: "OUTCOME_LEADS"},
			{ID: "2", Name: "Antiga", Status: "ARCHIVED", Objective: "OUTCOME_TRAFFIC"},
		}, nil)

	campaigns, err := integrator.ListCampaigns(context.Background(), "123")

	require.NoError(t, err)
	require.Len(t, campaigns, 2)
	assert.Equal(t, domain.Campaign{ID: "1", Name: "Leads Março", Status: "ACTIVE", Objective: "OUTCOME_LEADS"}, campaigns[0])
	assert.Equal(t, "ARCHIVED", campaigns[1].Status)
}

func TestMetaIntegrator_ListCampaigns_EmptyIsNotError(t *testing.T) {
	integrator, client := newTestIntegrator(t)

	client.EXPECT().
		GetAdCampaignsByAccountID(gomock.Any(), "act_123").
		Return([]metadomain.Campaign{}, nil)

	campaigns, err := integrator.ListCampaigns(context.Background(), "act_123")

	require.NoError(t, err)
	assert.NotNil(t, campaigns)
	assert.Empty(t, campaigns)
}

func TestMetaIntegrator_ListCampaigns_PropagatesError(t *testing.T) {
	integrator, client := newTestIntegrator(t)
	fetchErr := errors.New("falha de rede")

	client.EXPECT().
		GetAdCampaignsByAccountID(gomock.Any(), "act_123").
		Return(nil, fetchErr)

	campaigns, err := integrator.ListCampaigns(context.Background(), "act_123")

	assert.Nil(t, campaigns)
	assert.ErrorIs(t, err, fetchErr)
}

func TestMetaIntegrator_GetCampaignInsights_DefaultWindow(t *testing.T) {
	integrator, client := newTestIntegrator(t)

	client.EXPECT().
		GetAdCampaignInsightsByID(gomock.Any(), "c1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, filters *domain.InsightFilters) ([]metadomain.CampaignInsight, error) {
			assert.Equal(t, "2024-03-01", filters.StartDate.Format(time.DateOnly))
			assert.Equal(t, "2024-03-31", filters.EndDate.Format(time.DateOnly))
			return []metadomain.CampaignInsight{
				{
					CampaignID:  "c1",
					DateStart:   "2024-03-01",
					DateStop:    "2024-03-01",
					Spend:       "12.50",
					Impressions: "1000",
					Reach:       "800",
					Clicks:      "25",
					Actions: []metadomain.Action{
						{ActionType: "lead", Value: "3"},
						{ActionType: "post_engagement", Value: "40"},
					},
				},
				{
					DateStart:   "2024-03-03",
					DateStop:    "2024-03-03",
					Impressions: "10",
				},
			}, nil
		})

	rows, err := integrator.GetCampaignInsights(context.Background(), "c1", nil, nil)

	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 12.5, rows[0].Spend)
	assert.Equal(t, int64(1000), rows[0].Impressions)
	assert.Equal(t, int64(800), rows[0].Reach)
	assert.Equal(t, int64(25), rows[0].Clicks)
	assert.Equal(t, []domain.Action{{ActionType: "lead", Value: 3}, {ActionType: "post_engagement", Value: 40}}, rows[0].Actions)

	// linha sem spend é registrada com 0
	assert.Equal(t, "c1", rows[1].CampaignID)
	assert.Equal(t, 0.0, rows[1].Spend)
	assert.Equal(t, int64(10), rows[1].Impressions)
	assert.Empty(t, rows[1].Actions)
}

func TestMetaIntegrator_GetCampaignInsights_ExplicitWindow(t *testing.T) {
	integrator, client := newTestIntegrator(t)
	since := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

	client.EXPECT().
		GetAdCampaignInsightsByID(gomock.Any(), "c1", &domain.InsightFilters{StartDate: &since, EndDate: &until}).
		Return(nil, nil)

	rows, err := integrator.GetCampaignInsights(context.Background(), "c1", &since, &until)

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMetaIntegrator_GetCampaignInsights_SkipsInvalidDates(t *testing.T) {
	integrator, client := newTestIntegrator(t)

	client.EXPECT().
		GetAdCampaignInsightsByID(gomock.Any(), "c1", gomock.Any()).
		Return([]metadomain.CampaignInsight{
			{DateStart: "não-é-data", Spend: "1"},
			{DateStart: "2024-03-02", Spend: "abc"},
		}, nil)

	rows, err := integrator.GetCampaignInsights(context.Background(), "c1", nil, nil)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 0.0, rows[0].Spend)
}

func TestMetaIntegrator_GetAccountSummary(t *testing.T) {
	integrator, client := newTestIntegrator(t)

	client.EXPECT().
		GetAdAccountInsightsByID(gomock.Any(), "act_9", gomock.Any()).
		Return(&metadomain.AdAccountInsight{Reach: "5000", Impressions: "12000", Spend: "345.678"}, nil)

	summary, err := integrator.GetAccountSummary(context.Background(), "9")

	require.NoError(t, err)
	assert.Equal(t, int64(5000), summary.Reach30d)
	assert.Equal(t, int64(12000), summary.Impressions30d)
	assert.Equal(t, 345.68, summary.Spend30d)
	require.NotNil(t, summary.LastSyncAt)
	assert.Equal(t, integrator.now(), *summary.LastSyncAt)
}

func TestMetaIntegrator_GetAccountSummary_NoData(t *testing.T) {
	integrator, client := newTestIntegrator(t)

	client.EXPECT().
		GetAdAccountInsightsByID(gomock.Any(), "act_9", gomock.Any()).
		Return(nil, nil)

	summary, err := integrator.GetAccountSummary(context.Background(), "act_9")

	require.NoError(t, err)
	assert.Zero(t, summary.Reach30d)
	assert.NotNil(t, summary.LastSyncAt)
}

func TestFactoryDailyInsight_NonFiniteValuesBecomeZero(t *testing.T) {
	row, err := FactoryDailyInsight(&metadomain.CampaignInsight{
		CampaignID: "c1",
		DateStart:  "2024-03-02",
		Spend:      "Inf",
		Actions:    []metadomain.Action{{ActionType: "lead", Value: "NaN"}},
	})

	require.NoError(t, err)
	assert.Equal(t, 0.0, row.Spend)
	assert.Equal(t, []domain.Action{{ActionType: "lead", Value: 0}}, row.Actions)
}
