package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-metrics-sync/internal/domain"
)

func newMockDB(t *testing.T) (*campaignMetricRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &campaignMetricRepository{conn: db}, mock
}

func stringPtr(s string) *string {
	return &s
}

func TestCampaignMetricRepository_FindExistingIDs(t *testing.T) {
	repo, mock := newMockDB(t)

	d1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, reference_date FROM campaign_metrics WHERE campaign_id = $1 AND client_id = $2 AND reference_date = ANY($3::date[])")).
		WithArgs("camp-1", "cli-1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reference_date"}).
			AddRow("m-1", d1))

	existing, err := repo.FindExistingIDs(context.Background(), "cli-1", "camp-1", []time.Time{d1, d2})

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"2024-03-01": "m-1"}, existing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCampaignMetricRepository_FindExistingIDs_NoDates(t *testing.T) {
	repo, mock := newMockDB(t)

	existing, err := repo.FindExistingIDs(context.Background(), "cli-1", "camp-1", nil)

	require.NoError(t, err)
	assert.Empty(t, existing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCampaignMetricRepository_UpsertBatch(t *testing.T) {
	repo, mock := newMockDB(t)

	records := []*domain.MetricRecord{
		{ID: "m-1", ClientID: "cli-1", CampaignID: "camp-1", CampaignName: "Leads", ReferenceDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Spend: 10, ResultValue: 3, ResultLabel: stringPtr("lead")},
		{ID: "m-2", ClientID: "cli-1", CampaignID: "camp-1", CampaignName: "Leads", ReferenceDate: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO campaign_metrics (id,client_id,campaign_id,campaign_name,reference_date,spend,impressions,clicks,reach,result_value,result_label) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11),($12,")).
		WithArgs(
			"m-1", "cli-1", "camp-1", "Leads", "2024-03-01", 10.0, int64(0), int64(0), int64(0), 3.0, stringPtr("lead"),
			"m-2", "cli-1", "camp-1", "Leads", "2024-03-02", 0.0, int64(0), int64(0), int64(0), 0.0, nil,
		).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.UpsertBatch(context.Background(), records)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCampaignMetricRepository_Upsert_PqError(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO campaign_metrics")).
		WillReturnError(&pq.Error{Code: "23503", Message: "violates foreign key constraint"})

	err := repo.Upsert(context.Background(), &domain.MetricRecord{ID: "m-1", ClientID: "x", CampaignID: "c", ReferenceDate: time.Now()})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "23503")

	var pqErr *pq.Error
	assert.True(t, errors.As(err, &pqErr))
	assert.NoError(t, mock.ExpectationsWereMet())
}
