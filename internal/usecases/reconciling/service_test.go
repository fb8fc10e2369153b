package reconciling

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-metrics-sync/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-metrics-sync/internal/domain"
	"go.uber.org/mock/gomock"
)

// memoryStore simula a tabela campaign_metrics com a restrição única da chave natural
type memoryStore struct {
	rows map[string]domain.MetricRecord
}

func newMemoryStore() *memoryStore {
	return &memoryStore{rows: make(map[string]domain.MetricRecord)}
}

func naturalKey(clientID, campaignID, date string) string {
	return clientID + "|" + campaignID + "|" + date
}

func (m *memoryStore) FindExistingIDs(_ context.Context, clientID, campaignID string, dates []time.Time) (map[string]string, error) {
	existing := make(map[string]string)
	for _, date := range dates {
		key := date.Format(time.DateOnly)
		if row, ok := m.rows[naturalKey(clientID, campaignID, key)]; ok {
			existing[key] = row.ID
		}
	}
	return existing, nil
}

func (m *memoryStore) UpsertBatch(ctx context.Context, records []*domain.MetricRecord) error {
	for _, record := range records {
		if err := m.Upsert(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

func (m *memoryStore) Upsert(_ context.Context, record *domain.MetricRecord) error {
	key := naturalKey(record.ClientID, record.CampaignID, record.DateKey())
	if current, ok := m.rows[key]; ok {
		// ON CONFLICT mantém o id original
		updated := *record
		updated.ID = current.ID
		m.rows[key] = updated
		return nil
	}
	m.rows[key] = *record
	return nil
}

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func label(s string) *string {
	return &s
}

func sampleRows(n int) []domain.MetricRecord {
	rows := make([]domain.MetricRecord, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, domain.MetricRecord{
			CampaignName:  "Leads Março",
			ReferenceDate: day(i),
			Spend:         float64(i) * 1.5,
			Impressions:   int64(i * 100),
			Clicks:        int64(i),
			Reach:         int64(i * 80),
			ResultValue:   float64(i % 4),
			ResultLabel:   label("lead"),
		})
	}
	return rows
}

func TestService_UpsertDailyMetrics_Idempotent(t *testing.T) {
	store := newMemoryStore()
	service := NewService(store, DefaultBatchSize)

	rows := sampleRows(30)

	first, err := service.UpsertDailyMetrics(context.Background(), "cli-1", "camp-1", rows)
	require.NoError(t, err)
	assert.Equal(t, 30, first.Written)
	assert.Equal(t, 30, first.Inserted)
	assert.Equal(t, 0, first.Updated)

	snapshot := make(map[string]domain.MetricRecord, len(store.rows))
	for k, v := range store.rows {
		snapshot[k] = v
	}

	second, err := service.UpsertDailyMetrics(context.Background(), "cli-1", "camp-1", rows)
	require.NoError(t, err)
	assert.Equal(t, 30, second.Written)
	assert.Equal(t, 0, second.Inserted)
	assert.Equal(t, 30, second.Updated)

	assert.Len(t, store.rows, 30)
	assert.Equal(t, snapshot, store.rows)
}

func TestService_UpsertDailyMetrics_UpdatesKeepExistingID(t *testing.T) {
	store := newMemoryStore()
	service := NewService(store, DefaultBatchSize)

	_, err := service.UpsertDailyMetrics(context.Background(), "cli-1", "camp-1", sampleRows(2))
	require.NoError(t, err)
	originalID := store.rows[naturalKey("cli-1", "camp-1", "2024-03-01")].ID

	corrected := sampleRows(1)
	corrected[0].Spend = 99.9
	corrected[0].CampaignName = "Leads Março (renomeada)"

	result, err := service.UpsertDailyMetrics(context.Background(), "cli-1", "camp-1", corrected)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)

	stored := store.rows[naturalKey("cli-1", "camp-1", "2024-03-01")]
	assert.Equal(t, originalID, stored.ID)
	assert.Equal(t, 99.9, stored.Spend)
	assert.Equal(t, "Leads Março (renomeada)", stored.CampaignName)
	assert.Len(t, store.rows, 2)
}

func TestService_UpsertDailyMetrics_DuplicatedDatesLastWins(t *testing.T) {
	store := newMemoryStore()
	service := NewService(store, DefaultBatchSize)

	rows := []domain.MetricRecord{
		{ReferenceDate: day(1), Spend: 1},
		{ReferenceDate: day(2), Spend: 2},
		{ReferenceDate: day(1).Add(15 * time.Hour), Spend: 3},
	}

	result, err := service.UpsertDailyMetrics(context.Background(), "cli-1", "camp-1", rows)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Written)
	assert.Equal(t, 3.0, store.rows[naturalKey("cli-1", "camp-1", "2024-03-01")].Spend)
}

func TestService_UpsertDailyMetrics_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCampaignMetricRepository(ctrl)

	service := NewService(repo, DefaultBatchSize)
	result, err := service.UpsertDailyMetrics(context.Background(), "cli-1", "camp-1", nil)

	require.NoError(t, err)
	assert.Equal(t, 0, result.Written)
	assert.Empty(t, result.Failed)
}

func TestService_UpsertDailyMetrics_BatchDegradesToRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCampaignMetricRepository(ctrl)

	rows := make([]domain.MetricRecord, 0, 50)
	for i := 0; i < 50; i++ {
		rows = append(rows, domain.MetricRecord{ReferenceDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)})
	}
	failingDate := rows[16].ReferenceDate.Format(time.DateOnly)

	repo.EXPECT().
		FindExistingIDs(gomock.Any(), "cli-1", "camp-1", gomock.Len(50)).
		Return(map[string]string{}, nil)

	repo.EXPECT().
		UpsertBatch(gomock.Any(), gomock.Len(50)).
		Return(errors.New("deadlock detected"))

	attempted := make([]string, 0, 50)
	repo.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		Times(50).
		DoAndReturn(func(_ context.Context, record *domain.MetricRecord) error {
			attempted = append(attempted, record.DateKey())
			if record.DateKey() == failingDate {
				return errors.New("value too long")
			}
			return nil
		})

	service := NewService(repo, DefaultBatchSize)
	result, err := service.UpsertDailyMetrics(context.Background(), "cli-1", "camp-1", rows)

	require.NoError(t, err)
	assert.Len(t, attempted, 50)
	assert.Equal(t, 49, result.Written)
	assert.Equal(t, 49, result.Inserted)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, failingDate, result.Failed[0].ReferenceDate)
	assert.Equal(t, "value too long", result.Failed[0].Error)
}

func TestService_UpsertDailyMetrics_SplitsBatches(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCampaignMetricRepository(ctrl)

	rows := make([]domain.MetricRecord, 0, 120)
	for i := 0; i < 120; i++ {
		rows = append(rows, domain.MetricRecord{ReferenceDate: time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)})
	}

	existing := map[string]string{"2023-09-01": "m-1"}
	repo.EXPECT().FindExistingIDs(gomock.Any(), "cli-1", "camp-1", gomock.Any()).Return(existing, nil)

	gomock.InOrder(
		repo.EXPECT().UpsertBatch(gomock.Any(), gomock.Len(50)).Return(nil),
		repo.EXPECT().UpsertBatch(gomock.Any(), gomock.Len(50)).Return(nil),
		repo.EXPECT().UpsertBatch(gomock.Any(), gomock.Len(20)).Return(nil),
	)

	service := NewService(repo, 0)
	service.newID = func() string { return "novo" }

	result, err := service.UpsertDailyMetrics(context.Background(), "cli-1", "camp-1", rows)

	require.NoError(t, err)
	assert.Equal(t, 120, result.Written)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 119, result.Inserted)
}

func TestService_UpsertDailyMetrics_LookupFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCampaignMetricRepository(ctrl)

	repo.EXPECT().
		FindExistingIDs(gomock.Any(), "cli-1", "camp-1", gomock.Any()).
		Return(nil, fmt.Errorf("connection refused"))

	service := NewService(repo, DefaultBatchSize)
	result, err := service.UpsertDailyMetrics(context.Background(), "cli-1", "camp-1", sampleRows(3))

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrExistingLookup)
}
