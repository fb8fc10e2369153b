package repository

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/campaign-metrics-sync/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-metrics-sync/internal/domain"
)

const campaignMetricsTable = "campaign_metrics"

var campaignMetricColumns = []string{
	"id",
	"client_id",
	"campaign_id",
	"campaign_name",
	"reference_date",
	"spend",
	"impressions",
	"clicks",
	"reach",
	"result_value",
	"result_label",
}

const campaignMetricUpsertSuffix = `
	ON CONFLICT (client_id, campaign_id, reference_date) DO UPDATE SET
		campaign_name = EXCLUDED.campaign_name,
		spend = EXCLUDED.spend,
		impressions = EXCLUDED.impressions,
		clicks = EXCLUDED.clicks,
		reach = EXCLUDED.reach,
		result_value = EXCLUDED.result_value,
		result_label = EXCLUDED.result_label,
		updated_at = NOW()
`

type CampaignMetricRepository interface {
	// FindExistingIDs retorna data (YYYY-MM-DD) -> id das métricas já gravadas
	FindExistingIDs(ctx context.Context, clientID, campaignID string, dates []time.Time) (map[string]string, error)
	UpsertBatch(ctx context.Context, records []*domain.MetricRecord) error
	Upsert(ctx context.Context, record *domain.MetricRecord) error
}

type campaignMetricRepository struct {
	conn postgres.Queryer
}

func NewCampaignMetricRepository(conn postgres.Queryer) CampaignMetricRepository {
	return &campaignMetricRepository{
		conn: conn,
	}
}

func (r *campaignMetricRepository) FindExistingIDs(ctx context.Context, clientID, campaignID string, dates []time.Time) (map[string]string, error) {
	existing := make(map[string]string, len(dates))
	if len(dates) == 0 {
		return existing, nil
	}

	dateKeys := make([]string, 0, len(dates))
	for _, date := range dates {
		dateKeys = append(dateKeys, date.Format(time.DateOnly))
	}

	query, args, err := squirrel.
		Select("id", "reference_date").
		From(campaignMetricsTable).
		Where(squirrel.Eq{"client_id": clientID, "campaign_id": campaignID}).
		Where(squirrel.Expr("reference_date = ANY(?::date[])", pq.Array(dateKeys))).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapQueryError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id            string
			referenceDate time.Time
		)
		if err := rows.Scan(&id, &referenceDate); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear métrica existente")
		}
		existing[referenceDate.Format(time.DateOnly)] = id
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return existing, nil
}

// UpsertBatch grava todas as linhas em um único INSERT ... ON CONFLICT.
// As linhas não podem repetir a chave natural dentro do mesmo lote.
func (r *campaignMetricRepository) UpsertBatch(ctx context.Context, records []*domain.MetricRecord) error {
	if len(records) == 0 {
		return nil
	}

	builder := squirrel.
		Insert(campaignMetricsTable).
		Columns(campaignMetricColumns...).
		Suffix(campaignMetricUpsertSuffix).
		PlaceholderFormat(squirrel.Dollar)

	for _, record := range records {
		builder = builder.Values(metricValues(record)...)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapQueryError(err)
	}

	return nil
}

func (r *campaignMetricRepository) Upsert(ctx context.Context, record *domain.MetricRecord) error {
	query, args, err := squirrel.
		Insert(campaignMetricsTable).
		Columns(campaignMetricColumns...).
		Values(metricValues(record)...).
		Suffix(campaignMetricUpsertSuffix).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapQueryError(err)
	}

	return nil
}

func metricValues(record *domain.MetricRecord) []any {
	return []any{
		record.ID,
		record.ClientID,
		record.CampaignID,
		record.CampaignName,
		record.DateKey(),
		record.Spend,
		record.Impressions,
		record.Clicks,
		record.Reach,
		record.ResultValue,
		record.ResultLabel,
	}
}

func wrapQueryError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return errors.Wrapf(pqErr, "erro no banco de dados (código: %s)", pqErr.Code)
	}
	return errors.Wrap(err, "erro ao executar a query")
}
