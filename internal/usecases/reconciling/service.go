package reconciling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-metrics-sync/infrastructure/repository"
	"github.com/vfg2006/campaign-metrics-sync/internal/domain"
)

const DefaultBatchSize = 50

var ErrExistingLookup = errors.New("erro ao consultar métricas existentes")

// Service grava as métricas diárias de uma campanha sem duplicar a chave
// (cliente, campanha, data)
type Service struct {
	repo      repository.CampaignMetricRepository
	batchSize int
	newID     func() string
}

func NewService(repo repository.CampaignMetricRepository, batchSize int) *Service {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &Service{
		repo:      repo,
		batchSize: batchSize,
		newID:     uuid.NewString,
	}
}

type pendingRow struct {
	record   *domain.MetricRecord
	existing bool
}

// UpsertDailyMetrics reconcilia as linhas com o que já está gravado e faz o upsert em lotes.
// Se um lote falha, cada linha dele é regravada individualmente e as falhas são
// devolvidas em UpsertResult.Failed sem interromper as demais. Só retorna erro
// quando a consulta de ids existentes falha.
func (s *Service) UpsertDailyMetrics(ctx context.Context, clientID, campaignID string, rows []domain.MetricRecord) (*domain.UpsertResult, error) {
	result := &domain.UpsertResult{Failed: make([]domain.RowFailure, 0)}

	records := dedupeByDate(clientID, campaignID, rows)
	if len(records) == 0 {
		return result, nil
	}

	dates := make([]time.Time, 0, len(records))
	for _, record := range records {
		dates = append(dates, record.ReferenceDate)
	}

	existingIDs, err := s.repo.FindExistingIDs(ctx, clientID, campaignID, dates)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExistingLookup, err)
	}

	pending := make([]pendingRow, 0, len(records))
	for _, record := range records {
		id, found := existingIDs[record.DateKey()]
		if found {
			record.ID = id
		} else {
			record.ID = s.newID()
		}
		pending = append(pending, pendingRow{record: record, existing: found})
	}

	for start := 0; start < len(pending); start += s.batchSize {
		end := min(start+s.batchSize, len(pending))
		s.writeBatch(ctx, pending[start:end], result)
	}

	logrus.WithFields(logrus.Fields{
		"client_id":   clientID,
		"campaign_id": campaignID,
		"written":     result.Written,
		"inserted":    result.Inserted,
		"updated":     result.Updated,
		"failed":      len(result.Failed),
	}).Debug("Métricas diárias reconciliadas")

	return result, nil
}

func (s *Service) writeBatch(ctx context.Context, batch []pendingRow, result *domain.UpsertResult) {
	records := make([]*domain.MetricRecord, 0, len(batch))
	for _, row := range batch {
		records = append(records, row.record)
	}

	err := s.repo.UpsertBatch(ctx, records)
	if err == nil {
		for _, row := range batch {
			result.Count(row.existing)
		}
		return
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id": batch[0].record.CampaignID,
		"batch_size":  len(batch),
		"error":       err.Error(),
	}).Warn("Falha no upsert em lote, gravando linha a linha")

	for _, row := range batch {
		if err := s.repo.Upsert(ctx, row.record); err != nil {
			logrus.WithFields(logrus.Fields{
				"campaign_id":    row.record.CampaignID,
				"reference_date": row.record.DateKey(),
				"error":          err.Error(),
			}).Error("Falha ao gravar métrica diária")

			result.Failed = append(result.Failed, domain.RowFailure{
				ReferenceDate: row.record.DateKey(),
				Error:         err.Error(),
			})
			continue
		}
		result.Count(row.existing)
	}
}

// dedupeByDate mantém a ordem da primeira ocorrência de cada data com os valores da última
func dedupeByDate(clientID, campaignID string, rows []domain.MetricRecord) []*domain.MetricRecord {
	byDate := make(map[string]*domain.MetricRecord, len(rows))
	ordered := make([]*domain.MetricRecord, 0, len(rows))

	for i := range rows {
		record := rows[i]
		record.ClientID = clientID
		record.CampaignID = campaignID
		record.ReferenceDate = time.Date(record.ReferenceDate.Year(), record.ReferenceDate.Month(), record.ReferenceDate.Day(), 0, 0, 0, 0, time.UTC)
		if record.ResultValue < 0 {
			record.ResultValue = 0
		}

		key := record.DateKey()
		if current, ok := byDate[key]; ok {
			*current = record
			continue
		}

		byDate[key] = &record
		ordered = append(ordered, &record)
	}

	return ordered
}
