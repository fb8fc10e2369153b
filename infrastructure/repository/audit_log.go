package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/campaign-metrics-sync/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-metrics-sync/internal/domain"
)

const (
	auditLogsTable       = "audit_logs"
	defaultAuditLogLimit = 50
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// AuditLogRepository só insere e lê. Registros nunca são alterados.
type AuditLogRepository interface {
	Insert(ctx context.Context, entry *domain.AuditLogEntry) error
	ListRecent(ctx context.Context, limit int) ([]*domain.AuditLogEntry, error)
}

type auditLogRepository struct {
	conn postgres.Queryer
}

func NewAuditLogRepository(conn postgres.Queryer) AuditLogRepository {
	return &auditLogRepository{
		conn: conn,
	}
}

func (r *auditLogRepository) Insert(ctx context.Context, entry *domain.AuditLogEntry) error {
	contextJSON, err := json.Marshal(entry.Context)
	if err != nil {
		return errors.Wrap(err, "erro ao serializar contexto do log para JSON")
	}
	if entry.Context == nil {
		contextJSON = []byte("{}")
	}

	query, args, err := squirrel.
		Insert(auditLogsTable).
		Columns("client_id", "category", "severity", "message", "context").
		Values(entry.ClientID, entry.Category, string(entry.Severity), entry.Message, contextJSON).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return wrapQueryError(err)
	}

	return nil
}

// ListRecent retorna os últimos registros, do mais novo para o mais antigo
func (r *auditLogRepository) ListRecent(ctx context.Context, limit int) ([]*domain.AuditLogEntry, error) {
	if limit <= 0 {
		limit = defaultAuditLogLimit
	}

	query, args, err := squirrel.
		Select("id", "client_id", "category", "severity", "message", "context", "created_at").
		From(auditLogsTable).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
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

	entries := make([]*domain.AuditLogEntry, 0, limit)
	for rows.Next() {
		var (
			entry       domain.AuditLogEntry
			clientID    sql.NullString
			severity    string
			contextJSON []byte
		)

		if err := rows.Scan(&entry.ID, &clientID, &entry.Category, &severity, &entry.Message, &contextJSON, &entry.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear log de auditoria")
		}

		entry.Severity = domain.AuditSeverity(severity)
		if clientID.Valid {
			entry.ClientID = &clientID.String
		}
		if len(contextJSON) > 0 {
			if err := json.Unmarshal(contextJSON, &entry.Context); err != nil {
				return nil, errors.Wrap(err, "erro ao desserializar contexto do log")
			}
		}

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return entries, nil
}
