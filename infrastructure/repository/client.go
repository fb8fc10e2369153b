package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/campaign-metrics-sync/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-metrics-sync/internal/domain"
)

const clientsTable = "clients"

var ErrClientNotFound = errors.New("cliente não encontrado")

type ClientRepository interface {
	ListActive(ctx context.Context) ([]*domain.Client, error)
	ListAll(ctx context.Context) ([]*domain.Client, error)
	UpdateAccountSummary(ctx context.Context, clientID string, summary domain.AccountSummary) error
	SetAccessHash(ctx context.Context, clientID, hash string) error
}

type clientRepository struct {
	conn postgres.Queryer
}

func NewClientRepository(conn postgres.Queryer) ClientRepository {
	return &clientRepository{
		conn: conn,
	}
}

func (r *clientRepository) selectClients() squirrel.SelectBuilder {
	return squirrel.
		Select(
			"id",
			"name",
			"ad_account_ref",
			"active",
			"access_hash",
			"account_reach_30d",
			"account_impressions_30d",
			"account_spend_30d",
			"last_sync_at",
		).
		From(clientsTable).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *clientRepository) ListActive(ctx context.Context) ([]*domain.Client, error) {
	return r.list(ctx, r.selectClients().Where(squirrel.Eq{"active": true}))
}

func (r *clientRepository) ListAll(ctx context.Context) ([]*domain.Client, error) {
	return r.list(ctx, r.selectClients())
}

func (r *clientRepository) list(ctx context.Context, builder squirrel.SelectBuilder) ([]*domain.Client, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapQueryError(err)
	}
	defer rows.Close()

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear cliente")
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return clients, nil
}

func (r *clientRepository) UpdateAccountSummary(ctx context.Context, clientID string, summary domain.AccountSummary) error {
	query, args, err := squirrel.
		Update(clientsTable).
		Set("account_reach_30d", summary.Reach30d).
		Set("account_impressions_30d", summary.Impressions30d).
		Set("account_spend_30d", summary.Spend30d).
		Set("last_sync_at", summary.LastSyncAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": clientID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	return r.execSingle(ctx, query, args...)
}

func (r *clientRepository) SetAccessHash(ctx context.Context, clientID, hash string) error {
	query, args, err := squirrel.
		Update(clientsTable).
		Set("access_hash", hash).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": clientID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	return r.execSingle(ctx, query, args...)
}

func (r *clientRepository) execSingle(ctx context.Context, query string, args ...any) error {
	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapQueryError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "erro ao obter número de linhas afetadas")
	}

	if affected == 0 {
		return ErrClientNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (*domain.Client, error) {
	var (
		client       domain.Client
		adAccountRef sql.NullString
		accessHash   sql.NullString
		lastSyncAt   sql.NullTime
	)

	err := row.Scan(
		&client.ID,
		&client.Name,
		&adAccountRef,
		&client.Active,
		&accessHash,
		&client.Summary.Reach30d,
		&client.Summary.Impressions30d,
		&client.Summary.Spend30d,
		&lastSyncAt,
	)
	if err != nil {
		return nil, err
	}

	client.AdAccountRef = domain.NormalizeAdAccountRef(adAccountRef.String)
	if accessHash.Valid {
		client.AccessHash = &accessHash.String
	}
	if lastSyncAt.Valid {
		client.Summary.LastSyncAt = &lastSyncAt.Time
	}

	return &client, nil
}
