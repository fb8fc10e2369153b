package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-metrics-sync/internal/domain"
)

var clientColumns = []string{
	"id", "name", "ad_account_ref", "active", "access_hash",
	"account_reach_30d", "account_impressions_30d", "account_spend_30d", "last_sync_at",
}

func TestClientRepository_ListActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	syncedAt := time.Date(2024, 3, 31, 3, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM clients WHERE active = $1 ORDER BY name ASC")).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(clientColumns).
			AddRow("cli-1", "Ótica Centro", "123", true, nil, int64(10), int64(20), 30.5, syncedAt).
			AddRow("cli-2", "Ótica Norte", nil, true, "abc", int64(0), int64(0), 0.0, nil))

	repo := NewClientRepository(db)
	clients, err := repo.ListActive(context.Background())

	require.NoError(t, err)
	require.Len(t, clients, 2)

	assert.Equal(t, "act_123", clients[0].AdAccountRef)
	assert.Nil(t, clients[0].AccessHash)
	assert.Equal(t, int64(10), clients[0].Summary.Reach30d)
	assert.Equal(t, syncedAt, *clients[0].Summary.LastSyncAt)

	assert.Equal(t, "", clients[1].AdAccountRef)
	require.NotNil(t, clients[1].AccessHash)
	assert.Equal(t, "abc", *clients[1].AccessHash)
	assert.Nil(t, clients[1].Summary.LastSyncAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepository_UpdateAccountSummary(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	syncedAt := time.Date(2024, 3, 31, 3, 0, 0, 0, time.UTC)
	summary := domain.AccountSummary{Reach30d: 100, Impressions30d: 200, Spend30d: 12.34, LastSyncAt: &syncedAt}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE clients SET account_reach_30d = $1, account_impressions_30d = $2, account_spend_30d = $3, last_sync_at = $4, updated_at = NOW() WHERE id = $5")).
		WithArgs(int64(100), int64(200), 12.34, &syncedAt, "cli-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewClientRepository(db)
	err = repo.UpdateAccountSummary(context.Background(), "cli-1", summary)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepository_SetAccessHash_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE clients SET access_hash = $1")).
		WithArgs("hash", "inexistente").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewClientRepository(db)
	err = repo.SetAccessHash(context.Background(), "inexistente", "hash")

	assert.ErrorIs(t, err, ErrClientNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
