package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"webguard/pkg/domain"
	"webguard/pkg/storage"
	"webguard/pkg/storage/postgres"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func storedSettings(t *testing.T, pg *postgres.PgSQL, userID domain.UserID) map[domain.SettingKey]bool {
	t.Helper()
	values, err := pg.Settings(context.Background(), userID)
	require.NoError(t, err)

	return values
}

func TestPgSQL_Begin_SuccessAndAlreadyInTx(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	txStorage, err := pg.Begin(ctx)
	require.NoError(t, err)
	require.NotNil(t, txStorage)

	inner, ok := txStorage.(*postgres.PgSQL)
	require.True(t, ok)
	_, isTx := inner.DB.(*sql.Tx)
	require.True(t, isTx)

	_, err = inner.Begin(ctx)
	require.ErrorIs(t, err, storage.ErrAlreadyInTx)

	require.NoError(t, inner.Rollback())
}

func TestPgSQL_Commit_SuccessAndNotInTx(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	userID := domain.UserID(uuid.New())

	require.ErrorIs(t, pg.Commit(), storage.ErrNotInTx)

	txStorage, err := pg.Begin(ctx)
	require.NoError(t, err)

	_, err = txStorage.UpsertSetting(ctx, userID, domain.SettingContentFilter, true)
	require.NoError(t, err)

	// not visible outside the transaction yet
	require.Empty(t, storedSettings(t, pg, userID))

	require.NoError(t, txStorage.Commit())
	require.Equal(t, map[domain.SettingKey]bool{domain.SettingContentFilter: true}, storedSettings(t, pg, userID))
}

func TestPgSQL_Rollback_SuccessAndNotInTx(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	userID := domain.UserID(uuid.New())

	require.ErrorIs(t, pg.Rollback(), storage.ErrNotInTx)

	txStorage, err := pg.Begin(ctx)
	require.NoError(t, err)

	_, err = txStorage.UpsertSetting(ctx, userID, domain.SettingFormAnalysis, false)
	require.NoError(t, err)

	require.NoError(t, txStorage.Rollback())
	require.Empty(t, storedSettings(t, pg, userID))
}

func TestPgSQL_WithTx_CommitAndRollback(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	userID := domain.UserID(uuid.New())

	err := pg.WithTx(ctx, func(s storage.AllStorage) error {
		_, e := s.UpsertSetting(ctx, userID, domain.SettingShortenerAlert, false)

		return e //nolint: wrapcheck
	})
	require.NoError(t, err)
	require.Equal(t, map[domain.SettingKey]bool{domain.SettingShortenerAlert: false}, storedSettings(t, pg, userID))

	boom := errors.New("boom")
	err = pg.WithTx(ctx, func(s storage.AllStorage) error {
		_, _ = s.UpsertSetting(ctx, userID, domain.SettingShortenerAlert, true)

		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, map[domain.SettingKey]bool{domain.SettingShortenerAlert: false}, storedSettings(t, pg, userID))
}
