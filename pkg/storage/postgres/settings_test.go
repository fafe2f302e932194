package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"
	"webguard/pkg/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestPgSQL_Settings(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	t.Run("unknown user has no stored values", func(t *testing.T) {
		t.Parallel()

		values, err := pgSQL.Settings(ctx, domain.UserID(uuid.New()))
		require.NoError(t, err)
		require.Empty(t, values)
	})

	t.Run("upsert inserts then overwrites", func(t *testing.T) {
		t.Parallel()

		userID := domain.UserID(uuid.New())
		before := time.Now().Add(-time.Minute)

		first, err := pgSQL.UpsertSetting(ctx, userID, domain.SettingContentFilter, true)
		require.NoError(t, err)
		require.Equal(t, userID, first.UserID)
		require.Equal(t, domain.SettingContentFilter, first.Key)
		require.True(t, first.Value)
		require.True(t, first.ChangedAt.After(before))
		require.Equal(t, time.UTC, first.ChangedAt.Location())

		second, err := pgSQL.UpsertSetting(ctx, userID, domain.SettingContentFilter, false)
		require.NoError(t, err)
		require.False(t, second.Value)
		require.False(t, second.ChangedAt.Before(first.ChangedAt))

		_, err = pgSQL.UpsertSetting(ctx, userID, domain.SettingShortenerAlert, false)
		require.NoError(t, err)

		values, err := pgSQL.Settings(ctx, userID)
		require.NoError(t, err)
		require.Equal(t, map[domain.SettingKey]bool{
			domain.SettingContentFilter:  false,
			domain.SettingShortenerAlert: false,
		}, values)
	})

	t.Run("users do not share values", func(t *testing.T) {
		t.Parallel()

		a := domain.UserID(uuid.New())
		b := domain.UserID(uuid.New())

		_, err := pgSQL.UpsertSetting(ctx, a, domain.SettingFormAnalysis, false)
		require.NoError(t, err)

		values, err := pgSQL.Settings(ctx, b)
		require.NoError(t, err)
		require.Empty(t, values)
	})

	t.Run("retired keys are ignored", func(t *testing.T) {
		t.Parallel()

		userID := domain.UserID(uuid.New())
		_, err := pgSQL.DB.(*sql.DB).ExecContext(ctx,
			`INSERT INTO settings (user_id, key, value) VALUES ($1, 'darkModeEnabled', true)`, uuid.UUID(userID))
		require.NoError(t, err)

		values, err := pgSQL.Settings(ctx, userID)
		require.NoError(t, err)
		require.Empty(t, values)
	})
}
