package postgres

import (
	"context"
	"fmt"
	"webguard/pkg/domain"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	settingsTable = "settings"
)

// Settings returns the stored toggles of userID.
func (p *PgSQL) Settings(ctx context.Context, userID domain.UserID) (map[domain.SettingKey]bool, error) {
	var rows []PgSetting
	if err := p.Builder.From(settingsTable).
		Where(goqu.I("user_id").Eq(uuid.UUID(userID))).
		Order(goqu.I("key").Asc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch settings from pg: %w", err)
	}

	return pgSettingsToValues(rows), nil
}

// UpsertSetting inserts or overwrites one toggle and returns the stored row as
// a change event. updated_at is refreshed on every write, even when the value
// does not change.
func (p *PgSQL) UpsertSetting(ctx context.Context,
	userID domain.UserID,
	key domain.SettingKey,
	value bool) (domain.SettingChange, error) {
	var row PgSetting
	found, err := p.Builder.Insert(settingsTable).
		Rows(PgSetting{UserID: uuid.UUID(userID), Key: string(key), Value: value}).
		OnConflict(goqu.DoUpdate("user_id, key", goqu.Record{
			"value":      goqu.L("EXCLUDED.value"),
			"updated_at": goqu.L("CURRENT_TIMESTAMP"),
		})).
		Returning(&PgSetting{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return domain.SettingChange{}, fmt.Errorf("could not upsert setting in pg: %w", err)
	}
	if !found {
		return domain.SettingChange{}, fmt.Errorf("upsert of setting %q returned no row", key)
	}

	return row.ToChange(), nil
}
