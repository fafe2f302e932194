package postgres

import (
	"time"
	"webguard/pkg/domain"

	"github.com/google/uuid"
)

// PgSetting is a row of the settings table.
type PgSetting struct {
	UserID    uuid.UUID `db:"user_id"`
	Key       string    `db:"key"`
	Value     bool      `db:"value"`
	UpdatedAt time.Time `db:"updated_at" goqu:"skipinsert"`
}

// ToChange converts the row into the change event it represents.
func (p *PgSetting) ToChange() domain.SettingChange {
	return domain.SettingChange{
		UserID:    domain.UserID(p.UserID),
		Key:       domain.SettingKey(p.Key),
		Value:     p.Value,
		ChangedAt: p.UpdatedAt.UTC(),
	}
}

func pgSettingsToValues(rows []PgSetting) map[domain.SettingKey]bool {
	out := make(map[domain.SettingKey]bool, len(rows))
	for _, row := range rows {
		key := domain.SettingKey(row.Key)
		// rows of retired toggles stay in the table but are not surfaced
		if !key.Valid() {
			continue
		}
		out[key] = row.Value
	}

	return out
}
