package inspector

import (
	"webguard/pkg/domain"

	"github.com/riverqueue/river"
)

// SettingChangedMaxAttempts is how many times the worker tries to announce a change.
const SettingChangedMaxAttempts = 5

// SettingChangedArgs carries a committed settings change to the worker that
// announces it to the user's connected clients. It is inserted in the same
// transaction as the settings write, so only committed changes are announced.
type SettingChangedArgs struct {
	Change domain.SettingChange `json:"change"`
}

// Kind returns the River job kind used to register and dispatch the worker.
func (args SettingChangedArgs) Kind() string { return "setting_changed" }

// InsertOpts returns the River options used when the job is enqueued. Every
// change is its own job; two quick toggles must both be announced.
func (args SettingChangedArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		MaxAttempts: SettingChangedMaxAttempts,
	}
}
