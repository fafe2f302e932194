package domain

import (
	"time"
)

// SettingKey names a persisted boolean feature toggle.
type SettingKey string

const (
	SettingContentFilter  SettingKey = "contentFilterEnabled"
	SettingFormAnalysis   SettingKey = "formAnalysisEnabled"
	SettingShortenerAlert SettingKey = "shortenerAlertEnabled"
)

// SettingKeys lists every known toggle key in a stable order.
func SettingKeys() []SettingKey {
	return []SettingKey{SettingContentFilter, SettingFormAnalysis, SettingShortenerAlert}
}

// Valid reports whether k is a known toggle key.
func (k SettingKey) Valid() bool {
	switch k {
	case SettingContentFilter, SettingFormAnalysis, SettingShortenerAlert:
		return true
	default:
		return false
	}
}

// FeatureToggles is a snapshot of a user's feature switches. Classifiers receive
// it explicitly; nothing reads toggles from global state.
type FeatureToggles struct {
	ContentFilterEnabled  bool `json:"contentFilterEnabled"`
	FormAnalysisEnabled   bool `json:"formAnalysisEnabled"`
	ShortenerAlertEnabled bool `json:"shortenerAlertEnabled"`
}

// DefaultToggles is the snapshot used for keys a user never set.
func DefaultToggles() FeatureToggles {
	return FeatureToggles{
		ContentFilterEnabled:  false,
		FormAnalysisEnabled:   true,
		ShortenerAlertEnabled: true,
	}
}

// With returns a copy of t with key set to value. Unknown keys leave t unchanged.
func (t FeatureToggles) With(key SettingKey, value bool) FeatureToggles {
	switch key {
	case SettingContentFilter:
		t.ContentFilterEnabled = value
	case SettingFormAnalysis:
		t.FormAnalysisEnabled = value
	case SettingShortenerAlert:
		t.ShortenerAlertEnabled = value
	}

	return t
}

// ApplyValues overlays stored key/value pairs on t.
func (t FeatureToggles) ApplyValues(values map[SettingKey]bool) FeatureToggles {
	for k, v := range values {
		t = t.With(k, v)
	}

	return t
}

// SettingChange is the discrete event emitted whenever a toggle is persisted.
type SettingChange struct {
	UserID    UserID     `json:"userId"`
	Key       SettingKey `json:"key"`
	Value     bool       `json:"value"`
	ChangedAt time.Time  `json:"changedAt"`
}
