package inspector

import (
	"context"
	"webguard/pkg/domain"
)

// Inspector is the application service behind the HTTP API. It combines the
// classification engine with the reputation source, the per-user quota and
// the settings store.
//
//go:generate mockgen -package mockinspector -source=interface.go -destination=mock/mockinspector.go *
type Inspector interface {
	// CheckURL validates rawURL, counts it against the user's daily quota and
	// looks up its reputation. A failed lookup is not an error; it yields a
	// check with status unknown.
	CheckURL(ctx context.Context, userID domain.UserID, rawURL string) (*domain.URLCheck, error)
	// CheckURLs checks several URLs concurrently. Per-URL errors are reported
	// inline; the returned error only concerns the batch itself.
	CheckURLs(ctx context.Context, userID domain.UserID, rawURLs []string) ([]domain.URLCheckResult, error)

	Classify(ctx context.Context, items []domain.ContentItem) []domain.ItemClassification
	AnalyzeForms(ctx context.Context, forms []domain.FormDescriptor) []domain.FormAnalysis
	FindShortenedLinks(ctx context.Context, links []domain.Link) []domain.Link
	// InspectPage runs the classifiers the user has enabled over a page snapshot.
	InspectPage(ctx context.Context, userID domain.UserID, page domain.PageSnapshot) (*domain.PageReport, error)

	Settings(ctx context.Context, userID domain.UserID) (domain.FeatureToggles, error)
	// UpdateSetting persists one toggle and schedules the change announcement.
	UpdateSetting(ctx context.Context, userID domain.UserID, key string, value bool) (*domain.SettingChange, error)
	// PublishSettingChange announces a committed change to subscribers.
	PublishSettingChange(ctx context.Context, change domain.SettingChange) error
	// SubscribeSettings streams the user's setting changes until ctx is done.
	SubscribeSettings(ctx context.Context, userID domain.UserID) (<-chan domain.SettingChange, error)

	Usage(ctx context.Context, userID domain.UserID) (domain.QuotaUsage, error)
}
