package inspector

import (
	"context"
	"errors"
	"fmt"
	"time"
	"webguard/internal/config"
	"webguard/internal/engine"
	"webguard/pkg/domain"
	"webguard/pkg/events"
	"webguard/pkg/logger"
	"webguard/pkg/metrics"
	"webguard/pkg/quota"
	"webguard/pkg/reputation"
	"webguard/pkg/serrors"
	"webguard/pkg/storage"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const tracerName = "webguard/internal/inspector"

// Options configure the classifiers and the batch URL check.
// These settings are typically derived from application configuration.
type Options struct {
	Engine engine.Options
	// BatchConcurrency bounds how many lookups of one batch run at the same time.
	BatchConcurrency int
	// MaxBatchSize is the largest number of URLs accepted by CheckURLs.
	MaxBatchSize int
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Engine: engine.Options{
			AllowKeywords:    cfg.Classifier.AllowKeywords,
			BlockKeywords:    cfg.Classifier.BlockKeywords,
			ShortenerDomains: cfg.Classifier.ShortenerDomains,
			WholeWords:       cfg.Classifier.WholeWords,
		},
		BatchConcurrency: cfg.Inspector.BatchConcurrency,
		MaxBatchSize:     cfg.Inspector.MaxBatchSize,
	}
}

// Deps are the collaborators of the inspector. Metrics may be nil.
type Deps struct {
	Storage    storage.Storage
	Reputation reputation.Source
	Quota      quota.Limiter
	Events     events.Bus
	Metrics    *metrics.Collectors
}

// inspector is the concrete implementation of the Inspector interface.
type inspector struct {
	options Options
	engine  *engine.Engine
	deps    Deps
	tracer  trace.Tracer
	now     func() time.Time
}

// New creates a new Inspector backed by deps and configured with options.
func New(deps Deps, options Options) Inspector {
	if options.BatchConcurrency <= 0 {
		options.BatchConcurrency = 4
	}
	if options.MaxBatchSize <= 0 {
		options.MaxBatchSize = 20
	}
	if deps.Metrics == nil {
		deps.Metrics, _ = metrics.NewCollectors(nil)
	}

	return &inspector{
		options: options,
		engine:  engine.New(options.Engine),
		deps:    deps,
		tracer:  otel.Tracer(tracerName),
		now:     time.Now,
	}
}

// CheckURL validates the URL, consumes one unit of quota and asks the
// reputation source about it. The lookup result is never cached.
func (i *inspector) CheckURL(ctx context.Context, userID domain.UserID, rawURL string) (*domain.URLCheck, error) {
	ctx, span := i.tracer.Start(ctx, "inspector.CheckURL")
	defer span.End()

	target, err := ValidateURL(rawURL)
	if err != nil {
		span.SetStatus(codes.Error, "invalid url")

		return nil, err
	}
	span.SetAttributes(attribute.String("url", target))

	usage, err := i.deps.Quota.Consume(ctx, userID)
	if err != nil {
		if errors.Is(err, serrors.ErrRateLimited) {
			i.deps.Metrics.QuotaRejections.Inc()
			span.SetStatus(codes.Error, "rate limited")

			return nil, err
		}

		return nil, fmt.Errorf("could not consume quota: %w", err)
	}

	started := time.Now()
	outcome := i.deps.Reputation.Lookup(ctx, target)
	i.deps.Metrics.LookupDuration.Observe(time.Since(started).Seconds())
	i.deps.Metrics.Lookups.WithLabelValues(string(outcome.Status)).Inc()
	span.SetAttributes(attribute.String("lookup.status", string(outcome.Status)))

	if outcome.Status == domain.LookupFailed {
		logger.Warn(ctx, "reputation lookup failed",
			zap.String("url", target), zap.String("error", outcome.Error))
	}

	matches := outcome.Matches
	if matches == nil {
		matches = []domain.ThreatMatch{}
	}

	return &domain.URLCheck{
		URL:          target,
		Status:       domain.StatusFor(outcome.Status),
		Assessment:   engine.AssessOutcome(outcome),
		Matches:      matches,
		ThreatsFound: len(matches),
		UserID:       userID,
		Timestamp:    i.now().UTC(),
		Usage:        usage,
	}, nil
}

// CheckURLs fans the URLs out to CheckURL with bounded concurrency. Results
// keep the input order.
func (i *inspector) CheckURLs(ctx context.Context,
	userID domain.UserID,
	rawURLs []string) ([]domain.URLCheckResult, error) {
	if len(rawURLs) == 0 {
		return nil, serrors.With(serrors.ErrBadRequest, "at least one URL is required")
	}
	if len(rawURLs) > i.options.MaxBatchSize {
		return nil, serrors.With(serrors.ErrBadRequest, "at most %d URLs can be checked at once", i.options.MaxBatchSize)
	}

	ctx, span := i.tracer.Start(ctx, "inspector.CheckURLs",
		trace.WithAttributes(attribute.Int("batch.size", len(rawURLs))))
	defer span.End()

	results := make([]domain.URLCheckResult, len(rawURLs))
	g := new(errgroup.Group)
	g.SetLimit(i.options.BatchConcurrency)
	for idx, raw := range rawURLs {
		g.Go(func() error {
			res := domain.URLCheckResult{URL: raw}
			check, err := i.CheckURL(ctx, userID, raw)
			if err != nil {
				res.Code = serrors.KindOf(err).Error()
				res.Error = serrors.MessageOf(err)
				if serrors.KindOf(err) == serrors.ErrInternal {
					logger.Error(ctx, "could not check URL", zap.String("url", raw), zap.Error(err))
				}
			} else {
				res.URL = check.URL
				res.Check = check
			}
			results[idx] = res

			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}

func (i *inspector) Classify(_ context.Context, items []domain.ContentItem) []domain.ItemClassification {
	res := i.engine.Classify(items)
	for _, r := range res {
		i.deps.Metrics.Classifications.
			WithLabelValues(string(r.Classification.Verdict), string(r.Classification.Reason)).Inc()
	}

	return res
}

func (i *inspector) AnalyzeForms(ctx context.Context, forms []domain.FormDescriptor) []domain.FormAnalysis {
	res := i.engine.AnalyzeForms(forms)
	for _, f := range res {
		if f.Suspicious {
			i.deps.Metrics.SuspiciousForms.Inc()
			logger.Debug(ctx, "suspicious form detected",
				zap.String("target", f.TargetDomain), zap.String("current", f.CurrentDomain))
		}
	}

	return res
}

func (i *inspector) FindShortenedLinks(_ context.Context, links []domain.Link) []domain.Link {
	res := i.engine.FindShortenedLinks(links)
	i.deps.Metrics.ShortenedLinks.Add(float64(len(res)))

	return res
}

// InspectPage loads the caller's toggles and runs the enabled classifiers.
func (i *inspector) InspectPage(ctx context.Context,
	userID domain.UserID,
	page domain.PageSnapshot) (*domain.PageReport, error) {
	ctx, span := i.tracer.Start(ctx, "inspector.InspectPage")
	defer span.End()

	toggles, err := i.Settings(ctx, userID)
	if err != nil {
		span.SetStatus(codes.Error, "could not load settings")

		return nil, err
	}

	report := i.engine.InspectPage(page, toggles)
	for _, r := range report.Content {
		i.deps.Metrics.Classifications.
			WithLabelValues(string(r.Classification.Verdict), string(r.Classification.Reason)).Inc()
	}
	i.deps.Metrics.SuspiciousForms.Add(float64(report.SuspiciousForms()))
	i.deps.Metrics.ShortenedLinks.Add(float64(len(report.ShortenedLinks)))

	span.SetAttributes(
		attribute.Int("page.items", len(page.Items)),
		attribute.Int("page.forms", len(page.Forms)),
		attribute.Int("page.links", len(page.Links)),
	)

	return &report, nil
}

// Settings returns the user's toggles; keys never set keep their defaults.
func (i *inspector) Settings(ctx context.Context, userID domain.UserID) (domain.FeatureToggles, error) {
	values, err := i.deps.Storage.Settings(ctx, userID)
	if err != nil {
		return domain.FeatureToggles{}, fmt.Errorf("could not get settings: %w", err)
	}

	return domain.DefaultToggles().ApplyValues(values), nil
}

// UpdateSetting stores the toggle and enqueues the change announcement in the
// same transaction.
func (i *inspector) UpdateSetting(ctx context.Context,
	userID domain.UserID,
	key string,
	value bool) (*domain.SettingChange, error) {
	settingKey := domain.SettingKey(key)
	if !settingKey.Valid() {
		return nil, serrors.With(serrors.ErrBadRequest, "unknown setting %q", key)
	}

	var change domain.SettingChange
	if err := i.deps.Storage.WithTx(ctx, func(tx storage.AllStorage) error {
		var err error
		change, err = tx.UpsertSetting(ctx, userID, settingKey, value)
		if err != nil {
			return fmt.Errorf("could not store setting: %w", err)
		}

		if _, err = tx.AddJob(ctx, SettingChangedArgs{Change: change}, nil); err != nil {
			return fmt.Errorf("could not add job: %w", err)
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("could not update setting: %w", err)
	}

	return &change, nil
}

func (i *inspector) PublishSettingChange(ctx context.Context, change domain.SettingChange) error {
	if err := i.deps.Events.Publish(ctx, change); err != nil {
		return fmt.Errorf("could not publish setting change: %w", err)
	}

	return nil
}

func (i *inspector) SubscribeSettings(ctx context.Context, userID domain.UserID) (<-chan domain.SettingChange, error) {
	ch, err := i.deps.Events.Subscribe(ctx, userID)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUnavailable, err, "could not subscribe to setting changes")
	}

	return ch, nil
}

func (i *inspector) Usage(ctx context.Context, userID domain.UserID) (domain.QuotaUsage, error) {
	usage, err := i.deps.Quota.Usage(ctx, userID)
	if err != nil {
		return domain.QuotaUsage{}, fmt.Errorf("could not get quota usage: %w", err)
	}

	return usage, nil
}
