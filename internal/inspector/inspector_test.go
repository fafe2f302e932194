package inspector_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
	"webguard/internal/inspector"
	"webguard/pkg/domain"
	"webguard/pkg/metrics"
	"webguard/pkg/serrors"
	"webguard/pkg/storage"

	mockevents "webguard/pkg/events/mock"
	mockquota "webguard/pkg/quota/mock"
	mockreputation "webguard/pkg/reputation/mock"
	mockstorage "webguard/pkg/storage/mock"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	ctrl       *gomock.Controller
	storage    *mockstorage.MockStorage
	reputation *mockreputation.MockSource
	quota      *mockquota.MockLimiter
	events     *mockevents.MockBus
	metrics    *metrics.Collectors
	inspector  inspector.Inspector
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	m, err := metrics.NewCollectors(nil)
	require.NoError(t, err)

	f := &fixture{
		ctrl:       ctrl,
		storage:    mockstorage.NewMockStorage(ctrl),
		reputation: mockreputation.NewMockSource(ctrl),
		quota:      mockquota.NewMockLimiter(ctrl),
		events:     mockevents.NewMockBus(ctrl),
		metrics:    m,
	}
	f.inspector = inspector.New(inspector.Deps{
		Storage:    f.storage,
		Reputation: f.reputation,
		Quota:      f.quota,
		Events:     f.events,
		Metrics:    m,
	}, inspector.Options{BatchConcurrency: 2, MaxBatchSize: 3})

	return f
}

// helper to wire Storage.WithTx to execute callback with a MockAllStorage.
func (f *fixture) expectWithTx(fn func(tx *mockstorage.MockAllStorage)) {
	f.storage.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cb func(storage.AllStorage) error) error {
			tx := mockstorage.NewMockAllStorage(f.ctrl)
			if fn != nil {
				fn(tx)
			}

			return cb(tx)
		},
	)
}

var userID = domain.UserID(uuid.MustParse("6f1c5a8e-3f0a-4f4e-9a51-2f0b4d6c8e11")) //nolint: gochecknoglobals

func TestInspector_CheckURL(t *testing.T) {
	t.Run("threat found", func(t *testing.T) {
		f := newFixture(t)
		usage := domain.NewQuotaUsage(3, 10, time.Now())
		f.quota.EXPECT().Consume(gomock.Any(), userID).Return(usage, nil)
		f.reputation.EXPECT().Lookup(gomock.Any(), "https://evil.example/").Return(
			domain.ThreatFound(domain.ThreatMatch{ThreatType: "MALWARE", URL: "https://evil.example/"}))

		check, err := f.inspector.CheckURL(context.Background(), userID, "evil.example")
		require.NoError(t, err)
		require.Equal(t, "https://evil.example/", check.URL)
		require.Equal(t, domain.URLDangerous, check.Status)
		require.Equal(t, domain.RiskAssessment{Score: 40, Label: domain.RiskSuspicious}, check.Assessment)
		require.Equal(t, 1, check.ThreatsFound)
		require.Equal(t, userID, check.UserID)
		require.Equal(t, usage, check.Usage)
		require.InDelta(t, 1, testutil.ToFloat64(f.metrics.Lookups.WithLabelValues("THREAT_FOUND")), 0)
	})

	t.Run("no threat", func(t *testing.T) {
		f := newFixture(t)
		f.quota.EXPECT().Consume(gomock.Any(), userID).Return(domain.QuotaUsage{}, nil)
		f.reputation.EXPECT().Lookup(gomock.Any(), "https://example.com/").Return(domain.NoThreat())

		check, err := f.inspector.CheckURL(context.Background(), userID, "https://example.com")
		require.NoError(t, err)
		require.Equal(t, domain.URLSafe, check.Status)
		require.Equal(t, domain.RiskSafe, check.Assessment.Label)
		require.NotNil(t, check.Matches)
		require.Empty(t, check.Matches)
	})

	t.Run("lookup failure is unknown, not safe", func(t *testing.T) {
		f := newFixture(t)
		f.quota.EXPECT().Consume(gomock.Any(), userID).Return(domain.QuotaUsage{}, nil)
		f.reputation.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(
			domain.LookupFailure(errors.New("lookup timed out")))

		check, err := f.inspector.CheckURL(context.Background(), userID, "example.com")
		require.NoError(t, err)
		require.Equal(t, domain.URLUnknown, check.Status)
		require.Equal(t, domain.RiskUnknown, check.Assessment.Label)
		require.Equal(t, "lookup timed out", check.Assessment.Error)
	})

	t.Run("invalid URL consumes nothing", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.inspector.CheckURL(context.Background(), userID, "http://127.0.0.1")
		require.ErrorIs(t, err, serrors.ErrBadRequest)
	})

	t.Run("rate limited", func(t *testing.T) {
		f := newFixture(t)
		f.quota.EXPECT().Consume(gomock.Any(), userID).Return(domain.QuotaUsage{},
			serrors.With(serrors.ErrRateLimited, "daily scan limit of 10 reached"))

		_, err := f.inspector.CheckURL(context.Background(), userID, "example.com")
		require.ErrorIs(t, err, serrors.ErrRateLimited)
		require.InDelta(t, 1, testutil.ToFloat64(f.metrics.QuotaRejections), 0)
	})
}

func TestInspector_CheckURLs(t *testing.T) {
	t.Run("mixed results keep input order", func(t *testing.T) {
		f := newFixture(t)
		var consumed atomic.Int32
		f.quota.EXPECT().Consume(gomock.Any(), userID).DoAndReturn(
			func(context.Context, domain.UserID) (domain.QuotaUsage, error) {
				consumed.Add(1)

				return domain.QuotaUsage{}, nil
			}).Times(2)
		f.reputation.EXPECT().Lookup(gomock.Any(), "https://a.example/").Return(domain.NoThreat())
		f.reputation.EXPECT().Lookup(gomock.Any(), "https://b.example/").Return(
			domain.ThreatFound(domain.ThreatMatch{ThreatType: "SOCIAL_ENGINEERING"}))

		res, err := f.inspector.CheckURLs(context.Background(), userID,
			[]string{"a.example", "", "b.example"})
		require.NoError(t, err)
		require.Len(t, res, 3)

		require.Equal(t, "https://a.example/", res[0].URL)
		require.Equal(t, domain.URLSafe, res[0].Check.Status)

		require.Nil(t, res[1].Check)
		require.Equal(t, "BAD_REQUEST", res[1].Code)
		require.Equal(t, "URL cannot be empty", res[1].Error)

		require.Equal(t, domain.URLDangerous, res[2].Check.Status)
		require.Equal(t, int32(2), consumed.Load())
	})

	t.Run("empty batch", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.inspector.CheckURLs(context.Background(), userID, nil)
		require.ErrorIs(t, err, serrors.ErrBadRequest)
	})

	t.Run("batch too large", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.inspector.CheckURLs(context.Background(), userID, []string{"a", "b", "c", "d"})
		require.ErrorIs(t, err, serrors.ErrBadRequest)
	})
}

func TestInspector_InspectPage(t *testing.T) {
	f := newFixture(t)
	f.storage.EXPECT().Settings(gomock.Any(), userID).Return(map[domain.SettingKey]bool{
		domain.SettingContentFilter:  true,
		domain.SettingShortenerAlert: false,
	}, nil)

	report, err := f.inspector.InspectPage(context.Background(), userID, domain.PageSnapshot{
		URL:   "https://www.youtube.com/watch?v=1",
		Items: []domain.ContentItem{{Title: "Lecture 1: Calculus"}, {Title: "Funny prank compilation"}},
		Forms: []domain.FormDescriptor{{
			ActionURL: "https://collector.example/steal",
			Fields:    []domain.FieldDescriptor{{Type: "password", Name: "pw"}},
		}},
		Links: []domain.Link{{URL: "https://bit.ly/x", Hostname: "bit.ly"}},
	})
	require.NoError(t, err)

	require.True(t, report.Toggles.ContentFilterEnabled)
	require.True(t, report.Toggles.FormAnalysisEnabled)
	require.False(t, report.Toggles.ShortenerAlertEnabled)

	require.Len(t, report.Content, 2)
	require.Equal(t, domain.VerdictAllow, report.Content[0].Classification.Verdict)
	require.Equal(t, domain.VerdictBlock, report.Content[1].Classification.Verdict)

	require.Len(t, report.Forms, 1)
	require.True(t, report.Forms[0].Suspicious)
	require.Equal(t, "www.youtube.com", report.Forms[0].CurrentDomain)

	require.Nil(t, report.ShortenedLinks)
	require.InDelta(t, 1, testutil.ToFloat64(f.metrics.SuspiciousForms), 0)
}

func TestInspector_InspectPage_storageError(t *testing.T) {
	f := newFixture(t)
	f.storage.EXPECT().Settings(gomock.Any(), userID).Return(nil, errors.New("boom"))

	_, err := f.inspector.InspectPage(context.Background(), userID, domain.PageSnapshot{})
	require.Error(t, err)
}

func TestInspector_Settings_defaults(t *testing.T) {
	f := newFixture(t)
	f.storage.EXPECT().Settings(gomock.Any(), userID).Return(map[domain.SettingKey]bool{}, nil)

	toggles, err := f.inspector.Settings(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, domain.DefaultToggles(), toggles)
}

func TestInspector_UpdateSetting(t *testing.T) {
	t.Run("stores and enqueues", func(t *testing.T) {
		f := newFixture(t)
		change := domain.SettingChange{
			UserID:    userID,
			Key:       domain.SettingFormAnalysis,
			Value:     false,
			ChangedAt: time.Now().UTC(),
		}
		f.expectWithTx(func(tx *mockstorage.MockAllStorage) {
			tx.EXPECT().UpsertSetting(gomock.Any(), userID, domain.SettingFormAnalysis, false).Return(change, nil)
			tx.EXPECT().AddJob(gomock.Any(), inspector.SettingChangedArgs{Change: change}, gomock.Nil()).Return(true, nil)
		})

		got, err := f.inspector.UpdateSetting(context.Background(), userID, "formAnalysisEnabled", false)
		require.NoError(t, err)
		require.Equal(t, change, *got)
	})

	t.Run("unknown key", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.inspector.UpdateSetting(context.Background(), userID, "darkMode", true)
		require.ErrorIs(t, err, serrors.ErrBadRequest)
	})

	t.Run("job failure fails the update", func(t *testing.T) {
		f := newFixture(t)
		f.expectWithTx(func(tx *mockstorage.MockAllStorage) {
			tx.EXPECT().UpsertSetting(gomock.Any(), userID, domain.SettingContentFilter, true).
				Return(domain.SettingChange{}, nil)
			tx.EXPECT().AddJob(gomock.Any(), gomock.Any(), gomock.Nil()).Return(false, errors.New("queue down"))
		})

		_, err := f.inspector.UpdateSetting(context.Background(), userID, "contentFilterEnabled", true)
		require.ErrorContains(t, err, "queue down")
	})
}

func TestInspector_events(t *testing.T) {
	f := newFixture(t)
	change := domain.SettingChange{UserID: userID, Key: domain.SettingContentFilter, Value: true}
	f.events.EXPECT().Publish(gomock.Any(), change).Return(nil)
	require.NoError(t, f.inspector.PublishSettingChange(context.Background(), change))

	f.events.EXPECT().Subscribe(gomock.Any(), userID).Return(nil, errors.New("redis down"))
	_, err := f.inspector.SubscribeSettings(context.Background(), userID)
	require.ErrorIs(t, err, serrors.ErrUnavailable)
}

func TestInspector_Usage(t *testing.T) {
	f := newFixture(t)
	usage := domain.NewQuotaUsage(4, 10, time.Now())
	f.quota.EXPECT().Usage(gomock.Any(), userID).Return(usage, nil)

	got, err := f.inspector.Usage(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, usage, got)
	require.InDelta(t, 40, got.PercentageUsed, 0.001)
}

func TestInspector_Classify(t *testing.T) {
	f := newFixture(t)
	res := f.inspector.Classify(context.Background(), []domain.ContentItem{
		{Title: "Minecraft speedrun", Description: "a tutorial"},
	})
	require.Len(t, res, 1)
	require.Equal(t, domain.ReasonBlockKeyword, res[0].Classification.Reason)
	require.InDelta(t, 1, testutil.ToFloat64(
		f.metrics.Classifications.WithLabelValues("BLOCK", "BLOCK_KEYWORD")), 0)

	links := f.inspector.FindShortenedLinks(context.Background(), []domain.Link{
		{URL: "https://tinyurl.com/abc"}, {URL: "https://example.com"},
	})
	require.Len(t, links, 1)
}
