package engine_test

import (
	"sync"
	"testing"
	"webguard/internal/engine"
	"webguard/pkg/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPage() domain.PageSnapshot {
	return domain.PageSnapshot{
		URL: "https://www.bank.com/login",
		Items: []domain.ContentItem{
			{Title: "Calculus lecture"},
			{Title: "Cat prank"},
		},
		Forms: []domain.FormDescriptor{
			{ActionURL: "https://collector.evil/steal", Fields: []domain.FieldDescriptor{{Type: "password"}}},
			{ActionURL: "/login", Fields: []domain.FieldDescriptor{{Type: "password"}}},
		},
		Links: []domain.Link{
			{URL: "https://bit.ly/x", Hostname: "bit.ly"},
			{URL: "https://example.org", Hostname: "example.org"},
		},
	}
}

func TestEngine_InspectPage_AllEnabled(t *testing.T) {
	e := engine.New(engine.Options{})
	toggles := domain.FeatureToggles{ContentFilterEnabled: true, FormAnalysisEnabled: true, ShortenerAlertEnabled: true}

	report := e.InspectPage(testPage(), toggles)
	require.Equal(t, "https://www.bank.com/login", report.URL)
	require.Equal(t, toggles, report.Toggles)

	require.Len(t, report.Content, 2)
	require.Equal(t, domain.VerdictAllow, report.Content[0].Classification.Verdict)
	require.Equal(t, domain.VerdictBlock, report.Content[1].Classification.Verdict)

	require.Len(t, report.Forms, 2)
	require.True(t, report.Forms[0].Suspicious)
	require.Equal(t, "www.bank.com", report.Forms[0].CurrentDomain)
	require.False(t, report.Forms[1].Suspicious)
	require.Equal(t, 1, report.SuspiciousForms())

	require.Equal(t, []domain.Link{{URL: "https://bit.ly/x", Hostname: "bit.ly"}}, report.ShortenedLinks)
}

func TestEngine_InspectPage_RespectsToggles(t *testing.T) {
	e := engine.New(engine.Options{})

	report := e.InspectPage(testPage(), domain.FeatureToggles{})
	require.Nil(t, report.Content)
	require.Nil(t, report.Forms)
	require.Nil(t, report.ShortenedLinks)

	report = e.InspectPage(testPage(), domain.FeatureToggles{ShortenerAlertEnabled: true})
	require.Nil(t, report.Content)
	require.Nil(t, report.Forms)
	require.Len(t, report.ShortenedLinks, 1)
}

func TestEngine_InspectPage_DoesNotMutateInput(t *testing.T) {
	e := engine.New(engine.Options{})
	page := testPage()

	_ = e.InspectPage(page, domain.FeatureToggles{FormAnalysisEnabled: true})
	require.Empty(t, page.Forms[0].CurrentPageDomain)
}

func TestEngine_CustomOptions(t *testing.T) {
	e := engine.New(engine.Options{
		AllowKeywords:    []string{"woodworking"},
		BlockKeywords:    []string{"drama"},
		ShortenerDomains: []string{"sho.rt"},
		WholeWords:       true,
	})

	got := e.Classify([]domain.ContentItem{{Title: "Woodworking basics"}, {Title: "Lecture"}, {Title: "dramatic"}})
	require.Equal(t, domain.VerdictAllow, got[0].Classification.Verdict)
	require.Equal(t, domain.ReasonNoSignal, got[1].Classification.Reason)
	require.Equal(t, domain.ReasonNoSignal, got[2].Classification.Reason)

	require.True(t, e.IsShortener("www.sho.rt"))
	require.False(t, e.IsShortener("bit.ly"))
}

func TestEngine_ConcurrentUse(t *testing.T) {
	e := engine.New(engine.Options{})
	toggles := domain.FeatureToggles{ContentFilterEnabled: true, FormAnalysisEnabled: true, ShortenerAlertEnabled: true}
	want := e.InspectPage(testPage(), toggles)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, e.InspectPage(testPage(), toggles))
		}()
	}
	wg.Wait()
}
