package engine

import "webguard/pkg/domain"

// Options configure the classifiers bundled in an Engine. Empty keyword or
// domain lists fall back to the built-in defaults.
type Options struct {
	AllowKeywords    []string
	BlockKeywords    []string
	ShortenerDomains []string
	// WholeWords switches keyword matching from substring to whole-word mode.
	WholeWords bool
}

// Engine bundles the page classifiers. It holds no mutable state, so a single
// value can be shared by all requests.
type Engine struct {
	lexical   LexicalClassifier
	shortener ShortenerMatcher
	forms     FormAnalyzer
}

// New builds an Engine from options.
func New(opts Options) *Engine {
	mode := MatchSubstring
	if opts.WholeWords {
		mode = MatchWholeWord
	}

	allow := opts.AllowKeywords
	if len(allow) == 0 {
		allow = DefaultAllowKeywords()
	}
	block := opts.BlockKeywords
	if len(block) == 0 {
		block = DefaultBlockKeywords()
	}
	shorteners := opts.ShortenerDomains
	if len(shorteners) == 0 {
		shorteners = DefaultShortenerDomains()
	}

	return &Engine{
		lexical: NewLexicalClassifier(
			NewKeywordSet("allow", mode, allow...),
			NewKeywordSet("block", mode, block...),
		),
		shortener: NewShortenerMatcher(NewDomainSet(shorteners...)),
		forms:     NewFormAnalyzer(),
	}
}

// Classify explains the verdict for each item, in input order.
func (e *Engine) Classify(items []domain.ContentItem) []domain.ItemClassification {
	out := make([]domain.ItemClassification, 0, len(items))
	for _, item := range items {
		out = append(out, domain.ItemClassification{Item: item, Classification: e.lexical.Explain(item)})
	}

	return out
}

// AnalyzeForms analyzes each form, in input order.
func (e *Engine) AnalyzeForms(forms []domain.FormDescriptor) []domain.FormAnalysis {
	out := make([]domain.FormAnalysis, 0, len(forms))
	for _, f := range forms {
		out = append(out, e.forms.AnalyzeForm(f))
	}

	return out
}

// IsShortener reports whether hostname is a known shortener.
func (e *Engine) IsShortener(hostname string) bool {
	return e.shortener.IsShortener(hostname)
}

// FindShortenedLinks returns the links that point to a shortener.
func (e *Engine) FindShortenedLinks(links []domain.Link) []domain.Link {
	return e.shortener.FindShortenedLinks(links)
}

// InspectPage runs the classifiers enabled in toggles over the snapshot. Forms
// without a CurrentPageDomain inherit the host of the snapshot URL.
func (e *Engine) InspectPage(page domain.PageSnapshot, toggles domain.FeatureToggles) domain.PageReport {
	report := domain.PageReport{URL: page.URL, Toggles: toggles}

	if toggles.ContentFilterEnabled {
		report.Content = e.Classify(page.Items)
	}

	if toggles.FormAnalysisEnabled {
		pageHost := hostOf(page.URL)
		forms := make([]domain.FormDescriptor, len(page.Forms))
		for i, f := range page.Forms {
			if f.CurrentPageDomain == "" {
				f.CurrentPageDomain = pageHost
			}
			forms[i] = f
		}
		report.Forms = e.AnalyzeForms(forms)
	}

	if toggles.ShortenerAlertEnabled {
		report.ShortenedLinks = e.FindShortenedLinks(page.Links)
	}

	return report
}
