package engine

import "webguard/pkg/domain"

// LexicalClassifier decides whether a content item is educational by matching
// its title and description against an allow and a block keyword set.
type LexicalClassifier struct {
	allow KeywordSet
	block KeywordSet
}

// NewLexicalClassifier creates a classifier from explicit keyword sets.
func NewLexicalClassifier(allow, block KeywordSet) LexicalClassifier {
	return LexicalClassifier{allow: allow, block: block}
}

// DefaultLexicalClassifier uses the built-in keyword lists with the given mode.
func DefaultLexicalClassifier(mode MatchMode) LexicalClassifier {
	return NewLexicalClassifier(
		NewKeywordSet("allow", mode, DefaultAllowKeywords()...),
		NewKeywordSet("block", mode, DefaultBlockKeywords()...),
	)
}

// Classify returns the verdict for item. See Explain for the rules.
func (c LexicalClassifier) Classify(item domain.ContentItem) domain.ClassificationVerdict {
	return c.Explain(item).Verdict
}

// Explain classifies item and reports the rule that decided it. Rules apply in
// strict order:
//  1. a block keyword in the title or description blocks, whatever else matches;
//  2. otherwise an allow keyword allows;
//  3. otherwise the item is blocked for lack of an educational signal.
func (c LexicalClassifier) Explain(item domain.ContentItem) domain.Classification {
	if kw, ok := c.block.Match(item.Title, item.Description); ok {
		return domain.Classification{Verdict: domain.VerdictBlock, Reason: domain.ReasonBlockKeyword, Keyword: kw}
	}

	if kw, ok := c.allow.Match(item.Title, item.Description); ok {
		return domain.Classification{Verdict: domain.VerdictAllow, Reason: domain.ReasonAllowKeyword, Keyword: kw}
	}

	return domain.Classification{Verdict: domain.VerdictBlock, Reason: domain.ReasonNoSignal}
}
