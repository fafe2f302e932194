package domain

// ContentItem is a piece of page content examined by the lexical classifier,
// typically a video tile with its title and description.
type ContentItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ClassificationVerdict is the outcome of classifying a ContentItem.
type ClassificationVerdict string

const (
	// VerdictAllow marks content recognized as educational.
	VerdictAllow ClassificationVerdict = "ALLOW"
	// VerdictBlock marks content that is entertainment or carries no educational signal.
	VerdictBlock ClassificationVerdict = "BLOCK"
)

// ClassificationReason explains which rule produced a verdict.
type ClassificationReason string

const (
	// ReasonBlockKeyword means a block keyword matched; it wins over any allow keyword.
	ReasonBlockKeyword ClassificationReason = "BLOCK_KEYWORD"
	// ReasonAllowKeyword means an allow keyword matched and no block keyword did.
	ReasonAllowKeyword ClassificationReason = "ALLOW_KEYWORD"
	// ReasonNoSignal means neither set matched and the default-deny rule applied.
	ReasonNoSignal ClassificationReason = "NO_SIGNAL"
)

// Classification is a verdict together with the rule and keyword behind it, so
// that a default-deny result can be rendered differently from a keyword hit.
type Classification struct {
	Verdict ClassificationVerdict `json:"verdict"`
	Reason  ClassificationReason  `json:"reason"`
	// Keyword is the matched phrase; empty for ReasonNoSignal.
	Keyword string `json:"keyword,omitempty"`
}
