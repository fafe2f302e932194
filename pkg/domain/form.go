package domain

// FieldDescriptor describes one input element of a form as extracted from the DOM.
type FieldDescriptor struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	ID   string `json:"id,omitempty"`
}

// FormDescriptor describes a form found on a page. Fields is the ordered list
// of candidate inputs; the analyzer decides which of them are sensitive.
type FormDescriptor struct {
	ActionURL         string            `json:"actionUrl"`
	CurrentPageDomain string            `json:"currentPageDomain"`
	Fields            []FieldDescriptor `json:"fields"`
}

// FormAnalysis is the result of analyzing a FormDescriptor.
type FormAnalysis struct {
	Suspicious      bool              `json:"suspicious"`
	SensitiveFields []FieldDescriptor `json:"sensitiveFields"`
	// TargetDomain is the resolved host the form submits to.
	TargetDomain string `json:"targetDomain"`
	// CurrentDomain is the normalized host of the page hosting the form.
	CurrentDomain string `json:"currentDomain"`
}
