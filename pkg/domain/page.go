package domain

// PageSnapshot bundles everything the add-on extracted from a rendered page.
type PageSnapshot struct {
	URL   string           `json:"url"`
	Items []ContentItem    `json:"items,omitempty"`
	Forms []FormDescriptor `json:"forms,omitempty"`
	Links []Link           `json:"links,omitempty"`
}

// ItemClassification pairs a content item with its classification.
type ItemClassification struct {
	Item           ContentItem    `json:"item"`
	Classification Classification `json:"classification"`
}

// PageReport is the outcome of inspecting a PageSnapshot. Sections for disabled
// features are left nil.
type PageReport struct {
	URL            string               `json:"url"`
	Toggles        FeatureToggles       `json:"toggles"`
	Content        []ItemClassification `json:"content,omitempty"`
	Forms          []FormAnalysis       `json:"forms,omitempty"`
	ShortenedLinks []Link               `json:"shortenedLinks,omitempty"`
}

// SuspiciousForms returns how many analyzed forms were flagged.
func (r PageReport) SuspiciousForms() int {
	n := 0
	for _, f := range r.Forms {
		if f.Suspicious {
			n++
		}
	}

	return n
}
