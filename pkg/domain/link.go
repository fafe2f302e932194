package domain

// Link is an anchor found on a page.
type Link struct {
	URL      string `json:"url"`
	Hostname string `json:"hostname"`
	Label    string `json:"label,omitempty"`
}
