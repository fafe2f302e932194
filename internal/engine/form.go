package engine

import (
	"net/url"
	"strings"
	"webguard/pkg/domain"
)

// specialSchemes take an authority after any run of slashes, and a backslash
// counts as a slash in them, the way browsers parse form actions.
var specialSchemes = map[string]bool{ //nolint: gochecknoglobals
	"http":  true,
	"https": true,
	"ftp":   true,
	"ws":    true,
	"wss":   true,
}

// FormAnalyzer flags forms that send credentials or payment data to a domain
// other than the one hosting the page.
type FormAnalyzer struct {
	paymentKeywords []string
}

// DefaultPaymentKeywords are name/id fragments that mark payment fields.
func DefaultPaymentKeywords() []string {
	return []string{"card", "credit", "debit", "cvv", "cvc", "expiry"}
}

// NewFormAnalyzer creates an analyzer with the default payment keywords.
func NewFormAnalyzer() FormAnalyzer {
	return FormAnalyzer{paymentKeywords: DefaultPaymentKeywords()}
}

// IsSensitive reports whether a field carries credentials or payment data:
// password and email inputs always do, other inputs do when their name or id
// contains a payment keyword.
func (a FormAnalyzer) IsSensitive(field domain.FieldDescriptor) bool {
	switch strings.ToLower(strings.TrimSpace(field.Type)) {
	case "password", "email":
		return true
	}

	name := strings.ToLower(field.Name)
	id := strings.ToLower(field.ID)
	for _, kw := range a.paymentKeywords {
		if strings.Contains(name, kw) || strings.Contains(id, kw) {
			return true
		}
	}

	return false
}

// AnalyzeForm resolves the submission target of form and flags it when it has
// sensitive fields and submits to another domain. Same-domain forms, forms
// without sensitive fields and forms whose page domain cannot be determined are
// never flagged.
func (a FormAnalyzer) AnalyzeForm(form domain.FormDescriptor) domain.FormAnalysis {
	current := hostOf(form.CurrentPageDomain)
	target := ResolveTargetDomain(form.ActionURL, current)

	sensitive := make([]domain.FieldDescriptor, 0, len(form.Fields))
	for _, f := range form.Fields {
		if a.IsSensitive(f) {
			sensitive = append(sensitive, f)
		}
	}

	return domain.FormAnalysis{
		Suspicious:      current != "" && len(sensitive) > 0 && target != current,
		SensitiveFields: sensitive,
		TargetDomain:    target,
		CurrentDomain:   current,
	}
}

// ResolveTargetDomain returns the host a form action submits to. Empty,
// relative, opaque (mailto:, javascript:) and unparseable actions resolve to
// currentDomain. Actions are read the way a browser reads them: tabs and
// newlines are ignored, and backslashes and extra slashes before the host of
// an http(s) or scheme-relative action still name another host.
func ResolveTargetDomain(action, currentDomain string) string {
	action = strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return -1
		}

		return r
	}, strings.TrimFunc(action, func(r rune) bool { return r <= ' ' }))
	if action == "" {
		return currentDomain
	}

	var rest string
	scheme, afterScheme, hasScheme := splitScheme(action)
	switch {
	case !hasScheme:
		rest = strings.ReplaceAll(action, `\`, "/")
		if !strings.HasPrefix(rest, "//") {
			return currentDomain
		}
	case specialSchemes[scheme]:
		// "https:evil.com" is a path relative to an https page.
		rest = strings.ReplaceAll(afterScheme, `\`, "/")
		if !strings.HasPrefix(rest, "/") {
			return currentDomain
		}
	default:
		u, err := url.Parse(action)
		if err != nil || u.Host == "" {
			return currentDomain
		}
		rest = "//" + u.Host
	}

	host := authorityHost(strings.TrimLeft(rest, "/"))
	if host == "" {
		return currentDomain
	}

	return host
}

// splitScheme splits a leading URL scheme off action. The scheme is returned
// lowercase.
func splitScheme(action string) (string, string, bool) {
	for i, c := range action {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		case i > 0 && c == ':':
			return strings.ToLower(action[:i]), action[i+1:], true
		default:
			return "", "", false
		}
	}

	return "", "", false
}
