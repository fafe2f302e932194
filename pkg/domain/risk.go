package domain

// ThreatVerdict is what a reputation source reports for a single URL.
type ThreatVerdict struct {
	Matched bool `json:"matched"`
	// ThreatKind is the provider's threat category (e.g. MALWARE) when Matched is set.
	ThreatKind string `json:"threatKind,omitempty"`
}

// ThreatMatch is a single provider match kept for display purposes.
type ThreatMatch struct {
	ThreatType      string `json:"threatType"`
	PlatformType    string `json:"platformType,omitempty"`
	ThreatEntryType string `json:"threatEntryType,omitempty"`
	URL             string `json:"url,omitempty"`
}

// LookupStatus is the tri-state result of a reputation lookup.
type LookupStatus string

const (
	// LookupThreatFound means the provider reported at least one match.
	LookupThreatFound LookupStatus = "THREAT_FOUND"
	// LookupNoThreat means the provider answered and reported no match.
	LookupNoThreat LookupStatus = "NO_THREAT"
	// LookupFailed means the provider could not be queried or its answer could not be read.
	LookupFailed LookupStatus = "LOOKUP_FAILED"
)

// LookupOutcome is produced by a reputation source for one URL. It is never
// cached; every lookup yields a fresh outcome.
type LookupOutcome struct {
	Status  LookupStatus  `json:"status"`
	Verdict ThreatVerdict `json:"verdict"`
	Matches []ThreatMatch `json:"matches,omitempty"`
	// Error carries the failure cause when Status is LookupFailed.
	Error string `json:"error,omitempty"`
}

// ThreatFound builds a THREAT_FOUND outcome from the provider matches. The
// threat kind of the verdict is taken from the first match.
func ThreatFound(matches ...ThreatMatch) LookupOutcome {
	kind := ""
	if len(matches) > 0 {
		kind = matches[0].ThreatType
	}

	return LookupOutcome{
		Status:  LookupThreatFound,
		Verdict: ThreatVerdict{Matched: true, ThreatKind: kind},
		Matches: matches,
	}
}

// NoThreat builds a NO_THREAT outcome.
func NoThreat() LookupOutcome {
	return LookupOutcome{Status: LookupNoThreat}
}

// LookupFailure builds a LOOKUP_FAILED outcome carrying the cause.
func LookupFailure(err error) LookupOutcome {
	msg := "reputation lookup failed"
	if err != nil {
		msg = err.Error()
	}

	return LookupOutcome{Status: LookupFailed, Error: msg}
}

// RiskLabel is the three-tier label derived from a risk score, plus Unknown.
type RiskLabel string

const (
	RiskSafe       RiskLabel = "SAFE"
	RiskSuspicious RiskLabel = "SUSPICIOUS"
	RiskHigh       RiskLabel = "HIGH_RISK"
	// RiskUnknown is reported for out-of-range scores and failed lookups. It is
	// never a synonym for RiskSafe.
	RiskUnknown RiskLabel = "UNKNOWN"
)

// RiskAssessment is the score and label derived from a lookup outcome.
type RiskAssessment struct {
	Score int       `json:"score"`
	Label RiskLabel `json:"label"`
	// Error is the lookup failure message shown to the user when Label is RiskUnknown
	// because the lookup failed.
	Error string `json:"error,omitempty"`
}
