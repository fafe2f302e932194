package engine

import "webguard/pkg/domain"

const (
	// ThreatMatchScore is the flat score assigned to any matched URL,
	// independent of the threat kind.
	ThreatMatchScore = 40

	safeMaxScore       = 30
	suspiciousMaxScore = 60
	maxScore           = 100
)

// LabelForScore partitions [0,100] into Safe [0,30], Suspicious [31,60] and
// HighRisk [61,100]. Scores outside the range are Unknown.
func LabelForScore(score int) domain.RiskLabel {
	switch {
	case score < 0 || score > maxScore:
		return domain.RiskUnknown
	case score <= safeMaxScore:
		return domain.RiskSafe
	case score <= suspiciousMaxScore:
		return domain.RiskSuspicious
	default:
		return domain.RiskHigh
	}
}

// AssessRisk maps a provider verdict to a risk assessment.
func AssessRisk(verdict domain.ThreatVerdict) domain.RiskAssessment {
	if !verdict.Matched {
		return domain.RiskAssessment{Score: 0, Label: domain.RiskSafe}
	}

	return domain.RiskAssessment{Score: ThreatMatchScore, Label: LabelForScore(ThreatMatchScore)}
}

// AssessOutcome maps a tri-state lookup outcome to a risk assessment. A failed
// lookup yields score 0 with the Unknown label and the failure message; it is
// never reported as Safe.
func AssessOutcome(outcome domain.LookupOutcome) domain.RiskAssessment {
	switch outcome.Status {
	case domain.LookupThreatFound:
		verdict := outcome.Verdict
		verdict.Matched = true

		return AssessRisk(verdict)
	case domain.LookupNoThreat:
		return AssessRisk(domain.ThreatVerdict{})
	default:
		msg := outcome.Error
		if msg == "" {
			msg = "reputation lookup failed"
		}

		return domain.RiskAssessment{Score: 0, Label: domain.RiskUnknown, Error: msg}
	}
}
