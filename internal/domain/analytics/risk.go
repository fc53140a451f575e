package analytics

import "time"

// RiskTier is the discrete risk classification derived from how long an
// invoice has been outstanding relative to its due date.
type RiskTier string

const (
	RiskLow           RiskTier = "LOW"
	RiskMedium        RiskTier = "MEDIUM"
	RiskHigh          RiskTier = "HIGH"
	RiskNotApplicable RiskTier = "NOT_APPLICABLE"
)

// IsValid checks if the tier is a valid RiskTier
func (t RiskTier) IsValid() bool {
	switch t {
	case RiskLow, RiskMedium, RiskHigh, RiskNotApplicable:
		return true
	}
	return false
}

// String returns the string representation of RiskTier
func (t RiskTier) String() string {
	return string(t)
}

// Tier thresholds, in whole days outstanding. Boundaries belong to the
// lower-risk tier.
const (
	lowRiskMaxDays    = 15
	mediumRiskMaxDays = 45
)

// RiskAssessment holds a risk tier together with the signed days
// outstanding it was derived from: positive means days overdue, zero or
// negative means days remaining until the due date.
type RiskAssessment struct {
	Tier            RiskTier `json:"tier"`
	DaysOutstanding int      `json:"days_outstanding"`
}

// DaysOutstanding returns the signed whole-day difference between now and
// the due date. Positive when now is after the due date.
func DaysOutstanding(dueDate, now time.Time) int {
	return int(now.Sub(dueDate) / (24 * time.Hour))
}

// ClassifyRisk maps an invoice's due date to a risk tier at the given
// instant. A nil due date yields RiskNotApplicable with zero days.
func ClassifyRisk(dueDate *time.Time, now time.Time) RiskAssessment {
	if dueDate == nil {
		return RiskAssessment{Tier: RiskNotApplicable}
	}

	days := DaysOutstanding(*dueDate, now)
	assessment := RiskAssessment{DaysOutstanding: days}

	switch {
	case days <= lowRiskMaxDays:
		assessment.Tier = RiskLow
	case days <= mediumRiskMaxDays:
		assessment.Tier = RiskMedium
	default:
		assessment.Tier = RiskHigh
	}

	return assessment
}
