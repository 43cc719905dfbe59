package domain

type DealStatus string

const (
	DealActive DealStatus = "active"
	DealAtRisk DealStatus = "at_risk"
	DealClosed DealStatus = "closed"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

type NextAction string

const (
	ActionFollowUpEmail   NextAction = "send_follow_up_email"
	ActionScheduleMeeting NextAction = "schedule_meeting"
	ActionEscalate        NextAction = "escalate"
	ActionWait            NextAction = "wait"
)

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Impact tags a pattern insight so consumers can differentiate visually.
type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNegative Impact = "negative"
	ImpactNeutral  Impact = "neutral"
)

// ValidEventTypes is the canonical set of accepted timeline event type strings.
var ValidEventTypes = map[string]bool{
	"email": true, "call": true, "meeting": true, "note": true,
	"demo": true, "proposal_sent": true, "contract_sent": true,
	"stage_change": true, "competitor_mention": true,
}
