package entity

import (
	"time"
)

// RiskLevel is the aggregate risk band of a fraud analysis.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Severity grades a single fraud indicator.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Indicator type constants. One per detection heuristic.
const (
	IndicatorFastAnswers      = "fast_answers"
	IndicatorUniformTiming    = "uniform_timing"
	IndicatorIPRotation       = "ip_rotation"
	IndicatorNearMaxScores    = "near_max_scores"
	IndicatorScoreJump        = "score_jump"
	IndicatorUniformAccuracy  = "uniform_accuracy"
	IndicatorImplausibleSpeed = "implausible_session_speed"
	IndicatorAutomatedAgent   = "automated_user_agent"
)

// FraudIndicator is one specific anomaly observation.
type FraudIndicator struct {
	Type       string   `json:"type"`
	Severity   Severity `json:"severity"`
	Confidence int      `json:"confidence"` // 0..100
	Evidence   string   `json:"evidence"`
}

// FraudAnalysis is the derived risk assessment for one user. Never persisted
// as a source of truth: always recomputed from the TestResult history.
type FraudAnalysis struct {
	UserID               uint             `json:"user_id"`
	RiskScore            int              `json:"risk_score"` // 0..100
	RiskLevel            RiskLevel        `json:"risk_level"`
	Indicators           []FraudIndicator `json:"indicators"`
	Recommendations      []string         `json:"recommendations"`
	AutoActions          []string         `json:"auto_actions"`
	RequiresManualReview bool             `json:"requires_manual_review"`
	AnalyzedAt           time.Time        `json:"analyzed_at"`
}
