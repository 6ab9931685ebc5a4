package entity

import (
	"time"
)

// Timeframe selects the result window for a ranking computation.
type Timeframe string

const (
	TimeframeMonthly   Timeframe = "monthly"
	TimeframeQuarterly Timeframe = "quarterly"
	TimeframeYearly    Timeframe = "yearly"
)

// Days returns the window size in days. One test per week is expected over
// this window for the participation bonus.
func (t Timeframe) Days() int {
	switch t {
	case TimeframeMonthly:
		return 30
	case TimeframeQuarterly:
		return 90
	case TimeframeYearly:
		return 365
	default:
		return 30
	}
}

// Valid reports whether the timeframe is one of the configured windows.
func (t Timeframe) Valid() bool {
	switch t {
	case TimeframeMonthly, TimeframeQuarterly, TimeframeYearly:
		return true
	}
	return false
}

// RankingScore is the derived composite ranking for one user in one
// timeframe. Recomputed fresh on every call, never updated in place.
type RankingScore struct {
	UserID    uint      `json:"user_id"`
	Timeframe Timeframe `json:"timeframe"`

	// Raw terms, before weighting. FraudPenalty is on a 0..200 scale and is
	// subtracted; the others are added.
	BaseScore          float64 `json:"base_score"`
	TimeBonus          float64 `json:"time_bonus"`
	ConsistencyBonus   float64 `json:"consistency_bonus"`
	ParticipationBonus float64 `json:"participation_bonus"`
	VerificationBonus  float64 `json:"verification_bonus"`
	FraudPenalty       float64 `json:"fraud_penalty"`

	FinalScore float64 `json:"final_score"`

	Category     string    `json:"category"`  // age bracket the user competes in
	AgeGroup     string    `json:"age_group"` // literal age range, display only
	Badges       []string  `json:"badges"`
	Achievements []string  `json:"achievements"`
	ResultCount  int       `json:"result_count"`
	CalculatedAt time.Time `json:"calculated_at"`
}
