package entity

import (
	"time"
)

// TestResult is the durable record of one completed assessment. Append-only:
// rows are created once and never updated in place. Both the fraud detector
// and the ranking aggregator consume these records.
type TestResult struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"not null;index;uniqueIndex:idx_user_session" json:"user_id"`
	SessionID        string    `gorm:"size:36;not null;uniqueIndex:idx_user_session" json:"session_id"`
	Score            int       `gorm:"not null;default:0" json:"score"` // 0..100
	CorrectCount     int       `gorm:"not null;default:0" json:"correct_count"`
	TotalQuestions   int       `gorm:"not null;default:0" json:"total_questions"`
	IQEstimate       int       `gorm:"not null;default:0" json:"iq_estimate"` // 70..200
	Percentile       int       `gorm:"not null;default:0" json:"percentile"` // 1..99
	TimeSpentSeconds int       `gorm:"not null;default:0" json:"time_spent_seconds"`
	DifficultyLevel  string    `gorm:"size:30;not null" json:"difficulty_level"`
	IPAddress        string    `gorm:"size:45;not null;default:''" json:"ip_address"`
	UserAgent        string    `gorm:"size:500;not null;default:''" json:"user_agent"`
	CompletedAt      time.Time `gorm:"not null;index" json:"completed_at"`
	CreatedAt        time.Time `json:"created_at"`
}

// TableName sets the GORM table name.
func (TestResult) TableName() string {
	return "test_results"
}

// SecondsPerQuestion returns the average time spent per question.
// Returns 0 for a result with no questions.
func (r *TestResult) SecondsPerQuestion() float64 {
	if r.TotalQuestions == 0 {
		return 0
	}
	return float64(r.TimeSpentSeconds) / float64(r.TotalQuestions)
}

// AccuracyRate returns the fraction of questions answered correctly.
func (r *TestResult) AccuracyRate() float64 {
	if r.TotalQuestions == 0 {
		return 0
	}
	return float64(r.CorrectCount) / float64(r.TotalQuestions)
}
