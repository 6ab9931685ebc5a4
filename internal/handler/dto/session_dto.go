package dto

import (
	"time"

	"github.com/yourusername/iqtest-api/internal/domain/entity"
	"github.com/yourusername/iqtest-api/internal/service/quizengine"
)

// QuestionResponse is a question as shown to the client. Correct answers are
// never serialized; this DTO carries only what the presentation layer renders.
type QuestionResponse struct {
	ID           string   `json:"id"`
	Kind         string   `json:"kind"`
	Type         string   `json:"type"`
	Difficulty   int      `json:"difficulty"`
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options,omitempty"`
	TimeLimitSec int      `json:"time_limit_sec"`
	Points       int      `json:"points"`
	Category     string   `json:"category"`
}

// NewQuestionResponse converts a question entity into its client shape.
func NewQuestionResponse(q *entity.Question) QuestionResponse {
	return QuestionResponse{
		ID:           q.ID,
		Kind:         string(q.Kind),
		Type:         string(q.Type),
		Difficulty:   q.Difficulty,
		Prompt:       q.Prompt,
		Options:      q.Options,
		TimeLimitSec: q.TimeLimitSec,
		Points:       q.Points,
		Category:     q.Category,
	}
}

// ProgressResponse mirrors the engine's progress snapshot.
type ProgressResponse struct {
	Current    int     `json:"current"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// NewProgressResponse converts an engine progress value.
func NewProgressResponse(p quizengine.Progress) ProgressResponse {
	return ProgressResponse{
		Current:    p.Current,
		Total:      p.Total,
		Percentage: p.Percentage,
	}
}

// SessionResponse is the session envelope returned on start and state reads.
type SessionResponse struct {
	SessionID string           `json:"session_id"`
	Level     string           `json:"level"`
	LevelName string           `json:"level_name"`
	State     string           `json:"state"`
	Progress  ProgressResponse `json:"progress"`
	StartedAt time.Time        `json:"started_at"`
	Question  *QuestionResponse `json:"question,omitempty"`
}

// NewSessionResponse builds the envelope; the current question is attached
// when the session is still in progress.
func NewSessionResponse(s *quizengine.Session) SessionResponse {
	resp := SessionResponse{
		SessionID: s.ID,
		Level:     s.Level.ID,
		LevelName: s.Level.Name,
		State:     string(s.State()),
		Progress:  NewProgressResponse(s.Progress()),
		StartedAt: s.StartedAt(),
	}
	if q, ok := s.CurrentQuestion(); ok {
		qr := NewQuestionResponse(q)
		resp.Question = &qr
	}
	return resp
}

// ReportResponse is the final outcome of a finished session.
type ReportResponse struct {
	SessionID         string                              `json:"session_id"`
	Score             int                                 `json:"score"`
	CorrectCount      int                                 `json:"correct_count"`
	TotalQuestions    int                                 `json:"total_questions"`
	IQEstimate        int                                 `json:"iq_estimate"`
	Percentile        int                                 `json:"percentile"`
	TimeSpentSeconds  int                                 `json:"time_spent_seconds"`
	CategoryBreakdown map[string]quizengine.CategoryStat  `json:"category_breakdown"`
}

// NewReportResponse builds the final report payload for a completed session.
func NewReportResponse(s *quizengine.Session, report *quizengine.ScoreReport) ReportResponse {
	return ReportResponse{
		SessionID:         s.ID,
		Score:             report.Score,
		CorrectCount:      report.CorrectCount,
		TotalQuestions:    report.TotalQuestions,
		IQEstimate:        report.IQEstimate,
		Percentile:        report.Percentile,
		TimeSpentSeconds:  s.TimeSpentSeconds(),
		CategoryBreakdown: report.CategoryBreakdown,
	}
}

// ResultResponse is a stored test result as shown to its owner.
type ResultResponse struct {
	ID               uint      `json:"id"`
	SessionID        string    `json:"session_id"`
	Score            int       `json:"score"`
	CorrectCount     int       `json:"correct_count"`
	TotalQuestions   int       `json:"total_questions"`
	IQEstimate       int       `json:"iq_estimate"`
	Percentile       int       `json:"percentile"`
	TimeSpentSeconds int       `json:"time_spent_seconds"`
	DifficultyLevel  string    `json:"difficulty_level"`
	CompletedAt      time.Time `json:"completed_at"`
}

// NewResultResponse converts a stored result. Client metadata (IP, user
// agent) stays server-side.
func NewResultResponse(r *entity.TestResult) ResultResponse {
	return ResultResponse{
		ID:               r.ID,
		SessionID:        r.SessionID,
		Score:            r.Score,
		CorrectCount:     r.CorrectCount,
		TotalQuestions:   r.TotalQuestions,
		IQEstimate:       r.IQEstimate,
		Percentile:       r.Percentile,
		TimeSpentSeconds: r.TimeSpentSeconds,
		DifficultyLevel:  r.DifficultyLevel,
		CompletedAt:      r.CompletedAt,
	}
}

// NewResultResponseList converts a page of results.
func NewResultResponseList(results []entity.TestResult) []ResultResponse {
	out := make([]ResultResponse, 0, len(results))
	for i := range results {
		out = append(out, NewResultResponse(&results[i]))
	}
	return out
}
