package events

import (
	"time"
)

// ChannelTestCompleted is the pub/sub channel reward and leaderboard
// consumers subscribe to.
const ChannelTestCompleted = "iqtest:events:test_completed"

// TestCompletedEvent is the payload published when a session finishes with a
// score at or above the reward threshold. The only coupling with the rewards
// service is this payload shape.
type TestCompletedEvent struct {
	UserID      uint      `json:"user_id"`
	SessionID   string    `json:"session_id"`
	Score       int       `json:"score"`
	IQEstimate  int       `json:"iq_estimate"`
	Level       string    `json:"level"`
	CompletedAt time.Time `json:"completed_at"`
}

// Publisher delivers completion events to external consumers. Best-effort:
// a publish failure never rolls back the recorded result.
type Publisher interface {
	PublishTestCompleted(event TestCompletedEvent) error
}
