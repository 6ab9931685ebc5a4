package quizengine

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/iqtest-api/internal/domain/entity"
	apperrors "github.com/yourusername/iqtest-api/internal/pkg/errors"
)

// SessionState is the lifecycle state of a quiz session.
type SessionState string

const (
	StateNotStarted SessionState = "not_started"
	StateInProgress SessionState = "in_progress"
	StateCompleted  SessionState = "completed"
	StateAbandoned  SessionState = "abandoned"
)

// Config holds the session engine settings.
type Config struct {
	// QuestionCountdown arms a per-question timer that auto-advances to the
	// next question when the question's time limit expires.
	QuestionCountdown bool

	// LevelCountdown arms a whole-level timer that auto-finishes the session
	// when the level duration expires.
	LevelCountdown bool
}

// DefaultConfig returns the production engine settings.
func DefaultConfig() *Config {
	return &Config{
		QuestionCountdown: true,
		LevelCountdown:    true,
	}
}

// Progress is a read-only snapshot of how far a session has advanced.
type Progress struct {
	Current    int     `json:"current"` // 1-indexed
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// Session drives one user's timed progression through a selected question
// subset. Single-owner: all mutations serialize on the internal mutex, and
// the countdown timers are cooperative goroutines cancelled on every exit
// path, so user input is never blocked by a running timer.
type Session struct {
	ID     string
	UserID uint
	Level  entity.QuizLevel

	mu           sync.Mutex
	state        SessionState
	questions    []entity.Question
	answers      []entity.Answer
	currentIndex int
	startedAt    time.Time
	timeSpentSec int
	report       *ScoreReport

	config *Config

	// cancelSession tears down every timer owned by the session.
	// cancelQuestion tears down only the currently armed question timer.
	sessionCtx     context.Context
	cancelSession  context.CancelFunc
	cancelQuestion context.CancelFunc
}

func newSession(userID uint, level entity.QuizLevel, questions []entity.Question, config *Config) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		ID:            uuid.NewString(),
		UserID:        userID,
		Level:         level,
		state:         StateNotStarted,
		questions:     questions,
		answers:       make([]entity.Answer, len(questions)),
		config:        config,
		sessionCtx:    ctx,
		cancelSession: cancel,
	}
	return s
}

// begin transitions NotStarted -> InProgress and arms the timers.
func (s *Session) begin() {
	s.mu.Lock()
	s.state = StateInProgress
	s.currentIndex = 0
	s.startedAt = time.Now()
	if s.config.QuestionCountdown {
		s.armQuestionTimerLocked(0)
	}
	s.mu.Unlock()

	if s.config.LevelCountdown {
		duration := time.Duration(s.Level.DurationMinutes) * time.Minute
		go s.runLevelCountdown(duration)
	}
}

// runLevelCountdown finishes the session when the whole-level duration
// expires. Cancelled through the session context on any terminal transition.
func (s *Session) runLevelCountdown(duration time.Duration) {
	select {
	case <-time.After(duration):
		log.Printf("[Session] %s: level time limit reached, auto-finishing", s.ID)
		if _, err := s.Finish(); err != nil {
			log.Printf("[Session] %s: auto-finish failed: %v", s.ID, err)
		}
	case <-s.sessionCtx.Done():
	}
}

// armQuestionTimerLocked replaces the current question timer with one for the
// question at index. The timer auto-advances past the question when its time
// limit expires; at the last question it finishes the session instead.
// Caller holds s.mu: the cancel-old/store-new swap must not interleave with a
// concurrent re-arm from the expiry goroutine.
func (s *Session) armQuestionTimerLocked(index int) {
	if index < 0 || index >= len(s.questions) {
		return
	}
	if s.cancelQuestion != nil {
		s.cancelQuestion()
	}

	qCtx, qCancel := context.WithCancel(s.sessionCtx)
	s.cancelQuestion = qCancel
	limit := time.Duration(s.questions[index].TimeLimitSec) * time.Second

	go func() {
		select {
		case <-time.After(limit):
			s.expireQuestion(index)
		case <-qCtx.Done():
		}
	}()
}

// expireQuestion is the question-timer callback. A stale timer (the user
// already moved on, or the session ended) is a no-op. Stale check and advance
// form one critical section, so an expiry racing a user Next can never skip a
// question.
func (s *Session) expireQuestion(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress || s.currentIndex != index {
		return
	}

	log.Printf("[Session] %s: time limit reached on question %d", s.ID, index+1)
	if index == len(s.questions)-1 {
		if _, err := s.finishLocked(); err != nil {
			log.Printf("[Session] %s: auto-finish failed: %v", s.ID, err)
		}
		return
	}

	s.currentIndex++
	if s.config.QuestionCountdown {
		s.armQuestionTimerLocked(s.currentIndex)
	}
}

// CurrentQuestion returns the question at the cursor. ok is false when the
// cursor is past the end or the session is not in progress (terminal signal
// for the caller to finish).
func (s *Session) CurrentQuestion() (*entity.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress || s.currentIndex >= len(s.questions) {
		return nil, false
	}
	q := s.questions[s.currentIndex]
	return &q, true
}

// SubmitAnswer records the answer for the current question without advancing
// the cursor. Submitting twice on the same index overwrites the prior answer:
// last write wins, so the user can change their mind before moving on.
func (s *Session) SubmitAnswer(a entity.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return fmt.Errorf("session %s is %s: %w", s.ID, s.state, apperrors.ErrConflict)
	}
	if s.currentIndex >= len(s.questions) {
		return fmt.Errorf("no current question: %w", apperrors.ErrConflict)
	}

	q := &s.questions[s.currentIndex]
	if a.Kind == entity.KindMultipleChoice && q.Kind == entity.KindMultipleChoice && !q.IsValidOption(a.Option) {
		return fmt.Errorf("option %d out of range for question %s: %w", a.Option, q.ID, apperrors.ErrValidation)
	}

	s.answers[s.currentIndex] = a
	return nil
}

// Next advances the cursor by one. Returns false without error when already
// at the last question, signalling the caller to finish.
func (s *Session) Next() (bool, error) {
	s.mu.Lock()
	if s.state != StateInProgress {
		s.mu.Unlock()
		return false, fmt.Errorf("session %s is %s: %w", s.ID, s.state, apperrors.ErrConflict)
	}
	if s.currentIndex >= len(s.questions)-1 {
		s.mu.Unlock()
		return false, nil
	}
	s.currentIndex++
	if s.config.QuestionCountdown {
		s.armQuestionTimerLocked(s.currentIndex)
	}
	s.mu.Unlock()
	return true, nil
}

// Previous moves the cursor back by one, letting the user revisit and
// overwrite earlier answers. Returns false when already at the start.
func (s *Session) Previous() (bool, error) {
	s.mu.Lock()
	if s.state != StateInProgress {
		s.mu.Unlock()
		return false, fmt.Errorf("session %s is %s: %w", s.ID, s.state, apperrors.ErrConflict)
	}
	if s.currentIndex == 0 {
		s.mu.Unlock()
		return false, nil
	}
	s.currentIndex--
	if s.config.QuestionCountdown {
		s.armQuestionTimerLocked(s.currentIndex)
	}
	s.mu.Unlock()
	return true, nil
}

// Progress returns the session progress snapshot. Pure, no side effects.
func (s *Session) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := len(s.questions)
	current := s.currentIndex + 1
	if current > total {
		current = total
	}
	pct := 0.0
	if total > 0 {
		pct = math.Round(float64(current)/float64(total)*10000) / 100
	}
	return Progress{Current: current, Total: total, Percentage: pct}
}

// Finish transitions to Completed, cancels every timer, stamps the time
// spent and scores the captured answers. Unanswered slots score as
// incorrect. Idempotent-hostile by design: a second call fails with
// ErrConflict because the result was already computed.
func (s *Session) Finish() (*ScoreReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finishLocked()
}

// finishLocked is the terminal transition. Caller holds s.mu, so a timer
// expiry and a user Finish cannot both complete the session.
func (s *Session) finishLocked() (*ScoreReport, error) {
	if s.state != StateInProgress {
		return nil, fmt.Errorf("session %s is %s: %w", s.ID, s.state, apperrors.ErrConflict)
	}

	s.state = StateCompleted
	s.timeSpentSec = int(time.Since(s.startedAt).Seconds())

	// Cancellation on every exit path: no dangling timers after completion.
	s.cancelSession()

	report, err := ScoreAnswers(s.questions, s.answers, s.Level)
	if err != nil {
		return nil, err
	}
	s.report = report

	log.Printf("[Session] %s: finished, score=%d correct=%d/%d iq=%d",
		s.ID, report.Score, report.CorrectCount, report.TotalQuestions, report.IQEstimate)
	return report, nil
}

// abandon discards an in-progress session and cancels its timers.
func (s *Session) abandon() {
	s.mu.Lock()
	if s.state == StateInProgress || s.state == StateNotStarted {
		s.state = StateAbandoned
	}
	s.mu.Unlock()
	s.cancelSession()
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// TimeSpentSeconds returns the stamped duration of a finished session.
func (s *Session) TimeSpentSeconds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeSpentSec
}

// Report returns the score report of a finished session, nil otherwise.
func (s *Session) Report() *ScoreReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report
}

// StartedAt returns the session start timestamp.
func (s *Session) StartedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startedAt
}

// SessionManager owns the in-flight sessions, keyed by session id. Sessions
// are discarded once finished or abandoned; only TestResult rows survive.
type SessionManager struct {
	bank   *Bank
	levels *LevelTable
	config *Config

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionManager creates a session manager over the given bank and levels.
func NewSessionManager(bank *Bank, levels *LevelTable, config *Config) *SessionManager {
	if config == nil {
		config = DefaultConfig()
	}
	return &SessionManager{
		bank:     bank,
		levels:   levels,
		config:   config,
		sessions: make(map[string]*Session),
	}
}

// Start creates and begins a session for the level. Fails with
// ErrUnknownLevel for an unconfigured level id and ErrInsufficientQuestions
// when the catalog cannot cover the level's question count.
func (m *SessionManager) Start(userID uint, levelID string) (*Session, error) {
	level, err := m.levels.Get(levelID)
	if err != nil {
		return nil, err
	}

	questions, err := m.bank.SelectQuestions(level.ID, level.QuestionCount)
	if err != nil {
		return nil, err
	}

	s := newSession(userID, level, questions, m.config)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	s.begin()
	log.Printf("[SessionManager] started session %s for user #%d, level=%s, questions=%d",
		s.ID, userID, level.ID, len(questions))
	return s, nil
}

// Get returns the session by id.
func (m *SessionManager) Get(sessionID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, apperrors.ErrNotFound)
	}
	return s, nil
}

// Remove discards a session from the manager (after finish or abandon).
func (m *SessionManager) Remove(sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
}

// Abandon cancels the session's timers, discards its state and removes it.
func (m *SessionManager) Abandon(sessionID string) error {
	s, err := m.Get(sessionID)
	if err != nil {
		return err
	}
	s.abandon()
	m.Remove(sessionID)
	log.Printf("[SessionManager] abandoned session %s", sessionID)
	return nil
}

// ActiveCount returns the number of in-flight sessions.
func (m *SessionManager) ActiveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
