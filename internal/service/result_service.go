package service

import (
	"fmt"
	"log"
	"time"

	"github.com/yourusername/iqtest-api/internal/domain/entity"
	"github.com/yourusername/iqtest-api/internal/domain/repository"
	"github.com/yourusername/iqtest-api/internal/events"
	apperrors "github.com/yourusername/iqtest-api/internal/pkg/errors"
	"github.com/yourusername/iqtest-api/internal/service/quizengine"
)

// How long the latest-result snapshot stays cached per user.
const lastResultCacheTTL = 24 * time.Hour

// Window used when analyzing a user for fraud, and the equally sized window
// immediately before it used for trend comparison.
const fraudAnalysisWindowDays = 90

// ResultService turns finished sessions into durable TestResult records and
// fans out the side effects around them (caching, completion events, fraud
// analysis orchestration).
type ResultService struct {
	resultRepo repository.TestResultRepository
	cacheRepo  repository.CacheRepository
	publisher  events.Publisher
	fraud      *FraudService

	// Completion events fire only for scores at or above this threshold.
	rewardScoreThreshold int
}

// NewResultService creates the result service.
func NewResultService(
	resultRepo repository.TestResultRepository,
	cacheRepo repository.CacheRepository,
	publisher events.Publisher,
	fraud *FraudService,
	rewardScoreThreshold int,
) *ResultService {
	return &ResultService{
		resultRepo:           resultRepo,
		cacheRepo:            cacheRepo,
		publisher:            publisher,
		fraud:                fraud,
		rewardScoreThreshold: rewardScoreThreshold,
	}
}

// RecordResult persists the outcome of a finished session. The session must
// already be completed; recording the same session twice fails with
// ErrConflict from the unique (user, session) index. Cache and event
// side effects are best-effort and never roll back the saved row.
func (s *ResultService) RecordResult(session *quizengine.Session, ipAddress, userAgent string) (*entity.TestResult, error) {
	report := session.Report()
	if report == nil {
		return nil, fmt.Errorf("session %s has no score report: %w", session.ID, apperrors.ErrConflict)
	}

	result := &entity.TestResult{
		UserID:           session.UserID,
		SessionID:        session.ID,
		Score:            report.Score,
		CorrectCount:     report.CorrectCount,
		TotalQuestions:   report.TotalQuestions,
		IQEstimate:       report.IQEstimate,
		Percentile:       report.Percentile,
		TimeSpentSeconds: session.TimeSpentSeconds(),
		DifficultyLevel:  session.Level.ID,
		IPAddress:        ipAddress,
		UserAgent:        userAgent,
		CompletedAt:      time.Now().UTC(),
	}

	if err := s.resultRepo.Save(result); err != nil {
		return nil, fmt.Errorf("saving result for session %s: %w", session.ID, err)
	}

	if s.cacheRepo != nil {
		key := fmt.Sprintf("result:last:user:%d", result.UserID)
		if err := s.cacheRepo.SetJSON(key, result, lastResultCacheTTL); err != nil {
			log.Printf("[ResultService] Failed to cache last result for user %d: %v", result.UserID, err)
		}
	}

	if s.publisher != nil && result.Score >= s.rewardScoreThreshold {
		event := events.TestCompletedEvent{
			UserID:      result.UserID,
			SessionID:   result.SessionID,
			Score:       result.Score,
			IQEstimate:  result.IQEstimate,
			Level:       result.DifficultyLevel,
			CompletedAt: result.CompletedAt,
		}
		if err := s.publisher.PublishTestCompleted(event); err != nil {
			log.Printf("[ResultService] Failed to publish completion event for session %s: %v", result.SessionID, err)
		}
	}

	return result, nil
}

// GetUserResults returns one page of the user's results, newest first.
func (s *ResultService) GetUserResults(userID uint, page, pageSize int) ([]entity.TestResult, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	results, total, err := s.resultRepo.GetByUser(userID, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("loading results for user %d: %w", userID, err)
	}
	return results, total, nil
}

// AnalyzeUserFraud loads the user's recent window plus the prior window of
// equal size and runs the anomaly checks over them. Always succeeds for
// data-quality reasons; an empty history simply yields a low-risk analysis.
func (s *ResultService) AnalyzeUserFraud(userID uint) (*entity.FraudAnalysis, error) {
	now := time.Now().UTC()
	cutoff := now.AddDate(0, 0, -fraudAnalysisWindowDays)
	priorCutoff := cutoff.AddDate(0, 0, -fraudAnalysisWindowDays)

	results, err := s.resultRepo.GetByUserSince(userID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("loading results for user %d: %w", userID, err)
	}
	prior, err := s.resultRepo.GetByUserBetween(userID, priorCutoff, cutoff)
	if err != nil {
		return nil, fmt.Errorf("loading prior results for user %d: %w", userID, err)
	}

	return s.fraud.Analyze(userID, results, prior), nil
}
