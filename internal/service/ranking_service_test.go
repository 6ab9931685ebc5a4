package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/iqtest-api/internal/domain/entity"
	"github.com/yourusername/iqtest-api/internal/domain/repository"
	apperrors "github.com/yourusername/iqtest-api/internal/pkg/errors"
)

func newRankingService(resultRepo *MockTestResultRepo, profileRepo *MockProfileRepo, cacheRepo *MockCacheRepo) *RankingService {
	var cache repository.CacheRepository
	if cacheRepo != nil {
		cache = cacheRepo
	}
	return NewRankingService(resultRepo, profileRepo, cache, NewFraudService(nil))
}

func rankedResult(score int, level string, timeSpent, questions int) entity.TestResult {
	return entity.TestResult{
		Score:            score,
		CorrectCount:     score * questions / 100,
		TotalQuestions:   questions,
		IQEstimate:       100,
		TimeSpentSeconds: timeSpent,
		DifficultyLevel:  level,
		IPAddress:        "203.0.113.7",
		UserAgent:        humanUserAgent,
	}
}

// The six coefficients must sum to exactly 1.0.
func TestRankingWeights_SumToOne(t *testing.T) {
	assert.InDelta(t, 1.0, DefaultRankingWeights().Sum(), 1e-9)
}

// Fewer than five results in the window is "not yet eligible", not a crash.
func TestCalculate_InsufficientHistory(t *testing.T) {
	resultRepo := new(MockTestResultRepo)
	profileRepo := new(MockProfileRepo)
	svc := newRankingService(resultRepo, profileRepo, nil)

	four := []entity.TestResult{
		rankedResult(60, "basic", 900, 15),
		rankedResult(62, "basic", 900, 15),
		rankedResult(65, "basic", 900, 15),
		rankedResult(61, "basic", 900, 15),
	}
	resultRepo.On("GetByUserSince", uint(7), mock.AnythingOfType("time.Time")).Return(four, nil)

	_, err := svc.Calculate(7, entity.TimeframeMonthly)

	assert.ErrorIs(t, err, apperrors.ErrInsufficientHistory)
	profileRepo.AssertNotCalled(t, "GetByUserID", mock.Anything)
}

func TestCalculate_InvalidTimeframe(t *testing.T) {
	svc := newRankingService(new(MockTestResultRepo), new(MockProfileRepo), nil)

	_, err := svc.Calculate(7, entity.Timeframe("weekly"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

// Document-level verification adds exactly 40 before weighting.
func TestCalculate_DocumentVerificationBonus(t *testing.T) {
	resultRepo := new(MockTestResultRepo)
	profileRepo := new(MockProfileRepo)
	cacheRepo := new(MockCacheRepo)
	svc := newRankingService(resultRepo, profileRepo, cacheRepo)

	results := []entity.TestResult{
		rankedResult(60, "basic", 900, 15),
		rankedResult(62, "basic", 900, 15),
		rankedResult(65, "basic", 900, 15),
		rankedResult(61, "basic", 900, 15),
		rankedResult(59, "basic", 900, 15),
	}
	profile := &entity.UserProfile{
		UserID:            7,
		BirthDate:         time.Date(1990, 5, 10, 0, 0, 0, 0, time.UTC),
		VerificationLevel: entity.VerificationDocument,
	}
	resultRepo.On("GetByUserSince", uint(7), mock.AnythingOfType("time.Time")).Return(results, nil)
	profileRepo.On("GetByUserID", uint(7)).Return(profile, nil)
	cacheRepo.On("SetJSON", "ranking:monthly:user:7", mock.Anything, rankingCacheTTL).Return(nil)

	score, err := svc.Calculate(7, entity.TimeframeMonthly)
	require.NoError(t, err)

	assert.Equal(t, 40.0, score.VerificationBonus)
	assert.Equal(t, 5, score.ResultCount)
	cacheRepo.AssertExpectations(t)
}

// A missing profile contributes neutrally instead of failing the ranking.
func TestCalculate_MissingProfile(t *testing.T) {
	resultRepo := new(MockTestResultRepo)
	profileRepo := new(MockProfileRepo)
	svc := newRankingService(resultRepo, profileRepo, nil)

	results := []entity.TestResult{
		rankedResult(60, "basic", 900, 15),
		rankedResult(62, "basic", 900, 15),
		rankedResult(65, "basic", 900, 15),
		rankedResult(61, "basic", 900, 15),
		rankedResult(59, "basic", 900, 15),
	}
	resultRepo.On("GetByUserSince", uint(7), mock.AnythingOfType("time.Time")).Return(results, nil)
	profileRepo.On("GetByUserID", uint(7)).Return(nil, apperrors.ErrNotFound)

	score, err := svc.Calculate(7, entity.TimeframeMonthly)
	require.NoError(t, err)

	assert.Equal(t, 0.0, score.VerificationBonus)
	assert.Equal(t, "Adulto", score.Category)
}

func TestComputeScore_BaseScoreUsesDifficultyMultiplier(t *testing.T) {
	svc := newRankingService(new(MockTestResultRepo), new(MockProfileRepo), nil)
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	expert := make([]entity.TestResult, 5)
	for i := range expert {
		expert[i] = rankedResult(80, "expert", 900, 15)
	}
	score := svc.computeScore(1, entity.TimeframeMonthly, nil, expert, 0, now)
	assert.InDelta(t, 160.0, score.BaseScore, 1e-9) // 80 x 2.0

	basic := make([]entity.TestResult, 5)
	for i := range basic {
		basic[i] = rankedResult(80, "basic", 900, 15)
	}
	score = svc.computeScore(1, entity.TimeframeMonthly, nil, basic, 0, now)
	assert.InDelta(t, 80.0, score.BaseScore, 1e-9) // 80 x 1.0
}

func TestComputeScore_TimeBonusNeverNegative(t *testing.T) {
	svc := newRankingService(new(MockTestResultRepo), new(MockProfileRepo), nil)
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	// 120 seconds per question is far over the 60s baseline.
	slow := make([]entity.TestResult, 5)
	for i := range slow {
		slow[i] = rankedResult(60, "basic", 1800, 15)
	}
	score := svc.computeScore(1, entity.TimeframeMonthly, nil, slow, 0, now)
	assert.Equal(t, 0.0, score.TimeBonus)

	// 30 seconds per question earns half the bonus.
	fast := make([]entity.TestResult, 5)
	for i := range fast {
		fast[i] = rankedResult(60, "basic", 450, 15)
	}
	score = svc.computeScore(1, entity.TimeframeMonthly, nil, fast, 0, now)
	assert.InDelta(t, 50.0, score.TimeBonus, 1e-9)
}

func TestComputeScore_ConsistencyRequiresThreeResults(t *testing.T) {
	svc := newRankingService(new(MockTestResultRepo), new(MockProfileRepo), nil)
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	two := []entity.TestResult{
		rankedResult(60, "basic", 900, 15),
		rankedResult(60, "basic", 900, 15),
	}
	score := svc.computeScore(1, entity.TimeframeMonthly, nil, two, 0, now)
	assert.Equal(t, 0.0, score.ConsistencyBonus)

	identical := make([]entity.TestResult, 5)
	for i := range identical {
		identical[i] = rankedResult(60, "basic", 900, 15)
	}
	score = svc.computeScore(1, entity.TimeframeMonthly, nil, identical, 0, now)
	assert.InDelta(t, 100.0, score.ConsistencyBonus, 1e-9)
}

func TestComputeScore_ParticipationCapped(t *testing.T) {
	svc := newRankingService(new(MockTestResultRepo), new(MockProfileRepo), nil)
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	// Monthly expects floor(30/7) = 4 tests; 8 results saturate the bonus.
	many := make([]entity.TestResult, 8)
	for i := range many {
		many[i] = rankedResult(60, "basic", 900, 15)
	}
	score := svc.computeScore(1, entity.TimeframeMonthly, nil, many, 0, now)
	assert.InDelta(t, 100.0, score.ParticipationBonus, 1e-9)

	two := []entity.TestResult{
		rankedResult(60, "basic", 900, 15),
		rankedResult(60, "basic", 900, 15),
	}
	score = svc.computeScore(1, entity.TimeframeMonthly, nil, two, 0, now)
	assert.InDelta(t, 50.0, score.ParticipationBonus, 1e-9)
}

func TestComputeScore_FraudPenaltySubtracted(t *testing.T) {
	svc := newRankingService(new(MockTestResultRepo), new(MockProfileRepo), nil)
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	results := make([]entity.TestResult, 5)
	for i := range results {
		results[i] = rankedResult(60, "basic", 900, 15)
	}

	clean := svc.computeScore(1, entity.TimeframeMonthly, nil, results, 0, now)
	penalized := svc.computeScore(1, entity.TimeframeMonthly, nil, results, 100, now)

	assert.InDelta(t, clean.FinalScore-5.0, penalized.FinalScore, 1e-9) // 100 x 0.05
	assert.GreaterOrEqual(t, penalized.FinalScore, 0.0)
}

func TestComputeScore_FinalScoreNeverNegative(t *testing.T) {
	svc := newRankingService(new(MockTestResultRepo), new(MockProfileRepo), nil)
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	results := make([]entity.TestResult, 5)
	for i := range results {
		results[i] = rankedResult(0, "basic", 3600, 15)
	}
	score := svc.computeScore(1, entity.TimeframeMonthly, nil, results, 200, now)
	assert.GreaterOrEqual(t, score.FinalScore, 0.0)
}

func TestComputeScore_Idempotent(t *testing.T) {
	svc := newRankingService(new(MockTestResultRepo), new(MockProfileRepo), nil)
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	profile := &entity.UserProfile{
		UserID:            1,
		BirthDate:         time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		VerificationLevel: entity.VerificationPhone,
	}

	results := []entity.TestResult{
		rankedResult(60, "basic", 900, 15),
		rankedResult(72, "intermediate", 800, 15),
		rankedResult(65, "advanced", 1000, 15),
		rankedResult(80, "expert", 1200, 20),
		rankedResult(59, "basic", 850, 15),
	}

	first := svc.computeScore(1, entity.TimeframeQuarterly, profile, results, 10, now)
	second := svc.computeScore(1, entity.TimeframeQuarterly, profile, results, 10, now)

	assert.Equal(t, first, second)
}

func TestCategoryForProfile_AgeBrackets(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		birthYear int
		category  string
		ageGroup  string
	}{
		{2012, "Jovem", "menos de 18"},
		{2000, "Adulto Jovem", "18-29"},
		{1990, "Adulto", "30-49"},
		{1960, "Sênior", "50+"},
	}
	for _, tc := range cases {
		profile := &entity.UserProfile{BirthDate: time.Date(tc.birthYear, 1, 1, 0, 0, 0, 0, time.UTC)}
		category, ageGroup := categoryForProfile(profile, now)
		assert.Equal(t, tc.category, category, "birth year %d", tc.birthYear)
		assert.Equal(t, tc.ageGroup, ageGroup, "birth year %d", tc.birthYear)
	}
}

func TestLeaderboard_OrdersAndRanks(t *testing.T) {
	resultRepo := new(MockTestResultRepo)
	profileRepo := new(MockProfileRepo)
	svc := newRankingService(resultRepo, profileRepo, nil)

	strong := make([]entity.TestResult, 5)
	weak := make([]entity.TestResult, 5)
	for i := range strong {
		strong[i] = rankedResult(90, "expert", 450, 15)
		weak[i] = rankedResult(40, "basic", 1500, 15)
	}

	resultRepo.On("ListUserIDsSince", mock.AnythingOfType("time.Time"), MinResultsForRanking).Return([]uint{1, 2}, nil)
	resultRepo.On("GetByUserSince", uint(1), mock.AnythingOfType("time.Time")).Return(weak, nil)
	resultRepo.On("GetByUserSince", uint(2), mock.AnythingOfType("time.Time")).Return(strong, nil)
	profileRepo.On("GetByUserID", mock.AnythingOfType("uint")).Return(nil, apperrors.ErrNotFound)

	entries, err := svc.Leaderboard(entity.TimeframeMonthly, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, uint(2), entries[0].UserID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, uint(1), entries[1].UserID)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Greater(t, entries[0].FinalScore, entries[1].FinalScore)
}

func TestLeaderboard_SkipsUsersWhoFellBelowMinimum(t *testing.T) {
	resultRepo := new(MockTestResultRepo)
	profileRepo := new(MockProfileRepo)
	svc := newRankingService(resultRepo, profileRepo, nil)

	eligible := make([]entity.TestResult, 5)
	for i := range eligible {
		eligible[i] = rankedResult(60, "basic", 900, 15)
	}

	resultRepo.On("ListUserIDsSince", mock.AnythingOfType("time.Time"), MinResultsForRanking).Return([]uint{1, 2}, nil)
	resultRepo.On("GetByUserSince", uint(1), mock.AnythingOfType("time.Time")).Return(eligible, nil)
	resultRepo.On("GetByUserSince", uint(2), mock.AnythingOfType("time.Time")).Return([]entity.TestResult{}, nil)
	profileRepo.On("GetByUserID", uint(1)).Return(nil, apperrors.ErrNotFound)

	entries, err := svc.Leaderboard(entity.TimeframeMonthly, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, uint(1), entries[0].UserID)
}
