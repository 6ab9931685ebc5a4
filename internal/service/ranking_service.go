package service

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/yourusername/iqtest-api/internal/domain/entity"
	"github.com/yourusername/iqtest-api/internal/domain/repository"
	apperrors "github.com/yourusername/iqtest-api/internal/pkg/errors"
)

// MinResultsForRanking is the structural precondition: fewer results in the
// window means the user is not yet eligible, not an error to crash on.
const MinResultsForRanking = 5

// Baseline seconds per question above which no time bonus is earned.
const timeBonusBaselineSeconds = 60.0

// How long computed leaderboards and per-user scores stay cached.
const rankingCacheTTL = 5 * time.Minute

// RankingWeights are the six coefficients applied to the raw terms. They must
// sum to 1.0; FraudPenalty is applied with a negative sign.
type RankingWeights struct {
	Base          float64
	Time          float64
	Consistency   float64
	Participation float64
	Verification  float64
	FraudPenalty  float64
}

// DefaultRankingWeights returns the production weighting.
func DefaultRankingWeights() RankingWeights {
	return RankingWeights{
		Base:          0.40,
		Time:          0.20,
		Consistency:   0.15,
		Participation: 0.10,
		Verification:  0.10,
		FraudPenalty:  0.05,
	}
}

// Sum returns the total of all six coefficients.
func (w RankingWeights) Sum() float64 {
	return w.Base + w.Time + w.Consistency + w.Participation + w.Verification + w.FraudPenalty
}

// difficultyMultipliers weight raw scores by the level they were earned on,
// keyed by the level id recorded in TestResult.DifficultyLevel.
var difficultyMultipliers = map[string]float64{
	"basic":        1.0,
	"intermediate": 1.2,
	"advanced":     1.5,
	"expert":       2.0,
}

// verificationBonuses is the fixed trust bonus per verification tier.
var verificationBonuses = map[entity.VerificationLevel]float64{
	entity.VerificationBasic:    0,
	entity.VerificationEmail:    10,
	entity.VerificationPhone:    20,
	entity.VerificationDocument: 40,
	entity.VerificationPremium:  60,
}

// LeaderboardEntry is one row of a computed leaderboard.
type LeaderboardEntry struct {
	Rank        int      `json:"rank"`
	UserID      uint     `json:"user_id"`
	FinalScore  float64  `json:"final_score"`
	Category    string   `json:"category"`
	Badges      []string `json:"badges"`
	ResultCount int      `json:"result_count"`
}

// RankingService combines per-user history into composite ranking scores and
// leaderboards. The computation itself is pure; the service only adds
// repository access and caching around it.
type RankingService struct {
	resultRepo  repository.TestResultRepository
	profileRepo repository.ProfileRepository
	cacheRepo   repository.CacheRepository
	fraud       *FraudService
	weights     RankingWeights
}

// NewRankingService creates a ranking service with the default weights.
func NewRankingService(
	resultRepo repository.TestResultRepository,
	profileRepo repository.ProfileRepository,
	cacheRepo repository.CacheRepository,
	fraud *FraudService,
) *RankingService {
	return &RankingService{
		resultRepo:  resultRepo,
		profileRepo: profileRepo,
		cacheRepo:   cacheRepo,
		fraud:       fraud,
		weights:     DefaultRankingWeights(),
	}
}

// Calculate recomputes the user's ranking for the timeframe from scratch.
// Fails with ErrInsufficientHistory when fewer than MinResultsForRanking
// results fall inside the window.
func (s *RankingService) Calculate(userID uint, timeframe entity.Timeframe) (*entity.RankingScore, error) {
	if !timeframe.Valid() {
		return nil, fmt.Errorf("timeframe %q: %w", timeframe, apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	cutoff := now.AddDate(0, 0, -timeframe.Days())

	results, err := s.resultRepo.GetByUserSince(userID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("loading results for user %d: %w", userID, err)
	}
	if len(results) < MinResultsForRanking {
		return nil, fmt.Errorf("user %d has %d results in %s window, need %d: %w",
			userID, len(results), timeframe, MinResultsForRanking, apperrors.ErrInsufficientHistory)
	}

	profile, err := s.profileRepo.GetByUserID(userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("loading profile for user %d: %w", userID, err)
		}
		// Missing profile contributes neutrally, it never fails the ranking.
		profile = nil
	}

	penalty := s.fraud.PenaltyScore(results)
	score := s.computeScore(userID, timeframe, profile, results, penalty, now)

	if s.cacheRepo != nil {
		key := fmt.Sprintf("ranking:%s:user:%d", timeframe, userID)
		if err := s.cacheRepo.SetJSON(key, score, rankingCacheTTL); err != nil {
			log.Printf("[RankingService] Failed to cache ranking for user %d: %v", userID, err)
		}
	}

	return score, nil
}

// computeScore is the pure core: identical inputs give identical scores apart
// from the CalculatedAt stamp, which is fixed by the now argument.
func (s *RankingService) computeScore(
	userID uint,
	timeframe entity.Timeframe,
	profile *entity.UserProfile,
	results []entity.TestResult,
	fraudPenalty float64,
	now time.Time,
) *entity.RankingScore {
	base := s.baseScore(results)
	timeBonus := s.timeBonus(results)
	consistency := s.consistencyBonus(results)
	participation := s.participationBonus(len(results), timeframe)
	verification := s.verificationBonus(profile)

	final := s.weights.Base*base +
		s.weights.Time*timeBonus +
		s.weights.Consistency*consistency +
		s.weights.Participation*participation +
		s.weights.Verification*verification -
		s.weights.FraudPenalty*fraudPenalty
	if final < 0 {
		final = 0
	}

	category, ageGroup := categoryForProfile(profile, now)

	return &entity.RankingScore{
		UserID:             userID,
		Timeframe:          timeframe,
		BaseScore:          base,
		TimeBonus:          timeBonus,
		ConsistencyBonus:   consistency,
		ParticipationBonus: participation,
		VerificationBonus:  verification,
		FraudPenalty:       fraudPenalty,
		FinalScore:         final,
		Category:           category,
		AgeGroup:           ageGroup,
		Badges:             badgesFor(results, consistency),
		Achievements:       achievementsFor(results),
		ResultCount:        len(results),
		CalculatedAt:       now,
	}
}

// baseScore is the mean of each score weighted by its level's difficulty
// multiplier. Unknown levels weight 1.0 rather than failing.
func (s *RankingService) baseScore(results []entity.TestResult) float64 {
	if len(results) == 0 {
		return 0
	}
	sum := 0.0
	for i := range results {
		mult, ok := difficultyMultipliers[results[i].DifficultyLevel]
		if !ok {
			mult = 1.0
		}
		sum += float64(results[i].Score) * mult
	}
	return sum / float64(len(results))
}

// timeBonus rewards answering faster than the per-question baseline and never
// penalizes going over it.
func (s *RankingService) timeBonus(results []entity.TestResult) float64 {
	if len(results) == 0 {
		return 0
	}
	sum := 0.0
	for i := range results {
		spq := results[i].SecondsPerQuestion()
		bonus := (timeBonusBaselineSeconds - spq) / timeBonusBaselineSeconds * 100
		if bonus < 0 {
			bonus = 0
		}
		sum += bonus
	}
	return sum / float64(len(results))
}

// consistencyBonus rewards a low score spread relative to the mean. Needs at
// least 3 results to be meaningful.
func (s *RankingService) consistencyBonus(results []entity.TestResult) float64 {
	if len(results) < 3 {
		return 0
	}
	scores := make([]float64, 0, len(results))
	for i := range results {
		scores = append(scores, float64(results[i].Score))
	}
	mean := meanOf(scores)
	if mean == 0 {
		return 0
	}
	bonus := 100 - (stdDevOf(scores)/mean)*100
	if bonus < 0 {
		bonus = 0
	}
	return bonus
}

// participationBonus expects one test per week over the window.
func (s *RankingService) participationBonus(resultCount int, timeframe entity.Timeframe) float64 {
	expected := timeframe.Days() / 7
	if expected == 0 {
		return 0
	}
	ratio := float64(resultCount) / float64(expected)
	if ratio > 1 {
		ratio = 1
	}
	return ratio * 100
}

func (s *RankingService) verificationBonus(profile *entity.UserProfile) float64 {
	if profile == nil {
		return 0
	}
	return verificationBonuses[profile.VerificationLevel]
}

// categoryForProfile derives the age bracket the user competes in and the
// display age range. A missing profile falls into the adult bracket.
func categoryForProfile(profile *entity.UserProfile, now time.Time) (category, ageGroup string) {
	if profile == nil {
		return "Adulto", "30-49"
	}
	age := profile.AgeAt(now)
	switch {
	case age < 18:
		return "Jovem", "menos de 18"
	case age < 30:
		return "Adulto Jovem", "18-29"
	case age < 50:
		return "Adulto", "30-49"
	default:
		return "Sênior", "50+"
	}
}

// badgesFor evaluates the fixed badge rule table over the result window.
func badgesFor(results []entity.TestResult, consistencyBonus float64) []string {
	badges := []string{}
	if consistencyBonus > 80 {
		badges = append(badges, "Consistente")
	}

	iqs := make([]float64, 0, len(results))
	perfect := 0
	for i := range results {
		iqs = append(iqs, float64(results[i].IQEstimate))
		if results[i].Score == 100 {
			perfect++
		}
	}
	if meanOf(iqs) > 140 {
		badges = append(badges, "Gênio")
	}
	if perfect > 0 {
		badges = append(badges, "Pontuação Perfeita")
	}
	if len(results) >= 10 {
		badges = append(badges, "Dedicado")
	}
	return badges
}

// achievementsFor evaluates the fixed achievement rule table.
func achievementsFor(results []entity.TestResult) []string {
	achievements := []string{}
	expertCount := 0
	best := 0
	for i := range results {
		if results[i].DifficultyLevel == "expert" {
			expertCount++
		}
		if results[i].IQEstimate > best {
			best = results[i].IQEstimate
		}
	}
	if expertCount >= 3 {
		achievements = append(achievements, "Mestre Expert")
	}
	if best >= 160 {
		achievements = append(achievements, "Elite Intelectual")
	}
	if len(results) >= 20 {
		achievements = append(achievements, "Maratonista")
	}
	return achievements
}

// Leaderboard ranks every eligible user in the timeframe by final score,
// highest first. Results are cached briefly; the cache is never the source of
// truth.
func (s *RankingService) Leaderboard(timeframe entity.Timeframe, limit int) ([]LeaderboardEntry, error) {
	if !timeframe.Valid() {
		return nil, fmt.Errorf("timeframe %q: %w", timeframe, apperrors.ErrValidation)
	}
	if limit <= 0 {
		limit = 100
	}

	cacheKey := fmt.Sprintf("ranking:leaderboard:%s:%d", timeframe, limit)
	if s.cacheRepo != nil {
		var cached []LeaderboardEntry
		if err := s.cacheRepo.GetJSON(cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -timeframe.Days())
	userIDs, err := s.resultRepo.ListUserIDsSince(cutoff, MinResultsForRanking)
	if err != nil {
		return nil, fmt.Errorf("listing eligible users: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(userIDs))
	for _, userID := range userIDs {
		score, err := s.Calculate(userID, timeframe)
		if err != nil {
			if errors.Is(err, apperrors.ErrInsufficientHistory) {
				continue
			}
			log.Printf("[RankingService] Failed to rank user %d: %v", userID, err)
			continue
		}
		entries = append(entries, LeaderboardEntry{
			UserID:      score.UserID,
			FinalScore:  score.FinalScore,
			Category:    score.Category,
			Badges:      score.Badges,
			ResultCount: score.ResultCount,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].FinalScore != entries[j].FinalScore {
			return entries[i].FinalScore > entries[j].FinalScore
		}
		return entries[i].UserID < entries[j].UserID
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(cacheKey, entries, rankingCacheTTL); err != nil {
			log.Printf("[RankingService] Failed to cache leaderboard: %v", err)
		}
	}

	return entries, nil
}
