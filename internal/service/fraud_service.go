package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/yourusername/iqtest-api/internal/domain/entity"
)

// DetectorConfig holds the fraud detection policy: every threshold is a
// named, overridable value so the policy can be tuned and tested apart from
// the aggregation math.
type DetectorConfig struct {
	// Time anomaly
	FastSecondsPerQuestion float64 // answers faster than this are "fast"
	FastShareMedium        float64
	FastShareHigh          float64
	FastShareCritical      float64 // pervasive
	MinSamplesForTimingCV  int
	BotTimingCVThreshold   float64 // coefficient of variation below this looks scripted

	// IP anomaly
	IPRatioHigh     float64
	IPRatioCritical float64

	// Score anomaly
	NearMaxScore         int // on the 0..100 scale (180 of 200 internally)
	NearMaxShareHigh     float64
	NearMaxShareCritical float64
	ScoreJumpHigh        float64
	ScoreJumpCritical    float64

	// Pattern anomaly
	AccuracyVarianceMax float64
	AccuracyMeanMin     float64
	MinSamplesForPattern int

	// Session anomaly
	MinSecondsPerQuestion float64
	MinUserAgentLength    int

	// Aggregation
	SeverityWeights map[entity.Severity]float64
	IndicatorScale  float64
	RiskCritical    int
	RiskHigh        int
	RiskMedium      int
}

// DefaultDetectorConfig returns the production detection policy.
func DefaultDetectorConfig() *DetectorConfig {
	return &DetectorConfig{
		FastSecondsPerQuestion: 10,
		FastShareMedium:        0.30,
		FastShareHigh:          0.50,
		FastShareCritical:      0.70,
		MinSamplesForTimingCV:  5,
		BotTimingCVThreshold:   0.10,

		IPRatioHigh:     0.50,
		IPRatioCritical: 0.80,

		NearMaxScore:         90,
		NearMaxShareHigh:     0.70,
		NearMaxShareCritical: 0.90,
		ScoreJumpHigh:        50,
		ScoreJumpCritical:    80,

		AccuracyVarianceMax:  0.01,
		AccuracyMeanMin:      0.80,
		MinSamplesForPattern: 3,

		MinSecondsPerQuestion: 5,
		MinUserAgentLength:    20,

		SeverityWeights: map[entity.Severity]float64{
			entity.SeverityLow:      1,
			entity.SeverityMedium:   2,
			entity.SeverityHigh:     4,
			entity.SeverityCritical: 8,
		},
		IndicatorScale: 5,
		RiskCritical:   80,
		RiskHigh:       60,
		RiskMedium:     30,
	}
}

// FraudService runs the anomaly checks over a user's result history and
// aggregates them into a risk assessment. Pure over its inputs: identical
// immutable histories produce identical analyses, and nothing is persisted.
type FraudService struct {
	config *DetectorConfig
}

// NewFraudService creates a detector with the given policy (nil = default).
func NewFraudService(config *DetectorConfig) *FraudService {
	if config == nil {
		config = DefaultDetectorConfig()
	}
	return &FraudService{config: config}
}

// Analyze runs the five checks over the user's results. prior is the
// previous-period history used for trend comparison and may be empty.
// Data-quality problems never fail the analysis; missing fields contribute
// neutrally.
func (s *FraudService) Analyze(userID uint, results []entity.TestResult, prior []entity.TestResult) *entity.FraudAnalysis {
	indicators := make([]entity.FraudIndicator, 0, 8)

	// The five checks are independent and order-independent; the order here
	// only fixes the presentation order of the indicator list.
	indicators = append(indicators, s.checkTimeAnomalies(results)...)
	indicators = append(indicators, s.checkIPAnomalies(results)...)
	indicators = append(indicators, s.checkScoreAnomalies(results, prior)...)
	indicators = append(indicators, s.checkPatternAnomalies(results)...)
	indicators = append(indicators, s.checkSessionAnomalies(results)...)

	riskScore := s.AggregateRiskScore(indicators)
	riskLevel := s.riskLevelFor(riskScore)

	return &entity.FraudAnalysis{
		UserID:               userID,
		RiskScore:            riskScore,
		RiskLevel:            riskLevel,
		Indicators:           indicators,
		Recommendations:      recommendationsFor(riskLevel),
		AutoActions:          autoActionsFor(riskLevel),
		RequiresManualReview: riskLevel == entity.RiskHigh || riskLevel == entity.RiskCritical,
		AnalyzedAt:           time.Now().UTC(),
	}
}

// PenaltyScore re-expresses the same heuristics as a 0..200 penalty consumed
// by the ranking aggregator (subtracted there, never added).
func (s *FraudService) PenaltyScore(results []entity.TestResult) float64 {
	indicators := make([]entity.FraudIndicator, 0, 8)
	indicators = append(indicators, s.checkTimeAnomalies(results)...)
	indicators = append(indicators, s.checkIPAnomalies(results)...)
	indicators = append(indicators, s.checkScoreAnomalies(results, nil)...)
	indicators = append(indicators, s.checkPatternAnomalies(results)...)
	indicators = append(indicators, s.checkSessionAnomalies(results)...)
	return float64(s.AggregateRiskScore(indicators)) * 2
}

// AggregateRiskScore folds indicators into the 0..100 risk score:
// min(100, sum of weight[severity] x (confidence/100) x scale).
func (s *FraudService) AggregateRiskScore(indicators []entity.FraudIndicator) int {
	raw := 0.0
	for _, ind := range indicators {
		weight := s.config.SeverityWeights[ind.Severity]
		raw += weight * (float64(ind.Confidence) / 100) * s.config.IndicatorScale
	}
	score := int(math.Round(raw))
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

func (s *FraudService) riskLevelFor(riskScore int) entity.RiskLevel {
	switch {
	case riskScore >= s.config.RiskCritical:
		return entity.RiskCritical
	case riskScore >= s.config.RiskHigh:
		return entity.RiskHigh
	case riskScore >= s.config.RiskMedium:
		return entity.RiskMedium
	default:
		return entity.RiskLow
	}
}

// checkTimeAnomalies flags users who answer implausibly fast, and timing
// that is too uniform to be human.
func (s *FraudService) checkTimeAnomalies(results []entity.TestResult) []entity.FraudIndicator {
	if len(results) == 0 {
		return nil
	}

	var indicators []entity.FraudIndicator

	fast := 0
	perQuestion := make([]float64, 0, len(results))
	for i := range results {
		spq := results[i].SecondsPerQuestion()
		if spq > 0 {
			perQuestion = append(perQuestion, spq)
		}
		if spq < s.config.FastSecondsPerQuestion {
			fast++
		}
	}

	share := float64(fast) / float64(len(results))
	confidence := confidenceFromShare(share)
	switch {
	case share >= s.config.FastShareCritical:
		indicators = append(indicators, entity.FraudIndicator{
			Type:       entity.IndicatorFastAnswers,
			Severity:   entity.SeverityCritical,
			Confidence: confidence,
			Evidence:   fmt.Sprintf("%d of %d results under %.0fs per question", fast, len(results), s.config.FastSecondsPerQuestion),
		})
	case share > s.config.FastShareHigh:
		indicators = append(indicators, entity.FraudIndicator{
			Type:       entity.IndicatorFastAnswers,
			Severity:   entity.SeverityHigh,
			Confidence: confidence,
			Evidence:   fmt.Sprintf("%d of %d results under %.0fs per question", fast, len(results), s.config.FastSecondsPerQuestion),
		})
	case share > s.config.FastShareMedium:
		indicators = append(indicators, entity.FraudIndicator{
			Type:       entity.IndicatorFastAnswers,
			Severity:   entity.SeverityMedium,
			Confidence: confidence,
			Evidence:   fmt.Sprintf("%d of %d results under %.0fs per question", fast, len(results), s.config.FastSecondsPerQuestion),
		})
	}

	if len(perQuestion) >= s.config.MinSamplesForTimingCV {
		mean := meanOf(perQuestion)
		if mean > 0 {
			cv := stdDevOf(perQuestion) / mean
			if cv < s.config.BotTimingCVThreshold {
				indicators = append(indicators, entity.FraudIndicator{
					Type:       entity.IndicatorUniformTiming,
					Severity:   entity.SeverityHigh,
					Confidence: confidenceFromDeficit(cv, s.config.BotTimingCVThreshold),
					Evidence:   fmt.Sprintf("per-question time CV %.3f over %d results", cv, len(perQuestion)),
				})
			}
		}
	}

	return indicators
}

// checkIPAnomalies flags histories spread over too many distinct addresses.
func (s *FraudService) checkIPAnomalies(results []entity.TestResult) []entity.FraudIndicator {
	if len(results) == 0 {
		return nil
	}

	distinct := make(map[string]struct{}, len(results))
	for i := range results {
		if results[i].IPAddress != "" {
			distinct[results[i].IPAddress] = struct{}{}
		}
	}
	if len(distinct) == 0 {
		return nil
	}

	ratio := float64(len(distinct)) / float64(len(results))
	evidence := fmt.Sprintf("%d distinct IPs across %d results", len(distinct), len(results))
	switch {
	case ratio > s.config.IPRatioCritical:
		return []entity.FraudIndicator{{
			Type:       entity.IndicatorIPRotation,
			Severity:   entity.SeverityCritical,
			Confidence: confidenceFromShare(ratio),
			Evidence:   evidence,
		}}
	case ratio > s.config.IPRatioHigh:
		return []entity.FraudIndicator{{
			Type:       entity.IndicatorIPRotation,
			Severity:   entity.SeverityHigh,
			Confidence: confidenceFromShare(ratio),
			Evidence:   evidence,
		}}
	}
	return nil
}

// checkScoreAnomalies flags near-maximum score concentration and sudden
// average jumps against the prior period.
func (s *FraudService) checkScoreAnomalies(results []entity.TestResult, prior []entity.TestResult) []entity.FraudIndicator {
	if len(results) == 0 {
		return nil
	}

	var indicators []entity.FraudIndicator

	nearMax := 0
	scores := make([]float64, 0, len(results))
	for i := range results {
		scores = append(scores, float64(results[i].Score))
		if results[i].Score >= s.config.NearMaxScore {
			nearMax++
		}
	}

	share := float64(nearMax) / float64(len(results))
	evidence := fmt.Sprintf("%d of %d results at or above %d", nearMax, len(results), s.config.NearMaxScore)
	switch {
	case share > s.config.NearMaxShareCritical:
		indicators = append(indicators, entity.FraudIndicator{
			Type:       entity.IndicatorNearMaxScores,
			Severity:   entity.SeverityCritical,
			Confidence: confidenceFromShare(share),
			Evidence:   evidence,
		})
	case share > s.config.NearMaxShareHigh:
		indicators = append(indicators, entity.FraudIndicator{
			Type:       entity.IndicatorNearMaxScores,
			Severity:   entity.SeverityHigh,
			Confidence: confidenceFromShare(share),
			Evidence:   evidence,
		})
	}

	if len(prior) > 0 {
		priorScores := make([]float64, 0, len(prior))
		for i := range prior {
			priorScores = append(priorScores, float64(prior[i].Score))
		}
		jump := meanOf(scores) - meanOf(priorScores)
		jumpEvidence := fmt.Sprintf("average score jumped %.1f points versus prior period", jump)
		switch {
		case jump > s.config.ScoreJumpCritical:
			indicators = append(indicators, entity.FraudIndicator{
				Type:       entity.IndicatorScoreJump,
				Severity:   entity.SeverityCritical,
				Confidence: confidenceFromJump(jump),
				Evidence:   jumpEvidence,
			})
		case jump > s.config.ScoreJumpHigh:
			indicators = append(indicators, entity.FraudIndicator{
				Type:       entity.IndicatorScoreJump,
				Severity:   entity.SeverityHigh,
				Confidence: confidenceFromJump(jump),
				Evidence:   jumpEvidence,
			})
		}
	}

	return indicators
}

// checkPatternAnomalies flags accuracy that is too consistently good.
func (s *FraudService) checkPatternAnomalies(results []entity.TestResult) []entity.FraudIndicator {
	if len(results) < s.config.MinSamplesForPattern {
		return nil
	}

	rates := make([]float64, 0, len(results))
	for i := range results {
		rates = append(rates, results[i].AccuracyRate())
	}

	mean := meanOf(rates)
	variance := varianceOf(rates)
	if variance < s.config.AccuracyVarianceMax && mean > s.config.AccuracyMeanMin {
		return []entity.FraudIndicator{{
			Type:       entity.IndicatorUniformAccuracy,
			Severity:   entity.SeverityMedium,
			Confidence: confidenceFromDeficit(variance, s.config.AccuracyVarianceMax),
			Evidence:   fmt.Sprintf("accuracy variance %.4f with mean %.2f over %d results", variance, mean, len(results)),
		}}
	}
	return nil
}

// checkSessionAnomalies flags physically implausible session durations and
// automated-looking user agents.
func (s *FraudService) checkSessionAnomalies(results []entity.TestResult) []entity.FraudIndicator {
	if len(results) == 0 {
		return nil
	}

	var indicators []entity.FraudIndicator

	tooFast := 0
	automated := 0
	for i := range results {
		r := &results[i]
		if float64(r.TimeSpentSeconds) < float64(r.TotalQuestions)*s.config.MinSecondsPerQuestion {
			tooFast++
		}
		if looksAutomated(r.UserAgent, s.config.MinUserAgentLength) {
			automated++
		}
	}

	if tooFast > 0 {
		share := float64(tooFast) / float64(len(results))
		severity := entity.SeverityMedium
		if share > 0.5 {
			severity = entity.SeverityHigh
		}
		indicators = append(indicators, entity.FraudIndicator{
			Type:       entity.IndicatorImplausibleSpeed,
			Severity:   severity,
			Confidence: confidenceFromShare(share),
			Evidence:   fmt.Sprintf("%d of %d sessions shorter than %.0fs per question", tooFast, len(results), s.config.MinSecondsPerQuestion),
		})
	}

	if automated > 0 {
		share := float64(automated) / float64(len(results))
		indicators = append(indicators, entity.FraudIndicator{
			Type:       entity.IndicatorAutomatedAgent,
			Severity:   entity.SeverityHigh,
			Confidence: confidenceFromShare(share),
			Evidence:   fmt.Sprintf("%d of %d results carry an automated-looking user agent", automated, len(results)),
		})
	}

	return indicators
}

func looksAutomated(userAgent string, minLength int) bool {
	if userAgent == "" {
		return false // missing optional field: neutral
	}
	ua := strings.ToLower(userAgent)
	if strings.Contains(ua, "bot") || strings.Contains(ua, "crawler") || strings.Contains(ua, "spider") {
		return true
	}
	return len(userAgent) < minLength
}

// autoActionsFor is the fixed action table keyed by risk level.
func autoActionsFor(level entity.RiskLevel) []string {
	switch level {
	case entity.RiskCritical:
		return []string{"suspend_account", "remove_from_ranking", "flag_for_review"}
	case entity.RiskHigh:
		return []string{"require_verification", "apply_ranking_penalty", "increase_monitoring"}
	case entity.RiskMedium:
		return []string{"request_verification", "set_monitoring_flag"}
	default:
		return []string{"log_only"}
	}
}

func recommendationsFor(level entity.RiskLevel) []string {
	switch level {
	case entity.RiskCritical:
		return []string{
			"Suspend the account pending manual investigation",
			"Exclude all results from leaderboards and rewards",
		}
	case entity.RiskHigh:
		return []string{
			"Require document verification before the next ranked test",
			"Review the flagged sessions manually",
		}
	case entity.RiskMedium:
		return []string{
			"Request additional verification from the user",
			"Keep the account under monitoring for the next period",
		}
	default:
		return []string{"No action required"}
	}
}

// Confidence helpers: deterministic maps from the measured quantity into the
// 0..100 confidence range, so repeated analyses are bit-identical.

func confidenceFromShare(share float64) int {
	c := int(math.Round(share * 100))
	if c > 100 {
		c = 100
	}
	if c < 0 {
		c = 0
	}
	return c
}

func confidenceFromDeficit(value, threshold float64) int {
	if threshold <= 0 {
		return 0
	}
	c := int(math.Round((1 - value/threshold) * 100))
	if c > 100 {
		c = 100
	}
	if c < 0 {
		c = 0
	}
	return c
}

func confidenceFromJump(jump float64) int {
	c := int(math.Round(jump))
	if c > 100 {
		c = 100
	}
	if c < 0 {
		c = 0
	}
	return c
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func varianceOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := meanOf(values)
	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(values))
}

func stdDevOf(values []float64) float64 {
	return math.Sqrt(varianceOf(values))
}
