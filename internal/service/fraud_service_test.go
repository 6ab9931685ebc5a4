package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/iqtest-api/internal/domain/entity"
)

const humanUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// plainResult is a result with nothing anomalous about it.
func plainResult(score, timeSpent, questions int) entity.TestResult {
	return entity.TestResult{
		Score:            score,
		CorrectCount:     score * questions / 100,
		TotalQuestions:   questions,
		TimeSpentSeconds: timeSpent,
		IPAddress:        "203.0.113.7",
		UserAgent:        humanUserAgent,
		CompletedAt:      time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestAnalyze_CleanHistoryIsLowRisk(t *testing.T) {
	svc := NewFraudService(nil)
	results := []entity.TestResult{
		plainResult(55, 900, 15),
		plainResult(62, 780, 15),
		plainResult(48, 1100, 15),
		plainResult(70, 840, 15),
		plainResult(58, 960, 15),
	}

	analysis := svc.Analyze(42, results, nil)

	assert.Equal(t, uint(42), analysis.UserID)
	assert.Equal(t, entity.RiskLow, analysis.RiskLevel)
	assert.False(t, analysis.RequiresManualReview)
	assert.Empty(t, analysis.Indicators)
	assert.Equal(t, 0, analysis.RiskScore)
	assert.Equal(t, []string{"log_only"}, analysis.AutoActions)
}

func TestAnalyze_EmptyHistory(t *testing.T) {
	svc := NewFraudService(nil)

	analysis := svc.Analyze(1, nil, nil)

	assert.Equal(t, 0, analysis.RiskScore)
	assert.Equal(t, entity.RiskLow, analysis.RiskLevel)
}

// 3 of 5 results under 10 seconds per question: share 0.6 crosses the 0.5
// band, so the fast-answer indicator comes out with severity high.
func TestAnalyze_FastAnswerShare(t *testing.T) {
	svc := NewFraudService(nil)
	results := []entity.TestResult{
		plainResult(60, 120, 15), // 8 s/q, fast
		plainResult(55, 105, 15), // 7 s/q, fast
		plainResult(65, 135, 15), // 9 s/q, fast
		plainResult(50, 450, 15),
		plainResult(58, 525, 15),
	}

	analysis := svc.Analyze(1, results, nil)

	var fast *entity.FraudIndicator
	for i := range analysis.Indicators {
		if analysis.Indicators[i].Type == entity.IndicatorFastAnswers {
			fast = &analysis.Indicators[i]
		}
	}
	require.NotNil(t, fast, "expected a fast-answer indicator")
	assert.Equal(t, entity.SeverityHigh, fast.Severity)
	assert.Equal(t, 60, fast.Confidence)
	assert.Greater(t, analysis.RiskScore, 0)
}

func TestAnalyze_PervasiveFastAnswersIsCritical(t *testing.T) {
	svc := NewFraudService(nil)
	results := []entity.TestResult{
		plainResult(60, 120, 15),
		plainResult(55, 105, 15),
		plainResult(65, 135, 15),
		plainResult(50, 120, 15),
		plainResult(58, 525, 15),
	}

	analysis := svc.Analyze(1, results, nil)

	var fast *entity.FraudIndicator
	for i := range analysis.Indicators {
		if analysis.Indicators[i].Type == entity.IndicatorFastAnswers {
			fast = &analysis.Indicators[i]
		}
	}
	require.NotNil(t, fast)
	assert.Equal(t, entity.SeverityCritical, fast.Severity)
}

func TestAnalyze_UniformTiming(t *testing.T) {
	svc := NewFraudService(nil)
	// Five results with identical per-question time: CV = 0.
	results := make([]entity.TestResult, 5)
	for i := range results {
		results[i] = plainResult(50+i, 300, 15) // 20 s/q each
	}

	analysis := svc.Analyze(1, results, nil)

	found := false
	for _, ind := range analysis.Indicators {
		if ind.Type == entity.IndicatorUniformTiming {
			found = true
			assert.Equal(t, entity.SeverityHigh, ind.Severity)
		}
	}
	assert.True(t, found, "expected a uniform-timing indicator")
}

func TestAnalyze_IPRotation(t *testing.T) {
	svc := NewFraudService(nil)
	results := make([]entity.TestResult, 5)
	for i := range results {
		r := plainResult(50, 900, 15)
		r.IPAddress = []string{"10.0.0.1", "10.0.0.2", "10.0.0.3", "10.0.0.4", "10.0.0.5"}[i]
		results[i] = r
	}

	analysis := svc.Analyze(1, results, nil)

	found := false
	for _, ind := range analysis.Indicators {
		if ind.Type == entity.IndicatorIPRotation {
			found = true
			assert.Equal(t, entity.SeverityCritical, ind.Severity, "5 distinct IPs over 5 results is full rotation")
		}
	}
	assert.True(t, found, "expected an IP rotation indicator")
}

func TestAnalyze_ScoreJumpAgainstPriorPeriod(t *testing.T) {
	svc := NewFraudService(nil)
	prior := []entity.TestResult{
		plainResult(20, 900, 15),
		plainResult(25, 900, 15),
	}
	current := []entity.TestResult{
		plainResult(80, 900, 15),
		plainResult(85, 900, 15),
	}

	analysis := svc.Analyze(1, current, prior)

	found := false
	for _, ind := range analysis.Indicators {
		if ind.Type == entity.IndicatorScoreJump {
			found = true
			// Jump of 60 points sits between the high (50) and critical (80) bands.
			assert.Equal(t, entity.SeverityHigh, ind.Severity)
		}
	}
	assert.True(t, found, "expected a score-jump indicator")
}

// Five results at identical above-bar accuracy: variance 0 sits under the
// 0.01 ceiling and the 0.87 mean crosses the 0.8 floor, so the
// uniform-accuracy indicator comes out at severity medium.
func TestAnalyze_UniformAccuracy(t *testing.T) {
	svc := NewFraudService(nil)
	// Varied durations keep the timing checks quiet; 87 stays under the
	// near-max band.
	results := []entity.TestResult{
		plainResult(87, 900, 15),
		plainResult(87, 780, 15),
		plainResult(87, 1100, 15),
		plainResult(87, 840, 15),
		plainResult(87, 660, 15),
	}

	analysis := svc.Analyze(1, results, nil)

	require.Len(t, analysis.Indicators, 1)
	uniform := analysis.Indicators[0]
	assert.Equal(t, entity.IndicatorUniformAccuracy, uniform.Type)
	assert.Equal(t, entity.SeverityMedium, uniform.Severity)
	assert.Greater(t, uniform.Confidence, 0)
}

// Sessions shorter than the physical floor of 5 seconds per question raise
// the implausible-speed indicator; 2 of 5 stays in the medium band.
func TestAnalyze_ImplausibleSessionSpeed(t *testing.T) {
	svc := NewFraudService(nil)
	results := []entity.TestResult{
		plainResult(50, 60, 15), // 4 s/q
		plainResult(55, 45, 15), // 3 s/q
		plainResult(48, 900, 15),
		plainResult(52, 780, 15),
		plainResult(58, 840, 15),
	}

	analysis := svc.Analyze(1, results, nil)

	var speed *entity.FraudIndicator
	for i := range analysis.Indicators {
		if analysis.Indicators[i].Type == entity.IndicatorImplausibleSpeed {
			speed = &analysis.Indicators[i]
		}
	}
	require.NotNil(t, speed, "expected an implausible-speed indicator")
	assert.Equal(t, entity.SeverityMedium, speed.Severity)
}

func TestAnalyze_AutomatedUserAgent(t *testing.T) {
	svc := NewFraudService(nil)
	results := []entity.TestResult{plainResult(50, 900, 15)}
	results[0].UserAgent = "python-requests-bot/2.0 extended client string"

	analysis := svc.Analyze(1, results, nil)

	found := false
	for _, ind := range analysis.Indicators {
		if ind.Type == entity.IndicatorAutomatedAgent {
			found = true
		}
	}
	assert.True(t, found, "expected an automated-agent indicator")
}

// Identical immutable inputs must yield identical analyses apart from the
// timestamp.
func TestAnalyze_Idempotent(t *testing.T) {
	svc := NewFraudService(nil)
	results := []entity.TestResult{
		plainResult(60, 120, 15),
		plainResult(55, 105, 15),
		plainResult(95, 135, 15),
		plainResult(92, 450, 15),
		plainResult(58, 525, 15),
	}

	first := svc.Analyze(1, results, nil)
	second := svc.Analyze(1, results, nil)

	assert.Equal(t, first.RiskScore, second.RiskScore)
	assert.Equal(t, first.RiskLevel, second.RiskLevel)
	assert.Equal(t, first.Indicators, second.Indicators)
	assert.Equal(t, first.AutoActions, second.AutoActions)
	assert.Equal(t, first.Recommendations, second.Recommendations)
}

func TestAggregateRiskScore_MonotoneInConfidence(t *testing.T) {
	svc := NewFraudService(nil)

	prev := -1
	for confidence := 0; confidence <= 100; confidence += 5 {
		score := svc.AggregateRiskScore([]entity.FraudIndicator{
			{Type: entity.IndicatorFastAnswers, Severity: entity.SeverityHigh, Confidence: confidence},
			{Type: entity.IndicatorIPRotation, Severity: entity.SeverityMedium, Confidence: 40},
		})
		assert.GreaterOrEqual(t, score, prev)
		prev = score
	}
}

func TestAggregateRiskScore_MonotoneInSeverity(t *testing.T) {
	svc := NewFraudService(nil)

	severities := []entity.Severity{
		entity.SeverityLow,
		entity.SeverityMedium,
		entity.SeverityHigh,
		entity.SeverityCritical,
	}
	prev := -1
	for _, severity := range severities {
		score := svc.AggregateRiskScore([]entity.FraudIndicator{
			{Type: entity.IndicatorFastAnswers, Severity: severity, Confidence: 80},
		})
		assert.Greater(t, score, prev)
		prev = score
	}
}

func TestAggregateRiskScore_CappedAt100(t *testing.T) {
	svc := NewFraudService(nil)

	indicators := make([]entity.FraudIndicator, 10)
	for i := range indicators {
		indicators[i] = entity.FraudIndicator{Severity: entity.SeverityCritical, Confidence: 100}
	}
	assert.Equal(t, 100, svc.AggregateRiskScore(indicators))
}

func TestRiskLevelBands(t *testing.T) {
	svc := NewFraudService(nil)

	cases := map[int]entity.RiskLevel{
		0:   entity.RiskLow,
		29:  entity.RiskLow,
		30:  entity.RiskMedium,
		59:  entity.RiskMedium,
		60:  entity.RiskHigh,
		79:  entity.RiskHigh,
		80:  entity.RiskCritical,
		100: entity.RiskCritical,
	}
	for score, want := range cases {
		assert.Equal(t, want, svc.riskLevelFor(score), "risk score %d", score)
	}
}

func TestAutoActionsTable(t *testing.T) {
	assert.Equal(t, []string{"suspend_account", "remove_from_ranking", "flag_for_review"}, autoActionsFor(entity.RiskCritical))
	assert.Equal(t, []string{"require_verification", "apply_ranking_penalty", "increase_monitoring"}, autoActionsFor(entity.RiskHigh))
	assert.Equal(t, []string{"request_verification", "set_monitoring_flag"}, autoActionsFor(entity.RiskMedium))
	assert.Equal(t, []string{"log_only"}, autoActionsFor(entity.RiskLow))
}

func TestPenaltyScore_Range(t *testing.T) {
	svc := NewFraudService(nil)

	assert.Equal(t, 0.0, svc.PenaltyScore(nil))

	suspicious := make([]entity.TestResult, 10)
	for i := range suspicious {
		r := plainResult(95, 90, 15) // 6 s/q and near-max score
		r.IPAddress = []string{"10.0.0.1", "10.0.0.2", "10.0.0.3", "10.0.0.4", "10.0.0.5",
			"10.0.0.6", "10.0.0.7", "10.0.0.8", "10.0.0.9", "10.0.0.10"}[i]
		suspicious[i] = r
	}
	penalty := svc.PenaltyScore(suspicious)
	assert.Greater(t, penalty, 0.0)
	assert.LessOrEqual(t, penalty, 200.0)
}
