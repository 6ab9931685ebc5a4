package quizengine

import (
	"fmt"
	"math"

	"github.com/yourusername/iqtest-api/internal/domain/entity"
	apperrors "github.com/yourusername/iqtest-api/internal/pkg/errors"
)

// IQ estimate bounds and population model constants.
const (
	MinIQ = 70
	MaxIQ = 200

	MinPercentile = 1
	MaxPercentile = 99

	// The population is modeled as N(100, 15).
	populationMeanIQ   = 100.0
	populationStdDevIQ = 15.0

	// Slope applied on top of the per-level multiplier when mapping raw
	// score deviation from 50% into IQ points.
	iqSlope = 0.6
)

// CategoryStat is the per-category tally of a score report.
type CategoryStat struct {
	Correct    int     `json:"correct"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// ScoreReport is the outcome of scoring one finished session.
type ScoreReport struct {
	Score             int                     `json:"score"` // 0..100
	CorrectCount      int                     `json:"correct_count"`
	TotalQuestions    int                     `json:"total_questions"`
	IQEstimate        int                     `json:"iq_estimate"` // 70..200
	Percentile        int                     `json:"percentile"`  // 1..99
	CategoryBreakdown map[string]CategoryStat `json:"category_breakdown"`
}

// ScoreAnswers converts captured answers into a score report. Pure function:
// no side effects, identical inputs give identical outputs. Unanswered slots
// and kind mismatches count as incorrect. Fails only on a zero-question
// session.
func ScoreAnswers(questions []entity.Question, answers []entity.Answer, level entity.QuizLevel) (*ScoreReport, error) {
	total := len(questions)
	if total == 0 {
		return nil, apperrors.ErrEmptySession
	}
	if len(answers) != total {
		return nil, fmt.Errorf("answers length %d does not match questions length %d: %w",
			len(answers), total, apperrors.ErrValidation)
	}

	correct := 0
	breakdown := make(map[string]CategoryStat)
	for i := range questions {
		q := &questions[i]
		stat := breakdown[q.Category]
		stat.Total++
		if q.IsCorrect(answers[i]) {
			correct++
			stat.Correct++
		}
		breakdown[q.Category] = stat
	}
	for cat, stat := range breakdown {
		stat.Percentage = float64(stat.Correct) / float64(stat.Total) * 100
		breakdown[cat] = stat
	}

	score := int(math.Round(float64(correct) / float64(total) * 100))
	iq := EstimateIQ(score, level.IQMultiplier)

	return &ScoreReport{
		Score:             score,
		CorrectCount:      correct,
		TotalQuestions:    total,
		IQEstimate:        iq,
		Percentile:        PercentileForIQ(iq),
		CategoryBreakdown: breakdown,
	}, nil
}

// EstimateIQ maps a 0..100 score into the 70..200 IQ scale using the
// per-level multiplier.
func EstimateIQ(score int, levelMultiplier float64) int {
	iq := populationMeanIQ + (float64(score)-50)*levelMultiplier*iqSlope
	return clampInt(int(math.Round(iq)), MinIQ, MaxIQ)
}

// PercentileForIQ returns the population rank (1..99) implied by the IQ
// estimate under the N(100, 15) model.
func PercentileForIQ(iq int) int {
	z := (float64(iq) - populationMeanIQ) / populationStdDevIQ
	p := int(math.Round(NormalCDF(z) * 100))
	return clampInt(p, MinPercentile, MaxPercentile)
}

// Abramowitz & Stegun 7.1.26 coefficients for the erf rational approximation.
// Absolute error is below 1.5e-7, which keeps reported percentiles
// bit-comparable across platforms.
const (
	asA1 = 0.254829592
	asA2 = -0.284496736
	asA3 = 1.421413741
	asA4 = -1.453152027
	asA5 = 1.061405429
	asP  = 0.3275911
)

// NormalCDF evaluates the standard-normal cumulative distribution at z via
// the Abramowitz-Stegun approximation. Deliberately not math.Erf, so reported
// percentiles stay bit-identical across platforms and releases.
func NormalCDF(z float64) float64 {
	sign := 1.0
	if z < 0 {
		sign = -1.0
	}
	x := math.Abs(z) / math.Sqrt2

	t := 1.0 / (1.0 + asP*x)
	y := 1.0 - (((((asA5*t+asA4)*t)+asA3)*t+asA2)*t+asA1)*t*math.Exp(-x*x)

	return 0.5 * (1.0 + sign*y)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
