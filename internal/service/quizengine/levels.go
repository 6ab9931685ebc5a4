package quizengine

import (
	"github.com/yourusername/iqtest-api/internal/domain/entity"
	apperrors "github.com/yourusername/iqtest-api/internal/pkg/errors"
)

// Level ids as configured in the default table.
const (
	LevelBasic        = "basic"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
	LevelExpert       = "expert"
)

// LevelTable holds the configured quiz levels, keyed by id. Immutable after
// construction.
type LevelTable struct {
	levels map[string]entity.QuizLevel
	order  []string
}

// NewLevelTable builds a table from the given levels, preserving order.
func NewLevelTable(levels []entity.QuizLevel) *LevelTable {
	t := &LevelTable{
		levels: make(map[string]entity.QuizLevel, len(levels)),
		order:  make([]string, 0, len(levels)),
	}
	for _, l := range levels {
		t.levels[l.ID] = l
		t.order = append(t.order, l.ID)
	}
	return t
}

// DefaultLevels returns the production tier configuration. The IQ multiplier
// per tier is fixed: the raw-score-to-IQ transform is the one scoring engine
// parameterized by these constants, so per-tier output stays distinct without
// a second formula.
func DefaultLevels() *LevelTable {
	return NewLevelTable([]entity.QuizLevel{
		{
			ID:               LevelBasic,
			Name:             "Teste Básico",
			DurationMinutes:  12,
			QuestionCount:    10,
			ExpectedAccuracy: 0.70,
			PriceCents:       0,
			IQMultiplier:     0.8,
			DifficultyLabel:  "Básico",
		},
		{
			ID:               LevelIntermediate,
			Name:             "Teste Intermediário",
			DurationMinutes:  18,
			QuestionCount:    15,
			ExpectedAccuracy: 0.60,
			PriceCents:       990,
			IQMultiplier:     1.0,
			DifficultyLabel:  "Intermediário",
		},
		{
			ID:               LevelAdvanced,
			Name:             "Teste Avançado",
			DurationMinutes:  25,
			QuestionCount:    15,
			ExpectedAccuracy: 0.50,
			PriceCents:       1990,
			IQMultiplier:     1.3,
			DifficultyLabel:  "Avançado",
		},
		{
			ID:               LevelExpert,
			Name:             "Teste Expert",
			DurationMinutes:  30,
			QuestionCount:    20,
			ExpectedAccuracy: 0.40,
			PriceCents:       2990,
			IQMultiplier:     1.6,
			DifficultyLabel:  "Expert",
		},
	})
}

// Get returns the level for the id, or ErrUnknownLevel.
func (t *LevelTable) Get(id string) (entity.QuizLevel, error) {
	l, ok := t.levels[id]
	if !ok {
		return entity.QuizLevel{}, apperrors.ErrUnknownLevel
	}
	return l, nil
}

// List returns all levels in configuration order.
func (t *LevelTable) List() []entity.QuizLevel {
	out := make([]entity.QuizLevel, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.levels[id])
	}
	return out
}
