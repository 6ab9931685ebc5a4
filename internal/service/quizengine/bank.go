package quizengine

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/yourusername/iqtest-api/internal/domain/entity"
	apperrors "github.com/yourusername/iqtest-api/internal/pkg/errors"
)

// Bank holds the static, leveled question catalogs. Read-only after
// construction; selection has no side effects beyond advancing the RNG.
type Bank struct {
	catalogs map[string][]entity.Question

	// rng is not safe for concurrent use, so selection serializes on mu.
	mu  sync.Mutex
	rng *rand.Rand
}

// NewBank builds a bank over the built-in catalogs with a time-seeded RNG,
// so selection order differs across calls.
func NewBank() *Bank {
	return NewBankWithRand(defaultCatalogs(), rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewBankWithRand builds a bank over the given catalogs and RNG. Passing a
// fixed-seed RNG makes selection deterministic for tests.
func NewBankWithRand(catalogs map[string][]entity.Question, rng *rand.Rand) *Bank {
	return &Bank{
		catalogs: catalogs,
		rng:      rng,
	}
}

// SelectQuestions returns exactly count questions from the level's catalog in
// random order, without replacement. Fails with ErrUnknownLevel for an
// unconfigured level and ErrInsufficientQuestions when the catalog is smaller
// than count.
func (b *Bank) SelectQuestions(levelID string, count int) ([]entity.Question, error) {
	catalog, ok := b.catalogs[levelID]
	if !ok {
		return nil, fmt.Errorf("level %q: %w", levelID, apperrors.ErrUnknownLevel)
	}
	if count <= 0 {
		return nil, fmt.Errorf("requested count %d: %w", count, apperrors.ErrValidation)
	}
	if len(catalog) < count {
		return nil, fmt.Errorf("level %q has %d questions, requested %d: %w",
			levelID, len(catalog), count, apperrors.ErrInsufficientQuestions)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	// Partial Fisher-Yates over a copy: first count slots end up a uniform
	// sample without replacement.
	shuffled := make([]entity.Question, len(catalog))
	copy(shuffled, catalog)
	for i := 0; i < count; i++ {
		j := i + b.rng.Intn(len(shuffled)-i)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled[:count], nil
}

// CountByLevel returns the catalog size for the level, 0 if unconfigured.
func (b *Bank) CountByLevel(levelID string) int {
	return len(b.catalogs[levelID])
}

// Levels returns the ids of all levels that have a catalog.
func (b *Bank) Levels() []string {
	out := make([]string, 0, len(b.catalogs))
	for id := range b.catalogs {
		out = append(out, id)
	}
	return out
}
