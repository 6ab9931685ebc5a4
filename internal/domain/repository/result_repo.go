package repository

import (
	"time"

	"github.com/yourusername/iqtest-api/internal/domain/entity"
)

// TestResultRepository is the append-only store of completed assessments.
// There is no update or delete: derived artifacts (fraud analyses, ranking
// scores) are recomputed from these rows instead of edited in place.
type TestResultRepository interface {
	// Save appends a new result. A second result for the same
	// (user, session) pair fails with apperrors.ErrConflict.
	Save(result *entity.TestResult) error

	// GetByUser returns the user's results, newest first, with pagination.
	GetByUser(userID uint, limit, offset int) ([]entity.TestResult, int64, error)

	// GetByUserSince returns the user's results completed at or after the
	// cutoff, oldest first.
	GetByUserSince(userID uint, since time.Time) ([]entity.TestResult, error)

	// GetByUserBetween returns the user's results completed in [from, to),
	// oldest first. Used for prior-period trend comparisons.
	GetByUserBetween(userID uint, from, to time.Time) ([]entity.TestResult, error)

	// ListUserIDsSince returns the distinct ids of users with at least
	// minResults results completed at or after the cutoff.
	ListUserIDsSince(since time.Time, minResults int) ([]uint, error)
}
