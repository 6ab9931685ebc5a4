package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/yourusername/iqtest-api/internal/domain/entity"
	apperrors "github.com/yourusername/iqtest-api/internal/pkg/errors"
)

// uniqueViolation is the postgres error code for a unique index violation.
const uniqueViolation = "23505"

// TestResultRepo implements repository.TestResultRepository on gorm.
type TestResultRepo struct {
	db *gorm.DB
}

// NewTestResultRepo creates a new result repository.
func NewTestResultRepo(db *gorm.DB) *TestResultRepo {
	return &TestResultRepo{db: db}
}

// Save appends a new result row. A duplicate (user, session) pair maps to
// ErrConflict so callers can distinguish double recording from real failures.
func (r *TestResultRepo) Save(result *entity.TestResult) error {
	err := r.db.Create(result).Error
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return fmt.Errorf("result for user %d session %s already recorded: %w",
				result.UserID, result.SessionID, apperrors.ErrConflict)
		}
		return err
	}
	return nil
}

// GetByUser returns one page of the user's results, newest first, plus the
// total row count for pagination.
func (r *TestResultRepo) GetByUser(userID uint, limit, offset int) ([]entity.TestResult, int64, error) {
	var results []entity.TestResult
	var total int64

	tx := r.db.Begin()
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()
	if tx.Error != nil {
		return nil, 0, tx.Error
	}

	if err := tx.Model(&entity.TestResult{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		tx.Rollback()
		return nil, 0, err
	}

	if err := tx.Where("user_id = ?", userID).
		Order("completed_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&results).Error; err != nil {
		tx.Rollback()
		return nil, 0, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

// GetByUserSince returns the user's results completed at or after the cutoff,
// oldest first.
func (r *TestResultRepo) GetByUserSince(userID uint, since time.Time) ([]entity.TestResult, error) {
	var results []entity.TestResult
	err := r.db.Where("user_id = ? AND completed_at >= ?", userID, since).
		Order("completed_at ASC").
		Find(&results).Error
	return results, err
}

// GetByUserBetween returns the user's results completed in [from, to),
// oldest first.
func (r *TestResultRepo) GetByUserBetween(userID uint, from, to time.Time) ([]entity.TestResult, error) {
	var results []entity.TestResult
	err := r.db.Where("user_id = ? AND completed_at >= ? AND completed_at < ?", userID, from, to).
		Order("completed_at ASC").
		Find(&results).Error
	return results, err
}

// ListUserIDsSince returns the ids of users with at least minResults results
// completed at or after the cutoff.
func (r *TestResultRepo) ListUserIDsSince(since time.Time, minResults int) ([]uint, error) {
	var userIDs []uint
	err := r.db.Model(&entity.TestResult{}).
		Where("completed_at >= ?", since).
		Group("user_id").
		Having("COUNT(*) >= ?", minResults).
		Pluck("user_id", &userIDs).Error
	return userIDs, err
}
