package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/iqtest-api/internal/domain/entity"
	apperrors "github.com/yourusername/iqtest-api/internal/pkg/errors"
)

// ProfileRepo implements repository.ProfileRepository on gorm. Read-only:
// the accounts service owns these rows.
type ProfileRepo struct {
	db *gorm.DB
}

// NewProfileRepo creates a new profile repository.
func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// GetByUserID returns the user's profile, ErrNotFound if absent.
func (r *ProfileRepo) GetByUserID(userID uint) (*entity.UserProfile, error) {
	var profile entity.UserProfile
	err := r.db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}
