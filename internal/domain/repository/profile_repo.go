package repository

import (
	"github.com/yourusername/iqtest-api/internal/domain/entity"
)

// ProfileRepository supplies user profiles owned by the accounts service.
// Strictly read-only to this engine.
type ProfileRepository interface {
	GetByUserID(userID uint) (*entity.UserProfile, error)
}
