package entity

import (
	"time"
)

// VerificationLevel is the identity verification tier of a user.
type VerificationLevel string

const (
	VerificationBasic    VerificationLevel = "basic"
	VerificationEmail    VerificationLevel = "email"
	VerificationPhone    VerificationLevel = "phone"
	VerificationDocument VerificationLevel = "document"
	VerificationPremium  VerificationLevel = "premium"
)

// UserProfile is reference data owned by the accounts service. Read-only to
// this engine.
type UserProfile struct {
	UserID            uint              `gorm:"primaryKey" json:"user_id"`
	BirthDate         time.Time         `gorm:"not null" json:"birth_date"`
	EducationLevel    string            `gorm:"size:50;not null;default:''" json:"education_level"`
	VerificationLevel VerificationLevel `gorm:"size:20;not null;default:'basic'" json:"verification_level"`
	Country           string            `gorm:"size:2;not null;default:''" json:"country"`
	Region            string            `gorm:"size:50;not null;default:''" json:"region"`
	JoinedAt          time.Time         `gorm:"not null" json:"joined_at"`
}

// TableName sets the GORM table name.
func (UserProfile) TableName() string {
	return "user_profiles"
}

// AgeAt returns the user's age in whole years at the given time.
func (p *UserProfile) AgeAt(now time.Time) int {
	age := now.Year() - p.BirthDate.Year()
	if now.YearDay() < p.BirthDate.YearDay() {
		age--
	}
	if age < 0 {
		age = 0
	}
	return age
}
