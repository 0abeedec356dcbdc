package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the profile row behind every account. TotalPoints is the cumulative
// sum of the points column across the user's daily_activity rows; both are
// written inside the same transaction. Level is a denormalized mirror of
// TotalPoints (1000 points per level) refreshed on every point-earning write;
// readers must treat TotalPoints as the source of truth.
type User struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Username         string         `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email            string         `gorm:"size:255" json:"email"`
	PasswordHash     string         `gorm:"size:255" json:"-"`
	TotalPoints      int            `gorm:"default:0" json:"total_points"`
	Streak           int            `gorm:"default:0" json:"streak"`
	Level            int            `gorm:"default:1" json:"level"`
	InviteCode       string         `gorm:"size:6;uniqueIndex;not null" json:"invite_code"`
	LastActivityDate string         `gorm:"size:10" json:"last_activity_date"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}
