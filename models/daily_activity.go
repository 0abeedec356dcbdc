package models

import "time"

// DailyActivity stores one user's devotional counters for one calendar day.
// At most one row exists per (UserID, Date); rows are created lazily on the
// first qualifying action and only ever mutated additively. Past dates are
// never edited.
type DailyActivity struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"uniqueIndex:idx_user_date;not null" json:"user_id"`
	Date         string    `gorm:"uniqueIndex:idx_user_date;size:10;not null" json:"date"`
	Fajr         bool      `gorm:"default:false" json:"fajr"`
	Dhuhr        bool      `gorm:"default:false" json:"dhuhr"`
	Asr          bool      `gorm:"default:false" json:"asr"`
	Maghrib      bool      `gorm:"default:false" json:"maghrib"`
	Isha         bool      `gorm:"default:false" json:"isha"`
	PrayerCount  int       `gorm:"default:0" json:"prayer_count"`
	QuranPages   int       `gorm:"default:0" json:"quran_pages"`
	TasbeehCount int       `gorm:"default:0" json:"tasbeeh_count"`
	Points       int       `gorm:"default:0" json:"points"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName keeps the original table naming.
func (DailyActivity) TableName() string { return "daily_activity" }
