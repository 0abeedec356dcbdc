package models

import "time"

// Friend is one direction of a symmetric friendship. Rows are always created
// in pairs (A→B and B→A) inside a single transaction and never updated.
type Friend struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"uniqueIndex:idx_user_friend;not null" json:"user_id"`
	FriendUserID uint      `gorm:"uniqueIndex:idx_user_friend;not null" json:"friend_user_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// LeaderboardEntry is a derived projection of a user for ranking views; it is
// computed on demand and never stored.
type LeaderboardEntry struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	TotalPoints int    `json:"total_points"`
	Streak      int    `json:"streak"`
	Level       int    `json:"level"`
	Rank        int    `json:"rank"`
}
