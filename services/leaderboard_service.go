package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/rafiqapp/rafiq/models"
	"github.com/rafiqapp/rafiq/utils"
)

const leaderboardCacheTTL = 30 * time.Second

// LeaderboardService ranks a user against their friend set by cumulative
// points. Every call is a fresh computation over the profile store; Redis
// only shields repeated dashboard fetches within a short TTL.
type LeaderboardService struct {
	db *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{db: db}
}

func leaderboardCacheKey(userID uint) string {
	return fmt.Sprintf("cache:leaderboard:%d", userID)
}

// Compose returns the user's friends plus the user, ordered by total points
// descending with user id ascending as the deterministic tie-break, and the
// 1-based rank of the querying user (0 when absent).
func (s *LeaderboardService) Compose(ctx context.Context, userID uint) ([]models.LeaderboardEntry, int, error) {
	if b, ok := utils.CacheGetBytes(leaderboardCacheKey(userID)); ok {
		var cached []models.LeaderboardEntry
		if err := json.Unmarshal(b, &cached); err == nil {
			return cached, rankOf(cached, userID), nil
		}
	}

	ids, err := s.friendIDs(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	ids = append(ids, userID)

	var users []models.User
	if err := s.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("total_points DESC, id ASC").
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, models.LeaderboardEntry{
			ID:          u.ID,
			Username:    u.Username,
			TotalPoints: u.TotalPoints,
			Streak:      u.Streak,
			Level:       u.Level,
			Rank:        i + 1,
		})
	}

	utils.CacheSetJSON(leaderboardCacheKey(userID), entries, leaderboardCacheTTL)
	return entries, rankOf(entries, userID), nil
}

// Invalidate drops the cached leaderboards of the user and everyone linked
// to them; called after any point-earning write.
func (s *LeaderboardService) Invalidate(ctx context.Context, userID uint) {
	ids, err := s.friendIDs(ctx, userID)
	if err != nil {
		ids = nil
	}
	keys := []string{leaderboardCacheKey(userID)}
	for _, id := range ids {
		keys = append(keys, leaderboardCacheKey(id))
	}
	utils.CacheDelete(keys...)
}

func (s *LeaderboardService) friendIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := s.db.WithContext(ctx).
		Model(&models.Friend{}).
		Where("user_id = ?", userID).
		Pluck("friend_user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func rankOf(entries []models.LeaderboardEntry, userID uint) int {
	for _, e := range entries {
		if e.ID == userID {
			return e.Rank
		}
	}
	return 0
}
