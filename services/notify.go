package services

import (
	"context"

	"github.com/rafiqapp/rafiq/utils"
)

// RedisNotifier fans a committed activity write out as a Redis pub/sub
// invalidation signal and drops the affected leaderboard caches.
type RedisNotifier struct {
	leaderboard *LeaderboardService
}

func NewRedisNotifier(leaderboard *LeaderboardService) *RedisNotifier {
	return &RedisNotifier{leaderboard: leaderboard}
}

// ActivityChanged implements ChangeNotifier.
func (n *RedisNotifier) ActivityChanged(userID uint, date string) {
	utils.PublishActivityChange(userID, date)
	n.leaderboard.Invalidate(context.Background(), userID)
}
