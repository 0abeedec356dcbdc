package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Activity change notifications ride on Redis pub/sub, one channel per user.
// Dashboards subscribe and re-fetch on any message; the payload is an
// invalidation signal, not a data carrier.

func activityChannel(userID uint) string {
	return fmt.Sprintf("activity:changed:%d", userID)
}

// PublishActivityChange signals that the user's daily activity or profile
// totals were just written. Best-effort: a missed signal only delays a
// dashboard refresh.
func PublishActivityChange(userID uint, date string) {
	rc := GetRedis()
	if rc == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rc.Publish(ctx, activityChannel(userID), date).Err(); err != nil {
		if Sugar != nil {
			Sugar.Debugf("activity publish failed user=%d err=%v", userID, err)
		}
	}
}

// SubscribeActivityChanges opens a pub/sub subscription scoped to one user.
// The caller owns the returned subscription and must Close it.
func SubscribeActivityChanges(ctx context.Context, userID uint) *redis.PubSub {
	return GetRedis().Subscribe(ctx, activityChannel(userID))
}
