package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rafiqapp/rafiq/config"
	"github.com/rafiqapp/rafiq/models"
)

func init() {
	// Keep Redis pointed at a closed port so caching quietly misses.
	config.SetForTesting(config.AppConfig{
		JWTSecret: "test-secret",
		RedisHost: "127.0.0.1",
		RedisPort: 6399,
	})
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	// one connection keeps the in-memory database alive and shared
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.DailyActivity{}, &models.Friend{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, username, inviteCode string, points int) models.User {
	t.Helper()
	user := models.User{
		Username:    username,
		InviteCode:  inviteCode,
		TotalPoints: points,
		Level:       1,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

// recordingNotifier captures change signals for assertions.
type recordingNotifier struct {
	calls []uint
}

func (n *recordingNotifier) ActivityChanged(userID uint, date string) {
	n.calls = append(n.calls, userID)
}
