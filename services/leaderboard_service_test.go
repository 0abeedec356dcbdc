package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/rafiqapp/rafiq/models"
)

func link(t *testing.T, db *gorm.DB, a, b uint) {
	t.Helper()
	links := []models.Friend{
		{UserID: a, FriendUserID: b},
		{UserID: b, FriendUserID: a},
	}
	if err := db.Create(&links).Error; err != nil {
		t.Fatalf("link %d<->%d: %v", a, b, err)
	}
}

func TestComposeOrdersByPointsDescending(t *testing.T) {
	db := openTestDB(t)
	me := createUser(t, db, "amina", "AAAAAA", 120)
	top := createUser(t, db, "bilal", "BBBBBB", 500)
	low := createUser(t, db, "dawud", "DDDDDD", 40)
	link(t, db, me.ID, top.ID)
	link(t, db, me.ID, low.ID)

	svc := NewLeaderboardService(db)
	entries, rank, err := svc.Compose(context.Background(), me.ID)
	if err != nil {
		t.Fatalf("Compose error: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	wantOrder := []string{"bilal", "amina", "dawud"}
	for i, want := range wantOrder {
		if entries[i].Username != want {
			t.Errorf("position %d = %s, want %s", i+1, entries[i].Username, want)
		}
		if entries[i].Rank != i+1 {
			t.Errorf("rank at position %d = %d", i, entries[i].Rank)
		}
	}
	if rank != 2 {
		t.Fatalf("caller rank = %d, want 2", rank)
	}
}

func TestComposeTieBreakIsDeterministic(t *testing.T) {
	db := openTestDB(t)
	me := createUser(t, db, "amina", "AAAAAA", 100)
	tied := createUser(t, db, "bilal", "BBBBBB", 100)
	link(t, db, me.ID, tied.ID)

	svc := NewLeaderboardService(db)
	for i := 0; i < 3; i++ {
		entries, rank, err := svc.Compose(context.Background(), me.ID)
		if err != nil {
			t.Fatalf("Compose error: %v", err)
		}
		// equal points break on ascending user id
		if entries[0].ID != me.ID || entries[1].ID != tied.ID {
			t.Fatalf("iteration %d: order %d,%d", i, entries[0].ID, entries[1].ID)
		}
		if rank != 1 {
			t.Fatalf("iteration %d: rank = %d, want 1", i, rank)
		}
	}
}

func TestComposeWithoutFriends(t *testing.T) {
	db := openTestDB(t)
	me := createUser(t, db, "amina", "AAAAAA", 10)

	svc := NewLeaderboardService(db)
	entries, rank, err := svc.Compose(context.Background(), me.ID)
	if err != nil {
		t.Fatalf("Compose error: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != me.ID || rank != 1 {
		t.Fatalf("solo leaderboard: entries=%d rank=%d", len(entries), rank)
	}
}

func TestComposeExcludesStrangers(t *testing.T) {
	db := openTestDB(t)
	me := createUser(t, db, "amina", "AAAAAA", 10)
	friend := createUser(t, db, "bilal", "BBBBBB", 20)
	createUser(t, db, "stranger", "SSSSSS", 999)
	link(t, db, me.ID, friend.ID)

	svc := NewLeaderboardService(db)
	entries, _, err := svc.Compose(context.Background(), me.ID)
	if err != nil {
		t.Fatalf("Compose error: %v", err)
	}
	for _, e := range entries {
		if e.Username == "stranger" {
			t.Fatal("stranger appeared on a friends leaderboard")
		}
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
}
