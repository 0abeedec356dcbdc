package services

import (
	"context"
	"testing"

	"github.com/rafiqapp/rafiq/models"
	"github.com/rafiqapp/rafiq/scoring"
)

func TestTodayDefaultsToZeroRecord(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "amina", "AAAAAA", 0)
	svc := NewActivityService(db, nil)

	rec, err := svc.Today(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Today error: %v", err)
	}
	if rec.Points != 0 || rec.PrayerCount != 0 || rec.QuranPages != 0 || rec.TasbeehCount != 0 {
		t.Fatalf("default record not zero: %+v", rec)
	}
	if rec.ID != 0 {
		t.Fatalf("default record must not be persisted, got id %d", rec.ID)
	}

	var count int64
	db.Model(&models.DailyActivity{}).Count(&count)
	if count != 0 {
		t.Fatalf("Today must not create rows, found %d", count)
	}
}

func TestCompletePrayerCreatesRecordAndIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "amina", "AAAAAA", 0)
	notifier := &recordingNotifier{}
	svc := NewActivityService(db, notifier)
	ctx := context.Background()

	res, err := svc.CompletePrayer(ctx, user.ID, scoring.Fajr)
	if err != nil {
		t.Fatalf("CompletePrayer error: %v", err)
	}
	if res.Delta != 10 || !res.Activity.Fajr || res.Activity.PrayerCount != 1 || res.Activity.Points != 10 {
		t.Fatalf("first mark: %+v delta=%d", res.Activity, res.Delta)
	}
	if res.User.TotalPoints != 10 || res.User.Streak != 1 {
		t.Fatalf("user after first mark: points=%d streak=%d", res.User.TotalPoints, res.User.Streak)
	}
	if len(notifier.calls) != 1 {
		t.Fatalf("notifier calls = %d, want 1", len(notifier.calls))
	}

	// re-marking the same prayer writes nothing and pays nothing
	res, err = svc.CompletePrayer(ctx, user.ID, scoring.Fajr)
	if err != nil {
		t.Fatalf("repeat CompletePrayer error: %v", err)
	}
	if res.Delta != 0 || res.Activity.Points != 10 || res.User.TotalPoints != 10 {
		t.Fatalf("repeat mark changed state: delta=%d activity=%+v", res.Delta, res.Activity)
	}
	if len(notifier.calls) != 1 {
		t.Fatalf("repeat mark must not notify, calls = %d", len(notifier.calls))
	}

	var count int64
	db.Model(&models.DailyActivity{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected one activity row, found %d", count)
	}
}

func TestAllFivePrayersPaySeventy(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "amina", "AAAAAA", 0)
	svc := NewActivityService(db, nil)
	ctx := context.Background()

	order := []scoring.Prayer{scoring.Isha, scoring.Fajr, scoring.Maghrib, scoring.Dhuhr, scoring.Asr}
	var last *ApplyResult
	var err error
	for _, p := range order {
		last, err = svc.CompletePrayer(ctx, user.ID, p)
		if err != nil {
			t.Fatalf("CompletePrayer(%v) error: %v", p, err)
		}
	}

	if last.Activity.PrayerCount != 5 {
		t.Fatalf("prayer count = %d, want 5", last.Activity.PrayerCount)
	}
	if last.Activity.Points != 70 {
		t.Fatalf("day points = %d, want 70", last.Activity.Points)
	}
	if last.User.TotalPoints != 70 {
		t.Fatalf("total points = %d, want 70", last.User.TotalPoints)
	}
	if last.Delta != 30 {
		t.Fatalf("fifth prayer delta = %d, want 30 (10 + 20 bonus)", last.Delta)
	}
}

func TestSavePagesAccumulates(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "amina", "AAAAAA", 0)
	svc := NewActivityService(db, nil)
	ctx := context.Background()

	res, err := svc.SavePages(ctx, user.ID, 3)
	if err != nil {
		t.Fatalf("SavePages error: %v", err)
	}
	if res.Delta != 15 || res.Activity.QuranPages != 3 {
		t.Fatalf("first save: delta=%d pages=%d", res.Delta, res.Activity.QuranPages)
	}

	res, err = svc.SavePages(ctx, user.ID, 2)
	if err != nil {
		t.Fatalf("second SavePages error: %v", err)
	}
	if res.Delta != 10 || res.Activity.QuranPages != 5 || res.Activity.Points != 25 {
		t.Fatalf("second save: delta=%d pages=%d points=%d", res.Delta, res.Activity.QuranPages, res.Activity.Points)
	}
	if res.User.TotalPoints != 25 {
		t.Fatalf("total points = %d, want 25", res.User.TotalPoints)
	}
}

func TestZeroQuantityIssuesNoWrite(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "amina", "AAAAAA", 0)
	notifier := &recordingNotifier{}
	svc := NewActivityService(db, notifier)
	ctx := context.Background()

	for name, call := range map[string]func() (*ApplyResult, error){
		"pages":   func() (*ApplyResult, error) { return svc.SavePages(ctx, user.ID, 0) },
		"tasbeeh": func() (*ApplyResult, error) { return svc.SaveTasbeeh(ctx, user.ID, 0) },
	} {
		res, err := call()
		if err != nil {
			t.Fatalf("%s: error: %v", name, err)
		}
		if res.Delta != 0 {
			t.Fatalf("%s: delta = %d, want 0", name, res.Delta)
		}
	}

	var count int64
	db.Model(&models.DailyActivity{}).Count(&count)
	if count != 0 {
		t.Fatalf("zero-quantity saves created %d rows", count)
	}
	var fresh models.User
	db.First(&fresh, user.ID)
	if fresh.TotalPoints != 0 {
		t.Fatalf("total points moved to %d on zero-quantity save", fresh.TotalPoints)
	}
	if len(notifier.calls) != 0 {
		t.Fatalf("zero-quantity saves must not notify, calls = %d", len(notifier.calls))
	}
}

func TestTasbeehBoundaryAcrossSaves(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "amina", "AAAAAA", 0)
	svc := NewActivityService(db, nil)
	ctx := context.Background()

	res, err := svc.SaveTasbeeh(ctx, user.ID, 95)
	if err != nil {
		t.Fatalf("first SaveTasbeeh error: %v", err)
	}
	if res.Delta != 0 || res.Activity.TasbeehCount != 95 {
		t.Fatalf("first save: delta=%d count=%d", res.Delta, res.Activity.TasbeehCount)
	}

	res, err = svc.SaveTasbeeh(ctx, user.ID, 10)
	if err != nil {
		t.Fatalf("second SaveTasbeeh error: %v", err)
	}
	if res.Delta != 10 || res.Activity.TasbeehCount != 105 || res.Activity.Points != 10 {
		t.Fatalf("second save: delta=%d count=%d points=%d", res.Delta, res.Activity.TasbeehCount, res.Activity.Points)
	}
	if res.User.TotalPoints != 10 {
		t.Fatalf("total points = %d, want 10", res.User.TotalPoints)
	}
}

func TestNegativeQuantityRejected(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "amina", "AAAAAA", 0)
	svc := NewActivityService(db, nil)
	ctx := context.Background()

	if _, err := svc.SavePages(ctx, user.ID, -1); err == nil {
		t.Fatal("negative pages accepted")
	}
	if _, err := svc.SaveTasbeeh(ctx, user.ID, -1); err == nil {
		t.Fatal("negative tasbeeh accepted")
	}

	var count int64
	db.Model(&models.DailyActivity{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejected saves created %d rows", count)
	}
}

func TestLevelMirrorsTotalPoints(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "amina", "AAAAAA", 990)
	svc := NewActivityService(db, nil)

	res, err := svc.SavePages(context.Background(), user.ID, 3)
	if err != nil {
		t.Fatalf("SavePages error: %v", err)
	}
	if res.User.TotalPoints != 1005 {
		t.Fatalf("total points = %d, want 1005", res.User.TotalPoints)
	}
	if res.User.Level != 2 {
		t.Fatalf("level = %d, want 2", res.User.Level)
	}
}
