// Package scoring holds the pure accounting rules that turn raw devotional
// activity into points, daily progress, levels and streaks. It performs no
// I/O; the services package applies its results transactionally.
package scoring

import (
	"errors"

	"github.com/rafiqapp/rafiq/models"
)

// Point values and caps. These match the product rules exactly and are not
// configurable at runtime.
const (
	PrayerPoints       = 10  // per prayer, once per prayer per day
	AllPrayersBonus    = 20  // when the fifth flag turns true
	PointsPerPage      = 5   // per Quran page saved
	TasbeehBatchSize   = 100 // repetitions per scored batch
	TasbeehBatchPoints = 10  // per full batch crossed
	MaxProgressUnits   = 300 // daily progress cap

	PointsPerLevel = 1000
)

// ErrNegativeQuantity rejects negative page or tasbeeh quantities; counters
// only ever move forward.
var ErrNegativeQuantity = errors.New("scoring: quantity must not be negative")

// MarkPrayer sets the completion flag for p on rec and returns the point
// delta. Re-marking an already completed prayer is a no-op with a zero delta.
// The delta includes the all-five bonus exactly when this call flips the
// fifth flag.
func MarkPrayer(rec *models.DailyActivity, p Prayer) (delta int) {
	flag := flagOf(rec, p)
	if flag == nil || *flag {
		return 0
	}
	*flag = true
	rec.PrayerCount = CountPrayers(rec)

	delta = PrayerPoints
	if rec.PrayerCount == prayerCount {
		delta += AllPrayersBonus
	}
	rec.Points += delta
	return delta
}

// AddPages accumulates pages into the day's total and returns the point
// delta. A zero quantity yields a zero delta so the caller can skip the
// write.
func AddPages(rec *models.DailyActivity, pages int) (delta int, err error) {
	if pages < 0 {
		return 0, ErrNegativeQuantity
	}
	if pages == 0 {
		return 0, nil
	}
	rec.QuranPages += pages
	delta = pages * PointsPerPage
	rec.Points += delta
	return delta, nil
}

// AddTasbeeh accumulates dhikr repetitions and pays only the hundreds newly
// crossed: floor(new/100)*10 - floor(old/100)*10. Counts already below a
// boundary are never paid twice.
func AddTasbeeh(rec *models.DailyActivity, count int) (delta int, err error) {
	if count < 0 {
		return 0, ErrNegativeQuantity
	}
	if count == 0 {
		return 0, nil
	}
	old := rec.TasbeehCount
	rec.TasbeehCount += count
	delta = rec.TasbeehCount/TasbeehBatchSize*TasbeehBatchPoints - old/TasbeehBatchSize*TasbeehBatchPoints
	rec.Points += delta
	return delta, nil
}

// ProgressUnits computes the day's progress on the 0..300 scale:
// 10 per prayer, 5 per page, 10 per full hundred tasbeeh.
func ProgressUnits(rec *models.DailyActivity) int {
	units := rec.PrayerCount*PrayerPoints +
		rec.QuranPages*PointsPerPage +
		rec.TasbeehCount/TasbeehBatchSize*TasbeehBatchPoints
	if units > MaxProgressUnits {
		units = MaxProgressUnits
	}
	return units
}

// ProgressPercent maps progress units onto 0..100 for display.
func ProgressPercent(rec *models.DailyActivity) int {
	return ProgressUnits(rec) * 100 / MaxProgressUnits
}

// Level derives the 1-based level band from a cumulative point total.
func Level(totalPoints int) int {
	if totalPoints < 0 {
		return 1
	}
	return totalPoints/PointsPerLevel + 1
}

// PointsToNextLevel returns how many points remain until the next band.
func PointsToNextLevel(totalPoints int) int {
	if totalPoints < 0 {
		return PointsPerLevel
	}
	return PointsPerLevel - totalPoints%PointsPerLevel
}
