package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rafiqapp/rafiq/models"
	"github.com/rafiqapp/rafiq/scoring"
)

// ChangeNotifier receives a signal after a committed point-earning write so
// dependent views can re-fetch. Implementations must be best-effort; a lost
// signal only delays a refresh.
type ChangeNotifier interface {
	ActivityChanged(userID uint, date string)
}

// ActivityService orchestrates the read-modify-write cycle for one user
// action: load today's record, apply the scoring rules, then persist the
// activity row and the profile totals inside a single transaction. The
// original client issued the two writes as separate calls with a divergence
// window between them; collapsing them closes that window.
type ActivityService struct {
	db       *gorm.DB
	notifier ChangeNotifier
}

// ApplyResult carries the post-write truth back to the caller.
type ApplyResult struct {
	Activity models.DailyActivity `json:"activity"`
	User     models.User          `json:"user"`
	Delta    int                  `json:"points_delta"`
}

func NewActivityService(db *gorm.DB, notifier ChangeNotifier) *ActivityService {
	return &ActivityService{db: db, notifier: notifier}
}

// Today returns the user's activity record for the current day, or an
// all-zero unpersisted default when no action has happened yet.
func (s *ActivityService) Today(ctx context.Context, userID uint) (models.DailyActivity, error) {
	date := scoring.Today()
	var rec models.DailyActivity
	err := s.db.WithContext(ctx).Where("user_id = ? AND date = ?", userID, date).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DailyActivity{UserID: userID, Date: date}, nil
	}
	if err != nil {
		return models.DailyActivity{}, err
	}
	return rec, nil
}

// CompletePrayer marks one prayer done for today. Re-marking a completed
// prayer returns the current state without writing.
func (s *ActivityService) CompletePrayer(ctx context.Context, userID uint, prayer scoring.Prayer) (*ApplyResult, error) {
	return s.apply(ctx, userID, func(rec *models.DailyActivity) (int, error) {
		return scoring.MarkPrayer(rec, prayer), nil
	})
}

// SavePages adds a batch of Quran pages to today's total. Zero pages is a
// no-op that issues no write.
func (s *ActivityService) SavePages(ctx context.Context, userID uint, pages int) (*ApplyResult, error) {
	return s.apply(ctx, userID, func(rec *models.DailyActivity) (int, error) {
		return scoring.AddPages(rec, pages)
	})
}

// SaveTasbeeh adds a batch of dhikr repetitions to today's total. Zero is a
// no-op; points are paid only for newly crossed hundreds.
func (s *ActivityService) SaveTasbeeh(ctx context.Context, userID uint, count int) (*ApplyResult, error) {
	return s.apply(ctx, userID, func(rec *models.DailyActivity) (int, error) {
		return scoring.AddTasbeeh(rec, count)
	})
}

// apply runs one action against today's record. The mutator updates the
// in-memory record through the scoring rules and reports the point delta;
// apply persists both stores transactionally when anything changed.
func (s *ActivityService) apply(ctx context.Context, userID uint, mutate func(*models.DailyActivity) (int, error)) (*ApplyResult, error) {
	date := scoring.Today()
	var result ApplyResult
	var wrote bool

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}

		var rec models.DailyActivity
		err := tx.Where("user_id = ? AND date = ?", userID, date).First(&rec).Error
		created := false
		if errors.Is(err, gorm.ErrRecordNotFound) {
			rec = models.DailyActivity{UserID: userID, Date: date}
			created = true
		} else if err != nil {
			return err
		}

		before := rec
		delta, err := mutate(&rec)
		if err != nil {
			return err
		}
		if rec == before {
			// idempotent re-mark or zero quantity: no write
			result = ApplyResult{Activity: rec, User: user, Delta: 0}
			return nil
		}

		if created {
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
		} else {
			// Additive column updates so a concurrent action on the same
			// day merges instead of overwriting the whole record.
			updates := map[string]interface{}{
				"fajr":          gorm.Expr("fajr OR ?", rec.Fajr),
				"dhuhr":         gorm.Expr("dhuhr OR ?", rec.Dhuhr),
				"asr":           gorm.Expr("asr OR ?", rec.Asr),
				"maghrib":       gorm.Expr("maghrib OR ?", rec.Maghrib),
				"isha":          gorm.Expr("isha OR ?", rec.Isha),
				"prayer_count":  gorm.Expr("prayer_count + ?", rec.PrayerCount-before.PrayerCount),
				"quran_pages":   gorm.Expr("quran_pages + ?", rec.QuranPages-before.QuranPages),
				"tasbeeh_count": gorm.Expr("tasbeeh_count + ?", rec.TasbeehCount-before.TasbeehCount),
				"points":        gorm.Expr("points + ?", rec.Points-before.Points),
			}
			if err := tx.Model(&models.DailyActivity{}).Where("id = ?", rec.ID).Updates(updates).Error; err != nil {
				return err
			}
		}

		user.Streak = scoring.NextStreak(user.LastActivityDate, date, user.Streak)
		user.LastActivityDate = date
		if delta != 0 {
			user.TotalPoints += delta
			user.Level = scoring.Level(user.TotalPoints)
		}
		userUpdates := map[string]interface{}{
			"total_points":       gorm.Expr("total_points + ?", delta),
			"level":              user.Level,
			"streak":             user.Streak,
			"last_activity_date": user.LastActivityDate,
		}
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(userUpdates).Error; err != nil {
			return err
		}

		// Re-read committed truth so callers render what the store holds.
		if err := tx.Where("user_id = ? AND date = ?", userID, date).First(&rec).Error; err != nil {
			return err
		}
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		result = ApplyResult{Activity: rec, User: user, Delta: delta}
		wrote = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if wrote && s.notifier != nil {
		s.notifier.ActivityChanged(userID, date)
	}
	return &result, nil
}
