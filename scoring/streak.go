package scoring

import "time"

// DateLayout is the calendar-day key used by daily activity rows, in the
// client's local timezone.
const DateLayout = "2006-01-02"

// Today returns the current calendar-day key.
func Today() string {
	return time.Now().Format(DateLayout)
}

// NextStreak computes the consecutive-day streak to record when a
// point-earning action lands on today. A streak continues when the last
// qualifying activity was exactly yesterday, stays put when it was already
// today, and resets to 1 after any gap.
func NextStreak(lastActivityDate, today string, current int) int {
	if lastActivityDate == today {
		if current < 1 {
			return 1
		}
		return current
	}
	t, err := time.Parse(DateLayout, today)
	if err != nil {
		return 1
	}
	if lastActivityDate == t.AddDate(0, 0, -1).Format(DateLayout) {
		return current + 1
	}
	return 1
}
