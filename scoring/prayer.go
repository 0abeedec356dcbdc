package scoring

import (
	"fmt"
	"strings"

	"github.com/rafiqapp/rafiq/models"
)

// Prayer identifies one of the five daily prayers.
type Prayer int

const (
	Fajr Prayer = iota
	Dhuhr
	Asr
	Maghrib
	Isha

	prayerCount = 5
)

var prayerNames = [prayerCount]string{"fajr", "dhuhr", "asr", "maghrib", "isha"}

func (p Prayer) String() string {
	if p < Fajr || p > Isha {
		return "unknown"
	}
	return prayerNames[p]
}

// ParsePrayer maps a wire name onto its Prayer value, case-insensitively.
func ParsePrayer(name string) (Prayer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fajr":
		return Fajr, nil
	case "dhuhr":
		return Dhuhr, nil
	case "asr":
		return Asr, nil
	case "maghrib":
		return Maghrib, nil
	case "isha":
		return Isha, nil
	}
	return 0, fmt.Errorf("unknown prayer %q", name)
}

// flagOf reads the completion flag for p from a daily activity record through
// a fixed table rather than string-keyed field access.
func flagOf(rec *models.DailyActivity, p Prayer) *bool {
	switch p {
	case Fajr:
		return &rec.Fajr
	case Dhuhr:
		return &rec.Dhuhr
	case Asr:
		return &rec.Asr
	case Maghrib:
		return &rec.Maghrib
	case Isha:
		return &rec.Isha
	}
	return nil
}

// CountPrayers recomputes the derived prayer counter from the five flags.
func CountPrayers(rec *models.DailyActivity) int {
	n := 0
	for p := Fajr; p <= Isha; p++ {
		if *flagOf(rec, p) {
			n++
		}
	}
	return n
}
