package scoring

import "testing"

func TestNextStreak(t *testing.T) {
	tests := []struct {
		name    string
		last    string
		today   string
		current int
		want    int
	}{
		{"first ever activity", "", "2025-03-10", 0, 1},
		{"continued from yesterday", "2025-03-09", "2025-03-10", 4, 5},
		{"same day stays put", "2025-03-10", "2025-03-10", 4, 4},
		{"gap resets", "2025-03-07", "2025-03-10", 9, 1},
		{"month rollover", "2025-02-28", "2025-03-01", 2, 3},
		{"same day with zero streak repairs to one", "2025-03-10", "2025-03-10", 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextStreak(tt.last, tt.today, tt.current); got != tt.want {
				t.Errorf("NextStreak(%q, %q, %d) = %d, want %d", tt.last, tt.today, tt.current, got, tt.want)
			}
		})
	}
}
