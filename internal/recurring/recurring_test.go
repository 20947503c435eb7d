package recurring

import (
	"errors"
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNext(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		interval Interval
		want     string
	}{
		{"daily", "2024-03-10", Daily, "2024-03-11"},
		{"daily across month end", "2024-01-31", Daily, "2024-02-01"},
		{"weekly", "2024-03-10", Weekly, "2024-03-17"},
		{"weekly across year end", "2023-12-28", Weekly, "2024-01-04"},
		// Jan 31 + 1 month follows Go's AddDate normalization.
		{"monthly overflow leap year", "2024-01-31", Monthly, "2024-03-02"},
		{"monthly overflow non-leap", "2023-01-31", Monthly, "2023-03-03"},
		{"monthly plain", "2024-04-15", Monthly, "2024-05-15"},
		{"yearly", "2024-06-01", Yearly, "2025-06-01"},
		// Feb 29 one year later normalizes to Mar 1.
		{"yearly from leap day", "2024-02-29", Yearly, "2025-03-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Next(date(tt.start), tt.interval)
			if err != nil {
				t.Fatalf("Next() error: %v", err)
			}
			if got != date(tt.want) {
				t.Errorf("Next(%s, %s) = %s, want %s", tt.start, tt.interval, got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestNextInvalidInterval(t *testing.T) {
	_, err := Next(date("2024-01-01"), Interval("FORTNIGHTLY"))
	if !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("want ErrInvalidInterval, got %v", err)
	}
}

func TestParse(t *testing.T) {
	for _, ok := range []string{"DAILY", "WEEKLY", "MONTHLY", "YEARLY"} {
		if _, err := Parse(ok); err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", ok, err)
		}
	}
	for _, bad := range []string{"", "daily", "HOURLY"} {
		if _, err := Parse(bad); !errors.Is(err, ErrInvalidInterval) {
			t.Errorf("Parse(%q) want ErrInvalidInterval, got %v", bad, err)
		}
	}
}
