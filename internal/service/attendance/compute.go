package attendance

import (
	"fmt"
	"math"
	"time"

	"github.com/teamclock/attendance-api/internal/domain/attendance"
)

// hundredthHour is 0.01 h.
const hundredthHour = 36 * time.Second

// RoundHours converts d to hours rounded half-up to two decimals. The
// rounding is done on the integer duration so 0.005 h (18s) always rounds up.
// Non-positive durations yield 0.
func RoundHours(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	hundredths := (d + hundredthHour/2) / hundredthHour
	return float64(hundredths) / 100
}

// WorkedHours places the HH:MM check-in on now's calendar day and returns
// the rounded hours elapsed until now.
func WorkedHours(checkIn string, now time.Time) (float64, error) {
	t, err := time.Parse(attendance.TimeLayout, checkIn)
	if err != nil {
		return 0, fmt.Errorf("invalid check-in time %q: %w", checkIn, err)
	}
	start := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
	return RoundHours(now.Sub(start)), nil
}

// roundTotal rounds a sum of already rounded hours back to two decimals.
func roundTotal(h float64) float64 {
	return math.Round(h*100) / 100
}

// monthRange returns the first and last calendar day of the month as dates.
func monthRange(year int, month time.Month) (from, to string) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format(attendance.DateLayout), last.Format(attendance.DateLayout)
}
