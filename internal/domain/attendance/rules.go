package attendance

import (
	"fmt"
	"time"
)

type SeededPolicy string

const (
	// SeededOverwrite lets check-in replace a pre-seeded status with present/late.
	SeededOverwrite SeededPolicy = "overwrite"
	// SeededPreserve keeps a pre-seeded status and only records the check-in time.
	SeededPreserve SeededPolicy = "preserve"
)

func (p SeededPolicy) Valid() bool {
	return p == SeededOverwrite || p == SeededPreserve
}

// Rules configures the daily check-in engine.
type Rules struct {
	// LateAfter is an offset from midnight. A check-in strictly after it is late.
	LateAfter    time.Duration
	Location     *time.Location
	SeededPolicy SeededPolicy
}

func DefaultRules() Rules {
	return Rules{
		LateAfter:    10*time.Hour + 15*time.Minute,
		Location:     time.Local,
		SeededPolicy: SeededOverwrite,
	}
}

// ParseRules builds Rules from their configuration strings. lateAfter is HH:MM.
func ParseRules(lateAfter string, loc *time.Location, policy string) (Rules, error) {
	t, err := time.Parse(TimeLayout, lateAfter)
	if err != nil {
		return Rules{}, fmt.Errorf("late threshold %q: %w", lateAfter, err)
	}
	p := SeededPolicy(policy)
	if !p.Valid() {
		return Rules{}, fmt.Errorf("unknown seeded policy %q", policy)
	}
	if loc == nil {
		loc = time.Local
	}
	return Rules{
		LateAfter:    time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute,
		Location:     loc,
		SeededPolicy: p,
	}, nil
}

// StatusAt returns late when t's time of day, to the second, is after LateAfter.
func (r Rules) StatusAt(t time.Time) Status {
	h, m, s := t.Clock()
	sinceMidnight := time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second
	if sinceMidnight > r.LateAfter {
		return StatusLate
	}
	return StatusPresent
}

// In converts t to the rules' timezone.
func (r Rules) In(t time.Time) time.Time {
	if r.Location == nil {
		return t
	}
	return t.In(r.Location)
}
