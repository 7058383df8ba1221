package clock

import "time"

// Clock supplies the current time. Services take a Clock instead of calling
// time.Now so that date-sensitive rules can be tested deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// System returns a Clock backed by time.Now.
func System() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Fixed is a Clock that always reports the same instant. Set moves it.
type Fixed struct {
	t time.Time
}

func NewFixed(t time.Time) *Fixed {
	return &Fixed{t: t}
}

func (f *Fixed) Now() time.Time {
	return f.t
}

func (f *Fixed) Set(t time.Time) {
	f.t = t
}

func (f *Fixed) Advance(d time.Duration) {
	f.t = f.t.Add(d)
}
