package progression

import "time"

// Clock supplies the calendar date and hour used by streak, challenge and
// time-of-day achievement rules. Injected so tests control time.
type Clock interface {
	Today() time.Time
	Hour() int
}

type utcClock struct{}

// NewUTCClock returns a Clock backed by the system wall clock in UTC.
func NewUTCClock() Clock {
	return utcClock{}
}

func (utcClock) Today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

func (utcClock) Hour() int {
	return time.Now().UTC().Hour()
}

// FixedClock is a Clock pinned to one date and hour, for tests.
type FixedClock struct {
	Date time.Time
	H    int
}

func (c FixedClock) Today() time.Time {
	return c.Date.UTC().Truncate(24 * time.Hour)
}

func (c FixedClock) Hour() int {
	return c.H
}

const dateLayout = "2006-01-02"
