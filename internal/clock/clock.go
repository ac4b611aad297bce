package clock

import (
	"errors"
	"strings"
	"time"
)

// ErrUnavailable is returned when the runtime exposes no monotonic reading.
var ErrUnavailable = errors.New("monotonic clock unavailable")

// Clock is the time source for a run. Readings are strictly non-decreasing
// and immune to wall clock adjustments.
type Clock interface {
	Now() time.Time
}

type monotonic struct{}

func (monotonic) Now() time.Time { return time.Now() }

// New returns the system monotonic clock.
func New() (Clock, error) {
	// time.Time carries a monotonic reading as " m=±…" in its string form
	// on supported platforms. No reading means Sub would fall back to the
	// wall clock, which we must not trust.
	if !strings.Contains(time.Now().String(), " m=") {
		return nil, ErrUnavailable
	}
	return monotonic{}, nil
}

// Manual is a hand-stepped clock for tests and replays.
type Manual struct {
	t time.Time
}

func NewManual() *Manual {
	// Arbitrary fixed origin, moves only on Advance/Set
	return &Manual{t: time.Unix(1000, 0)}
}

func (m *Manual) Now() time.Time { return m.t }

func (m *Manual) Advance(d time.Duration) time.Time {
	m.t = m.t.Add(d)
	return m.t
}

func (m *Manual) Set(t time.Time) { m.t = t }
