package trainer

import (
	"fmt"
	"time"
)

type Options struct {
	// Tolerance is the symmetric window around a target time within which
	// a press counts as a hit. Must be positive.
	Tolerance time.Duration

	// PreRoll is the countdown before elapsed time reaches zero. No cues
	// fire and no presses are accepted during it. Must not be negative.
	PreRoll time.Duration
}

func (o Options) validate() error {
	if o.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance %v is not positive", ErrInvalidOptions, o.Tolerance)
	}
	if o.PreRoll < 0 {
		return fmt.Errorf("%w: pre-roll %v is negative", ErrInvalidOptions, o.PreRoll)
	}
	return nil
}

// Callbacks are the only boundary a surrounding UI/audio layer implements.
// All fields are optional. They are invoked synchronously on the goroutine
// that caused them, with the run lock held, so they must not call back into
// the Run.
type Callbacks struct {
	CueFired     func(targetID int)
	PressResult  func(p Press)
	StateChanged func(s State)
	AutoStopped  func()
}
