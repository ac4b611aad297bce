package score

import (
	"time"

	"git.lost.host/meutraa/tapt/internal/pattern"
	"git.lost.host/meutraa/tapt/internal/trainer"
)

type Scorer interface {
	Init(path string) error
	Deinit()

	// Save the press log of one completed run. Returns the session id.
	Save(pat *pattern.Pattern, opts trainer.Options, presses []trainer.Press) (string, error)

	// Load all previous sessions recorded for this pattern.
	Load(pat *pattern.Pattern) ([]History, error)
}

// History is one stored session. Only the press times are kept; verdicts
// are recomputed by replaying them against the pattern, which the matcher
// guarantees is deterministic.
type History struct {
	Session   string
	Sum       string
	Tolerance time.Duration
	Times     []time.Duration // elapsed press times, in order
}
