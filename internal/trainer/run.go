package trainer

import (
	"sync"
	"time"

	"git.lost.host/meutraa/tapt/internal/clock"
)

// AutoStopGrace is how long after the last target the run keeps accepting
// late presses before stopping itself.
const AutoStopGrace = 2 * time.Second

type State uint8

const (
	StateIdle State = iota
	StatePreRoll
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePreRoll:
		return "preroll"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// Run owns all mutable state of one playback: the elapsed clock, the
// cue-fired markers and the matched markers. Ticks arrive from whatever
// periodic driver the caller uses (frame loop, timer, test stepping);
// presses may arrive from any goroutine. One mutex serializes both, which
// is what makes match-and-mark atomic with respect to racing presses.
type Run struct {
	mu sync.Mutex

	clk     clock.Clock
	targets []Target // ascending by time
	opts    Options
	cb      Callbacks

	state   State
	origin  time.Time
	elapsed time.Duration

	cueFired []bool // indexed like targets
	matched  []bool // indexed like targets
}

// NewRun configures a run. The target set is copied and sorted; it is
// immutable for the lifetime of the run. An empty target set or bad
// options are rejected here, before anything can start.
func NewRun(clk clock.Clock, targets []Target, opts Options, cb Callbacks) (*Run, error) {
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}
	if err := opts.validate(); nil != err {
		return nil, err
	}
	return &Run{
		clk:      clk,
		targets:  sortTargets(targets),
		opts:     opts,
		cb:       cb,
		state:    StateIdle,
		cueFired: make([]bool, len(targets)),
		matched:  make([]bool, len(targets)),
	}, nil
}

func (r *Run) setState(s State) {
	if r.state == s {
		return
	}
	r.state = s
	if nil != r.cb.StateChanged {
		r.cb.StateChanged(s)
	}
}

// Start begins a run from Idle or Stopped; anywhere else it is a no-op.
// The tick cadence itself is external: the caller must begin invoking
// Tick after Start returns.
func (r *Run) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateIdle && r.state != StateStopped {
		return
	}
	r.origin = r.clk.Now()
	r.elapsed = -r.opts.PreRoll
	for i := range r.targets {
		r.cueFired[i] = false
		r.matched[i] = false
	}
	if r.opts.PreRoll > 0 {
		r.setState(StatePreRoll)
	} else {
		r.setState(StateRunning)
	}
}

// Stop halts the run. Idempotent; valid from any state.
func (r *Run) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

func (r *Run) stopLocked() {
	if r.state == StatePreRoll || r.state == StateRunning {
		r.setState(StateStopped)
	}
}

// Reset stops the run and returns to Idle with cleared markers.
func (r *Run) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
	r.elapsed = 0
	for i := range r.targets {
		r.cueFired[i] = false
		r.matched[i] = false
	}
	r.setState(StateIdle)
}

// Tick advances the run to now. It recomputes elapsed time, promotes
// PreRoll to Running once zero is crossed, fires every due unfired cue,
// and evaluates auto-stop. Returns false once the run no longer needs
// ticking, so a driver can use it directly as its continue condition.
//
// A delayed tick fires however many cues became due in the gap; cue
// dispatch does not wait for one tick per target.
func (r *Run) Tick(now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StatePreRoll && r.state != StateRunning {
		return false
	}

	e := now.Sub(r.origin) - r.opts.PreRoll
	if e > r.elapsed {
		r.elapsed = e
	}

	if r.state == StatePreRoll && r.elapsed >= 0 {
		r.setState(StateRunning)
	}
	if r.state != StateRunning {
		return true
	}

	for i := range r.targets {
		if r.cueFired[i] || r.elapsed < r.targets[i].Time {
			continue
		}
		r.cueFired[i] = true
		if nil != r.cb.CueFired {
			r.cb.CueFired(r.targets[i].ID)
		}
	}

	if r.elapsed >= r.targets[len(r.targets)-1].Time+AutoStopGrace {
		r.setState(StateStopped)
		if nil != r.cb.AutoStopped {
			r.cb.AutoStopped()
		}
		return false
	}
	return true
}

// SubmitPress judges a press that occurred at now on the run's clock.
// Accepted only while Running; the returned bool reports acceptance.
// Early (PreRoll) and late (Stopped) presses are dropped unrecorded.
func (r *Run) SubmitPress(now time.Time) (Press, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRunning {
		return Press{}, false
	}
	t := now.Sub(r.origin) - r.opts.PreRoll
	p := r.matchLocked(t)
	if nil != r.cb.PressResult {
		r.cb.PressResult(p)
	}
	return p, true
}

// Snapshot is a consistent read of everything a renderer needs per frame.
type Snapshot struct {
	State   State
	Elapsed time.Duration
	Matched []bool // indexed like Targets()
}

func (r *Run) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := make([]bool, len(r.matched))
	copy(m, r.matched)
	return Snapshot{State: r.state, Elapsed: r.elapsed, Matched: m}
}

// Targets returns the sorted target set. The slice is shared and must be
// treated as read-only; the set never changes during a run.
func (r *Run) Targets() []Target { return r.targets }

func (r *Run) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Run) Elapsed() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.elapsed
}
