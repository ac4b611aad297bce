package trainer

import (
	"time"
)

// NoTarget is reported when a press has no target left to refer to.
const NoTarget = -1

// Press is the verdict for one accepted press. Immutable once created.
type Press struct {
	TargetID int           // Matched or nearest target, NoTarget if none remain
	Time     time.Duration // Elapsed time of the press
	Delta    time.Duration // Signed press minus target; zero when TargetID is NoTarget
	Matched  bool
}

func abs(x time.Duration) time.Duration {
	if x < 0 {
		return -x
	}
	return x
}

// matchLocked assigns the press at elapsed time t to the best unmatched
// target. Already-matched targets never participate again, so two presses
// racing for one target cannot both succeed, and a press never claims more
// than one target even when two targets sit closer together than twice the
// tolerance.
//
// Out of tolerance, the nearest unmatched target is still reported so a
// miss carries its error magnitude. When every target is matched the press
// reports NoTarget with a zero delta.
//
// Callers hold r.mu; the scan and the marker write are one atomic step.
func (r *Run) matchLocked(t time.Duration) Press {
	best := -1
	bestAbs := time.Duration(0)
	nearest := -1
	nearestAbs := time.Duration(0)
	nearestDelta := time.Duration(0)

	for i := range r.targets {
		if r.matched[i] {
			continue
		}
		d := t - r.targets[i].Time
		a := abs(d)
		if nearest >= 0 && a >= nearestAbs {
			// Targets are sorted, distances only grow from here.
			// Strict comparison keeps the earlier target on a tie.
			break
		}
		nearest, nearestAbs, nearestDelta = i, a, d
		if a <= r.opts.Tolerance && (best < 0 || a < bestAbs) {
			best, bestAbs = i, a
		}
	}

	if best >= 0 {
		r.matched[best] = true
		return Press{
			TargetID: r.targets[best].ID,
			Time:     t,
			Delta:    t - r.targets[best].Time,
			Matched:  true,
		}
	}
	if nearest >= 0 {
		return Press{
			TargetID: r.targets[nearest].ID,
			Time:     t,
			Delta:    nearestDelta,
			Matched:  false,
		}
	}
	return Press{TargetID: NoTarget, Time: t}
}
