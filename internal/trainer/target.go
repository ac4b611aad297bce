package trainer

import (
	"sort"
	"time"
)

// Target is a single moment the user should press at.
type Target struct {
	ID   int           // Unique and stable for the run
	Time time.Duration // Offset from run start
}

// sortTargets orders targets ascending by time. The sort is stable so
// same-time targets keep their pattern order, which keeps matching and
// replay deterministic.
func sortTargets(targets []Target) []Target {
	ts := make([]Target, len(targets))
	copy(ts, targets)
	sort.SliceStable(ts, func(i, j int) bool {
		return ts[i].Time < ts[j].Time
	})
	return ts
}
