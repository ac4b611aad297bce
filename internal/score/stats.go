package score

import (
	"math"
	"time"

	"git.lost.host/meutraa/tapt/internal/trainer"
)

// Stats summarizes one press log. Mean and Stdev are over the signed
// deltas of matched presses only; a single hit has no spread.
type Stats struct {
	Hits       int
	Misses     int
	TotalError time.Duration // sum of absolute deltas of hits
	Mean       time.Duration
	Stdev      time.Duration
}

func Calc(presses []trainer.Press) Stats {
	var st Stats
	var sum time.Duration
	for _, p := range presses {
		if !p.Matched {
			st.Misses++
			continue
		}
		st.Hits++
		sum += p.Delta
		if p.Delta < 0 {
			st.TotalError -= p.Delta
		} else {
			st.TotalError += p.Delta
		}
	}
	if st.Hits == 0 {
		return st
	}
	mean := float64(sum) / float64(st.Hits)
	st.Mean = time.Duration(mean)
	if st.Hits < 2 {
		return st
	}
	stdev := 0.0
	for _, p := range presses {
		if !p.Matched {
			continue
		}
		xi := float64(p.Delta) - mean
		stdev += xi * xi
	}
	stdev /= float64(st.Hits - 1)
	st.Stdev = time.Duration(math.Sqrt(stdev))
	return st
}
