package score

import (
	"path/filepath"
	"testing"
	"time"

	"git.lost.host/meutraa/tapt/internal/pattern"
	"git.lost.host/meutraa/tapt/internal/trainer"
)

var testPattern = &pattern.Pattern{
	Name: "warmup",
	Targets: []trainer.Target{
		{ID: 0, Time: 500 * time.Millisecond},
		{ID: 1, Time: time.Second},
		{ID: 2, Time: 1500 * time.Millisecond},
	},
	Source: []byte("0.5\n1.0\n1.5\n"),
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := &DefaultScorer{}
	if err := s.Init(filepath.Join(t.TempDir(), "scores.db")); nil != err {
		t.Fatal("unable to open score db", err)
	}
	defer s.Deinit()

	opts := trainer.Options{Tolerance: 100 * time.Millisecond}
	presses := []trainer.Press{
		{TargetID: 0, Time: 512 * time.Millisecond, Delta: 12 * time.Millisecond, Matched: true},
		{TargetID: 1, Time: 980 * time.Millisecond, Delta: -20 * time.Millisecond, Matched: true},
		{TargetID: 2, Time: 1700 * time.Millisecond, Delta: 200 * time.Millisecond, Matched: false},
	}

	session, err := s.Save(testPattern, opts, presses)
	if nil != err {
		t.Fatal("unable to save session", err)
	}
	if session == "" {
		t.Fatal("empty session id")
	}

	histories, err := s.Load(testPattern)
	if nil != err {
		t.Fatal("unable to load sessions", err)
	}
	if len(histories) != 1 {
		t.Fatal("histories", histories)
	}
	h := histories[0]
	if h.Session != session || h.Tolerance != opts.Tolerance {
		t.Log("history", h)
		t.Fail()
	}
	if len(h.Times) != len(presses) {
		t.Fatal("times", h.Times)
	}
	for i, p := range presses {
		if h.Times[i] != p.Time {
			t.Log("stored", h.Times[i], "expected", p.Time)
			t.Fail()
		}
	}

	// A different pattern shares nothing
	other := &pattern.Pattern{Name: "other", Source: []byte("9.0\n")}
	histories, err = s.Load(other)
	if nil != err {
		t.Fatal(err)
	}
	if len(histories) != 0 {
		t.Log("histories for unrelated pattern", histories)
		t.Fail()
	}
}

func TestReplayReproducesVerdicts(t *testing.T) {
	opts := trainer.Options{Tolerance: 70 * time.Millisecond}
	times := []time.Duration{
		512 * time.Millisecond,
		992 * time.Millisecond,
		1512 * time.Millisecond,
		1520 * time.Millisecond, // second press on a consumed target
	}

	first, err := Replay(testPattern.Targets, opts, times)
	if nil != err {
		t.Fatal(err)
	}
	second, err := Replay(testPattern.Targets, opts, times)
	if nil != err {
		t.Fatal(err)
	}
	if len(first) != len(times) || len(second) != len(times) {
		t.Fatal("presses", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Log("first ", first[i])
			t.Log("second", second[i])
			t.Fail()
		}
	}
	if !first[0].Matched || first[0].TargetID != 0 ||
		!first[1].Matched || first[1].TargetID != 1 ||
		!first[2].Matched || first[2].TargetID != 2 {
		t.Log("verdicts", first)
		t.Fail()
	}
	if first[3].Matched || first[3].TargetID != trainer.NoTarget {
		t.Log("late duplicate", first[3])
		t.Fail()
	}
}
