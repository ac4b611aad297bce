package config

import (
	"testing"
	"time"

	"git.lost.host/meutraa/tapt/internal/pattern"
)

func TestOptionsPrecedence(t *testing.T) {
	cfg := &Config{ToleranceMS: 100, PreRollMS: 2000}

	// Flags unset (kingpin not parsed in tests, set the sentinels by hand)
	*Tolerance = 0
	*PreRoll = -time.Millisecond

	plain := &pattern.Pattern{}
	o := Options(cfg, plain)
	if o.Tolerance != 100*time.Millisecond || o.PreRoll != 2*time.Second {
		t.Log("config only", o)
		t.Fail()
	}

	directive := &pattern.Pattern{Tolerance: 80 * time.Millisecond, PreRoll: time.Second}
	o = Options(cfg, directive)
	if o.Tolerance != 80*time.Millisecond || o.PreRoll != time.Second {
		t.Log("pattern beats config", o)
		t.Fail()
	}

	*Tolerance = 50 * time.Millisecond
	*PreRoll = 0
	o = Options(cfg, directive)
	if o.Tolerance != 50*time.Millisecond || o.PreRoll != 0 {
		t.Log("flags beat pattern", o)
		t.Fail()
	}

	*Tolerance = 0
	*PreRoll = -time.Millisecond
}

func TestJudge(t *testing.T) {
	SetJudgements(100 * time.Millisecond)

	cases := map[time.Duration]int{
		0:                      0,
		5 * time.Millisecond:   0,
		6 * time.Millisecond:   1,
		20 * time.Millisecond:  2,
		41 * time.Millisecond:  4,
		100 * time.Millisecond: 5,
		101 * time.Millisecond: 6,
		time.Hour:              6,
	}
	for d, expected := range cases {
		if i := Judge(d); i != expected {
			t.Log("delta", d, "judged", i, "expected", expected)
			t.Fail()
		}
	}
}
