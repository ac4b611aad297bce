package score

import (
	"testing"
	"time"

	"git.lost.host/meutraa/tapt/internal/trainer"
)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func TestCalc(t *testing.T) {
	presses := []trainer.Press{
		{TargetID: 0, Delta: ms(10), Matched: true},
		{TargetID: 1, Delta: ms(-30), Matched: true},
		{TargetID: 2, Delta: ms(20), Matched: true},
		{TargetID: 3, Delta: ms(400), Matched: false},
	}
	st := Calc(presses)
	if st.Hits != 3 || st.Misses != 1 {
		t.Log("hits", st.Hits, "misses", st.Misses)
		t.Fail()
	}
	if st.TotalError != ms(60) {
		t.Log("total error", st.TotalError)
		t.Fail()
	}
	if st.Mean != ms(0) {
		t.Log("mean", st.Mean)
		t.Fail()
	}
	// Sample stdev of {10,-30,20} ms around 0 is sqrt(700) ≈ 26.457ms
	want := 26457 * time.Microsecond
	if d := st.Stdev - want; d < -time.Microsecond || d > time.Microsecond {
		t.Log("stdev", st.Stdev)
		t.Fail()
	}
}

func TestCalcDegenerate(t *testing.T) {
	if st := Calc(nil); st.Hits != 0 || st.Mean != 0 || st.Stdev != 0 {
		t.Log("empty", st)
		t.Fail()
	}
	one := []trainer.Press{{TargetID: 0, Delta: ms(15), Matched: true}}
	st := Calc(one)
	if st.Hits != 1 || st.Mean != ms(15) || st.Stdev != 0 {
		t.Log("single hit", st)
		t.Fail()
	}
}
