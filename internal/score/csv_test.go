package score

import (
	"strings"
	"testing"
	"time"

	"git.lost.host/meutraa/tapt/internal/trainer"
)

func TestExportCSV(t *testing.T) {
	presses := []trainer.Press{
		{TargetID: 0, Time: 512 * time.Millisecond, Delta: 12 * time.Millisecond, Matched: true},
		{TargetID: 1, Time: 1450 * time.Millisecond, Delta: 450 * time.Millisecond, Matched: false},
		{TargetID: trainer.NoTarget, Time: 2 * time.Second},
	}
	var b strings.Builder
	if err := ExportCSV(&b, "abc-123", presses); nil != err {
		t.Fatal(err)
	}
	want := "session,press_s,target_id,delta_ms,matched\n" +
		"abc-123,0.512,0,12.0,true\n" +
		"abc-123,1.450,1,450.0,false\n" +
		"abc-123,2.000,,0.0,false\n"
	if b.String() != want {
		t.Log("out     ", b.String())
		t.Log("expected", want)
		t.Fail()
	}
}
