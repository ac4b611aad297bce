package pattern

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sample = `# warm-up, quarter notes at 120bpm
@tolerance 80ms
@preroll 2s

0.5
1.0  downbeat
1.5
2.0  downbeat two
`

func TestParse(t *testing.T) {
	pat, err := parse([]byte(sample))
	if nil != err {
		t.Fatal("unable to parse pattern", err)
	}
	if pat.Tolerance != 80*time.Millisecond || pat.PreRoll != 2*time.Second {
		t.Log("tolerance", pat.Tolerance, "preroll", pat.PreRoll)
		t.Fail()
	}
	want := []time.Duration{
		500 * time.Millisecond,
		time.Second,
		1500 * time.Millisecond,
		2 * time.Second,
	}
	if len(pat.Targets) != len(want) {
		t.Fatal("targets", pat.Targets)
	}
	for i, tgt := range pat.Targets {
		if tgt.ID != i || tgt.Time != want[i] {
			t.Log("target", i, tgt)
			t.Fail()
		}
	}
	if pat.Labels[1] != "downbeat" || pat.Labels[3] != "downbeat two" {
		t.Log("labels", pat.Labels)
		t.Fail()
	}
}

func TestParseRejects(t *testing.T) {
	bad := map[string]string{
		"empty":             "# nothing here\n",
		"negative time":     "-0.5\n",
		"garbage time":      "abc\n",
		"unknown directive": "@swing 10ms\n0.5\n",
		"bad duration":      "@tolerance fast\n0.5\n",
	}
	for name, content := range bad {
		if _, err := parse([]byte(content)); nil == err {
			t.Log(name, "accepted")
			t.Fail()
		}
	}
	if _, err := parse([]byte("")); !errors.Is(err, ErrEmpty) {
		t.Log("empty file", err)
		t.Fail()
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "warmup.tap")
	if err := os.WriteFile(file, []byte(sample), 0o644); nil != err {
		t.Fatal(err)
	}
	p := &DefaultParser{}
	pat, err := p.Parse(file)
	if nil != err {
		t.Fatal(err)
	}
	if pat.Name != "warmup" {
		t.Log("name", pat.Name)
		t.Fail()
	}
	if string(pat.Source) != sample {
		t.Log("source not preserved")
		t.Fail()
	}

	if _, err := p.Parse(filepath.Join(dir, "missing.tap")); nil == err {
		t.Log("missing file accepted")
		t.Fail()
	}
}
