package clock

import (
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	c, err := New()
	if nil != err {
		t.Fatal("expected a monotonic clock on this platform", err)
	}
	a := c.Now()
	b := c.Now()
	if b.Before(a) {
		t.Log("first ", a)
		t.Log("second", b)
		t.Fail()
	}
}

func TestManual(t *testing.T) {
	m := NewManual()
	start := m.Now()
	if m.Now() != start {
		t.Fatal("manual clock moved on its own")
	}
	m.Advance(250 * time.Millisecond)
	if d := m.Now().Sub(start); d != 250*time.Millisecond {
		t.Log("advanced by", d)
		t.Fail()
	}
	m.Advance(-time.Second) // replays may rewind between runs
	m.Set(start)
	if m.Now() != start {
		t.Fail()
	}
}
