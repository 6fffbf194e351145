package memory

import (
	"testing"
	"time"
)

type clockProbe struct {
	ticks    []int
	warnings []bool
	expired  int
}

func newProbedClock(warnAt int) (*Clock, *TickScheduler, *clockProbe) {
	sched := NewTickScheduler()
	p := &clockProbe{}
	c := NewClock(sched, warnAt,
		func(remaining int, warning bool) {
			p.ticks = append(p.ticks, remaining)
			p.warnings = append(p.warnings, warning)
		},
		func() { p.expired++ },
	)
	return c, sched, p
}

func TestClockCountsDownAndExpiresOnce(t *testing.T) {
	c, sched, p := newProbedClock(1)
	c.Start(3)

	sched.Advance(10 * time.Second)
	if want := []int{2, 1, 0}; len(p.ticks) != 3 || p.ticks[0] != want[0] || p.ticks[2] != want[2] {
		t.Fatalf("ticks = %v, want %v", p.ticks, want)
	}
	if p.warnings[0] || !p.warnings[1] || !p.warnings[2] {
		t.Errorf("warnings = %v, want [false true true]", p.warnings)
	}
	if p.expired != 1 {
		t.Errorf("expired %d times, want 1", p.expired)
	}
	if c.Running() || c.Remaining() != 0 {
		t.Errorf("Running=%v Remaining=%d after expiry", c.Running(), c.Remaining())
	}
}

func TestClockPauseKeepsPartialSecond(t *testing.T) {
	c, sched, _ := newProbedClock(0)
	c.Start(10)

	sched.Advance(1500 * time.Millisecond)
	if c.Remaining() != 9 {
		t.Fatalf("Remaining = %d, want 9", c.Remaining())
	}

	c.Pause()
	sched.Advance(time.Minute)
	if c.Remaining() != 9 || c.Running() {
		t.Fatalf("paused clock moved: remaining=%d running=%v", c.Remaining(), c.Running())
	}

	c.Resume()
	sched.Advance(499 * time.Millisecond)
	if c.Remaining() != 9 {
		t.Fatalf("Remaining = %d before the carried half second elapsed", c.Remaining())
	}
	sched.Advance(time.Millisecond)
	if c.Remaining() != 8 {
		t.Errorf("Remaining = %d, want 8", c.Remaining())
	}
}

func TestClockRepeatedPauses(t *testing.T) {
	c, sched, _ := newProbedClock(0)
	c.Start(5)

	// Four 250ms slices separated by pauses add up to one second.
	for range 4 {
		sched.Advance(250 * time.Millisecond)
		c.Pause()
		sched.Advance(3 * time.Second)
		c.Resume()
	}
	if c.Remaining() != 4 {
		t.Errorf("Remaining = %d, want 4", c.Remaining())
	}
}

func TestClockAddTime(t *testing.T) {
	c, _, _ := newProbedClock(5)
	c.Set(7)
	if c.Warning() {
		t.Error("7s should not warn at threshold 5")
	}

	c.AddTime(10)
	if c.Remaining() != 17 || c.Warning() {
		t.Errorf("Remaining = %d warning=%v, want 17 false", c.Remaining(), c.Warning())
	}

	c.AddTime(-100)
	if c.Remaining() != 0 {
		t.Errorf("Remaining = %d, want clamp at 0", c.Remaining())
	}
}

func TestClockSetDoesNotStart(t *testing.T) {
	c, sched, p := newProbedClock(0)
	c.Set(4)
	sched.Advance(10 * time.Second)
	if c.Running() || c.Remaining() != 4 || len(p.ticks) != 0 {
		t.Errorf("Set clock ticked: running=%v remaining=%d ticks=%v", c.Running(), c.Remaining(), p.ticks)
	}
	if sched.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", sched.Pending())
	}
}

func TestClockStopDropsTimer(t *testing.T) {
	c, sched, p := newProbedClock(0)
	c.Start(3)
	sched.Advance(500 * time.Millisecond)
	c.Stop()
	sched.Advance(10 * time.Second)
	if len(p.ticks) != 0 || p.expired != 0 {
		t.Errorf("stopped clock ticked %v expired %d", p.ticks, p.expired)
	}
}
