package memory

import "time"

// Clock counts a level's time budget down one second at a time.
// Pausing keeps the part of the current second that already elapsed, so a
// pause never loses or double-counts time.
type Clock struct {
	sched     Scheduler
	warnAt    int
	remaining int
	running   bool
	timer     Timer
	armedAt   time.Duration // virtual time the current second started (or resumed)
	carried   time.Duration // part of the current second elapsed before a pause

	onTick   func(remaining int, warning bool)
	onExpire func()
}

// NewClock creates a stopped clock that warns once remaining <= warnAt.
func NewClock(sched Scheduler, warnAt int, onTick func(int, bool), onExpire func()) *Clock {
	if onTick == nil {
		onTick = func(int, bool) {}
	}
	if onExpire == nil {
		onExpire = func() {}
	}
	return &Clock{
		sched:    sched,
		warnAt:   warnAt,
		onTick:   onTick,
		onExpire: onExpire,
	}
}

// Start resets the clock to total seconds and starts ticking.
func (c *Clock) Start(total int) {
	c.Stop()
	c.remaining = max(total, 0)
	if c.remaining == 0 {
		c.onExpire()
		return
	}
	c.running = true
	c.arm()
}

// Set stops the clock and loads total seconds without starting it.
func (c *Clock) Set(total int) {
	c.Stop()
	c.remaining = max(total, 0)
}

// Pause stops ticking and remembers the elapsed part of the current second.
func (c *Clock) Pause() {
	if !c.running {
		return
	}
	c.carried += c.sched.Now() - c.armedAt
	if c.carried > time.Second {
		c.carried = time.Second
	}
	c.disarm()
	c.running = false
}

// Resume continues a paused clock from where it stopped.
func (c *Clock) Resume() {
	if c.running || c.remaining <= 0 {
		return
	}
	c.running = true
	c.arm()
}

// Stop halts the clock and drops any partial second.
func (c *Clock) Stop() {
	c.disarm()
	c.running = false
	c.carried = 0
}

// AddTime adjusts the remaining seconds. The result is clamped at zero.
func (c *Clock) AddTime(seconds int) {
	c.remaining = max(c.remaining+seconds, 0)
}

// Remaining returns the whole seconds left.
func (c *Clock) Remaining() int {
	return c.remaining
}

// Running reports whether the clock is ticking.
func (c *Clock) Running() bool {
	return c.running
}

// Warning reports whether the remaining time is at or under the threshold.
func (c *Clock) Warning() bool {
	return c.remaining <= c.warnAt
}

func (c *Clock) arm() {
	c.armedAt = c.sched.Now()
	c.timer = c.sched.After(time.Second-c.carried, c.tick)
}

func (c *Clock) disarm() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Clock) tick() {
	c.timer = nil
	c.carried = 0
	c.remaining--
	if c.remaining <= 0 {
		c.remaining = 0
		c.running = false
		c.onTick(0, c.Warning())
		c.onExpire()
		return
	}
	c.arm()
	c.onTick(c.remaining, c.Warning())
}
