package field

import "time"

// Clock turns frame time from a render loop into player ticks.
type Clock struct {
	Period time.Duration
	acc    time.Duration
}

func NewClock(period time.Duration) *Clock {
	if period <= 0 {
		period = TickPeriod
	}
	return &Clock{Period: period}
}

func (c *Clock) Reset() { c.acc = 0 }

// Advance adds dt and ticks p once a full period has elapsed. At most one
// tick happens per call; the remainder carries over. Time does not
// accumulate while p is paused.
func (c *Clock) Advance(p *Player, dt time.Duration) bool {
	if !p.Playing() {
		c.acc = 0
		return false
	}
	c.acc += dt
	if c.acc < c.Period {
		return false
	}
	c.acc %= c.Period
	return p.Tick()
}
