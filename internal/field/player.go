package field

import "time"

// TickPeriod is the autoplay interval.
const TickPeriod = 800 * time.Millisecond

// Player selects the active time slice of a vector-field set.
// The zero value is Paused at index 0 with no frames.
type Player struct {
	index   int
	count   int
	playing bool
}

func NewPlayer(count int) *Player {
	p := &Player{}
	p.SetCount(count)
	return p
}

func (p *Player) Index() int    { return p.index }
func (p *Player) Count() int    { return p.count }
func (p *Player) Playing() bool { return p.playing }

// SetCount adopts a new frame count and clamps the index into range.
func (p *Player) SetCount(n int) {
	if n < 0 {
		n = 0
	}
	p.count = n
	p.SetIndex(p.index)
}

// SetIndex moves to frame i, clamped to [0, count-1]. Autoplay is unaffected.
func (p *Player) SetIndex(i int) {
	if i >= p.count {
		i = p.count - 1
	}
	if i < 0 {
		i = 0
	}
	p.index = i
}

// Step scrubs by delta frames.
func (p *Player) Step(delta int) {
	p.SetIndex(p.index + delta)
}

func (p *Player) Play()  { p.playing = true }
func (p *Player) Pause() { p.playing = false }

func (p *Player) Toggle() {
	p.playing = !p.playing
}

// Reset returns to frame 0 and stops autoplay.
func (p *Player) Reset() {
	p.index = 0
	p.playing = false
}

// Tick advances one frame while playing, wrapping after the last frame.
// It reports whether the index changed.
func (p *Player) Tick() bool {
	if !p.playing || p.count <= 1 {
		return false
	}
	p.index = (p.index + 1) % p.count
	return true
}
