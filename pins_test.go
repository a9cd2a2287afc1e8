package sevenseg

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/sevenseg/glyph"
)

var errInjected = errors.New("injected failure")

// write is one recorded Out call.
type write struct {
	pin   string
	level gpio.Level
}

// board records every write to its pins, tracks which digits are enabled and
// latches the segment state whenever a digit is enabled.
type board struct {
	mu       sync.Mutex
	writes   []write
	halts    int
	failAt   int // 1-based index of the write that fails, 0 for none
	haltErr  map[string]error
	levels   map[string]gpio.Level
	active   map[int]bool
	overlaps int
	shown    []shown

	segments []*fakePin
	digits   []*fakePin
}

// shown is one digit being lit.
type shown struct {
	digit   int
	pattern glyph.Pattern
}

func newBoard(width int) *board {
	b := &board{
		haltErr: map[string]error{},
		levels:  map[string]gpio.Level{},
		active:  map[int]bool{},
	}
	for i := 0; i < glyph.NumSegments; i++ {
		b.segments = append(b.segments, &fakePin{b: b, name: fmt.Sprintf("S%d", i), num: i, digit: -1})
	}
	for i := 0; i < width; i++ {
		b.digits = append(b.digits, &fakePin{b: b, name: fmt.Sprintf("D%d", i), num: 100 + i, digit: i})
	}
	return b
}

func (b *board) segmentPins() []gpio.PinOut {
	out := make([]gpio.PinOut, len(b.segments))
	for i, p := range b.segments {
		out[i] = p
	}
	return out
}

func (b *board) digitPins() []gpio.PinOut {
	out := make([]gpio.PinOut, len(b.digits))
	for i, p := range b.digits {
		out[i] = p
	}
	return out
}

func (b *board) out(p *fakePin, l gpio.Level) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writes = append(b.writes, write{pin: p.name, level: l})
	if b.failAt == len(b.writes) {
		return errInjected
	}
	b.levels[p.name] = l
	if p.digit < 0 {
		return nil
	}
	if l == gpio.High {
		delete(b.active, p.digit)
		return nil
	}
	b.active[p.digit] = true
	if len(b.active) > 1 {
		b.overlaps++
	}
	var pattern glyph.Pattern
	for i, s := range b.segments {
		if b.levels[s.name] == gpio.High {
			pattern |= 1 << i
		}
	}
	b.shown = append(b.shown, shown{digit: p.digit, pattern: pattern})
	return nil
}

// released reports whether every digit is disabled and every segment off.
func (b *board) released() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range b.digits {
		if l, ok := b.levels[p.name]; !ok || l != gpio.High {
			return false
		}
	}
	for _, p := range b.segments {
		if l, ok := b.levels[p.name]; !ok || l != gpio.Low {
			return false
		}
	}
	return len(b.active) == 0
}

// frames groups the lit digits into one pattern slice per rendered frame.
func (b *board) frames() [][]glyph.Pattern {
	b.mu.Lock()
	defer b.mu.Unlock()
	width := len(b.digits)
	var out [][]glyph.Pattern
	for i := 0; i+width <= len(b.shown); i += width {
		f := make([]glyph.Pattern, width)
		for j := range f {
			f[j] = b.shown[i+j].pattern
		}
		out = append(out, f)
	}
	return out
}

// fakePin is a gpio.PinOut attached to a board.
type fakePin struct {
	b     *board
	name  string
	num   int
	digit int
}

func (p *fakePin) String() string   { return p.name }
func (p *fakePin) Name() string     { return p.name }
func (p *fakePin) Number() int      { return p.num }
func (p *fakePin) Function() string { return "Out" }

func (p *fakePin) Halt() error {
	p.b.mu.Lock()
	defer p.b.mu.Unlock()
	p.b.halts++
	return p.b.haltErr[p.name]
}

func (p *fakePin) Out(l gpio.Level) error {
	return p.b.out(p, l)
}

func (p *fakePin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return errors.New("not implemented")
}

var _ gpio.PinOut = &fakePin{}

// fakeClock advances only when slept on. onSleep, if set, runs after every
// Sleep.
type fakeClock struct {
	now     time.Time
	slept   int
	onSleep func(c *fakeClock)
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.now = c.now.Add(d)
	c.slept++
	if c.onSleep != nil {
		c.onSleep(c)
	}
}

// patternsOf converts a window to the patterns expected on the display.
func patternsOf(window string) []glyph.Pattern {
	out := make([]glyph.Pattern, len(window))
	for i, r := range window {
		p, err := glyph.Lookup(r)
		if err != nil {
			panic(err)
		}
		out[i] = p
	}
	return out
}
