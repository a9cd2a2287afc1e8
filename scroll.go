package sevenseg

import (
	"strings"
	"time"
	"unicode"

	"periph.io/x/devices/v3/sevenseg/glyph"
)

// Clock is the time source of a session. Frames render back to back; the
// scroll cadence is derived from Now, and per-digit holds go through Sleep.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type wallClock struct{}

func (wallClock) Now() time.Time        { return time.Now() }
func (wallClock) Sleep(d time.Duration) { time.Sleep(d) }

// Normalize uppercases raw, drops every character the display cannot show
// and prepends width spaces so the text scrolls in from the right.
func Normalize(raw string, width int) string {
	width = max(width, 0)
	var b strings.Builder
	b.Grow(width + len(raw))
	b.WriteString(strings.Repeat(" ", width))
	for _, r := range raw {
		r = unicode.ToUpper(r)
		if glyph.Supported(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// scroller is the scroll state of one session.
type scroller struct {
	text     string
	width    int
	interval time.Duration

	offset int
	loops  int
	last   time.Time
}

func newScroller(text string, width int, interval time.Duration, now time.Time) *scroller {
	return &scroller{text: text, width: width, interval: interval, last: now}
}

// window returns the width characters starting at offset, space padded past
// the end of the text.
func (s *scroller) window() string {
	end := s.offset + s.width
	if end <= len(s.text) {
		return s.text[s.offset:end]
	}
	return s.text[s.offset:] + strings.Repeat(" ", end-len(s.text))
}

// running is the exit predicate of the display loop; maxLoops 0 never stops.
func (s *scroller) running(maxLoops int) bool {
	return maxLoops == 0 || s.loops < maxLoops
}

// tick advances the window if the scroll interval has elapsed since the
// last advance, and reports whether it did.
func (s *scroller) tick(now time.Time) bool {
	if now.Sub(s.last) < s.interval {
		return false
	}
	s.last = now
	s.advance()
	return true
}

// advance moves the window one character; wrapping to offset 0 completes a
// loop.
func (s *scroller) advance() {
	s.offset = (s.offset + 1) % len(s.text)
	if s.offset == 0 {
		s.loops++
	}
}
