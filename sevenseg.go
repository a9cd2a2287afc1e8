// Package sevenseg drives a multiplexed 7-segment LED display wired
// directly to GPIO lines and scrolls text across it.
package sevenseg

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/devices/v3/sevenseg/glyph"
)

const (
	// DefaultHold is how long each digit stays lit per frame.
	DefaultHold = time.Millisecond
	// DefaultScrollInterval is how long the text rests before moving one
	// character to the left.
	DefaultScrollInterval = 500 * time.Millisecond
)

// Opts is the configuration for the display.
type Opts struct {
	// Segment lines in wiring order: top, top-right, bottom-right, bottom,
	// bottom-left, top-left, middle, decimal point.
	Segments []gpio.PinOut
	// Digit enable lines, left to right. Active low.
	Digits []gpio.PinOut
	// Width is the number of digits (default: len(Digits)).
	Width int

	Hold           time.Duration // Per-digit hold (default: DefaultHold)
	ScrollInterval time.Duration // Scroll cadence (default: DefaultScrollInterval)

	Clock Clock              // Time source (default: wall clock)
	Log   logrus.FieldLogger // Logger (default: logrus.StandardLogger())
}

// Dev is a handle to a multiplexed display.
//
// A Dev runs one session at a time; Display and TestDisplay own every line
// until they return.
type Dev struct {
	segments []gpio.PinOut
	digits   []gpio.PinOut
	width    int

	hold   time.Duration
	scroll time.Duration
	clock  Clock
	log    logrus.FieldLogger

	busy atomic.Bool
}

// New validates opts and returns a display handle. It does not touch any
// line; lines are configured when a session starts.
func New(opts *Opts) (*Dev, error) {
	if opts == nil {
		return nil, invalidf("nil options")
	}
	if len(opts.Segments) != glyph.NumSegments {
		return nil, invalidf("need %d segment pins, got %d", glyph.NumSegments, len(opts.Segments))
	}
	if len(opts.Digits) == 0 {
		return nil, invalidf("no digit pins")
	}
	width := opts.Width
	if width == 0 {
		width = len(opts.Digits)
	}
	if width != len(opts.Digits) {
		return nil, invalidf("display width %d does not match %d digit pins", width, len(opts.Digits))
	}
	for i, p := range opts.Segments {
		if p == nil {
			return nil, invalidf("segment pin %d is nil", i)
		}
	}
	for i, p := range opts.Digits {
		if p == nil {
			return nil, invalidf("digit pin %d is nil", i)
		}
	}
	if opts.Hold < 0 || opts.ScrollInterval < 0 {
		return nil, invalidf("negative timing")
	}

	d := &Dev{
		segments: append([]gpio.PinOut(nil), opts.Segments...),
		digits:   append([]gpio.PinOut(nil), opts.Digits...),
		width:    width,
		hold:     opts.Hold,
		scroll:   opts.ScrollInterval,
		clock:    opts.Clock,
		log:      opts.Log,
	}
	if d.hold == 0 {
		d.hold = DefaultHold
	}
	if d.scroll == 0 {
		d.scroll = DefaultScrollInterval
	}
	if d.clock == nil {
		d.clock = wallClock{}
	}
	if d.log == nil {
		d.log = logrus.StandardLogger()
	}
	return d, nil
}

// Width returns the number of digits.
func (d *Dev) Width() int {
	return d.width
}

// Display scrolls text across the display until it has passed maxLoops
// times, or forever when maxLoops is 0.
//
// Unsupported characters are dropped. The session ends early when ctx is
// done, in which case ctx.Err() is returned. Whatever the outcome, every line
// is released before Display returns.
func (d *Dev) Display(ctx context.Context, text string, maxLoops int) (err error) {
	if maxLoops < 0 {
		return invalidf("negative loop count %d", maxLoops)
	}
	if !d.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer d.busy.Store(false)

	normalized := Normalize(text, d.width)
	log := d.log.WithFields(logrus.Fields{"text": normalized, "loops": maxLoops})
	defer func() {
		err = d.stop(log, err)
	}()

	if err := d.reset(); err != nil {
		return err
	}
	log.Debug("sevenseg: display started")

	s := newScroller(normalized, d.width, d.scroll, d.clock.Now())
	for s.running(maxLoops) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.renderFrame(s.window()); err != nil {
			return err
		}
		if s.tick(d.clock.Now()) && s.offset == 0 {
			log.WithField("completed", s.loops).Debug("sevenseg: loop completed")
		}
	}
	return nil
}

// TestDisplay lights every segment, decimal points included, on every digit
// for duration dur, then releases the display. Digits are still multiplexed
// one at a time.
func (d *Dev) TestDisplay(ctx context.Context, dur time.Duration) (err error) {
	if dur < 0 {
		return invalidf("negative test duration")
	}
	if !d.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer d.busy.Store(false)

	log := d.log.WithField("duration", dur)
	defer func() {
		err = d.stop(log, err)
	}()

	if err := d.reset(); err != nil {
		return err
	}
	log.Debug("sevenseg: lamp test started")

	start := d.clock.Now()
	for d.clock.Now().Sub(start) < dur {
		if err := ctx.Err(); err != nil {
			return err
		}
		for pos := range d.digits {
			if err := d.show(pos, glyph.All); err != nil {
				return err
			}
		}
	}
	return nil
}

// stop releases the display at the end of a session and folds release
// failures into err.
func (d *Dev) stop(log logrus.FieldLogger, err error) error {
	if rerr := d.release(); rerr != nil {
		log.WithError(rerr).Warn("sevenseg: failed to release display")
		err = errors.Join(err, rerr)
	}
	if err != nil {
		log = log.WithError(err)
	}
	log.Debug("sevenseg: display stopped")
	return err
}

// Halt blanks the display and halts every line.
//
// It must not be called while a session is running.
func (d *Dev) Halt() error {
	if d.busy.Load() {
		return ErrBusy
	}
	return d.release()
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("sevenseg.Dev{%d digits}", d.width)
}
