package sevenseg

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/devices/v3/sevenseg/glyph"
)

// Digit lines sink current: Low lights the digit, High blanks it.
const (
	digitOn  = gpio.Low
	digitOff = gpio.High
)

// out drives p to l, wrapping failures in a PinError.
func out(p gpio.PinOut, l gpio.Level) error {
	if err := p.Out(l); err != nil {
		return &PinError{Pin: p.Name(), Level: l, Err: err}
	}
	return nil
}

// reset configures every line as an output in its idle state: segments off,
// digits disabled.
func (d *Dev) reset() error {
	for _, p := range d.segments {
		if err := out(p, gpio.Low); err != nil {
			return err
		}
	}
	for _, p := range d.digits {
		if err := out(p, digitOff); err != nil {
			return err
		}
	}
	return nil
}

// renderFrame multiplexes window across the digits once. Only one digit is
// enabled at any time.
func (d *Dev) renderFrame(window string) error {
	for pos := range d.digits {
		pattern, err := glyph.Lookup(rune(window[pos]))
		if err != nil {
			return fmt.Errorf("sevenseg: digit %d %q: %w", pos, window[pos], err)
		}
		if err := d.show(pos, pattern); err != nil {
			return err
		}
	}
	return nil
}

// show lights pattern on digit pos for the hold time, then blanks it.
func (d *Dev) show(pos int, pattern glyph.Pattern) error {
	for i, p := range d.segments {
		if err := out(p, gpio.Level(pattern.Lit(glyph.Segment(i)))); err != nil {
			return err
		}
	}
	if err := out(d.digits[pos], digitOn); err != nil {
		return err
	}
	d.clock.Sleep(d.hold)
	return out(d.digits[pos], digitOff)
}

// release blanks the display and halts every line. It visits all lines even
// when some fail and returns the failures joined.
func (d *Dev) release() error {
	var errs []error
	for _, p := range d.digits {
		errs = append(errs, out(p, digitOff))
	}
	for _, p := range d.segments {
		errs = append(errs, out(p, gpio.Low))
	}
	for _, p := range d.digits {
		if err := p.Halt(); err != nil {
			errs = append(errs, fmt.Errorf("sevenseg: failed to halt %s: %w", p.Name(), err))
		}
	}
	for _, p := range d.segments {
		if err := p.Halt(); err != nil {
			errs = append(errs, fmt.Errorf("sevenseg: failed to halt %s: %w", p.Name(), err))
		}
	}
	return errors.Join(errs...)
}
