// Package cdevpin exposes lines of the Linux GPIO character device as
// gpio.PinOut, so a display can be driven without periph's host drivers.
package cdevpin

import (
	"errors"
	"fmt"
	"sync"

	"github.com/warthog618/go-gpiocdev"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Consumer is the label the kernel reports for requested lines.
const Consumer = "sevenseg"

// Pin is one requested output line.
type Pin struct {
	mu     sync.Mutex
	line   *gpiocdev.Line
	chip   string
	offset int
	input  bool
}

// Open requests line offset on chip (e.g. "gpiochip0") as an output driven
// Low.
func Open(chip string, offset int) (*Pin, error) {
	line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(0), gpiocdev.WithConsumer(Consumer))
	if err != nil {
		return nil, fmt.Errorf("cdevpin: failed to request %s:%d: %w", chip, offset, err)
	}
	return &Pin{line: line, chip: chip, offset: offset}, nil
}

// OpenAll requests every offset on chip. On failure the lines already
// requested are closed.
func OpenAll(chip string, offsets []int) ([]*Pin, error) {
	pins := make([]*Pin, 0, len(offsets))
	for _, o := range offsets {
		p, err := Open(chip, o)
		if err != nil {
			return nil, errors.Join(err, CloseAll(pins))
		}
		pins = append(pins, p)
	}
	return pins, nil
}

// CloseAll closes every pin and returns the failures joined.
func CloseAll(pins []*Pin) error {
	var errs []error
	for _, p := range pins {
		errs = append(errs, p.Close())
	}
	return errors.Join(errs...)
}

// PinOuts converts pins for use in sevenseg.Opts.
func PinOuts(pins []*Pin) []gpio.PinOut {
	out := make([]gpio.PinOut, len(pins))
	for i, p := range pins {
		out[i] = p
	}
	return out
}

func (p *Pin) String() string   { return p.Name() }
func (p *Pin) Name() string     { return fmt.Sprintf("%s:%d", p.chip, p.offset) }
func (p *Pin) Number() int      { return p.offset }
func (p *Pin) Function() string { return "Out" }

// Out drives the line to l, switching it back to an output if Halt released
// it.
func (p *Pin) Out(l gpio.Level) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.input {
		if err := p.line.Reconfigure(gpiocdev.AsOutput(value(l))); err != nil {
			return err
		}
		p.input = false
		return nil
	}
	return p.line.SetValue(value(l))
}

// Halt releases the line to a high impedance input, leaving it requested.
func (p *Pin) Halt() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.input {
		return nil
	}
	if err := p.line.Reconfigure(gpiocdev.AsInput); err != nil {
		return err
	}
	p.input = true
	return nil
}

// PWM is not supported.
func (p *Pin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return errors.New("cdevpin: PWM not supported")
}

// Close returns the line to the kernel.
func (p *Pin) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.line.Close()
}

func value(l gpio.Level) int {
	if l == gpio.High {
		return 1
	}
	return 0
}

var _ gpio.PinOut = &Pin{}
