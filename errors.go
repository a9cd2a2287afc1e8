package sevenseg

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

var (
	// ErrInvalidConfig is returned when Opts or the loop count are rejected.
	// No pin has been touched when it is returned.
	ErrInvalidConfig = errors.New("sevenseg: invalid configuration")

	// ErrHardwareWrite matches every *PinError.
	ErrHardwareWrite = errors.New("sevenseg: hardware write failed")

	// ErrBusy is returned when a session is started while another one owns
	// the display.
	ErrBusy = errors.New("sevenseg: display busy")
)

// PinError reports a line that could not be driven to Level.
type PinError struct {
	Pin   string
	Level gpio.Level
	Err   error
}

func (e *PinError) Error() string {
	return fmt.Sprintf("sevenseg: failed to drive %s %s: %v", e.Pin, e.Level, e.Err)
}

func (e *PinError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrHardwareWrite) hold for any PinError.
func (e *PinError) Is(target error) bool {
	return target == ErrHardwareWrite
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...)
}
