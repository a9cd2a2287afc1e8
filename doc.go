// Package sevenseg drives a multiplexed 7-segment LED display, decimal point
// included, straight from GPIO lines and scrolls text across it like a
// ticker.
//
// The display shares its eight segment lines between all digits. Each digit
// has its own enable line. The driver lights one digit at a time, holds it
// for about a millisecond and moves on, so persistence of vision shows the
// whole window at once. With 4 digits and a 1ms hold every digit refreshes
// at roughly 250Hz.
//
// # Hardware Connection
//
// Segment lines source current (High lights the segment). Digit lines sink
// current: Low enables the digit, High disables it. The driver never enables
// two digits at once.
//
//	Segment      Default BCM line
//	top          GPIO11
//	top-right    GPIO4
//	bottom-right GPIO23
//	bottom       GPIO8
//	bottom-left  GPIO7
//	top-left     GPIO10
//	middle       GPIO18
//	dp           GPIO25
//
//	Digit (left to right): GPIO22, GPIO27, GPIO17, GPIO24
//
// # Basic Usage
//
//	package main
//
//	import (
//		"context"
//
//		"periph.io/x/conn/v3/gpio"
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/devices/v3/sevenseg"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//
//		pins := func(names ...string) []gpio.PinOut {
//			var out []gpio.PinOut
//			for _, n := range names {
//				out = append(out, gpioreg.ByName(n))
//			}
//			return out
//		}
//
//		dev, _ := sevenseg.New(&sevenseg.Opts{
//			Segments: pins("GPIO11", "GPIO4", "GPIO23", "GPIO8", "GPIO7", "GPIO10", "GPIO18", "GPIO25"),
//			Digits:   pins("GPIO22", "GPIO27", "GPIO17", "GPIO24"),
//		})
//
//		// Scroll the text past twice, then blank the display.
//		dev.Display(context.Background(), "Hello world", 2)
//	}
//
// # Scrolling
//
// Display uppercases the text, drops characters without a glyph and prepends
// one blank window so the text enters from the right. The window moves one
// character every ScrollInterval (default 500ms). Passing the end of the text
// and wrapping back to the blank window completes a loop; maxLoops 0 scrolls
// until the context is cancelled.
//
// # Cleanup
//
// Every session ends by disabling all digits, switching all segments off and
// halting every line, whether it completed, was cancelled or failed. Release
// failures are joined onto the returned error.
//
// # Backends
//
// Any gpio.PinOut works. Besides periph.io host pins, sub-package cdevpin
// drives lines through the Linux GPIO character device, and sub-package sim
// provides an in-memory display that can render itself to PNG.
package sevenseg
