// Package sim is an in-memory multiplexed 7-segment display.
//
// Its pins implement gpio.PinOut with the same polarity as the real
// hardware: segment lines are active high, digit lines active low. Whenever
// a digit is enabled it latches the segment lines, so after a frame has been
// multiplexed Latched holds what an observer would see. The display can be
// drawn as SVG, or rasterized to PNG for headless previews.
package sim

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/sevenseg/glyph"
)

// Display is a simulated display with one latched pattern per digit.
type Display struct {
	mu       sync.Mutex
	segs     [glyph.NumSegments]gpio.Level
	enabled  []bool
	latched  []glyph.Pattern
	overlaps int
	writes   int

	segPins   []*Pin
	digitPins []*Pin
}

// New returns a blank display with width digits.
func New(width int) *Display {
	d := &Display{
		enabled: make([]bool, width),
		latched: make([]glyph.Pattern, width),
	}
	for i := 0; i < glyph.NumSegments; i++ {
		d.segPins = append(d.segPins, &Pin{d: d, name: "SEG_" + glyph.Segment(i).String(), num: i, seg: i, digit: -1})
	}
	for i := 0; i < width; i++ {
		d.digitPins = append(d.digitPins, &Pin{d: d, name: fmt.Sprintf("DIG%d", i), num: glyph.NumSegments + i, seg: -1, digit: i})
	}
	return d
}

// Segments returns the segment lines in wiring order.
func (d *Display) Segments() []gpio.PinOut {
	out := make([]gpio.PinOut, len(d.segPins))
	for i, p := range d.segPins {
		out[i] = p
	}
	return out
}

// Digits returns the digit enable lines, left to right.
func (d *Display) Digits() []gpio.PinOut {
	out := make([]gpio.PinOut, len(d.digitPins))
	for i, p := range d.digitPins {
		out[i] = p
	}
	return out
}

// Latched returns the pattern last shown on every digit.
func (d *Display) Latched() []glyph.Pattern {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]glyph.Pattern(nil), d.latched...)
}

// Text returns the latched digits as characters. Patterns shared by several
// characters resolve to the lowest one ('1' rather than 'I'); unknown
// patterns read as '?'.
func (d *Display) Text() string {
	latched := d.Latched()
	out := make([]rune, len(latched))
	for i, p := range latched {
		out[i] = '?'
		for _, r := range glyph.Runes() {
			if q, _ := glyph.Lookup(r); q == p {
				out[i] = r
				break
			}
		}
	}
	return string(out)
}

// Overlaps returns how many times a digit was enabled while another one
// already was.
func (d *Display) Overlaps() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.overlaps
}

// Writes returns the number of Out calls received on all lines.
func (d *Display) Writes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writes
}

func (d *Display) out(p *Pin, l gpio.Level) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.writes++
	if p.seg >= 0 {
		d.segs[p.seg] = l
	} else {
		on := l == gpio.Low
		if on && !d.enabled[p.digit] {
			for i, e := range d.enabled {
				if e && i != p.digit {
					d.overlaps++
					break
				}
			}
		}
		d.enabled[p.digit] = on
	}
	var pattern glyph.Pattern
	for i, s := range d.segs {
		if s == gpio.High {
			pattern |= 1 << i
		}
	}
	for i, e := range d.enabled {
		if e {
			d.latched[i] = pattern
		}
	}
}

// Segment geometry inside a 60x100 digit cell.
var segmentRects = [glyph.NumSegments - 1][4]int{
	{10, 5, 30, 6},  // top
	{40, 11, 6, 36}, // top-right
	{40, 53, 6, 36}, // bottom-right
	{10, 89, 30, 6}, // bottom
	{4, 53, 6, 36},  // bottom-left
	{4, 11, 6, 36},  // top-left
	{10, 47, 30, 6}, // middle
}

const (
	cellW  = 60
	cellH  = 100
	margin = 10

	litColor   = "#ff2a00"
	unlitColor = "#2a0a05"
)

// SVG draws the latched display.
func (d *Display) SVG() []byte {
	latched := d.Latched()
	w := margin + len(latched)*cellW
	var b bytes.Buffer
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, w, cellH, w, cellH)
	fmt.Fprintf(&b, `<rect x="0" y="0" width="%d" height="%d" fill="#000000"/>`, w, cellH)
	for pos, p := range latched {
		x0 := margin + pos*cellW
		for i, r := range segmentRects {
			fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`,
				x0+r[0], r[1], r[2], r[3], fill(p.Lit(glyph.Segment(i))))
		}
		fmt.Fprintf(&b, `<circle cx="%d" cy="92" r="4" fill="%s"/>`, x0+52, fill(p.Lit(glyph.DecimalPoint)))
	}
	b.WriteString(`</svg>`)
	return b.Bytes()
}

func fill(lit bool) string {
	if lit {
		return litColor
	}
	return unlitColor
}

// PNG rasterizes the latched display, scaled by scale, and writes it to w.
func (d *Display) PNG(w io.Writer, scale float64) error {
	if scale <= 0 {
		return errors.New("sim: scale must be positive")
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(d.SVG()))
	if err != nil {
		return fmt.Errorf("sim: failed to parse svg: %w", err)
	}
	width := int(icon.ViewBox.W * scale)
	height := int(icon.ViewBox.H * scale)
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1)
	return png.Encode(w, img)
}

// Pin is one line of a simulated display.
type Pin struct {
	d     *Display
	name  string
	num   int
	seg   int
	digit int
}

func (p *Pin) String() string   { return "sim." + p.name }
func (p *Pin) Name() string     { return p.name }
func (p *Pin) Number() int      { return p.num }
func (p *Pin) Function() string { return "Out" }
func (p *Pin) Halt() error      { return nil }

// Out drives the line to l.
func (p *Pin) Out(l gpio.Level) error {
	p.d.out(p, l)
	return nil
}

// PWM is not supported; the display has no brightness control.
func (p *Pin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return errors.New("sim: PWM not supported")
}

var _ gpio.PinOut = &Pin{}
