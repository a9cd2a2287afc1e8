package glyph

import (
	"errors"
	"sort"
	"unicode"
)

// ErrUnsupported is returned by Lookup for characters without a pattern.
var ErrUnsupported = errors.New("glyph: unsupported character")

// Segment identifies one LED of a digit.
type Segment uint8

// Segments in physical wiring order.
const (
	Top Segment = iota
	TopRight
	BottomRight
	Bottom
	BottomLeft
	TopLeft
	Middle
	DecimalPoint
)

// NumSegments is the number of segment lines per digit, decimal point included.
const NumSegments = 8

var segmentNames = [NumSegments]string{
	"top", "top-right", "bottom-right", "bottom", "bottom-left", "top-left", "middle", "dp",
}

func (s Segment) String() string {
	if int(s) < NumSegments {
		return segmentNames[s]
	}
	return "invalid"
}

// Pattern is the on/off state of every segment of a digit. Bit n holds
// Segment n.
type Pattern uint8

// Blank has every segment off.
const Blank Pattern = 0

// All has every segment on, decimal point included.
const All Pattern = 0xFF

// Lit reports whether segment s is on.
func (p Pattern) Lit(s Segment) bool {
	return p&(1<<s) != 0
}

// Segments returns the pattern as one boolean per segment, in wiring order.
func (p Pattern) Segments() [NumSegments]bool {
	var out [NumSegments]bool
	for i := range out {
		out[i] = p.Lit(Segment(i))
	}
	return out
}

// String returns the pattern as 8 binary digits in wiring order, top first.
func (p Pattern) String() string {
	var b [NumSegments]byte
	for i := range b {
		b[i] = '0'
		if p.Lit(Segment(i)) {
			b[i] = '1'
		}
	}
	return string(b[:])
}

// bits builds a Pattern from its String form.
func bits(s string) Pattern {
	if len(s) != NumSegments {
		panic("glyph: pattern must have 8 segments")
	}
	var p Pattern
	for i := 0; i < NumSegments; i++ {
		if s[i] == '1' {
			p |= 1 << i
		}
	}
	return p
}

// V and W share a pattern, as do '.' and ','.
var patterns = map[rune]Pattern{
	' ': bits("00000000"),
	'0': bits("11111100"),
	'1': bits("01100000"),
	'2': bits("11011010"),
	'3': bits("11110010"),
	'4': bits("01100110"),
	'5': bits("10110110"),
	'6': bits("10111110"),
	'7': bits("11100000"),
	'8': bits("11111110"),
	'9': bits("11110110"),
	'A': bits("11101110"),
	'B': bits("00111110"),
	'C': bits("10011100"),
	'D': bits("01111010"),
	'E': bits("10011110"),
	'F': bits("10001110"),
	'G': bits("10111100"),
	'H': bits("00101110"),
	'I': bits("01100000"),
	'J': bits("01110000"),
	'K': bits("01101110"),
	'L': bits("00011100"),
	'M': bits("11101100"),
	'N': bits("00101010"),
	'O': bits("00111010"),
	'P': bits("11001110"),
	'Q': bits("11100110"),
	'R': bits("00001010"),
	'S': bits("10110110"),
	'T': bits("00011110"),
	'U': bits("01111100"),
	'V': bits("00111000"),
	'W': bits("00111000"),
	'X': bits("01101110"),
	'Y': bits("01110110"),
	'Z': bits("11011010"),
	'-': bits("00000010"),
	'_': bits("00010000"),
	'.': bits("00000001"),
	',': bits("00000001"),
}

// Lookup returns the pattern for r. Lowercase letters map to their
// uppercase pattern.
func Lookup(r rune) (Pattern, error) {
	p, ok := patterns[unicode.ToUpper(r)]
	if !ok {
		return Blank, ErrUnsupported
	}
	return p, nil
}

// Supported reports whether r has a pattern. It is case-sensitive: only the
// uppercase form of a letter is in the table.
func Supported(r rune) bool {
	_, ok := patterns[r]
	return ok
}

// Runes returns every supported character in ascending order.
func Runes() []rune {
	out := make([]rune, 0, len(patterns))
	for r := range patterns {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
