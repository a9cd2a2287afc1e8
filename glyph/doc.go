// Package glyph provides the character set of a 7-segment display with a
// decimal point.
//
// Each Pattern is one bit per segment, in the physical order the segment
// lines are wired:
//
//	   __0__
//	  |     |
//	5 |     | 1
//	  |__6__|
//	  |     |
//	4 |     | 2
//	  |__3__|    . 7
//
// Supported characters are 0-9, A-Z, space, '-', '_', '.' and ','. Lookup is
// case-insensitive; everything else is rejected with ErrUnsupported.
//
// Example usage:
//
//	p, err := glyph.Lookup('h')
//	if err != nil {
//		return err
//	}
//	fmt.Println(p)                 // Output: 00101110
//	fmt.Println(p.Lit(glyph.Top))  // Output: false
package glyph
