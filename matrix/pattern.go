// Package matrix turns the time of day into the row values shifted out to
// the LED blocks. Digits are shown as a count of lit cells, with the lit
// cells picked at random on every refresh.
package matrix

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/pkg/errors"
)

// MaxWidth is the largest number of cells a Pattern can hold.
const MaxWidth = 16

// Pattern is a fixed width run of on/off cells. Cell 0 is the left-most
// cell and the most significant bit of the encoded value.
type Pattern struct {
	bits  uint16
	width uint8
}

// ParsePattern reads a string of '0' and '1' characters.
func ParsePattern(s string) (Pattern, error) {
	if len(s) > MaxWidth {
		return Pattern{}, errors.Errorf("pattern %q is wider than %d cells", s, MaxWidth)
	}
	p := Pattern{width: uint8(len(s))}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '1':
			p.set(i)
		case '0':
		default:
			return Pattern{}, errors.Errorf("bad cell %q at %d in pattern %q", s[i], i, s)
		}
	}
	return p, nil
}

// MustEncode parses and encodes a pattern literal that fits one shift
// register byte. It panics on a malformed literal.
func MustEncode(s string) byte {
	p, err := ParsePattern(s)
	if err != nil {
		panic(err)
	}
	if p.Width() > 8 {
		panic(fmt.Sprintf("pattern %q does not fit in a byte", s))
	}
	return byte(p.Encode())
}

func (p Pattern) Width() int { return int(p.width) }

// Cell reports whether cell i is lit.
func (p Pattern) Cell(i int) bool {
	if i < 0 || i >= int(p.width) {
		return false
	}
	return p.bits&p.mask(i) != 0
}

func (p Pattern) OnCount() int {
	return bits.OnesCount16(p.bits)
}

// Encode folds the cells left to right into an integer, first cell most
// significant. Bit order on the wire is up to the driver.
func (p Pattern) Encode() uint16 {
	var v uint16
	for i := 0; i < int(p.width); i++ {
		v <<= 1
		if p.Cell(i) {
			v |= 1
		}
	}
	return v
}

// Slice returns the n cells starting at start.
func (p Pattern) Slice(start, n int) Pattern {
	out := Pattern{width: uint8(n)}
	for i := 0; i < n; i++ {
		if p.Cell(start + i) {
			out.set(i)
		}
	}
	return out
}

// Concat joins patterns left to right.
func Concat(parts ...Pattern) Pattern {
	var out Pattern
	for _, part := range parts {
		if int(out.width)+int(part.width) > MaxWidth {
			panic("matrix: concatenated pattern wider than MaxWidth")
		}
		out.bits = out.bits<<part.width | part.bits
		out.width += part.width
	}
	return out
}

func (p Pattern) String() string {
	var sb strings.Builder
	for i := 0; i < int(p.width); i++ {
		if p.Cell(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func (p Pattern) mask(i int) uint16 {
	return 1 << uint(int(p.width)-1-i)
}

func (p *Pattern) set(i int) {
	p.bits |= p.mask(i)
}
