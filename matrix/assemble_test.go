package matrix

import (
	"math/bits"
	"math/rand"
	"testing"

	"gotest.tools/assert"
)

func testAssembler(seed int64) *Assembler {
	return NewAssembler(DefaultLayout, NewGenerator(rand.NewSource(seed)))
}

func TestSplitRoundTrip(t *testing.T) {
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m++ {
			d := Split(h, m)
			assert.Equal(t, d.H1*10+d.H2, h)
			assert.Equal(t, d.M1*10+d.M2, m)
		}
	}
}

func TestSplitClamps(t *testing.T) {
	assert.Equal(t, Split(27, 75), Digits{H1: 2, H2: 3, M1: 5, M2: 9})
	assert.Equal(t, Split(-1, -1), Digits{})
}

func TestPatternsFourteenOhSeven(t *testing.T) {
	a := testAssembler(5)
	d := Split(14, 7)
	assert.Equal(t, d, Digits{H1: 1, H2: 4, M1: 0, M2: 7})

	for i := 0; i < 20; i++ {
		f := a.Patterns(d)
		assert.Equal(t, f.H1.OnCount(), 1)
		assert.Equal(t, f.H2.OnCount(), 4)
		assert.Equal(t, f.M1.OnCount(), 0)
		assert.Equal(t, f.M2.OnCount(), 7)

		assert.Equal(t, f.H1.Width(), 3)
		assert.Equal(t, f.H2.Width(), 9)
		assert.Equal(t, f.M1.Width(), 6)
		assert.Equal(t, f.M2.Width(), 9)
	}
}

func TestAssembleMidnightIsDark(t *testing.T) {
	a := testAssembler(11)
	f := a.Assemble(0, 0)
	assert.Equal(t, f, Frame{})
	assert.Equal(t, f.Lit(), 0)
}

func TestAssembleLastMinute(t *testing.T) {
	a := testAssembler(13)
	f := a.Patterns(Split(23, 59))
	assert.Equal(t, f.M2.String(), "111111111")

	frame := a.Compose(f)
	assert.Equal(t, frame.Lit(), 2+3+5+9)
	for r := 0; r < FrameRows; r++ {
		// minute units are the low three bits of every wide row
		assert.Equal(t, frame.Wide[r]&0x07, byte(0x07))
	}
}

func TestComposeOrder(t *testing.T) {
	a := testAssembler(0)
	mustParse := func(s string) Pattern {
		p, err := ParsePattern(s)
		assert.NilError(t, err)
		return p
	}
	f := Fields{
		H1: mustParse("101"),
		H2: mustParse("100010001"),
		M1: mustParse("100001"),
		M2: mustParse("011000110"),
	}
	frame := a.Compose(f)

	// row 0: 100 + 10 + 011
	assert.Equal(t, frame.Wide[0], MustEncode("10010011"))
	// row 1: 010 + 00 + 000
	assert.Equal(t, frame.Wide[1], MustEncode("01000000"))
	// row 2: 001 + 01 + 110
	assert.Equal(t, frame.Wide[2], MustEncode("00101110"))
	assert.Equal(t, frame.Narrow, [FrameRows]byte{1, 0, 1})
}

func TestAssembleCountsAllTimes(t *testing.T) {
	a := testAssembler(17)
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m++ {
			d := Split(h, m)
			frame := a.Assemble(h, m)
			narrow := 0
			for r := 0; r < FrameRows; r++ {
				narrow += bits.OnesCount8(frame.Narrow[r])
				assert.Assert(t, frame.Narrow[r] <= 1)
			}
			assert.Equal(t, narrow, d.H1)
			assert.Equal(t, frame.Lit(), d.H1+d.H2+d.M1+d.M2)
		}
	}
}

func TestBannerFrame(t *testing.T) {
	assert.Equal(t, BannerFrame.Wide, [FrameRows]byte{0xED, 0x4A, 0x4D})
	assert.Equal(t, BannerFrame.Narrow, [FrameRows]byte{})
}

func TestLayoutValidate(t *testing.T) {
	assert.NilError(t, DefaultLayout.Validate())

	l := DefaultLayout
	l.MinuteTens = 1
	assert.ErrorContains(t, l.Validate(), "minute tens")

	l = DefaultLayout
	l.HourUnits = 4
	assert.ErrorContains(t, l.Validate(), "shift register")

	l = DefaultLayout
	l.Rows = 2
	assert.ErrorContains(t, l.Validate(), "rows")
}
