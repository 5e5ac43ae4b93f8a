package matrix

import (
	"testing"

	"gotest.tools/assert"
)

func TestParseAndEncode(t *testing.T) {
	cases := []struct {
		in   string
		want uint16
	}{
		{"", 0},
		{"0", 0},
		{"1", 1},
		{"000000000", 0},
		{"11101101", 0xED},
		{"01001010", 0x4A},
		{"01001101", 0x4D},
		{"100000000", 0x100},
	}
	for _, c := range cases {
		p, err := ParsePattern(c.in)
		assert.NilError(t, err)
		assert.Equal(t, p.Encode(), c.want, c.in)
		assert.Equal(t, p.Width(), len(c.in))
		assert.Equal(t, p.String(), c.in)
		// pure: same input, same value
		assert.Equal(t, p.Encode(), c.want)
	}
}

func TestParseRejects(t *testing.T) {
	_, err := ParsePattern("10x1")
	assert.ErrorContains(t, err, "bad cell")

	_, err = ParsePattern("00000000000000000")
	assert.ErrorContains(t, err, "wider than")
}

func TestSliceConcat(t *testing.T) {
	p, err := ParsePattern("110010011")
	assert.NilError(t, err)

	assert.Equal(t, p.Slice(0, 3).String(), "110")
	assert.Equal(t, p.Slice(3, 3).String(), "010")
	assert.Equal(t, p.Slice(6, 3).String(), "011")

	joined := Concat(p.Slice(0, 3), p.Slice(3, 3), p.Slice(6, 3))
	assert.Equal(t, joined.String(), "110010011")
	assert.Equal(t, joined.Encode(), p.Encode())
	assert.Equal(t, joined.OnCount(), 5)
}

func TestMustEncodePanics(t *testing.T) {
	defer func() {
		assert.Assert(t, recover() != nil)
	}()
	MustEncode("111111111")
}
