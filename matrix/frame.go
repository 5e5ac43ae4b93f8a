package matrix

import "math/bits"

// Frame is one full sweep of both blocks. Wide carries hour units, minute
// tens and minute units; Narrow carries hour tens.
type Frame struct {
	Wide   [FrameRows]byte
	Narrow [FrameRows]byte
}

// BannerFrame is shown while the clock starts up.
var BannerFrame = Frame{
	Wide: [FrameRows]byte{
		MustEncode("11101101"),
		MustEncode("01001010"),
		MustEncode("01001101"),
	},
	Narrow: [FrameRows]byte{
		MustEncode("0"),
		MustEncode("0"),
		MustEncode("0"),
	},
}

// Lit counts the lit cells of the frame.
func (f Frame) Lit() int {
	n := 0
	for r := 0; r < FrameRows; r++ {
		n += bits.OnesCount8(f.Wide[r]) + bits.OnesCount8(f.Narrow[r])
	}
	return n
}
