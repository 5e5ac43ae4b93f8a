package shiftreg

import "dscheirer.com/tixclock/matrix"

type simLine struct {
	set func(bool)
}

func (l *simLine) High() { l.set(true) }
func (l *simLine) Low()  { l.set(false) }

// Chain simulates daisy-chained 74HC595s. Register 0 is nearest the data
// input. A byte shifted LSB first reads back unchanged from Outputs, so
// bit 7 drives QA.
type Chain struct {
	stage   []byte
	out     []byte
	data    bool
	clock   bool
	latch   bool
	pulses  int
	onLatch func()
}

func NewChain(registers int) *Chain {
	return &Chain{
		stage: make([]byte, registers),
		out:   make([]byte, registers),
	}
}

func (c *Chain) DataLine() Line  { return &simLine{set: func(v bool) { c.data = v }} }
func (c *Chain) ClockLine() Line { return &simLine{set: c.setClock} }
func (c *Chain) LatchLine() Line { return &simLine{set: c.setLatch} }

// Outputs returns a copy of the latched register values.
func (c *Chain) Outputs() []byte {
	out := make([]byte, len(c.out))
	copy(out, c.out)
	return out
}

// Pulses counts clock rising edges.
func (c *Chain) Pulses() int { return c.pulses }

func (c *Chain) setClock(v bool) {
	if v && !c.clock {
		c.pulses++
		carry := c.data
		for i := range c.stage {
			next := c.stage[i]&0x01 != 0
			c.stage[i] >>= 1
			if carry {
				c.stage[i] |= 0x80
			}
			carry = next
		}
	}
	c.clock = v
}

func (c *Chain) setLatch(v bool) {
	if v && !c.latch {
		copy(c.out, c.stage)
		if c.onLatch != nil {
			c.onLatch()
		}
	}
	c.latch = v
}

// Recorder wires a two register chain and six cathode lines the way the
// board is built, and keeps the image an eye would see: every cell lit at
// any moment since the last Reset.
type Recorder struct {
	chain   *Chain
	enabled [2 * matrix.FrameRows]bool
	image   matrix.Frame
	ghosts  int
	latches int
}

func NewRecorder() *Recorder {
	r := &Recorder{chain: NewChain(2)}
	r.chain.onLatch = func() {
		r.latches++
		r.observe()
	}
	return r
}

func (r *Recorder) Pins() Pins {
	p := Pins{
		Data:  r.chain.DataLine(),
		Clock: r.chain.ClockLine(),
		Latch: r.chain.LatchLine(),
	}
	for i := range p.Cathodes {
		i := i
		p.Cathodes[i] = &simLine{set: func(high bool) {
			r.enabled[i] = !high
			r.observe()
		}}
	}
	return p
}

func (r *Recorder) Chain() *Chain { return r.chain }

// Image is the accumulated lit cells.
func (r *Recorder) Image() matrix.Frame { return r.image }

func (r *Recorder) Reset() {
	r.image = matrix.Frame{}
}

// Enabled counts the cathode lines currently LOW.
func (r *Recorder) Enabled() int {
	n := 0
	for _, e := range r.enabled {
		if e {
			n++
		}
	}
	return n
}

// Ghosts counts the moments two rows of one block were lit together.
func (r *Recorder) Ghosts() int { return r.ghosts }

func (r *Recorder) Latches() int { return r.latches }

func (r *Recorder) observe() {
	wide, narrow := r.chain.out[0], r.chain.out[1]
	wideRows, narrowRows := 0, 0
	for j := 0; j < matrix.FrameRows; j++ {
		if r.enabled[j] {
			r.image.Wide[j] |= wide
			wideRows++
		}
		if r.enabled[j+matrix.FrameRows] {
			r.image.Narrow[j] |= narrow
			narrowRows++
		}
	}
	if (wideRows > 1 && wide != 0) || (narrowRows > 1 && narrow != 0) {
		r.ghosts++
	}
}
