package matrix

// Digits is the time of day split into its four decimal digits.
type Digits struct {
	H1, H2 int
	M1, M2 int
}

// Split decomposes hour and minute. Values out of range are clamped.
func Split(hour, minute int) Digits {
	hour = clamp(hour, 0, 23)
	minute = clamp(minute, 0, 59)
	return Digits{
		H1: hour / 10,
		H2: hour % 10,
		M1: minute / 10,
		M2: minute % 10,
	}
}

// Fields holds the generated pattern of each digit's block, row after row.
type Fields struct {
	H1, H2 Pattern
	M1, M2 Pattern
}

// Assembler builds frames from the time of day.
type Assembler struct {
	layout Layout
	gen    *Generator
}

func NewAssembler(layout Layout, gen *Generator) *Assembler {
	return &Assembler{layout: layout, gen: gen}
}

func (a *Assembler) Layout() Layout { return a.layout }

// Patterns lights as many cells in each digit's field as the digit's value.
func (a *Assembler) Patterns(d Digits) Fields {
	l := a.layout
	return Fields{
		H1: a.gen.Generate(l.HourTens*l.Rows, d.H1),
		H2: a.gen.Generate(l.HourUnits*l.Rows, d.H2),
		M1: a.gen.Generate(l.MinuteTens*l.Rows, d.M1),
		M2: a.gen.Generate(l.MinuteUnits*l.Rows, d.M2),
	}
}

// Compose cuts each field into rows. A wide row is the hour units row, then
// the minute tens row, then the minute units row; a narrow row is the hour
// tens row alone.
func (a *Assembler) Compose(f Fields) Frame {
	l := a.layout
	var out Frame
	for r := 0; r < FrameRows; r++ {
		wide := Concat(
			f.H2.Slice(r*l.HourUnits, l.HourUnits),
			f.M1.Slice(r*l.MinuteTens, l.MinuteTens),
			f.M2.Slice(r*l.MinuteUnits, l.MinuteUnits),
		)
		out.Wide[r] = byte(wide.Encode())
		out.Narrow[r] = byte(f.H1.Slice(r*l.HourTens, l.HourTens).Encode())
	}
	return out
}

// Assemble generates a fresh frame for hour:minute.
func (a *Assembler) Assemble(hour, minute int) Frame {
	return a.Compose(a.Patterns(Split(hour, minute)))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
