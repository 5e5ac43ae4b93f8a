package matrix

import "github.com/pkg/errors"

// FrameRows is the number of rows in every block.
const FrameRows = 3

// Layout holds the column count of each digit's block. A digit's field has
// width*Rows cells.
type Layout struct {
	HourTens    int
	HourUnits   int
	MinuteTens  int
	MinuteUnits int
	Rows        int
}

// DefaultLayout matches the board: 1, 3, 2 and 3 columns over 3 rows.
// Changing it moves LEDs around on the physical panel.
var DefaultLayout = Layout{
	HourTens:    1,
	HourUnits:   3,
	MinuteTens:  2,
	MinuteUnits: 3,
	Rows:        FrameRows,
}

// WideWidth is the column count of the block holding hour units and both
// minute digits, one shift register per row.
func (l Layout) WideWidth() int {
	return l.HourUnits + l.MinuteTens + l.MinuteUnits
}

// Validate checks that every digit value fits in its field and every row
// fits in a shift register.
func (l Layout) Validate() error {
	if l.Rows != FrameRows {
		return errors.Errorf("layout has %d rows, the driver multiplexes %d", l.Rows, FrameRows)
	}
	fields := []struct {
		name     string
		width    int
		maxDigit int
	}{
		{"hour tens", l.HourTens, 2},
		{"hour units", l.HourUnits, 9},
		{"minute tens", l.MinuteTens, 5},
		{"minute units", l.MinuteUnits, 9},
	}
	for _, f := range fields {
		if f.width <= 0 {
			return errors.Errorf("%s block has width %d", f.name, f.width)
		}
		if cells := f.width * l.Rows; cells < f.maxDigit {
			return errors.Errorf("%s block has %d cells, needs %d", f.name, cells, f.maxDigit)
		}
		if f.width*l.Rows > MaxWidth {
			return errors.Errorf("%s block has %d cells, limit is %d", f.name, f.width*l.Rows, MaxWidth)
		}
	}
	if w := l.WideWidth(); w > 8 {
		return errors.Errorf("wide block row is %d columns, shift register holds 8", w)
	}
	if l.HourTens > 8 {
		return errors.Errorf("narrow block row is %d columns, shift register holds 8", l.HourTens)
	}
	return nil
}
