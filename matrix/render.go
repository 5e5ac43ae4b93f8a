package matrix

import "strings"

// Grid lays a frame out as the panel shows it: hour tens, hour units,
// minute tens and minute units blocks from left to right.
func (l Layout) Grid(f Frame) [FrameRows][]bool {
	var grid [FrameRows][]bool
	wide := l.WideWidth()
	for r := 0; r < FrameRows; r++ {
		row := make([]bool, 0, l.HourTens+wide)
		for c := l.HourTens - 1; c >= 0; c-- {
			row = append(row, f.Narrow[r]&(1<<uint(c)) != 0)
		}
		for c := wide - 1; c >= 0; c-- {
			row = append(row, f.Wide[r]&(1<<uint(c)) != 0)
		}
		grid[r] = row
	}
	return grid
}

// BlockStarts returns the grid column where each block begins.
func (l Layout) BlockStarts() [4]int {
	return [4]int{
		0,
		l.HourTens,
		l.HourTens + l.HourUnits,
		l.HourTens + l.HourUnits + l.MinuteTens,
	}
}

// Dump draws a frame as text, '#' for lit cells, blocks split by a space.
func (l Layout) Dump(f Frame) string {
	grid := l.Grid(f)
	starts := l.BlockStarts()
	var sb strings.Builder
	for r, row := range grid {
		for c, on := range row {
			if c > 0 && (c == starts[1] || c == starts[2] || c == starts[3]) {
				sb.WriteByte(' ')
			}
			if on {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		if r < FrameRows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
