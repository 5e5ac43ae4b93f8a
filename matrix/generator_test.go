package matrix

import (
	"fmt"
	"math/rand"
	"testing"

	"gotest.tools/assert"
)

type countLogger struct {
	lines []string
}

func (c *countLogger) Printf(format string, v ...interface{}) {
	c.lines = append(c.lines, fmt.Sprintf(format, v...))
}

func TestGenerateCounts(t *testing.T) {
	g := NewGenerator(rand.NewSource(42))
	for width := 0; width <= 12; width++ {
		for on := 0; on <= width; on++ {
			for i := 0; i < 50; i++ {
				p := g.Generate(width, on)
				assert.Equal(t, p.Width(), width)
				assert.Equal(t, p.OnCount(), on, "width %d on %d", width, on)
			}
		}
	}
}

func TestGenerateSaturated(t *testing.T) {
	g := NewGenerator(rand.NewSource(1))
	p := g.Generate(9, 9)
	assert.Equal(t, p.String(), "111111111")
}

func TestGenerateClamps(t *testing.T) {
	logs := &countLogger{}
	g := NewGenerator(rand.NewSource(7))
	g.SetLogger(logs)

	p := g.Generate(3, 5)
	assert.Equal(t, p.OnCount(), 3)
	assert.Equal(t, len(logs.lines), 1)

	p = g.Generate(3, -2)
	assert.Equal(t, p.OnCount(), 0)

	p = g.Generate(20, 20)
	assert.Equal(t, p.Width(), MaxWidth)
	assert.Equal(t, p.OnCount(), MaxWidth)
	assert.Equal(t, len(logs.lines), 3)
}

// Every cell should be picked about equally often.
func TestGenerateSpread(t *testing.T) {
	const trials = 9000
	g := NewGenerator(rand.NewSource(99))
	var hits [9]int
	for i := 0; i < trials; i++ {
		p := g.Generate(9, 3)
		for c := 0; c < 9; c++ {
			if p.Cell(c) {
				hits[c]++
			}
		}
	}
	// each cell expected trials*3/9 = 3000 times
	for c, n := range hits {
		assert.Assert(t, n > 2700 && n < 3300, "cell %d lit %d times", c, n)
	}
}

func TestGenerateNotFixed(t *testing.T) {
	g := NewGenerator(rand.NewSource(3))
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		seen[g.Generate(9, 4).String()] = true
	}
	assert.Assert(t, len(seen) > 1)
}
