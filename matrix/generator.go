package matrix

import (
	"log"
	"math/rand"
	"time"
)

// Logger is the subset of *log.Logger the package writes to.
type Logger interface {
	Printf(format string, v ...interface{})
}

type stdLogger struct{}

func (stdLogger) Printf(format string, v ...interface{}) { log.Printf(format, v...) }

// Generator picks which cells of a field are lit.
type Generator struct {
	rnd    *rand.Rand
	logger Logger
}

// NewGenerator draws cell positions from src. Tests pass a seeded source.
func NewGenerator(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src), logger: stdLogger{}}
}

// NewDefaultGenerator seeds from the current time, so repeated renders of
// the same digit light different cells.
func NewDefaultGenerator() *Generator {
	return NewGenerator(rand.NewSource(time.Now().UnixNano()))
}

func (g *Generator) SetLogger(l Logger) {
	if l == nil {
		l = stdLogger{}
	}
	g.logger = l
}

// Generate returns a width cell pattern with exactly onCount lit cells.
// Positions are drawn uniformly and redrawn when already taken. onCount is
// clamped to [0, width] and width to [0, MaxWidth].
func (g *Generator) Generate(width, onCount int) Pattern {
	if width > MaxWidth {
		g.logger.Printf("pattern width %d clamped to %d", width, MaxWidth)
		width = MaxWidth
	}
	if width < 0 {
		width = 0
	}
	if onCount > width {
		g.logger.Printf("on count %d clamped to field width %d", onCount, width)
		onCount = width
	}
	if onCount < 0 {
		onCount = 0
	}

	p := Pattern{width: uint8(width)}
	var taken [MaxWidth]bool
	for counter := 0; counter < onCount; {
		i := g.rnd.Intn(width)
		if taken[i] {
			continue
		}
		taken[i] = true
		p.set(i)
		counter++
	}
	return p
}
