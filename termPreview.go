package main

import (
	"fmt"

	// terminal output for sim mode
	"github.com/nsf/termbox-go"

	"dscheirer.com/tixclock/matrix"
	"dscheirer.com/tixclock/shiftreg"
)

// termPreview draws the simulated matrix in the terminal. q, Esc or Ctrl-C
// stops the clock.
type termPreview struct {
	layout   matrix.Layout
	recorder *shiftreg.Recorder
}

func newTermPreview(layout matrix.Layout, recorder *shiftreg.Recorder, comms commChannels) (*termPreview, error) {
	if err := termbox.Init(); err != nil {
		return nil, err
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	termbox.Flush()

	go func() {
		for {
			ev := termbox.PollEvent()
			switch ev.Type {
			case termbox.EventKey:
				if ev.Ch == 'q' || ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC {
					comms.stop()
					return
				}
			case termbox.EventInterrupt, termbox.EventError:
				return
			}
		}
	}()

	return &termPreview{layout: layout, recorder: recorder}, nil
}

func (tp *termPreview) refresh(duty uint8) {
	grid := tp.layout.Grid(tp.recorder.Image())
	tp.recorder.Reset()

	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	starts := tp.layout.BlockStarts()
	for y, row := range grid {
		x := 0
		for i, on := range row {
			for _, s := range starts[1:] {
				if i == s {
					// gap between blocks
					x += 2
				}
			}
			ch, fg := '.', termbox.ColorDefault
			if on {
				ch, fg = '#', termbox.ColorRed|termbox.AttrBold
			}
			termbox.SetCell(x, y, ch, fg, termbox.ColorDefault)
			x += 2
		}
	}
	status := fmt.Sprintf("brightness %3d  (q to quit)", duty)
	for i, ch := range status {
		termbox.SetCell(i, len(grid)+1, ch, termbox.ColorDefault, termbox.ColorDefault)
	}
	termbox.Flush()
}

func (tp *termPreview) close() {
	termbox.Interrupt()
	termbox.Close()
}
