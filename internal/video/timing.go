// Package video provides the timing stub that stands in for the
// picture processing unit. It produces no picture, it only advances
// the LY register so that code polling it makes progress.
package video

import (
	"github.com/thelolagemann/gbcore/internal/types"
)

const (
	// TicksPerLine is the number of ticks spent on each line.
	TicksPerLine = 456
	// Lines is the number of lines per frame, including the
	// 10 lines of VBlank.
	Lines = 154
	// VisibleLines is the number of lines drawn to the LCD.
	VisibleLines = 144
)

// Bus is the memory the timing stub reports LY through.
type Bus interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, value uint8) error
}

// Timing counts ticks, and every TicksPerLine ticks moves LY on to
// the next line.
type Timing struct {
	b Bus

	cycle uint64
	// frames completed since creation
	frames uint64
}

// NewTiming returns a Timing that writes LY through b.
func NewTiming(b Bus) *Timing {
	return &Timing{b: b}
}

// Tick advances the counter by one. On every TicksPerLine'th tick LY
// is incremented, wrapping to 0 after the last line of the frame.
func (t *Timing) Tick() error {
	t.cycle++
	if t.cycle%TicksPerLine != 0 {
		return nil
	}

	ly, err := t.b.Read(types.LY)
	if err != nil {
		return err
	}
	ly = uint8((uint16(ly) + 1) % Lines)
	if ly == 0 {
		t.frames++
	}
	return t.b.Write(types.LY, ly)
}

// Cycle returns the number of ticks so far.
func (t *Timing) Cycle() uint64 {
	return t.cycle
}

// Frames returns the number of frames completed so far.
func (t *Timing) Frames() uint64 {
	return t.frames
}

// VBlank returns true if LY is past the last visible line.
func (t *Timing) VBlank() bool {
	ly, err := t.b.Read(types.LY)
	return err == nil && ly >= VisibleLines
}

var _ types.Stater = (*Timing)(nil)

// Load the state of the timing stub.
func (t *Timing) Load(s *types.State) {
	t.cycle = s.Read64()
	t.frames = s.Read64()
}

// Save the state of the timing stub.
func (t *Timing) Save(s *types.State) {
	s.Write64(t.cycle)
	s.Write64(t.frames)
}
