package debugger

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/internal/gameboy"
	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// newTestDebugger runs program from the entry point:
//
//	0x0100 INC B
//	0x0101 INC C
//	0x0102 JP 0x0100
func newTestDebugger(t *testing.T, program []uint8, opts ...Opt) *Debugger {
	t.Helper()
	if program == nil {
		program = []uint8{0x04, 0x0C, 0xC3, 0x00, 0x01}
	}
	rom := make([]byte, 0x8000)
	copy(rom[types.EntryPoint:], program)
	gb, err := gameboy.NewGameBoy(rom)
	require.NoError(t, err)
	return New(gb, opts...)
}

func TestBreakpoints(t *testing.T) {
	b := NewBreakpoints(0x0150)
	assert.True(t, b.Has(0x0150))
	assert.True(t, b.Add(0x0100))
	assert.False(t, b.Add(0x0100))
	assert.Equal(t, []uint16{0x0100, 0x0150}, b.List())
	assert.True(t, b.Remove(0x0150))
	assert.False(t, b.Remove(0x0150))
	assert.Equal(t, 1, b.Len())
	b.Clear()
	assert.Empty(t, b.List())
}

func TestDebugger_Step(t *testing.T) {
	d := newTestDebugger(t, nil)

	stop := d.Step(2)
	assert.Equal(t, StopStep, stop.Reason)
	assert.Equal(t, 2, stop.Steps)
	assert.Equal(t, uint16(0x0102), stop.PC)

	regs := d.Registers()
	assert.Equal(t, uint8(1), regs.B)
	assert.Equal(t, uint8(1), regs.C)
	assert.Equal(t, uint64(2), regs.Instructions)

	// n < 1 still steps once
	stop = d.Step(0)
	assert.Equal(t, 1, stop.Steps)
	assert.Equal(t, uint16(0x0100), stop.PC)
}

func TestDebugger_Continue(t *testing.T) {
	var out bytes.Buffer
	l, err := log.NewWithLevel(&out, "info")
	require.NoError(t, err)
	d := newTestDebugger(t, nil, WithLogger(l), WithBreakpoints(0x0102))

	stop := d.Continue(0)
	assert.Equal(t, StopBreakpoint, stop.Reason)
	assert.Equal(t, uint16(0x0102), stop.PC)
	assert.Equal(t, 2, stop.Steps)
	assert.Contains(t, out.String(), "breakpoint 0x0102 hit")

	// continuing from a breakpoint leaves it first
	stop = d.Continue(0)
	assert.Equal(t, StopBreakpoint, stop.Reason)
	assert.Equal(t, 3, stop.Steps)
	assert.Equal(t, uint8(2), d.Registers().B)

	d.Breakpoints.Clear()
	stop = d.Continue(100)
	assert.Equal(t, StopLimit, stop.Reason)
	assert.Equal(t, 100, stop.Steps)
}

func TestDebugger_Error(t *testing.T) {
	var out bytes.Buffer
	l, err := log.NewWithLevel(&out, "info")
	require.NoError(t, err)
	d := newTestDebugger(t, []uint8{0x00, 0xFD}, WithLogger(l))

	stop := d.Continue(0)
	assert.Equal(t, StopError, stop.Reason)
	assert.ErrorIs(t, stop.Err, cpu.ErrUnsupportedInstruction)
	assert.Equal(t, 1, stop.Steps)
	assert.True(t, strings.Contains(out.String(), "level=error"), out.String())
}

func TestDebugger_Halted(t *testing.T) {
	d := newTestDebugger(t, []uint8{0x76, 0x04})

	stop := d.Continue(10)
	assert.Equal(t, StopHalted, stop.Reason)
	assert.True(t, d.Registers().Halted)

	d.Resume()
	stop = d.Step(1)
	assert.Equal(t, StopStep, stop.Reason)
	assert.Equal(t, uint8(1), d.Registers().B)
}

func TestDebugger_Peek(t *testing.T) {
	d := newTestDebugger(t, nil)

	data, err := d.Peek(0x0100, 5)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04, 0x0C, 0xC3, 0x00, 0x01}, data)

	data, err = d.Peek(0x0000, 0)
	require.NoError(t, err)
	assert.Len(t, data, 1)

	data, err = d.Peek(0x0000, 0x1000)
	require.NoError(t, err)
	assert.Len(t, data, MaxPeek)

	// the echo RAM is unmapped
	data, err = d.Peek(types.EchoStart-2, 4)
	assert.ErrorIs(t, err, mmu.ErrUnmappedAddress)
	assert.Len(t, data, 2)
}

func TestDebugger_Concurrent(t *testing.T) {
	d := newTestDebugger(t, nil)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			d.Step(10)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = d.Registers()
			_, _ = d.Peek(0xC000, 16)
		}
	}()
	wg.Wait()
	assert.Equal(t, uint64(1000), d.Registers().Instructions)
}

func TestDebugger_Digest(t *testing.T) {
	a, b := newTestDebugger(t, nil), newTestDebugger(t, nil)
	assert.Equal(t, a.Digest(), b.Digest())
	a.Step(1)
	assert.NotEqual(t, a.Digest(), b.Digest())
	b.Step(1)
	assert.Equal(t, a.Digest(), b.Digest())
	assert.NotEmpty(t, a.Regions())
}

func TestDebugger_SaveLoad(t *testing.T) {
	d := newTestDebugger(t, nil)
	d.Step(4)
	snapshot, err := d.Save()
	require.NoError(t, err)
	want := d.Registers()

	d.Step(10)
	require.NotEqual(t, want, d.Registers())

	require.NoError(t, d.Load(snapshot))
	assert.Equal(t, want, d.Registers())

	moved := d.Step(1)
	assert.Error(t, d.Load(snapshot[:len(snapshot)/2]))
	assert.Equal(t, moved.PC, d.Registers().PC)
}
