// Package debugger drives a GameBoy one instruction at a time on
// behalf of a front end, stopping at breakpoints, and gives it read
// access to the machine between steps.
package debugger

import (
	"errors"
	"fmt"
	"sync"

	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/internal/gameboy"
	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/pkg/log"
	"github.com/thelolagemann/gbcore/pkg/utils"
)

// MaxPeek is the most bytes returned by a single Peek.
const MaxPeek = 0x100

// StopReason describes why Step or Continue returned.
type StopReason uint8

const (
	// StopStep is returned when the requested steps completed.
	StopStep StopReason = iota
	// StopBreakpoint is returned when PC reached a breakpoint.
	StopBreakpoint
	// StopLimit is returned when Continue ran out of steps.
	StopLimit
	// StopHalted is returned when the CPU is halted.
	StopHalted
	// StopError is returned when an instruction failed.
	StopError
)

var stopNames = map[StopReason]string{
	StopStep:       "step",
	StopBreakpoint: "breakpoint",
	StopLimit:      "limit",
	StopHalted:     "halted",
	StopError:      "error",
}

func (s StopReason) String() string {
	if name, ok := stopNames[s]; ok {
		return name
	}
	return fmt.Sprintf("StopReason(%d)", uint8(s))
}

// Stop is the outcome of Step or Continue.
type Stop struct {
	Reason StopReason
	// PC after the last step.
	PC uint16
	// Steps is the number of instructions executed.
	Steps int
	// Err is set for StopError.
	Err error
}

func (s Stop) String() string {
	if s.Err != nil {
		return fmt.Sprintf("%s at 0x%04X after %d steps: %v", s.Reason, s.PC, s.Steps, s.Err)
	}
	return fmt.Sprintf("%s at 0x%04X after %d steps", s.Reason, s.PC, s.Steps)
}

// RegisterDump is a copy of the CPU registers taken between steps.
type RegisterDump struct {
	A, F, B, C, D, E, H, L uint8
	SP, PC                 uint16
	IME                    bool
	Halted                 bool
	Flags                  string
	Instructions           uint64
}

func (r RegisterDump) String() string {
	return fmt.Sprintf("A: %02X F: %02X B: %02X C: %02X D: %02X E: %02X H: %02X L: %02X SP: %04X PC: %04X [%s] IME: %v",
		r.A, r.F, r.B, r.C, r.D, r.E, r.H, r.L, r.SP, r.PC, r.Flags, r.IME)
}

// Debugger owns a GameBoy. Stepping and inspection are serialized, so
// a front end can inspect the machine from one goroutine while
// another runs it.
type Debugger struct {
	// Breakpoints stop Continue once PC reaches any of them.
	Breakpoints *Breakpoints

	mu  sync.Mutex
	gb  *gameboy.GameBoy
	log log.Logger
}

// Opt configures a Debugger.
type Opt func(d *Debugger)

// WithLogger sets the logger used to report breakpoints and failures.
func WithLogger(l log.Logger) Opt {
	return func(d *Debugger) {
		d.log = l
	}
}

// WithBreakpoints sets the initial breakpoints.
func WithBreakpoints(addresses ...uint16) Opt {
	return func(d *Debugger) {
		for _, address := range addresses {
			d.Breakpoints.Add(address)
		}
	}
}

// New returns a Debugger driving gb.
func New(gb *gameboy.GameBoy, opts ...Opt) *Debugger {
	d := &Debugger{
		Breakpoints: NewBreakpoints(),
		gb:          gb,
		log:         log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Step executes up to n instructions, stopping early at a breakpoint
// or on error.
func (d *Debugger) Step(n int) Stop {
	if n < 1 {
		n = 1
	}
	return d.run(n, StopStep)
}

// Continue executes instructions until PC reaches a breakpoint, an
// instruction fails, or limit instructions have run. A limit of 0 or
// less places no bound.
func (d *Debugger) Continue(limit int) Stop {
	return d.run(limit, StopLimit)
}

func (d *Debugger) run(limit int, exhausted StopReason) Stop {
	d.mu.Lock()
	defer d.mu.Unlock()

	hit := false
	steps, err := d.gb.RunUntil(func(gb *gameboy.GameBoy) bool {
		hit = d.Breakpoints.Has(gb.CPU.PC)
		return hit
	}, limit)

	stop := Stop{Reason: exhausted, PC: d.gb.CPU.PC, Steps: steps}
	switch {
	case errors.Is(err, cpu.ErrHalted):
		stop.Reason = StopHalted
	case err != nil:
		stop.Reason, stop.Err = StopError, err
		d.log.Errorf("debugger: %v", stop)
	case hit:
		stop.Reason = StopBreakpoint
		d.log.Infof("debugger: breakpoint 0x%04X hit after %d steps", stop.PC, steps)
	}
	return stop
}

// Resume wakes a halted CPU.
func (d *Debugger) Resume() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gb.CPU.Resume()
}

// Registers returns a copy of the CPU registers.
func (d *Debugger) Registers() RegisterDump {
	d.mu.Lock()
	defer d.mu.Unlock()
	c := d.gb.CPU
	return RegisterDump{
		A: c.A, F: c.F, B: c.B, C: c.C, D: c.D, E: c.E, H: c.H, L: c.L,
		SP: c.SP, PC: c.PC,
		IME:          c.IME,
		Halted:       c.Halted(),
		Flags:        c.Flags(),
		Instructions: c.Instructions,
	}
}

// Peek reads n bytes starting at address, n being clamped to
// 1 - MaxPeek. Reading stops at the first unmapped address, returning
// the bytes read so far along with the error.
func (d *Debugger) Peek(address uint16, n int) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n = utils.Clamp(1, n, MaxPeek)
	data := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		v, err := d.gb.MMU.Read(address + uint16(i))
		if err != nil {
			return data, err
		}
		data = append(data, v)
	}
	return data, nil
}

// Save returns a compressed snapshot of the machine.
func (d *Debugger) Save() ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gb.SaveCompressed()
}

// Load restores a snapshot taken by Save. The machine is unchanged if
// the snapshot cannot be loaded.
func (d *Debugger) Load(b []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gb.LoadCompressed(b)
}

// Regions returns the memory map of the machine.
func (d *Debugger) Regions() []mmu.Region {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gb.MMU.Regions()
}

// Digest returns the state digest of the machine.
func (d *Debugger) Digest() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gb.Digest()
}
