package cpu

import (
	"testing"

	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/internal/types"
)

// newTestCPU returns a CPU on a fresh machine, with program placed
// at the entry point and SP at the top of high RAM.
func newTestCPU(program ...uint8) (*CPU, *mmu.MMU) {
	rom := make([]byte, 0x8000)
	copy(rom[types.EntryPoint:], program)
	m := mmu.NewMMU(cartridge.NewROMCartridge(rom))
	c := NewCPU(m)
	c.SP = 0xFFFE
	return c, m
}

// step executes a single instruction, failing the test on error.
func step(t *testing.T, c *CPU) {
	t.Helper()
	if err := c.Step(); err != nil {
		t.Fatalf("unexpected error at 0x%04X: %v", c.instructionPC, err)
	}
}

// testInstruction runs program on a fresh CPU prepared by setup, and
// hands the result to check.
func testInstruction(t *testing.T, name string, program []uint8, setup func(c *CPU, m *mmu.MMU), check func(t *testing.T, c *CPU, m *mmu.MMU)) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		c, m := newTestCPU(program...)
		if setup != nil {
			setup(c, m)
		}
		step(t, c)
		check(t, c, m)
	})
}

func expectByte(t *testing.T, name string, want, got uint8) {
	t.Helper()
	if want != got {
		t.Errorf("expected %s to be 0x%02X, got 0x%02X", name, want, got)
	}
}

func expectWord(t *testing.T, name string, want, got uint16) {
	t.Helper()
	if want != got {
		t.Errorf("expected %s to be 0x%04X, got 0x%04X", name, want, got)
	}
}

// expectFlags compares F against the flags named in want, such as "Z-H-".
func expectFlags(t *testing.T, c *CPU, want string) {
	t.Helper()
	if got := c.Flags(); got != want {
		t.Errorf("expected flags %s, got %s", want, got)
	}
}

func readByte(t *testing.T, m *mmu.MMU, address uint16) uint8 {
	t.Helper()
	v, err := m.Read(address)
	if err != nil {
		t.Fatalf("reading 0x%04X: %v", address, err)
	}
	return v
}

func writeByte(t *testing.T, m *mmu.MMU, address uint16, value uint8) {
	t.Helper()
	if err := m.Write(address, value); err != nil {
		t.Fatalf("writing 0x%04X: %v", address, err)
	}
}
