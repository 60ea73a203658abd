package cpu

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/types"
)

// Bus is the CPU's view of the address space. Every access may fail,
// and the failure is reported by Step unchanged.
type Bus interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, value uint8) error
	// ReadWord reads a little-endian 16-bit value.
	ReadWord(address uint16) (uint16, error)
	// WriteWord writes a little-endian 16-bit value.
	WriteWord(address uint16, value uint16) error
}

type mode = uint8

const (
	// ModeNormal is the normal CPU mode.
	ModeNormal mode = iota
	// ModeHalt is entered by HALT.
	ModeHalt
	// ModeStop is entered by STOP.
	ModeStop
)

// CPU represents the Game Boy CPU. It is responsible for fetching,
// decoding and executing instructions, one per Step.
type CPU struct {
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	Registers

	// IME is the interrupt master enable flag. Interrupts are not
	// dispatched, the flag is only kept for DI, EI and RETI.
	IME bool
	// Instructions counts the instructions executed successfully.
	Instructions uint64

	b    Bus
	mode mode

	// address of the instruction being executed
	instructionPC uint16
}

// NewCPU creates a new CPU with its registers at power on, reading
// and writing memory through the given Bus.
func NewCPU(b Bus) *CPU {
	return &CPU{
		Registers: NewRegisters(),
		b:         b,
	}
}

// Step fetches, decodes and executes exactly one instruction. A
// failed read or write, or an opcode that does not decode, is
// returned as is, and may leave the instruction partially executed.
//
// Step returns ErrHalted without side effects once HALT or STOP has
// been executed.
func (c *CPU) Step() error {
	if c.mode != ModeNormal {
		return ErrHalted
	}
	c.instructionPC = c.PC
	opcode, err := c.readOperand()
	if err != nil {
		return fmt.Errorf("fetching instruction at 0x%04X: %w", c.instructionPC, err)
	}
	if err := c.decode(opcode); err != nil {
		return err
	}
	c.Instructions++
	return nil
}

// Halted returns true if the CPU has executed HALT or STOP.
func (c *CPU) Halted() bool {
	return c.mode != ModeNormal
}

// Mode returns the current CPU mode.
func (c *CPU) Mode() uint8 {
	return c.mode
}

// Resume returns a halted CPU to normal execution.
func (c *CPU) Resume() {
	c.mode = ModeNormal
}

// readOperand reads the byte at PC and advances PC past it.
func (c *CPU) readOperand() (uint8, error) {
	v, err := c.b.Read(c.PC)
	if err != nil {
		return 0, err
	}
	c.PC++
	return v, nil
}

// readOperand16 reads the little-endian word at PC and advances PC
// past it.
func (c *CPU) readOperand16() (uint16, error) {
	low, err := c.readOperand()
	if err != nil {
		return 0, err
	}
	high, err := c.readOperand()
	if err != nil {
		return 0, err
	}
	return uint16(high)<<8 | uint16(low), nil
}

// readRegister returns the operand selected by a 3-bit register code,
// reading memory at HL for RegisterHLIndirect.
func (c *CPU) readRegister(code uint8) (uint8, error) {
	if code == RegisterHLIndirect {
		return c.b.Read(c.HL())
	}
	return c.Byte(code)
}

// writeRegister sets the operand selected by a 3-bit register code,
// writing memory at HL for RegisterHLIndirect.
func (c *CPU) writeRegister(code uint8, value uint8) error {
	if code == RegisterHLIndirect {
		return c.b.Write(c.HL(), value)
	}
	return c.SetByte(code, value)
}

// condition evaluates a 2-bit condition code.
//
//	00 NZ    10 NC
//	01 Z     11 C
func (c *CPU) condition(code uint8) (bool, error) {
	switch code {
	case 0:
		return !c.Flag(FlagZero), nil
	case 1:
		return c.Flag(FlagZero), nil
	case 2:
		return !c.Flag(FlagCarry), nil
	case 3:
		return c.Flag(FlagCarry), nil
	}
	return false, &InvalidConditionCodeError{Code: code}
}

func (c *CPU) unsupported(opcode uint8, prefixed bool) error {
	return &UnsupportedInstructionError{Opcode: opcode, Prefixed: prefixed, PC: c.instructionPC}
}

var _ types.Stater = (*CPU)(nil)

// Load the state of the CPU.
func (c *CPU) Load(s *types.State) {
	c.A = s.Read8()
	c.F = s.Read8() & 0xF0
	c.B = s.Read8()
	c.C = s.Read8()
	c.D = s.Read8()
	c.E = s.Read8()
	c.H = s.Read8()
	c.L = s.Read8()
	c.SP = s.Read16()
	c.PC = s.Read16()
	c.IME = s.ReadBool()
	if m := s.Read8(); m <= ModeStop {
		c.mode = m
	} else {
		s.Corrupt("cpu mode %d", m)
	}
	c.Instructions = s.Read64()
}

// Save the state of the CPU.
func (c *CPU) Save(s *types.State) {
	s.Write8(c.A)
	s.Write8(c.F)
	s.Write8(c.B)
	s.Write8(c.C)
	s.Write8(c.D)
	s.Write8(c.E)
	s.Write8(c.H)
	s.Write8(c.L)
	s.Write16(c.SP)
	s.Write16(c.PC)
	s.WriteBool(c.IME)
	s.Write8(c.mode)
	s.Write64(c.Instructions)
}
