package cpu

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/types"
)

// Register is a single 8-bit register.
type Register = uint8

// Codes of the 3-bit register operand shared by block 1, block 2 and
// the prefixed table.
//
//	000 B    100 H
//	001 C    101 L
//	010 D    110 (HL)
//	011 E    111 A
const (
	RegisterB uint8 = iota
	RegisterC
	RegisterD
	RegisterE
	RegisterH
	RegisterL
	// RegisterHLIndirect addresses memory through HL. It is not a
	// register, and is resolved by the CPU rather than the Registers.
	RegisterHLIndirect
	RegisterA
)

// Codes of the 2-bit register pair operand.
const (
	PairBC uint8 = iota
	PairDE
	PairHL
	// PairSP is the stack pointer in the general pair table.
	PairSP
)

// PairAF takes the place of PairSP in the stack pair table used by
// PUSH and POP.
const PairAF = PairSP

// Registers holds the register file of the CPU. The 16-bit pairs
// are never stored, they are composed from their halves on access.
type Registers struct {
	A, B, C, D, E, H, L Register
	// F holds the flags in its upper nibble, the lower
	// nibble always reads as zero.
	F Register

	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
}

// NewRegisters returns the register file at power on: every register
// cleared and PC at the cartridge entry point.
func NewRegisters() Registers {
	return Registers{PC: types.EntryPoint}
}

// Byte returns the register selected by the given 3-bit code.
func (r *Registers) Byte(code uint8) (uint8, error) {
	switch code {
	case RegisterB:
		return r.B, nil
	case RegisterC:
		return r.C, nil
	case RegisterD:
		return r.D, nil
	case RegisterE:
		return r.E, nil
	case RegisterH:
		return r.H, nil
	case RegisterL:
		return r.L, nil
	case RegisterA:
		return r.A, nil
	}
	return 0, &InvalidRegisterCodeError{Code: code}
}

// SetByte sets the register selected by the given 3-bit code.
func (r *Registers) SetByte(code uint8, value uint8) error {
	switch code {
	case RegisterB:
		r.B = value
	case RegisterC:
		r.C = value
	case RegisterD:
		r.D = value
	case RegisterE:
		r.E = value
	case RegisterH:
		r.H = value
	case RegisterL:
		r.L = value
	case RegisterA:
		r.A = value
	default:
		return &InvalidRegisterCodeError{Code: code}
	}
	return nil
}

// Pair returns the register pair selected by the given 2-bit code
// from the general table (BC, DE, HL, SP).
func (r *Registers) Pair(code uint8) (uint16, error) {
	switch code {
	case PairBC:
		return r.BC(), nil
	case PairDE:
		return r.DE(), nil
	case PairHL:
		return r.HL(), nil
	case PairSP:
		return r.SP, nil
	}
	return 0, &InvalidPairCodeError{Code: code}
}

// SetPair sets the register pair selected by the given 2-bit code
// from the general table (BC, DE, HL, SP).
func (r *Registers) SetPair(code uint8, value uint16) error {
	switch code {
	case PairBC:
		r.SetBC(value)
	case PairDE:
		r.SetDE(value)
	case PairHL:
		r.SetHL(value)
	case PairSP:
		r.SP = value
	default:
		return &InvalidPairCodeError{Code: code}
	}
	return nil
}

// StackPair returns the register pair selected by the given 2-bit
// code from the stack table (BC, DE, HL, AF).
func (r *Registers) StackPair(code uint8) (uint16, error) {
	if code == PairAF {
		return r.AF(), nil
	}
	return r.Pair(code)
}

// SetStackPair sets the register pair selected by the given 2-bit
// code from the stack table (BC, DE, HL, AF).
func (r *Registers) SetStackPair(code uint8, value uint16) error {
	if code == PairAF {
		r.SetAF(value)
		return nil
	}
	return r.SetPair(code, value)
}

func (r *Registers) BC() uint16 { return uint16(r.B)<<8 | uint16(r.C) }
func (r *Registers) DE() uint16 { return uint16(r.D)<<8 | uint16(r.E) }
func (r *Registers) HL() uint16 { return uint16(r.H)<<8 | uint16(r.L) }
func (r *Registers) AF() uint16 { return uint16(r.A)<<8 | uint16(r.F) }

func (r *Registers) SetBC(value uint16) { r.B, r.C = uint8(value>>8), uint8(value) }
func (r *Registers) SetDE(value uint16) { r.D, r.E = uint8(value>>8), uint8(value) }
func (r *Registers) SetHL(value uint16) { r.H, r.L = uint8(value>>8), uint8(value) }

// SetAF sets the accumulator and flags. The lower nibble of F is
// discarded.
func (r *Registers) SetAF(value uint16) {
	r.A, r.F = uint8(value>>8), uint8(value)&0xF0
}

func (r *Registers) String() string {
	return fmt.Sprintf("A: %02X F: %02X B: %02X C: %02X D: %02X E: %02X H: %02X L: %02X SP: %04X PC: %04X",
		r.A, r.F, r.B, r.C, r.D, r.E, r.H, r.L, r.SP, r.PC)
}
