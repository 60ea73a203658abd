package cpu

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedInstruction is matched by every UnsupportedInstructionError.
	ErrUnsupportedInstruction = errors.New("unsupported instruction")
	// ErrInvalidRegisterCode is matched by every InvalidRegisterCodeError.
	ErrInvalidRegisterCode = errors.New("invalid register code")
	// ErrInvalidPairCode is matched by every InvalidPairCodeError.
	ErrInvalidPairCode = errors.New("invalid register pair code")
	// ErrInvalidConditionCode is matched by every InvalidConditionCodeError.
	ErrInvalidConditionCode = errors.New("invalid condition code")
	// ErrHalted is returned when stepping a CPU that executed HALT or
	// STOP. Nothing wakes the CPU other than Resume.
	ErrHalted = errors.New("cpu halted")
)

// UnsupportedInstructionError is returned when an opcode matches no
// instruction of its block.
type UnsupportedInstructionError struct {
	Opcode uint8
	// Prefixed is set for opcodes of the 0xCB table.
	Prefixed bool
	// PC is the address the instruction was fetched from.
	PC uint16
}

func (e *UnsupportedInstructionError) Error() string {
	if e.Prefixed {
		return fmt.Sprintf("unsupported instruction 0xCB 0x%02X at 0x%04X", e.Opcode, e.PC)
	}
	return fmt.Sprintf("unsupported instruction 0x%02X at 0x%04X", e.Opcode, e.PC)
}

func (e *UnsupportedInstructionError) Is(target error) bool {
	return target == ErrUnsupportedInstruction
}

// InvalidRegisterCodeError is returned when a register code is
// outside of the 3-bit register encoding.
type InvalidRegisterCodeError struct {
	Code uint8
}

func (e *InvalidRegisterCodeError) Error() string {
	return fmt.Sprintf("invalid register code %03b", e.Code)
}

func (e *InvalidRegisterCodeError) Is(target error) bool {
	return target == ErrInvalidRegisterCode
}

// InvalidPairCodeError is returned when a register pair code is
// outside of the 2-bit pair encoding.
type InvalidPairCodeError struct {
	Code uint8
}

func (e *InvalidPairCodeError) Error() string {
	return fmt.Sprintf("invalid register pair code %02b", e.Code)
}

func (e *InvalidPairCodeError) Is(target error) bool {
	return target == ErrInvalidPairCode
}

// InvalidConditionCodeError is returned when a condition code is
// outside of the 2-bit condition encoding.
type InvalidConditionCodeError struct {
	Code uint8
}

func (e *InvalidConditionCodeError) Error() string {
	return fmt.Sprintf("invalid condition code %02b", e.Code)
}

func (e *InvalidConditionCodeError) Is(target error) bool {
	return target == ErrInvalidConditionCode
}
