// Package io provides the I/O register block of the Game Boy, mapped
// to 0xFF00 - 0xFF7F. The block is plain storage; components that
// need to react to a register being written (bank selection, for
// example) attach a WriteObserver to its address.
package io

import (
	"github.com/thelolagemann/gbcore/internal/types"
)

// Size is the number of bytes in the I/O register block.
const Size = int(types.IOEnd-types.IOStart) + 1

// WriteObserver is called after a value has been written to an
// observed register.
type WriteObserver func(address uint16, value uint8)

// Registers is the I/O register block.
type Registers struct {
	data      [Size]uint8
	observers map[uint16][]WriteObserver
}

// NewRegisters returns an empty I/O register block.
func NewRegisters() *Registers {
	return &Registers{
		observers: make(map[uint16][]WriteObserver),
	}
}

// Observe attaches fn to the register at address. Observers are
// called in the order they were attached.
func (r *Registers) Observe(address types.HardwareAddress, fn WriteObserver) {
	r.observers[address] = append(r.observers[address], fn)
}

// Observed reports whether any observer is attached to address.
func (r *Registers) Observed(address types.HardwareAddress) bool {
	return len(r.observers[address]) > 0
}

// Read returns the value of the register at the given address.
func (r *Registers) Read(address uint16) uint8 {
	return r.data[address-types.IOStart]
}

// Write stores the value at the given address, then notifies
// any observers of the register.
func (r *Registers) Write(address uint16, value uint8) {
	r.data[address-types.IOStart] = value
	for _, fn := range r.observers[address] {
		fn(address, value)
	}
}

// Set stores the value without notifying observers. It is used by
// components that own a register and update it themselves.
func (r *Registers) Set(address uint16, value uint8) {
	r.data[address-types.IOStart] = value
}

// Reset clears every register. Observers stay attached.
func (r *Registers) Reset() {
	r.data = [Size]uint8{}
}

var (
	_ types.Stater     = (*Registers)(nil)
	_ types.Resettable = (*Registers)(nil)
)

func (r *Registers) Load(s *types.State) {
	s.ReadData(r.data[:])
}

func (r *Registers) Save(s *types.State) {
	s.WriteData(r.data[:])
}
