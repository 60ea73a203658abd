// Package cartridge provides the memory bank controllers that sit
// between the CPU and the game ROM. Only the fixed-mapping controller
// of plain ROM cartridges is implemented; every other controller type
// is reported as unsupported so that a caller can plug in its own.
package cartridge

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/gbcore/internal/types"
)

// ErrUnsupportedController is returned when a ROM requests a memory
// bank controller that is not implemented.
var ErrUnsupportedController = errors.New("unsupported memory bank controller")

// typeAddress is the offset of the cartridge type byte in the header.
const typeAddress = 0x0147

// MemoryBankController represents a Memory Bank Controller. It
// serves the ROM area (0x0000 - 0x7FFF) and, when the cartridge
// has any, the external RAM area (0xA000 - 0xBFFF).
type MemoryBankController interface {
	// Read returns the value at the given ROM address.
	Read(address uint16) uint8
	// Write handles a write to the ROM area. Banked controllers
	// interpret these as register writes.
	Write(address uint16, value uint8)
	// ReadRAM returns the value at the given external RAM address,
	// and false if the cartridge has no external RAM.
	ReadRAM(address uint16) (uint8, bool)
	// WriteRAM writes to external RAM, returning false if the
	// cartridge has no external RAM.
	WriteRAM(address uint16, value uint8) bool
	// Type returns the cartridge type the controller implements.
	Type() Type

	types.Stater
}

// Controller is the constructor of a MemoryBankController.
type Controller func(rom []byte) MemoryBankController

var controllers = map[Type]Controller{
	ROM: func(rom []byte) MemoryBankController { return NewROMCartridge(rom) },
}

// Register adds a controller for the given cartridge type, replacing
// any existing one.
func Register(t Type, c Controller) {
	controllers[t] = c
}

// New returns the MemoryBankController for the given ROM, selected by
// the cartridge type byte of its header. ROMs too short to carry a
// header are treated as plain ROM cartridges.
func New(rom []byte) (MemoryBankController, error) {
	t := ROM
	if len(rom) > typeAddress {
		t = Type(rom[typeAddress])
	}

	c, ok := controllers[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s (0x%02x)", ErrUnsupportedController, t, uint8(t))
	}
	return c(rom), nil
}
