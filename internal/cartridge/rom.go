package cartridge

import "github.com/thelolagemann/gbcore/internal/types"

// romSize is the size of the unbanked ROM area (0x0000 - 0x7FFF).
const romSize = int(types.ROMEnd) + 1

// ROMCartridge represents a ROM cartridge. This cartridge type is the simplest
// cartridge type and has no external RAM or MBC. The full 32kB ROM area is
// mapped directly; ROMs shorter than that are padded with zeroes.
//
// Writes are stored in the ROM image, unlike on real hardware.
type ROMCartridge struct {
	rom []byte
}

// NewROMCartridge returns a new ROM cartridge holding a copy of rom.
func NewROMCartridge(rom []byte) *ROMCartridge {
	r := &ROMCartridge{
		rom: make([]byte, romSize),
	}
	copy(r.rom, rom)
	return r
}

// Read returns the value at the given address.
func (r *ROMCartridge) Read(address uint16) uint8 {
	return r.rom[int(address)%romSize]
}

// Write writes the value to the given address.
func (r *ROMCartridge) Write(address uint16, value uint8) {
	r.rom[int(address)%romSize] = value
}

// ReadRAM always reports that there is no external RAM.
func (r *ROMCartridge) ReadRAM(uint16) (uint8, bool) {
	return 0, false
}

// WriteRAM always reports that there is no external RAM.
func (r *ROMCartridge) WriteRAM(uint16, uint8) bool {
	return false
}

// Type returns ROM.
func (r *ROMCartridge) Type() Type {
	return ROM
}

func (r *ROMCartridge) Load(s *types.State) {
	s.ReadData(r.rom)
}

func (r *ROMCartridge) Save(s *types.State) {
	s.WriteData(r.rom)
}
