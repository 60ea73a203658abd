package cartridge

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoHeader is returned when a ROM is too short to hold a header.
var ErrNoHeader = errors.New("rom too short for a cartridge header")

const (
	headerStart = 0x0100
	headerEnd   = 0x0150
)

// Mode is the hardware a cartridge declares support for at 0x0143.
type Mode uint8

const (
	ModeDMG Mode = iota
	ModeSupportsCGB
	ModeOnlyCGB
)

func (m Mode) String() string {
	switch m {
	case ModeSupportsCGB:
		return "CGB compatible"
	case ModeOnlyCGB:
		return "CGB only"
	default:
		return "DMG"
	}
}

var ramSizes = map[uint8]uint{
	0x00: 0,
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// Header represents the header of a cartridge, each cartridge has a header and is
// located at the address space 0x0100-0x014F. The header contains information about
// the cartridge itself, and the hardware it expects to run on.
type Header struct {
	// 0x0134-0x0143 - Title of the game, shortened to 0x0134-0x0142 on
	// CGB cartridges.
	Title string
	// 0x0143 - Mode. In older cartridges this byte was part of the
	// title.
	Mode Mode
	// 0x0147 - CartridgeType selects the memory bank controller.
	CartridgeType Type
	// 0x0148 - ROMSize is 32kB << n.
	ROMSize uint
	// 0x0149 - RAMSize of the external RAM.
	RAMSize uint
	// 0x014D - HeaderChecksum over 0x0134-0x014C.
	HeaderChecksum uint8

	raw [headerEnd - headerStart]byte
}

// ParseHeader parses the header of the given ROM.
func ParseHeader(rom []byte) (Header, error) {
	h := Header{}
	if len(rom) < headerEnd {
		return h, fmt.Errorf("%w: %d bytes", ErrNoHeader, len(rom))
	}
	copy(h.raw[:], rom[headerStart:headerEnd])
	header := h.raw[:]

	switch header[0x43] {
	case 0x80:
		h.Mode = ModeSupportsCGB
	case 0xC0:
		h.Mode = ModeOnlyCGB
	}

	title := header[0x34:0x44]
	if h.Mode != ModeDMG {
		title = header[0x34:0x43]
	}
	h.Title = strings.TrimRight(string(title), "\x00 ")

	h.CartridgeType = Type(header[0x47])
	h.ROMSize = (32 * 1024) << (header[0x48] & 0xF)
	h.RAMSize = ramSizes[header[0x49]]
	h.HeaderChecksum = header[0x4D]

	return h, nil
}

// ValidChecksum returns true if the header checksum matches the
// header. The boot ROM refuses to start cartridges failing it.
func (h *Header) ValidChecksum() bool {
	var x uint8
	for _, b := range h.raw[0x34:0x4D] {
		x = x - b - 1
	}
	return x == h.HeaderChecksum
}

// GameboyColor returns true if the cartridge supports CGB mode.
func (h *Header) GameboyColor() bool {
	return h.Mode != ModeDMG
}

func (h *Header) String() string {
	return fmt.Sprintf("%s Mode: %s | Type: %s | ROM Size: %dkB | RAM Size: %dkB", h.Title, h.Mode, h.CartridgeType, h.ROMSize/1024, h.RAMSize/1024)
}
