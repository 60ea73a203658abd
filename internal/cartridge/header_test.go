package cartridge

import (
	"errors"
	"testing"
)

// headerROM returns a ROM with the given title, CGB byte and a
// correct header checksum.
func headerROM(title string, cgb uint8) []byte {
	rom := make([]byte, 0x8000)
	copy(rom[0x0134:], title)
	rom[0x0143] = cgb
	rom[0x0148] = 0x01
	rom[0x0149] = 0x02
	var x uint8
	for _, b := range rom[0x0134:0x014D] {
		x = x - b - 1
	}
	rom[0x014D] = x
	return rom
}

func TestParseHeader(t *testing.T) {
	h, err := ParseHeader(headerROM("TETRIS", 0x00))
	if err != nil {
		t.Fatal(err)
	}
	if h.Title != "TETRIS" {
		t.Errorf("expected title TETRIS, got %q", h.Title)
	}
	if h.GameboyColor() || h.Mode != ModeDMG {
		t.Errorf("expected DMG cartridge, got %s", h.Mode)
	}
	if h.ROMSize != 64*1024 || h.RAMSize != 8*1024 {
		t.Errorf("unexpected sizes %d %d", h.ROMSize, h.RAMSize)
	}
	if !h.ValidChecksum() {
		t.Errorf("expected valid checksum")
	}
	if want := "TETRIS Mode: DMG | Type: ROM | ROM Size: 64kB | RAM Size: 8kB"; h.String() != want {
		t.Errorf("expected %q, got %q", want, h.String())
	}
}

func TestParseHeader_CGB(t *testing.T) {
	rom := headerROM("POKEMON CRYSTAL", 0xC0)
	h, err := ParseHeader(rom)
	if err != nil {
		t.Fatal(err)
	}
	if h.Mode != ModeOnlyCGB || !h.GameboyColor() {
		t.Errorf("expected CGB only cartridge, got %s", h.Mode)
	}
	if h.Title != "POKEMON CRYSTAL" {
		t.Errorf("expected title POKEMON CRYSTAL, got %q", h.Title)
	}

	rom[0x0140] ^= 0xFF
	h, _ = ParseHeader(rom)
	if h.ValidChecksum() {
		t.Errorf("expected invalid checksum")
	}
}

func TestParseHeader_Short(t *testing.T) {
	if _, err := ParseHeader(make([]byte, 0x14F)); !errors.Is(err, ErrNoHeader) {
		t.Errorf("expected ErrNoHeader, got %v", err)
	}
}
