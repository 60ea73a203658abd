// Package mmu provides a memory management unit for the Game Boy. The
// MMU owns every addressable store, and translates each 16-bit logical
// address into the store and offset backing it. It is the only path
// the CPU has to memory.
package mmu

import (
	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/io"
	"github.com/thelolagemann/gbcore/internal/ram"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

const (
	vramBankWidth = 0x2000
	oamSize       = int(types.OAMEnd-types.OAMStart) + 1
	hramSize      = int(types.HRAMEnd-types.HRAMStart) + 1
)

// Region is a contiguous range of the address space backed by a
// single store. Start and End are inclusive.
type Region struct {
	Name       string
	Start, End uint16

	read  func(address uint16) (uint8, error)
	write func(address uint16, value uint8) error
}

// Contains reports whether address falls within the region.
func (r Region) Contains(address uint16) bool {
	return address >= r.Start && address <= r.End
}

// Size returns the number of addresses covered by the region.
func (r Region) Size() int {
	return int(r.End) - int(r.Start) + 1
}

// MMU is the memory management unit for the Game Boy. It handles all
// memory reads and writes to the Game Boy's 64kB of memory, and
// delegates to the backing store of each region.
type MMU struct {
	// 0x0000 - 0x7FFF - ROM (32kB)
	// 0xA000 - 0xBFFF - External RAM (8kB, reserved)
	Cart cartridge.MemoryBankController

	// 0x8000 - 0x9FFF - Video RAM (8kB, 2 banks in CGB mode)
	VRAM *ram.RAM

	// 0xC000 - 0xDFFF - Work RAM (8kB, 8 banks of 4kB in CGB mode)
	WRAM *WRAM

	// 0xFE00 - 0xFE9F - Sprite Attribute Table (160B)
	OAM *ram.RAM

	// 0xFF00 - 0xFF7F - I/O Registers
	IO *io.Registers

	// 0xFF80 - 0xFFFE - High RAM (127B)
	HRAM *ram.RAM

	// 0xFFFF - interrupt enable register
	ie uint8

	// regions in priority order, first match wins
	regions  []Region
	reserved []Region
	// 64kB address space
	raw [0x10000]*Region

	isGBC      bool
	bankSelect bool

	log log.Logger
}

// Opt configures an MMU before its stores are allocated.
type Opt func(m *MMU)

// Enhanced sizes the video and working RAM for CGB mode.
func Enhanced() Opt {
	return func(m *MMU) {
		m.isGBC = true
	}
}

// WithBankSelect attaches observers to the SVBK and VBK registers,
// so that writing them switches the working and video RAM banks.
// It has no effect outside of enhanced mode.
func WithBankSelect() Opt {
	return func(m *MMU) {
		m.bankSelect = true
	}
}

// WithLogger sets the logger used by the MMU.
func WithLogger(l log.Logger) Opt {
	return func(m *MMU) {
		m.log = l
	}
}

// NewMMU returns a new MMU serving the given cartridge.
func NewMMU(cart cartridge.MemoryBankController, opts ...Opt) *MMU {
	m := &MMU{
		Cart: cart,
		log:  log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}

	vramBanks := uint32(1)
	if m.isGBC {
		vramBanks = 2
	}
	m.VRAM = ram.NewBankedRAM(vramBankWidth, vramBanks)
	m.WRAM = NewWRAM(m.isGBC)
	m.OAM = ram.NewRAM(uint32(oamSize))
	m.IO = io.NewRegisters()
	m.HRAM = ram.NewRAM(uint32(hramSize))

	m.init()

	return m
}

func (m *MMU) init() {
	m.regions = []Region{
		{
			Name: "ROM", Start: types.ROMStart, End: types.ROMEnd,
			read: func(address uint16) (uint8, error) {
				return m.Cart.Read(address), nil
			},
			write: func(address uint16, value uint8) error {
				m.Cart.Write(address, value)
				return nil
			},
		},
		{
			Name: "VRAM", Start: types.VRAMStart, End: types.VRAMEnd,
			read:  readOffset(m.VRAM.Read, types.VRAMStart),
			write: writeOffset(m.VRAM.Write, types.VRAMStart),
		},
		{
			Name: "External RAM", Start: types.ExternalRAMStart, End: types.ExternalRAMEnd,
			read: func(address uint16) (uint8, error) {
				if v, ok := m.Cart.ReadRAM(address); ok {
					return v, nil
				}
				return 0, &UnmappedAddressError{Address: address, Region: "External RAM"}
			},
			write: func(address uint16, value uint8) error {
				if m.Cart.WriteRAM(address, value) {
					return nil
				}
				return &UnmappedAddressError{Address: address, Region: "External RAM"}
			},
		},
		{
			Name: "WRAM", Start: types.WRAMStart, End: types.WRAMEnd,
			read:  readOffset(m.WRAM.Read, types.WRAMStart),
			write: writeOffset(m.WRAM.Write, types.WRAMStart),
		},
		{
			Name: "OAM", Start: types.OAMStart, End: types.OAMEnd,
			read:  readOffset(m.OAM.Read, types.OAMStart),
			write: writeOffset(m.OAM.Write, types.OAMStart),
		},
		{
			Name: "I/O", Start: types.IOStart, End: types.IOEnd,
			read:  readOffset(m.IO.Read, 0),
			write: writeOffset(m.IO.Write, 0),
		},
		{
			Name: "HRAM", Start: types.HRAMStart, End: types.HRAMEnd,
			read:  readOffset(m.HRAM.Read, types.HRAMStart),
			write: writeOffset(m.HRAM.Write, types.HRAMStart),
		},
		{
			Name: "IE", Start: types.IE, End: types.IE,
			read: func(uint16) (uint8, error) {
				return m.ie, nil
			},
			write: func(_ uint16, value uint8) error {
				m.ie = value
				return nil
			},
		},
	}

	// unbacked ranges, only used to name the range in errors
	m.reserved = []Region{
		{Name: "Echo RAM", Start: types.EchoStart, End: types.EchoEnd},
		{Name: "Prohibited", Start: types.ProhibitedStart, End: types.ProhibitedEnd},
	}

	// fill the table from the lowest priority region up, so that
	// the first matching region wins
	for i := len(m.regions) - 1; i >= 0; i-- {
		r := &m.regions[i]
		for addr := int(r.Start); addr <= int(r.End); addr++ {
			m.raw[addr] = r
		}
	}

	if m.bankSelect {
		if !m.isGBC {
			m.log.Debugf("mmu: bank select requested outside of CGB mode, ignoring")
			return
		}
		m.IO.Observe(types.SVBK, func(_ uint16, v uint8) {
			m.WRAM.SetBank(v)
			m.log.Debugf("mmu: WRAM bank %d selected", m.WRAM.Bank())
		})
		m.IO.Observe(types.VBK, func(_ uint16, v uint8) {
			m.VRAM.SetBank(v & types.Bit0)
			m.log.Debugf("mmu: VRAM bank %d selected", m.VRAM.Bank())
		})
	}
}

func readOffset(read func(uint16) uint8, offset uint16) func(uint16) (uint8, error) {
	return func(addr uint16) (uint8, error) {
		return read(addr - offset), nil
	}
}

func writeOffset(write func(uint16, uint8), offset uint16) func(uint16, uint8) error {
	return func(addr uint16, v uint8) error {
		write(addr-offset, v)
		return nil
	}
}

// IsGBC reports whether the MMU was sized for CGB mode.
func (m *MMU) IsGBC() bool {
	return m.isGBC
}

// Regions returns the mapped regions in priority order.
func (m *MMU) Regions() []Region {
	regions := make([]Region, len(m.regions))
	copy(regions, m.regions)
	return regions
}

// RegionOf returns the region backing the given address.
func (m *MMU) RegionOf(address uint16) (Region, bool) {
	if r := m.raw[address]; r != nil {
		return *r, true
	}
	return Region{}, false
}

func (m *MMU) unmapped(address uint16) error {
	for _, r := range m.reserved {
		if r.Contains(address) {
			return &UnmappedAddressError{Address: address, Region: r.Name}
		}
	}
	return &UnmappedAddressError{Address: address}
}

// Read returns the value at the given address.
func (m *MMU) Read(address uint16) (uint8, error) {
	r := m.raw[address]
	if r == nil {
		return 0, m.unmapped(address)
	}
	return r.read(address)
}

// Write writes the value to the given address.
func (m *MMU) Write(address uint16, value uint8) error {
	r := m.raw[address]
	if r == nil {
		return m.unmapped(address)
	}
	return r.write(address, value)
}

// ReadWord returns the little-endian word at the given address: the
// low byte is read from address, the high byte from address+1.
func (m *MMU) ReadWord(address uint16) (uint16, error) {
	lo, err := m.Read(address)
	if err != nil {
		return 0, err
	}
	hi, err := m.Read(address + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// WriteWord writes value as a little-endian word, the low byte to
// address and then the high byte to address+1.
func (m *MMU) WriteWord(address uint16, value uint16) error {
	if err := m.Write(address, uint8(value)); err != nil {
		return err
	}
	return m.Write(address+1, uint8(value>>8))
}

var _ types.Stater = (*MMU)(nil)

func (m *MMU) Load(s *types.State) {
	m.Cart.Load(s)
	m.VRAM.Load(s)
	m.WRAM.Load(s)
	m.OAM.Load(s)
	m.IO.Load(s)
	m.HRAM.Load(s)
	m.ie = s.Read8()
}

func (m *MMU) Save(s *types.State) {
	m.Cart.Save(s)
	m.VRAM.Save(s)
	m.WRAM.Save(s)
	m.OAM.Save(s)
	m.IO.Save(s)
	m.HRAM.Save(s)
	s.Write8(m.ie)
}
