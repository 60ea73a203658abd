// Package ram provides a basic, optionally banked, RAM implementation.
// Every addressable store of the Game Boy (video RAM, object memory,
// high RAM, ...) is a RAM with a fixed bank width; the owner of the
// RAM translates logical addresses into bank-relative offsets.
package ram

import (
	"github.com/thelolagemann/gbcore/internal/types"
)

// RAM represents a block of RAM made up of one or more banks
// of equal width, only one of which is visible at a time.
type RAM struct {
	data      []byte
	bankWidth uint32
	bank      uint32
}

// NewRAM returns a new unbanked RAM of the given size.
func NewRAM(size uint32) *RAM {
	return NewBankedRAM(size, 1)
}

// NewBankedRAM returns a new RAM holding banks banks of
// bankWidth bytes each. Bank 0 is selected.
func NewBankedRAM(bankWidth, banks uint32) *RAM {
	if banks == 0 {
		banks = 1
	}
	return &RAM{
		data:      make([]byte, bankWidth*banks),
		bankWidth: bankWidth,
	}
}

// Read returns the value at the given offset of the selected bank.
func (r *RAM) Read(offset uint16) uint8 {
	return r.data[r.bank*r.bankWidth+uint32(offset)%r.bankWidth]
}

// Write writes the value to the given offset of the selected bank.
func (r *RAM) Write(offset uint16, value uint8) {
	r.data[r.bank*r.bankWidth+uint32(offset)%r.bankWidth] = value
}

// ReadBank returns the value at the given offset of bank, regardless
// of the selected bank.
func (r *RAM) ReadBank(bank uint8, offset uint16) uint8 {
	b := uint32(bank) % r.Banks()
	return r.data[b*r.bankWidth+uint32(offset)%r.bankWidth]
}

// WriteBank writes the value to the given offset of bank, regardless
// of the selected bank.
func (r *RAM) WriteBank(bank uint8, offset uint16, value uint8) {
	b := uint32(bank) % r.Banks()
	r.data[b*r.bankWidth+uint32(offset)%r.bankWidth] = value
}

// Bank returns the selected bank.
func (r *RAM) Bank() uint8 {
	return uint8(r.bank)
}

// SetBank selects the visible bank. Banks beyond the last
// wrap around.
func (r *RAM) SetBank(bank uint8) {
	r.bank = uint32(bank) % r.Banks()
}

// Banks returns the number of banks.
func (r *RAM) Banks() uint32 {
	return uint32(len(r.data)) / r.bankWidth
}

// BankWidth returns the size of a single bank.
func (r *RAM) BankWidth() uint32 {
	return r.bankWidth
}

// Size returns the total size of the RAM across all banks.
func (r *RAM) Size() int {
	return len(r.data)
}

// Reset clears every bank and selects bank 0.
func (r *RAM) Reset() {
	for i := range r.data {
		r.data[i] = 0
	}
	r.bank = 0
}

var (
	_ types.Stater     = (*RAM)(nil)
	_ types.Resettable = (*RAM)(nil)
)

func (r *RAM) Load(s *types.State) {
	r.bank = uint32(s.Read8()) % r.Banks()
	s.ReadData(r.data)
}

func (r *RAM) Save(s *types.State) {
	s.Write8(uint8(r.bank))
	s.WriteData(r.data)
}
