package mmu

import (
	"github.com/thelolagemann/gbcore/internal/types"
)

const (
	wramBankWidth = 0x1000
	// dmgWRAMBanks is bank 0 plus a single switchable bank (8kB).
	dmgWRAMBanks = 2
	// cgbWRAMBanks is bank 0 plus seven switchable banks (32kB).
	cgbWRAMBanks = 8
)

// WRAM is the working RAM. 0xC000 - 0xCFFF always maps bank 0, and
// 0xD000 - 0xDFFF maps the selected bank, which is only ever
// something other than 1 in enhanced (CGB) mode.
type WRAM struct {
	bank uint8
	raw  [][wramBankWidth]uint8
}

// NewWRAM returns the working RAM, sized for enhanced mode if cgb.
func NewWRAM(cgb bool) *WRAM {
	banks := dmgWRAMBanks
	if cgb {
		banks = cgbWRAMBanks
	}
	return &WRAM{
		bank: 1, // bank 1 is the default as the first bank is fixed
		raw:  make([][wramBankWidth]uint8, banks),
	}
}

// Read returns the value at the given offset from 0xC000.
func (w *WRAM) Read(offset uint16) uint8 {
	// are we reading from the fixed bank?
	if offset < wramBankWidth {
		return w.raw[0][offset]
	}
	return w.raw[w.bank][offset&0xFFF]
}

// Write writes the value at the given offset from 0xC000.
func (w *WRAM) Write(offset uint16, v uint8) {
	// are we writing to the fixed bank?
	if offset < wramBankWidth {
		w.raw[0][offset] = v
		return
	}
	w.raw[w.bank][offset&0xFFF] = v
}

// Bank returns the bank mapped to 0xD000 - 0xDFFF.
func (w *WRAM) Bank() uint8 {
	return w.bank
}

// Banks returns the number of banks, including the fixed bank 0.
func (w *WRAM) Banks() int {
	return len(w.raw)
}

// SetBank selects the bank mapped to 0xD000 - 0xDFFF. Only the lower
// 3 bits are used, and bank 0 selects bank 1 as the first bank is
// fixed. Banks the RAM does not have wrap around.
func (w *WRAM) SetBank(bank uint8) {
	bank &= 0x07
	if bank == 0 {
		bank = 1
	}
	if int(bank) >= len(w.raw) {
		bank = uint8(int(bank)%(len(w.raw)-1)) + 1
	}
	w.bank = bank
}

func (w *WRAM) Load(s *types.State) {
	w.SetBank(s.Read8())
	for i := range w.raw {
		s.ReadData(w.raw[i][:])
	}
}

func (w *WRAM) Save(s *types.State) {
	s.Write8(w.bank)
	for i := range w.raw {
		s.WriteData(w.raw[i][:])
	}
}
