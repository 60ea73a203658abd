package gameboy

import (
	"github.com/thelolagemann/gbcore/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance. Options are applied before the components are created.
type Opt func(gb *GameBoy)

// WithLogger sets the logger used by the GameBoy and its MMU.
func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// Enhanced sizes the working and video RAM for CGB mode.
func Enhanced() Opt {
	return func(gb *GameBoy) {
		gb.enhanced = true
	}
}

// WithBankSelect switches the working and video RAM banks on
// writes to SVBK and VBK. Only takes effect together with Enhanced.
func WithBankSelect() Opt {
	return func(gb *GameBoy) {
		gb.bankSelect = true
	}
}

// WithState restores a snapshot taken by Save once the GameBoy has
// been created.
func WithState(b []byte) Opt {
	return func(gb *GameBoy) {
		gb.state = b
	}
}

// WithEntryPoint sets the address execution starts from, instead of
// the cartridge entry point.
func WithEntryPoint(pc uint16) Opt {
	return func(gb *GameBoy) {
		gb.entryPoint = pc
	}
}
