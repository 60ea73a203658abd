package cpu

// Flag is the bit position of a flag in the F register.
type Flag = uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

// flagNames in F register order, high bit first.
var flagNames = [4]string{"Z", "N", "H", "C"}

// Flag returns true if the given flag is set.
func (r *Registers) Flag(flag Flag) bool {
	return r.F&(1<<flag) != 0
}

// SetFlag sets or clears the given flag. Bits of the lower
// nibble can not be set.
func (r *Registers) SetFlag(flag Flag, value bool) {
	if value {
		r.F |= 1 << flag
	} else {
		r.F &^= 1 << flag
	}
	r.F &= 0xF0
}

// ResetFlags clears every flag.
func (r *Registers) ResetFlags() {
	r.F = 0
}

// setFlags sets all four flags at once.
func (r *Registers) setFlags(zero, subtract, halfCarry, carry bool) {
	r.F = 0
	if zero {
		r.F |= 1 << FlagZero
	}
	if subtract {
		r.F |= 1 << FlagSubtract
	}
	if halfCarry {
		r.F |= 1 << FlagHalfCarry
	}
	if carry {
		r.F |= 1 << FlagCarry
	}
}

// SetHalfCarryAdd sets FlagHalfCarry if adding the low nibbles of a
// and b carries into bit 4.
func (r *Registers) SetHalfCarryAdd(a, b uint8) {
	r.SetFlag(FlagHalfCarry, (a&0xF)+(b&0xF) > 0xF)
}

// SetHalfCarrySub sets FlagHalfCarry if subtracting the low nibble of
// b from that of a borrows from bit 4.
func (r *Registers) SetHalfCarrySub(a, b uint8) {
	r.SetFlag(FlagHalfCarry, a&0xF < b&0xF)
}

// Flags returns the flags as a string such as "Z-H-", for display.
func (r *Registers) Flags() string {
	b := []byte("----")
	for i, flag := range []Flag{FlagZero, FlagSubtract, FlagHalfCarry, FlagCarry} {
		if r.Flag(flag) {
			b[i] = flagNames[i][0]
		}
	}
	return string(b)
}
