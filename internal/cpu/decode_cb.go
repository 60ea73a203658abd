package cpu

import "github.com/thelolagemann/gbcore/internal/types"

// decodeCB executes an instruction of the 0xCB prefixed table. Every
// instruction operates on the register selected by z. x selects
// between the rotates and shifts, BIT, RES and SET. y selects the
// rotate or the bit.
func (c *CPU) decodeCB(op opcode) error {
	v, err := c.readRegister(op.z())
	if err != nil {
		return err
	}
	switch op.x() {
	case 0:
		v = c.rotateShift(op.y(), v)
	case 1:
		c.testBit(op.y(), v)
		return nil
	case 2: // RES b, r
		v &^= types.BitIndex(op.y())
	case 3: // SET b, r
		v |= types.BitIndex(op.y())
	}
	return c.writeRegister(op.z(), v)
}

// rotateShift returns n rotated or shifted by the operation selected
// by y.
//
//	0 RLC    4 SLA
//	1 RRC    5 SRA
//	2 RL     6 SWAP
//	3 RR     7 SRL
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains the bit shifted out, reset for SWAP.
func (c *CPU) rotateShift(y uint8, n uint8) uint8 {
	var carryIn uint8
	if c.Flag(FlagCarry) {
		carryIn = 1
	}

	var result uint8
	var carry bool
	switch y {
	case 0: // RLC
		result = n<<1 | n>>7
		carry = n&types.Bit7 != 0
	case 1: // RRC
		result = n>>1 | n<<7
		carry = n&types.Bit0 != 0
	case 2: // RL
		result = n<<1 | carryIn
		carry = n&types.Bit7 != 0
	case 3: // RR
		result = n>>1 | carryIn<<7
		carry = n&types.Bit0 != 0
	case 4: // SLA
		result = n << 1
		carry = n&types.Bit7 != 0
	case 5: // SRA
		result = n>>1 | n&types.Bit7
		carry = n&types.Bit0 != 0
	case 6: // SWAP
		result = n<<4 | n>>4
	case 7: // SRL
		result = n >> 1
		carry = n&types.Bit0 != 0
	}
	c.setFlags(result == 0, false, false, carry)
	return result
}

// testBit tests bit b of n. n is left unchanged.
//
//	BIT b, r
//	b = 0 - 7, r = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if bit b of register r is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(b uint8, n uint8) {
	c.SetFlag(FlagZero, n&types.BitIndex(b) == 0)
	c.SetFlag(FlagSubtract, false)
	c.SetFlag(FlagHalfCarry, true)
}
