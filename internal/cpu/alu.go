package cpu

// Codes of the 3-bit ALU operation shared by block 2 and the d8
// forms of block 3.
const (
	aluAdd uint8 = iota
	aluAdc
	aluSub
	aluSbc
	aluAnd
	aluXor
	aluOr
	aluCp
)

// alu performs the ALU operation op on the A Register and n.
func (c *CPU) alu(op uint8, n uint8) error {
	switch op {
	case aluAdd:
		c.A = c.add(n, false)
	case aluAdc:
		c.A = c.add(n, c.Flag(FlagCarry))
	case aluSub:
		c.A = c.sub(n, false)
	case aluSbc:
		c.A = c.sub(n, c.Flag(FlagCarry))
	case aluAnd:
		c.and(n)
	case aluXor:
		c.xor(n)
	case aluOr:
		c.or(n)
	case aluCp:
		c.compare(n)
	default:
		return c.unsupported(op, false)
	}
	return nil
}

// add returns the sum of the A Register, n and the carry in.
//
//	ADD A, n
//	ADC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(n uint8, carry bool) uint8 {
	var cin uint16
	if carry {
		cin = 1
	}
	sum := uint16(c.A) + uint16(n) + cin
	c.setFlags(
		uint8(sum) == 0,
		false,
		uint16(c.A&0xF)+uint16(n&0xF)+cin > 0xF,
		sum > 0xFF,
	)
	return uint8(sum)
}

// sub returns the difference of the A Register, n and the carry in.
//
//	SUB n
//	SBC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if no borrow from bit 4.
//	C - Set if no borrow.
func (c *CPU) sub(n uint8, carry bool) uint8 {
	var cin int16
	if carry {
		cin = 1
	}
	diff := int16(c.A) - int16(n) - cin
	c.setFlags(
		uint8(diff) == 0,
		true,
		int16(c.A&0xF)-int16(n&0xF)-cin < 0,
		diff < 0,
	)
	return uint8(diff)
}

// and performs a bitwise AND operation on n and the A Register.
//
//	AND n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(n uint8) {
	c.A &= n
	c.setFlags(c.A == 0, false, true, false)
}

// or performs a bitwise OR operation on n and the A Register.
//
//	OR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) or(n uint8) {
	c.A |= n
	c.setFlags(c.A == 0, false, false, false)
}

// xor performs a bitwise XOR operation on n and the A Register.
//
//	XOR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) xor(n uint8) {
	c.A ^= n
	c.setFlags(c.A == 0, false, false, false)
}

// compare compares n to the A Register. This is a subtraction whose
// result is thrown away, the A Register is left untouched.
//
//	CP n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero. (Set if A = n.)
//	N - Set.
//	H - Set if no borrow from bit 4.
//	C - Set for no borrow. (Set if A < n.)
func (c *CPU) compare(n uint8) {
	c.sub(n, false)
}

// increment returns n + 1.
//
//	INC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func (c *CPU) increment(n uint8) uint8 {
	c.SetHalfCarryAdd(n, 1)
	result := n + 1
	c.SetFlag(FlagZero, result == 0)
	c.SetFlag(FlagSubtract, false)
	return result
}

// decrement returns n - 1.
//
//	DEC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if no borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(n uint8) uint8 {
	c.SetHalfCarrySub(n, 1)
	result := n - 1
	c.SetFlag(FlagZero, result == 0)
	c.SetFlag(FlagSubtract, true)
	return result
}

// addHL adds n to the HL register pair.
//
//	ADD HL, n
//	n = BC, DE, HL, SP
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHL(n uint16) {
	hl := c.HL()
	sum := uint32(hl) + uint32(n)
	c.SetFlag(FlagSubtract, false)
	c.SetFlag(FlagHalfCarry, hl&0x0FFF+n&0x0FFF > 0x0FFF)
	c.SetFlag(FlagCarry, sum > 0xFFFF)
	c.SetHL(uint16(sum))
}

// addSPSigned reads a signed 8-bit operand and returns its sum with
// SP. The carries are those of adding the operand to the low byte
// of SP.
//
//	ADD SP, e
//	LD HL, SP+e
//	e = -128 to 127
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addSPSigned() (uint16, error) {
	e, err := c.readOperand()
	if err != nil {
		return 0, err
	}
	low := uint8(c.SP)
	c.setFlags(false, false, low&0xF+e&0xF > 0xF, uint16(low)+uint16(e) > 0xFF)
	return uint16(int32(c.SP) + int32(int8(e))), nil
}

// decimalAdjust corrects the A Register to binary-coded decimal after
// an addition or subtraction of two BCD values.
//
//	DAA
//
// Flags affected:
//
//	Z - Set if register A is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or reset according to operation.
func (c *CPU) decimalAdjust() {
	var correction uint8
	carry := c.Flag(FlagCarry)
	if c.Flag(FlagSubtract) {
		if c.Flag(FlagHalfCarry) {
			correction |= 0x06
		}
		if carry {
			correction |= 0x60
		}
		c.A -= correction
	} else {
		if c.Flag(FlagHalfCarry) || c.A&0xF > 0x9 {
			correction |= 0x06
		}
		if carry || c.A > 0x99 {
			correction |= 0x60
			carry = true
		}
		c.A += correction
	}
	c.SetFlag(FlagZero, c.A == 0)
	c.SetFlag(FlagHalfCarry, false)
	c.SetFlag(FlagCarry, carry)
}

// complement flips every bit of the A Register.
//
//	CPL
//
// Flags affected:
//
//	Z - Not affected.
//	N - Set.
//	H - Set.
//	C - Not affected.
func (c *CPU) complement() {
	c.A = ^c.A
	c.SetFlag(FlagSubtract, true)
	c.SetFlag(FlagHalfCarry, true)
}

// setCarry sets the carry flag, or complements it if flip is set.
//
//	SCF
//	CCF
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Reset.
//	C - Set, or complemented.
func (c *CPU) setCarry(flip bool) {
	c.SetFlag(FlagSubtract, false)
	c.SetFlag(FlagHalfCarry, false)
	if flip {
		c.SetFlag(FlagCarry, !c.Flag(FlagCarry))
	} else {
		c.SetFlag(FlagCarry, true)
	}
}
