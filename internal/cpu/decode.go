package cpu

// opcode is an instruction byte, split into the fields that select
// its operation and operands.
//
//	 x   y   z
//	[76][543][210]
//	    [54][3]
//	     p   q
type opcode uint8

func (o opcode) x() uint8 { return uint8(o) >> 6 }
func (o opcode) y() uint8 { return uint8(o) >> 3 & 0x7 }
func (o opcode) z() uint8 { return uint8(o) & 0x7 }
func (o opcode) p() uint8 { return uint8(o) >> 4 & 0x3 }
func (o opcode) q() uint8 { return uint8(o) >> 3 & 0x1 }

// HALT takes the place of LD (HL), (HL) in block 1.
const opcodeHALT = 0x76

// decode executes the instruction of the given opcode, reading any
// immediate operands that follow it.
func (c *CPU) decode(b uint8) error {
	op := opcode(b)
	switch op.x() {
	case 0:
		return c.decodeBlock0(op)
	case 1:
		return c.decodeBlock1(op)
	case 2:
		// ALU A, r
		v, err := c.readRegister(op.z())
		if err != nil {
			return err
		}
		return c.alu(op.y(), v)
	default:
		return c.decodeBlock3(op)
	}
}

// decodeBlock0 executes the miscellaneous, 16-bit, indirect and
// accumulator instructions of block 0 (0x00 - 0x3F).
func (c *CPU) decodeBlock0(op opcode) error {
	switch op.z() {
	case 0:
		switch y := op.y(); y {
		case 0: // NOP
			return nil
		case 1: // LD (a16), SP
			address, err := c.readOperand16()
			if err != nil {
				return err
			}
			return c.b.WriteWord(address, c.SP)
		case 2: // STOP
			if _, err := c.readOperand(); err != nil {
				return err
			}
			c.mode = ModeStop
			return nil
		case 3: // JR e
			return c.jumpRelative(true)
		default: // JR cc, e
			cond, err := c.condition(y - 4)
			if err != nil {
				return err
			}
			return c.jumpRelative(cond)
		}
	case 1:
		if op.q() == 0 {
			// LD rr, d16
			v, err := c.readOperand16()
			if err != nil {
				return err
			}
			return c.SetPair(op.p(), v)
		}
		// ADD HL, rr
		v, err := c.Pair(op.p())
		if err != nil {
			return err
		}
		c.addHL(v)
		return nil
	case 2:
		return c.loadIndirect(op.p(), op.q() == 1)
	case 3:
		// INC rr, DEC rr
		v, err := c.Pair(op.p())
		if err != nil {
			return err
		}
		if op.q() == 0 {
			v++
		} else {
			v--
		}
		return c.SetPair(op.p(), v)
	case 4:
		// INC r
		v, err := c.readRegister(op.y())
		if err != nil {
			return err
		}
		return c.writeRegister(op.y(), c.increment(v))
	case 5:
		// DEC r
		v, err := c.readRegister(op.y())
		if err != nil {
			return err
		}
		return c.writeRegister(op.y(), c.decrement(v))
	case 6:
		// LD r, d8
		v, err := c.readOperand()
		if err != nil {
			return err
		}
		return c.writeRegister(op.y(), v)
	default:
		c.accumulatorOp(op.y())
		return nil
	}
}

// loadIndirect transfers the A Register to (load false) or from
// (load true) the address held by a register pair. Pair codes 2 and
// 3 both address through HL, incrementing and decrementing it
// respectively once the transfer is done.
//
//	LD (BC), A    LD A, (BC)
//	LD (DE), A    LD A, (DE)
//	LD (HL+), A   LD A, (HL+)
//	LD (HL-), A   LD A, (HL-)
func (c *CPU) loadIndirect(code uint8, load bool) error {
	var address uint16
	switch code {
	case PairBC:
		address = c.BC()
	case PairDE:
		address = c.DE()
	default:
		address = c.HL()
	}

	if load {
		v, err := c.b.Read(address)
		if err != nil {
			return err
		}
		c.A = v
	} else if err := c.b.Write(address, c.A); err != nil {
		return err
	}

	switch code {
	case 2:
		c.SetHL(address + 1)
	case 3:
		c.SetHL(address - 1)
	}
	return nil
}

// accumulatorOp executes the A Register instructions in column 7 of
// block 0.
//
//	0 RLCA    4 DAA
//	1 RRCA    5 CPL
//	2 RLA     6 SCF
//	3 RRA     7 CCF
func (c *CPU) accumulatorOp(y uint8) {
	switch y {
	case 0, 1, 2, 3:
		// the accumulator forms never set the zero flag
		c.A = c.rotateShift(y, c.A)
		c.SetFlag(FlagZero, false)
	case 4:
		c.decimalAdjust()
	case 5:
		c.complement()
	case 6:
		c.setCarry(false)
	case 7:
		c.setCarry(true)
	}
}

// decodeBlock1 executes the 8-bit register transfers of block 1
// (0x40 - 0x7F), and HALT.
//
//	LD r, r'
func (c *CPU) decodeBlock1(op opcode) error {
	if op == opcodeHALT {
		c.mode = ModeHalt
		return nil
	}
	v, err := c.readRegister(op.z())
	if err != nil {
		return err
	}
	return c.writeRegister(op.y(), v)
}

// decodeBlock3 executes the control flow, stack, high memory and
// immediate ALU instructions of block 3 (0xC0 - 0xFF).
func (c *CPU) decodeBlock3(op opcode) error {
	switch op.z() {
	case 0:
		switch y := op.y(); y {
		case 4: // LDH (a8), A
			n, err := c.readOperand()
			if err != nil {
				return err
			}
			return c.b.Write(0xFF00|uint16(n), c.A)
		case 5: // ADD SP, e
			v, err := c.addSPSigned()
			if err != nil {
				return err
			}
			c.SP = v
			return nil
		case 6: // LDH A, (a8)
			n, err := c.readOperand()
			if err != nil {
				return err
			}
			v, err := c.b.Read(0xFF00 | uint16(n))
			if err != nil {
				return err
			}
			c.A = v
			return nil
		case 7: // LD HL, SP+e
			v, err := c.addSPSigned()
			if err != nil {
				return err
			}
			c.SetHL(v)
			return nil
		default: // RET cc
			cond, err := c.condition(y)
			if err != nil || !cond {
				return err
			}
			return c.ret()
		}
	case 1:
		if op.q() == 0 {
			// POP rr
			v, err := c.pop()
			if err != nil {
				return err
			}
			return c.SetStackPair(op.p(), v)
		}
		switch op.p() {
		case 0: // RET
			return c.ret()
		case 1: // RETI
			if err := c.ret(); err != nil {
				return err
			}
			c.IME = true
			return nil
		case 2: // JP HL
			c.PC = c.HL()
			return nil
		default: // LD SP, HL
			c.SP = c.HL()
			return nil
		}
	case 2:
		switch y := op.y(); y {
		case 4: // LD (0xFF00+C), A
			return c.b.Write(0xFF00|uint16(c.C), c.A)
		case 5: // LD (a16), A
			address, err := c.readOperand16()
			if err != nil {
				return err
			}
			return c.b.Write(address, c.A)
		case 6: // LD A, (0xFF00+C)
			v, err := c.b.Read(0xFF00 | uint16(c.C))
			if err != nil {
				return err
			}
			c.A = v
			return nil
		case 7: // LD A, (a16)
			address, err := c.readOperand16()
			if err != nil {
				return err
			}
			v, err := c.b.Read(address)
			if err != nil {
				return err
			}
			c.A = v
			return nil
		default: // JP cc, a16
			address, err := c.readOperand16()
			if err != nil {
				return err
			}
			cond, err := c.condition(y)
			if err != nil {
				return err
			}
			if cond {
				c.PC = address
			}
			return nil
		}
	case 3:
		switch op.y() {
		case 0: // JP a16
			address, err := c.readOperand16()
			if err != nil {
				return err
			}
			c.PC = address
			return nil
		case 1: // PREFIX CB
			cb, err := c.readOperand()
			if err != nil {
				return err
			}
			return c.decodeCB(opcode(cb))
		case 6: // DI
			c.IME = false
			return nil
		case 7: // EI
			c.IME = true
			return nil
		}
	case 4:
		if y := op.y(); y < 4 {
			// CALL cc, a16
			address, err := c.readOperand16()
			if err != nil {
				return err
			}
			cond, err := c.condition(y)
			if err != nil || !cond {
				return err
			}
			return c.call(address)
		}
	case 5:
		if op.q() == 0 {
			// PUSH rr
			v, err := c.StackPair(op.p())
			if err != nil {
				return err
			}
			return c.push(v)
		}
		if op.p() == 0 {
			// CALL a16
			address, err := c.readOperand16()
			if err != nil {
				return err
			}
			return c.call(address)
		}
	case 6:
		// ALU A, d8
		n, err := c.readOperand()
		if err != nil {
			return err
		}
		return c.alu(op.y(), n)
	case 7:
		// RST n
		return c.call(uint16(op.y()) * 8)
	}
	return c.unsupported(uint8(op), false)
}
