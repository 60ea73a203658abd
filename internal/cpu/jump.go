package cpu

// displacement decodes the operand of a relative jump. The byte is
// stored offset by 128, so 0x80 is a jump of zero.
func displacement(b uint8) int {
	return int(b) - 128
}

// jumpRelative reads the displacement operand, and adds it to PC if
// cond is true. The operand is consumed either way.
//
//	JR e
//	JR cc, e
func (c *CPU) jumpRelative(cond bool) error {
	d, err := c.readOperand()
	if err != nil {
		return err
	}
	if cond {
		c.PC = uint16(int(c.PC) + displacement(d))
	}
	return nil
}

// call pushes PC onto the stack and jumps to address.
//
//	CALL a16
//	CALL cc, a16
//	RST n
func (c *CPU) call(address uint16) error {
	if err := c.push(c.PC); err != nil {
		return err
	}
	c.PC = address
	return nil
}

// ret pops PC from the stack.
//
//	RET
//	RET cc
//	RETI
func (c *CPU) ret() error {
	address, err := c.pop()
	if err != nil {
		return err
	}
	c.PC = address
	return nil
}

// push decrements SP by two and writes value to the new top of the
// stack.
func (c *CPU) push(value uint16) error {
	c.SP -= 2
	return c.b.WriteWord(c.SP, value)
}

// pop reads the top of the stack and increments SP by two.
func (c *CPU) pop() (uint16, error) {
	v, err := c.b.ReadWord(c.SP)
	if err != nil {
		return 0, err
	}
	c.SP += 2
	return v, nil
}
