package mos6502

import "fmt"

// CPU is the 6502 itself: register file plus the fetch/decode/execute
// cycle. It owns no memory — every read and write goes through the Bus
// given to Reset/Step/NMI, so the console's memory map lives in one place
// instead of being split across the CPU and the cartridge mapper.
type CPU struct {
	Regs Registers
}

// New returns a CPU in its power-up state. PC is left at zero; call
// Reset once bus can resolve the reset vector.
func New() *CPU {
	return &CPU{Regs: WithPowerUpState()}
}

// Reset loads PC from the reset vector at IntReset/IntReset+1, the
// power-up sequence a real 6502 performs before its first instruction.
func (c *CPU) Reset(bus Bus) {
	c.Regs.PC = Read16(bus, IntReset)
}

// Step fetches one instruction at the current PC, executes it and advances
// PC: decode from the bytes at PC, execute against the bus, then add the
// instruction's byte length to PC unless the instruction is a jump, call,
// return or branch (which resolve PC themselves) or BRK (which leaves PC
// where it was). Returns *ErrInvalidOpCode if the
// byte at PC names no known instruction. PC must name a location the bus can
// actually supply a decode slice for; anywhere else is a fatal condition,
// not a recoverable error, since it means the program counter has run off
// into unmapped memory.
func (c *CPU) Step(bus Bus) (Instruction, error) {
	pc := c.Regs.PC
	raw, ok := bus.SliceFrom(pc)
	if !ok {
		panic(fmt.Sprintf("mos6502: no decode slice available at %#04x", pc))
	}
	var code [3]uint8
	copy(code[:], raw)

	instr, err := Decode(code[:])
	if err != nil {
		return Instruction{}, err
	}

	Execute(instr, bus, &c.Regs)
	if instr.Type.IncrementsPC() {
		c.Regs.PC = pc + instr.ByteLength()
	}

	return instr, nil
}

// NMI services a non-maskable interrupt: pushes PC and P (without the break
// flag), sets the interrupt-disable flag, and loads PC from the NMI vector
// at IntNMI/IntNMI+1. Unlike BRK, NMI does load its vector — the documented
// BRK deviation is specific to BRK, not interrupts in general.
func (c *CPU) NMI(bus Bus) {
	s := NewStack(bus, &c.Regs)
	s.Push16(c.Regs.PC)
	s.Push(c.Regs.P &^ FlagBreak)
	setFlag(&c.Regs, FlagInterruptDisable, true)
	c.Regs.PC = Read16(bus, IntNMI)
}
