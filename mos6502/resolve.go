package mos6502

// resolver computes effective addresses and reads/writes operands for each
// AddressingMode. AbsoluteX/AbsoluteY wrap at 16 bits, an intentional
// deviation from canonical 6502 page-crossing behavior; ZeroPageX/ZeroPageY
// wrap within page zero via uint8 addition.
type resolver struct {
	bus  Bus
	regs *Registers
}

func newResolver(bus Bus, regs *Registers) resolver {
	return resolver{bus: bus, regs: regs}
}

// address returns the effective address for modes that have one. Implied,
// Accumulator and Immediate have no address and must not be passed here.
func (r resolver) address(m AddressingMode) uint16 {
	switch m.Kind {
	case ZeroPage:
		return m.Operand & 0xFF
	case ZeroPageX:
		return uint16(uint8(m.Operand) + r.regs.X)
	case ZeroPageY:
		return uint16(uint8(m.Operand) + r.regs.Y)
	case Absolute:
		return m.Operand
	case AbsoluteX:
		return m.Operand + uint16(r.regs.X)
	case AbsoluteY:
		return m.Operand + uint16(r.regs.Y)
	case Indirect:
		return Read16(r.bus, m.Operand)
	case IndexedIndirect:
		return Read16ZeroPage(r.bus, uint8(m.Operand)+r.regs.X)
	case IndirectIndexed:
		base := Read16ZeroPage(r.bus, uint8(m.Operand))
		return base + uint16(r.regs.Y)
	default:
		panic("mos6502: addressing mode has no effective address: " + m.String())
	}
}

// readByMode fetches the operand byte for any addressing mode, including
// Immediate (the literal operand) and Accumulator (register A).
func (r resolver) readByMode(m AddressingMode) uint8 {
	switch m.Kind {
	case Immediate:
		return uint8(m.Operand)
	case Accumulator:
		return r.regs.A
	default:
		return r.bus.Read(r.address(m))
	}
}

// writeByMode stores val for any writable addressing mode. Immediate has no
// writable destination and is never passed here.
func (r resolver) writeByMode(m AddressingMode, val uint8) {
	switch m.Kind {
	case Accumulator:
		r.regs.A = val
	default:
		r.bus.Write(r.address(m), val)
	}
}
