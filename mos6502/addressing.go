package mos6502

import "fmt"

// ModeKind tags the thirteen 6502 addressing-mode shapes.
// https://www.nesdev.org/obelisk-6502-guide/addressing.html
type ModeKind uint8

const (
	Implied ModeKind = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (Indirect,X)
	IndirectIndexed // (Indirect),Y
)

var modeNames = map[ModeKind]string{
	Implied:         "Implied",
	Accumulator:     "Accumulator",
	Immediate:       "Immediate",
	ZeroPage:        "ZeroPage",
	ZeroPageX:       "ZeroPageX",
	ZeroPageY:       "ZeroPageY",
	Relative:        "Relative",
	Absolute:        "Absolute",
	AbsoluteX:       "AbsoluteX",
	AbsoluteY:       "AbsoluteY",
	Indirect:        "Indirect",
	IndexedIndirect: "IndexedIndirect",
	IndirectIndexed: "IndirectIndexed",
}

// AddressingMode is the decoded operand shape for one instruction. Operand
// holds the raw bytes captured at decode time: the zero-page byte or
// relative offset byte zero-extended into the low byte for the 1-byte
// modes, and the little-endian 16-bit value for the 2-byte modes. Implied,
// Accumulator carry no operand.
type AddressingMode struct {
	Kind    ModeKind
	Operand uint16
}

// ByteLength is the machine-code length of an instruction using this mode,
// including the opcode byte itself.
func (m AddressingMode) ByteLength() uint16 {
	switch m.Kind {
	case Implied, Accumulator:
		return 1
	case Immediate, ZeroPage, ZeroPageX, ZeroPageY, Relative, IndexedIndirect, IndirectIndexed:
		return 2
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		return 3
	default:
		panic(fmt.Sprintf("unknown addressing mode kind %d", m.Kind))
	}
}

func (m AddressingMode) String() string {
	switch m.Kind {
	case Implied, Accumulator:
		return modeNames[m.Kind]
	case Relative:
		return fmt.Sprintf("%s(%d)", modeNames[m.Kind], int8(m.Operand))
	default:
		return fmt.Sprintf("%s(%#x)", modeNames[m.Kind], m.Operand)
	}
}
