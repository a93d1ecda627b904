// Package mappers implements and registers mappers that are
// referenced numerically by iNES and NES2.0 ROM files.
package mappers

import (
	"fmt"

	"nesgo/nesrom"
)

// A global registry of mappers, keyed by mapper id
var allMappers map[uint16]Mapper = map[uint16]Mapper{}

func RegisterMapper(id uint16, m Mapper) {
	if om, ok := allMappers[id]; ok {
		panic(fmt.Sprintf("Can't re-register mapper id %d. It's used by %q.", id, om.Name()))
	}
	allMappers[id] = m
}

// Get returns a mapper with the specified id or an error if we don't
// have a mapper for that id yet.
func Get(rom *nesrom.ROM) (Mapper, error) {
	id := rom.MapperNum()
	m, ok := allMappers[id]
	if !ok {
		return nil, fmt.Errorf("unknown mapper id %d", id)
	}

	m.Init(rom)
	return m, nil
}

// Mapper is how the console talks to a loaded cartridge: PRG access for the
// CPU bus (given the raw CPU bus address, which the mapper translates into a
// PRG offset itself), CHR access for the PPU bus, and the static facts (mirroring, save
// RAM) the rest of the console needs at boot. Internal 2KB console RAM is
// owned by the console bus, not the mapper.
type Mapper interface {
	ID() uint16
	Init(*nesrom.ROM)
	Name() string
	PrgRead(uint16) uint8   // Read PRG data; addr is the raw CPU bus address
	PrgWrite(uint16, uint8) // Write PRG data; a no-op on any ROM-only board
	ChrRead(uint16) uint8   // Read CHR data; addr is the raw PPU bus address
	ChrWrite(uint16, uint8) // Write CHR data; a no-op unless the board has CHR RAM
	MirroringMode() uint8   // Which mirroring mode nametable data is stored in
	HasSaveRAM() bool       // Whether the cartridge exposes Save RAM at 0x6000-0x7FFF

	// SliceFrom returns the PRG bytes visible at addr, running to the end of
	// the mapped bank, so the decoder can fetch a multi-byte instruction
	// without per-byte indirection. False means addr isn't cartridge-visible.
	SliceFrom(uint16) ([]uint8, bool)
}

// baseMapper carries the fields every mapper needs regardless of its
// bank-switching scheme.
type baseMapper struct {
	id   uint16
	rom  *nesrom.ROM
	name string
}

func newBaseMapper(id uint16, name string) *baseMapper {
	return &baseMapper{id: id, name: name}
}

func (bm *baseMapper) ID() uint16 {
	return bm.id
}

func (bm *baseMapper) String() string {
	return bm.name
}

func (bm *baseMapper) Name() string {
	return bm.name
}

func (bm *baseMapper) Init(r *nesrom.ROM) {
	bm.rom = r
}

func (bm *baseMapper) MirroringMode() uint8 {
	return bm.rom.MirroringMode()
}

func (bm *baseMapper) HasSaveRAM() bool {
	return bm.rom.HasSaveRAM()
}
