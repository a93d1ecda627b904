package console

import (
	"context"
	"fmt"
	"image/color"
	"math"

	"nesgo/mappers"
	"nesgo/mos6502"
	"nesgo/nesrom"
	"nesgo/ppu"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	ramSize    = 0x0800 // 2KB built-in RAM
	maxBaseRAM = 0x1FFF // 0x0800-0x1FFF mirrors 0x0000-0x07FF
	maxPPUReg  = 0x3FFF // PPU registers mirrored every 8 bytes to here
	maxIOReg   = 0x401F // APU/IO space; only the controller ports and OAM DMA are wired

	// minCartridgeWindow is the start of cartridge-visible address space on
	// NROM. Addresses below it and above maxIOReg (0x4020-0x7FFF: the SRAM
	// window NROM carries none of, plus whatever the board leaves unmapped)
	// have no backing at all and reading from them is a programmer error.
	minCartridgeWindow = 0x8000

	controller1Reg = 0x4016
	controller2Reg = 0x4017
)

// Bus is the NES memory map: it owns the 2KB of console RAM and wires the
// CPU, PPU, controller and cartridge mapper together. It implements
// mos6502.Bus, ppu.Bus and ebiten.Game.
type Bus struct {
	cpu         *mos6502.CPU
	ppu         *ppu.PPU
	mapper      mappers.Mapper
	ram         [ramSize]uint8
	controller1 controller
}

// New wires up a Bus for the given cartridge mapper, resets the CPU from the
// reset vector, and configures the ebiten window.
func New(m mappers.Mapper) *Bus {
	b := &Bus{mapper: m}

	b.ppu = ppu.New(b, mirroringFrom(m.MirroringMode()))
	b.cpu = mos6502.New()
	b.cpu.Reset(b)

	ebiten.SetWindowSize(ppu.Width*2, ppu.Height*2)
	ebiten.SetWindowTitle("nesgo")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return b
}

func mirroringFrom(mode uint8) ppu.Mirroring {
	if mode == nesrom.MIRROR_VERTICAL {
		return ppu.MirrorVertical
	}
	return ppu.MirrorHorizontal
}

// Layout returns the NES's native resolution; ebiten scales the window to
// it rather than letting the game logic deal in arbitrary sizes.
func (b *Bus) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ppu.Width, ppu.Height
}

// Draw blits the PPU's already-rendered framebuffer onto the ebiten screen.
func (b *Bus) Draw(screen *ebiten.Image) {
	frame := b.ppu.Frame()
	for y := 0; y < ppu.Height; y++ {
		for x := 0; x < ppu.Width; x++ {
			c := frame[y*ppu.Width+x]
			screen.Set(x, y, color.RGBA{c.R, c.G, c.B, c.A})
		}
	}
}

// Update is required by ebiten.Game but does no work: the core runs on its
// own goroutine via Run, not on ebiten's update tick.
func (b *Bus) Update() error {
	return nil
}

// TriggerNMI is called by the PPU on the rising edge of vblank, when
// PPUCTRL requests it.
func (b *Bus) TriggerNMI() {
	b.cpu.NMI(b)
}

// ChrRead is used by the PPU to access CHR-ROM/RAM through the mapper.
func (b *Bus) ChrRead(addr uint16) uint8 {
	return b.mapper.ChrRead(addr)
}

func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr <= maxBaseRAM:
		return b.ram[addr%ramSize]
	case addr <= maxPPUReg:
		return b.ppu.ReadReg(ppu.PPUCTRL + (addr-ppu.PPUCTRL)%8)
	case addr == controller1Reg:
		return b.controller1.read()
	case addr == controller2Reg:
		return 0 // second controller is out of scope
	case addr <= maxIOReg:
		return 0 // APU and unimplemented IO read back 0
	case addr < minCartridgeWindow:
		panic(fmt.Sprintf("console: read from unmapped address %#04x", addr))
	case addr <= math.MaxUint16:
		return b.mapper.PrgRead(addr)
	}

	panic("unreachable: addr is a uint16")
}

// SliceFrom returns the bytes available for the CPU's instruction decoder
// starting at addr: a RAM-backed slice for internal RAM, or whatever the
// mapper reports for cartridge space. False covers every range with no
// executable backing (PPU/IO registers, and the unmapped SRAM gap below
// minCartridgeWindow), which CPU.Step treats as fatal.
func (b *Bus) SliceFrom(addr uint16) ([]uint8, bool) {
	switch {
	case addr <= maxBaseRAM:
		return b.ram[addr%ramSize:], true
	case addr < minCartridgeWindow:
		return nil, false
	case addr <= math.MaxUint16:
		return b.mapper.SliceFrom(addr)
	}
	return nil, false
}

func (b *Bus) Write(addr uint16, val uint8) {
	switch {
	case addr <= maxBaseRAM:
		b.ram[addr%ramSize] = val
	case addr <= maxPPUReg:
		b.ppu.WriteReg(ppu.PPUCTRL+(addr-ppu.PPUCTRL)%8, val)
	case addr == ppu.OAMDMA:
		base := uint16(val) << 8
		for i := uint16(0); i < 256; i++ {
			b.ppu.WriteReg(ppu.OAMDATA, b.Read(base+i))
		}
	case addr == controller1Reg:
		b.controller1.write(val)
	case addr == controller2Reg:
		// second controller is out of scope
	case addr <= maxIOReg:
		// APU writes are ignored
	case addr < minCartridgeWindow:
		// no cartridge SRAM on NROM; writes into the gap are silently dropped
	case addr <= math.MaxUint16:
		b.mapper.PrgWrite(addr, val)
	}
}

// Step performs exactly one emulator loop iteration: one CPU instruction,
// then one PPU clock tick. A finer interleave (three PPU ticks per CPU
// cycle) would also be faithful to real hardware timing, but isn't required
// to keep the framebuffer and register reads correct at VBlank boundaries.
func (b *Bus) Step() error {
	if _, err := b.cpu.Step(b); err != nil {
		return err
	}
	b.ppu.Tick()
	return nil
}

// Run drives Step until ctx is cancelled or the CPU hits an invalid opcode.
func (b *Bus) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			if err := b.Step(); err != nil {
				return err
			}
		}
	}
}

func readAddress(prompt string) uint16 {
	var a uint16
	fmt.Print(prompt)
	fmt.Scanf("%04x\n", &a)
	return a
}

// BIOS is an interactive debug REPL for single-stepping the machine,
// inspecting memory and the stack, and setting PC directly.
func (b *Bus) BIOS(ctx context.Context) {
	breaks := make(map[uint16]struct{})

	for {
		fmt.Printf("%s\n\n", b.cpu.Regs)
		fmt.Println("(B)reak - add breakpoint")
		fmt.Println("(C)lear - clear breakpoints")
		fmt.Println("(R)un - run to completion")
		fmt.Println("(S)tep - step one instruction")
		fmt.Println("R(e)set - hit the reset button")
		fmt.Println("(M)emory - display a memory range")
		fmt.Println("S(t)ack - show the top of the stack")
		fmt.Println("(I)nstruction - decode the instruction at PC")
		fmt.Println("(P)C - set the program counter")
		fmt.Println("(Q)uit - shut down")
		fmt.Printf("Choice: ")

		var in rune
		fmt.Scanf("%c\n", &in)

		switch in {
		case 'b', 'B':
			breaks[readAddress("Breakpoint (eg: ff15): ")] = struct{}{}
		case 'c', 'C':
			breaks = make(map[uint16]struct{})
		case 'p', 'P':
			b.cpu.Regs.PC = readAddress("Set PC to what address (eg: 0400)?: ")
		case 'q', 'Q':
			return
		case 'r', 'R':
			if err := b.Run(ctx); err != nil {
				fmt.Printf("run stopped: %v\n", err)
			}
		case 's', 'S':
			if _, err := b.cpu.Step(b); err != nil {
				fmt.Printf("step failed: %v\n", err)
				continue
			}
			b.ppu.Tick()
		case 't', 'T':
			fmt.Println()
			base := mos6502.StackPage | uint16(b.cpu.Regs.S)
			for i := uint16(1); i <= 3 && base+i <= mos6502.StackPage|0xFF; i++ {
				a := base + i
				fmt.Printf("0x%04x: 0x%02x ", a, b.Read(a))
			}
			fmt.Printf("\n\n")
		case 'i', 'I':
			pc := b.cpu.Regs.PC
			instr, err := mos6502.Decode([]uint8{b.Read(pc), b.Read(pc + 1), b.Read(pc + 2)})
			if err != nil {
				fmt.Printf("\n%v\n\n", err)
				continue
			}
			fmt.Printf("\n%s\n\n", instr)
		case 'm', 'M':
			fmt.Println()
			low := readAddress("Low address (eg f00d): ")
			high := readAddress("High address (eg beef): ")
			fmt.Println()

			x := 1
			for i := low; ; i++ {
				fmt.Printf("0x%04x: 0x%02x ", i, b.Read(i))
				if x%5 == 0 {
					fmt.Println()
				}
				if i == high || i == math.MaxUint16 {
					break
				}
				x++
			}
			fmt.Printf("\n\n")
		case 'e', 'E':
			b.cpu.Reset(b)
		}
	}
}
