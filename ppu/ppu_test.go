package ppu

import "testing"

// testBus is a flat 8KB CHR-ROM-backed Bus fixture, in the same spirit as
// mos6502's testBus.
type testBus struct {
	chr      [0x2000]uint8
	nmiCount int
}

func (b *testBus) ChrRead(addr uint16) uint8 { return b.chr[addr%uint16(len(b.chr))] }
func (b *testBus) TriggerNMI()               { b.nmiCount++ }

func TestClockStepWraps(t *testing.T) {
	c := Clock{Cycle: cyclesPerScanline - 1, Scanline: 10}
	c.Step()
	if c.Cycle != 0 || c.Scanline != 11 {
		t.Fatalf("clock after cycle wrap = %+v, want cycle 0 scanline 11", c)
	}

	c = Clock{Cycle: cyclesPerScanline - 1, Scanline: scanlinesPerFrame - 1}
	c.Step()
	if c.Cycle != 0 || c.Scanline != 0 {
		t.Fatalf("clock after full-frame wrap = %+v, want 0,0", c)
	}
}

func TestClockPeriod(t *testing.T) {
	c := Clock{}
	steps := 0
	for {
		c.Step()
		steps++
		if c.Cycle == 0 && c.Scanline == 0 {
			break
		}
		if steps > cyclesPerScanline*scanlinesPerFrame+1 {
			t.Fatal("clock never returned to (0,0)")
		}
	}
	if steps != cyclesPerScanline*scanlinesPerFrame {
		t.Fatalf("frame period = %d steps, want %d", steps, cyclesPerScanline*scanlinesPerFrame)
	}
}

func TestClockVBlankToggle(t *testing.T) {
	c := Clock{Scanline: vblankStartLine, Cycle: 1}
	st := c.State()
	if !st.Ok || st.Kind != EventVBlankToggle || !st.VBlankOn {
		t.Fatalf("state at (241,1) = %+v, want VBlankToggle(true)", st)
	}

	c = Clock{Scanline: preRenderLine, Cycle: 1}
	st = c.State()
	if !st.Ok || st.Kind != EventVBlankToggle || st.VBlankOn {
		t.Fatalf("state at (261,1) = %+v, want VBlankToggle(false)", st)
	}
}

func TestClockRenderTileState(t *testing.T) {
	c := Clock{Scanline: 16, Cycle: 9}
	st := c.State()
	if !st.Ok || st.Kind != EventRenderTile || st.TileX != 8 || st.TileY != 16 {
		t.Fatalf("state at (16,9) = %+v, want RenderTile(8,16)", st)
	}

	c = Clock{Scanline: 16, Cycle: 10}
	if st := c.State(); st.Ok {
		t.Fatalf("state at (16,10) = %+v, want no event", st)
	}
}

func TestWriteRegReadBack(t *testing.T) {
	p := New(&testBus{}, MirrorHorizontal)
	p.WriteReg(PPUMASK, 0x1E)
	if got := p.ReadReg(PPUMASK); got != 0x1E {
		t.Fatalf("PPUMASK readback = %#x, want 0x1E", got)
	}
}

func TestOAMDMAAliasesEighthSlot(t *testing.T) {
	if regIndex(OAMDMA) != regIndex(PPUCTRL+7) {
		t.Fatalf("OAMDMA does not alias the 8th mirrored register slot")
	}
}

func TestPPUDataBufferedRead(t *testing.T) {
	bus := &testBus{}
	bus.chr[0x0005] = 0xAB
	p := New(bus, MirrorHorizontal)

	p.WriteReg(PPUADDR, 0x00)
	p.WriteReg(PPUADDR, 0x05)

	first := p.ReadReg(PPUDATA)
	if first != 0 {
		t.Fatalf("first PPUDATA read = %#x, want 0 (buffered)", first)
	}
	second := p.ReadReg(PPUDATA)
	if second != 0xAB {
		t.Fatalf("second PPUDATA read = %#x, want 0xAB", second)
	}
}

func TestRenderTileWritesFramebuffer(t *testing.T) {
	bus := &testBus{}
	// pattern table entry for tile id 0 at bank 0: the literal tile fixture.
	copy(bus.chr[0:16], []uint8{
		0x41, 0xC2, 0x44, 0x48, 0x10, 0x20, 0x40, 0x80,
		0x01, 0x02, 0x04, 0x08, 0x16, 0x21, 0x42, 0x87,
	})

	p := New(bus, MirrorHorizontal)
	p.vram[0] = 0 // nametable entry (0,0) selects tile id 0
	p.renderTile(0, 0)

	if p.frame[0] != 0 || p.frame[7] != 3 {
		t.Fatalf("frame row 0 = %v, want [0 1 0 0 0 0 0 3...]", p.frame[0:8])
	}
}

func TestNMIFiresOnVBlankWhenEnabled(t *testing.T) {
	bus := &testBus{}
	p := New(bus, MirrorHorizontal)
	p.WriteReg(PPUCTRL, CtrlGenerateNMI)
	p.Clock = Clock{Scanline: vblankStartLine, Cycle: 0} // one dot before (241,1)

	p.Tick()
	if bus.nmiCount != 1 {
		t.Fatalf("nmiCount = %d, want 1 after entering vblank with NMI enabled", bus.nmiCount)
	}
}

func TestWriteOAMAndSpriteAt(t *testing.T) {
	p := New(&testBus{}, MirrorHorizontal)
	p.WriteOAM(4, 0x20)
	p.WriteOAM(5, 0x07)
	p.WriteOAM(6, 0b10011101)
	p.WriteOAM(7, 0x40)

	s := p.SpriteAt(1)
	if s.y != 0x20 || s.tileId != 0x07 || s.x != 0x40 {
		t.Fatalf("SpriteAt(1) = %+v", s)
	}
}

func TestOAMDATAReadFollowsOAMADDR(t *testing.T) {
	p := New(&testBus{}, MirrorHorizontal)

	p.WriteReg(OAMADDR, 0x10)
	p.WriteReg(OAMDATA, 0x42)

	p.WriteReg(OAMADDR, 0x10)
	if got := p.ReadReg(OAMDATA); got != 0x42 {
		t.Fatalf("ReadReg(OAMDATA) = %#02x, want 0x42", got)
	}
}
