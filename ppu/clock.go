package ppu

// Clock is the PPU's dot/scanline counter: 341 cycles per scanline, 262
// scanlines per frame.
type Clock struct {
	Cycle    uint16
	Scanline uint16
}

const (
	cyclesPerScanline  = 341
	scanlinesPerFrame  = 262
	visibleScanlines   = 240
	postRenderScanline = 240
	vblankStartLine    = 241
	preRenderLine      = 261
)

// Step advances the clock by one dot, wrapping cycle into scanline and
// scanline into a new frame exactly as the hardware counter does.
func (c *Clock) Step() {
	if c.Cycle+1 <= cyclesPerScanline-1 {
		c.Cycle++
		return
	}
	c.Cycle = 0
	if c.Scanline+1 <= scanlinesPerFrame-1 {
		c.Scanline++
		return
	}
	c.Scanline = 0
}

// EventKind distinguishes the two derived PPU events a (scanline, cycle)
// pair can produce.
type EventKind uint8

const (
	EventRenderTile EventKind = iota
	EventVBlankToggle
)

// State is the event derived purely from the clock's current position. Not
// every dot produces one: Kind is only meaningful when Ok is true.
type State struct {
	Ok   bool
	Kind EventKind

	// valid when Kind == EventRenderTile
	TileX, TileY uint16

	// valid when Kind == EventVBlankToggle
	VBlankOn bool
}

// State derives the event for the clock's current (scanline, cycle), if
// any: a RenderTile event once per 8x8 tile across the 240 visible
// scanlines, and a VBlankToggle event at the start and end of vblank.
func (c Clock) State() State {
	switch {
	case c.Scanline < visibleScanlines && c.Cycle >= 1 && c.Cycle <= 256 &&
		c.Scanline%8 == 0 && c.Cycle%8 == 1:
		return State{Ok: true, Kind: EventRenderTile, TileX: c.Cycle - 1, TileY: c.Scanline}
	case c.Scanline == vblankStartLine && c.Cycle == 1:
		return State{Ok: true, Kind: EventVBlankToggle, VBlankOn: true}
	case c.Scanline == preRenderLine && c.Cycle == 1:
		return State{Ok: true, Kind: EventVBlankToggle, VBlankOn: false}
	default:
		return State{}
	}
}
