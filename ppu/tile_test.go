package ppu

import "testing"

// TestTileFromPatternTableSlice decodes a known 16-byte CHR pattern-table
// tile and checks every pixel against its expected 2-bit palette index.
func TestTileFromPatternTableSlice(t *testing.T) {
	data := []uint8{
		0x41, 0xC2, 0x44, 0x48, 0x10, 0x20, 0x40, 0x80,
		0x01, 0x02, 0x04, 0x08, 0x16, 0x21, 0x42, 0x87,
	}
	want := Tile{
		{0, 1, 0, 0, 0, 0, 0, 3},
		{1, 1, 0, 0, 0, 0, 3, 0},
		{0, 1, 0, 0, 0, 3, 0, 0},
		{0, 1, 0, 0, 3, 0, 0, 0},
		{0, 0, 0, 3, 0, 2, 2, 0},
		{0, 0, 3, 0, 0, 0, 0, 2},
		{0, 3, 0, 0, 0, 0, 2, 0},
		{3, 0, 0, 0, 0, 2, 2, 2},
	}

	got := TileFromPatternTableSlice(data)
	if got != want {
		t.Fatalf("TileFromPatternTableSlice =\n%v\nwant\n%v", got, want)
	}
}
