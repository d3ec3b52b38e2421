/*
Package tile implements the 2 bit per pixel tile format used by the PPU466
display core.

Each tile is 8 by 8 pixels stored as two bitplanes of eight bytes. Each byte
is one row of pixels with the bottom row first, and bit n of a byte holds
column n counting from the left. The color index of a pixel is formed from
the bit in the second plane and the bit in the first plane, giving a value in
the range 0-3 that selects a color from a four color palette.
*/
package tile

import (
	"errors"
	"image/color"
)

const (
	// Width is the width of a tile in pixels.
	Width = 8
	// Height is the height of a tile in pixels.
	Height = Width
	// Pixels is the number of pixels in a tile.
	Pixels = Width * Height
	// ColorsPerPalette is the number of colors a tile can use.
	ColorsPerPalette = 4
)

// ErrOverflow is returned when a block of pixels uses more colors than fit in
// a single palette.
var ErrOverflow = errors.New("tile: more than 4 colors in block")

var errNotSubset = errors.New("tile: color missing from palette")

// Tile is a single 8 by 8 tile. Its binary layout is the 8 bytes of Bit0
// followed by the 8 bytes of Bit1.
type Tile struct {
	Bit0 [Height]uint8
	Bit1 [Height]uint8
}

// Block is the 64 pixels of a tile in row-major order, top row first.
type Block [Pixels]color.RGBA

// ColorIndexAt returns the palette index of the pixel at x, y where y counts
// down from the top row.
func (t *Tile) ColorIndexAt(x, y int) uint8 {
	row := Height - 1 - y
	return (t.Bit1[row]>>uint(x)&1)<<1 | t.Bit0[row]>>uint(x)&1
}

// SetColorIndex sets the palette index of the pixel at x, y where y counts
// down from the top row.
func (t *Tile) SetColorIndex(x, y int, index uint8) {
	row := Height - 1 - y
	mask := uint8(1) << uint(x)
	t.Bit0[row] &^= mask
	t.Bit1[row] &^= mask
	t.Bit0[row] |= (index & 1) << uint(x)
	t.Bit1[row] |= (index >> 1 & 1) << uint(x)
}
