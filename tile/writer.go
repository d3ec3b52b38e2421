package tile

import "fmt"

// Quantize converts a block of pixels into a tile and the palette it uses.
// Colors are assigned to palette slots in the order they are first seen,
// scanning from the top-left pixel. Alpha in the source pixels is ignored.
// If the block has more than four distinct colors ErrOverflow is returned.
func Quantize(b *Block) (Tile, Palette, error) {
	var p Palette
	var indices [Pixels]uint8
	n := 0

	for i, c := range b {
		c.A = 0xff
		j := p.Index(c)
		if j < 0 {
			if n == ColorsPerPalette {
				return Tile{}, Palette{}, ErrOverflow
			}
			p[n] = c
			j = n
			n++
		}
		indices[i] = uint8(j)
	}

	var t Tile
	for i, j := range indices {
		t.SetColorIndex(i%Width, i/Width, j)
	}

	return t, p, nil
}

// Remap returns a copy of t with each pixel's index changed from its slot in
// from to the slot holding the same color in to. Every color used by t must be
// present in to.
func Remap(t Tile, from, to Palette) (Tile, error) {
	var slots [ColorsPerPalette]uint8
	for i, c := range from {
		if !defined(c) {
			continue
		}
		j := to.Index(c)
		if j < 0 {
			return Tile{}, fmt.Errorf("%w: %v", errNotSubset, c)
		}
		slots[i] = uint8(j)
	}

	var r Tile
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			i := t.ColorIndexAt(x, y)
			if !defined(from[i]) {
				return Tile{}, fmt.Errorf("%w: undefined slot %d", errNotSubset, i)
			}
			r.SetColorIndex(x, y, slots[i])
		}
	}

	return r, nil
}
