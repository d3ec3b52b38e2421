package tile

import "image"

// Block returns the pixels of t using the colors in p. Pixels using an
// undefined slot are transparent.
func (t *Tile) Block(p Palette) Block {
	var b Block
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			b[y*Width+x] = p[t.ColorIndexAt(x, y)]
		}
	}
	return b
}

// Decode returns t as an 8 by 8 image using the colors in p.
func Decode(t Tile, p Palette) *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, Width, Height))
	b := t.Block(p)
	for i, c := range b {
		m.SetRGBA(i%Width, i/Width, c)
	}
	return m
}

// DrawAt draws t into m with its top-left corner at pt. Transparent pixels
// are left untouched.
func DrawAt(m *image.RGBA, pt image.Point, t Tile, p Palette) {
	b := t.Block(p)
	for i, c := range b {
		if !defined(c) {
			continue
		}
		m.SetRGBA(pt.X+i%Width, pt.Y+i/Width, c)
	}
}
