package tile

import "image/color"

// Palette is up to four colors. Colors are assigned to slots in order and any
// slot with zero alpha is undefined.
type Palette [ColorsPerPalette]color.RGBA

func defined(c color.RGBA) bool {
	return c.A != 0
}

// Defined returns the number of defined colors in p.
func (p Palette) Defined() int {
	n := 0
	for _, c := range p {
		if defined(c) {
			n++
		}
	}
	return n
}

// Index returns the slot holding the defined color c or -1.
func (p Palette) Index(c color.RGBA) int {
	if !defined(c) {
		return -1
	}
	for i, pc := range p {
		if pc == c {
			return i
		}
	}
	return -1
}

// SubsetOf reports whether every defined color in p is also in q, regardless
// of which slot it is in.
func (p Palette) SubsetOf(q Palette) bool {
	for _, c := range p {
		if defined(c) && q.Index(c) < 0 {
			return false
		}
	}
	return true
}

// Colors returns the defined colors of p in slot order.
func (p Palette) Colors() color.Palette {
	cp := make(color.Palette, 0, ColorsPerPalette)
	for _, c := range p {
		if defined(c) {
			cp = append(cp, c)
		}
	}
	return cp
}

// PaletteTable is an append-only table of palettes. A palette's index never
// changes once assigned.
type PaletteTable []Palette

// Match returns the index of the first palette in t containing every defined
// color of p.
func (t PaletteTable) Match(p Palette) (int, bool) {
	for i, candidate := range t {
		if p.SubsetOf(candidate) {
			return i, true
		}
	}
	return 0, false
}

// Assign returns the index of the first palette in t that can be used in
// place of p, appending p to the table if there isn't one.
func (t *PaletteTable) Assign(p Palette) int {
	if i, ok := t.Match(p); ok {
		return i
	}
	*t = append(*t, p)
	return len(*t) - 1
}
