package prepare

import (
	"image/color"
	"sort"
)

type byValue []color.RGBA

func (p byValue) Len() int {
	return len(p)
}

func (p byValue) Swap(i, j int) {
	p[i], p[j] = p[j], p[i]
}

func (p byValue) Less(i, j int) bool {
	a, b := p[i], p[j]
	return uint32(a.R)<<16|uint32(a.G)<<8|uint32(a.B) < uint32(b.R)<<16|uint32(b.G)<<8|uint32(b.B)
}

// Map iteration order is random so sort to keep the output deterministic
func sortColors(colors []color.RGBA) {
	sort.Sort(byValue(colors))
}
