package ppu466

import (
	"fmt"
	"image"

	"github.com/bodgit/ppu466/tile"
)

// MaxRenderTiles limits how many tiles across or down Render will draw.
const MaxRenderTiles = 1024

// Render draws s using the given tables. The result is just big enough to
// hold every tile and anything not covered by a tile is transparent. Tiles
// are drawn in order so later tiles cover earlier ones.
func Render(s *Sprite, tiles []tile.Tile, palettes []tile.Palette) (*image.RGBA, error) {
	if len(s.Tiles) == 0 {
		return image.NewRGBA(image.Rectangle{}), nil
	}

	minX, minY := s.Tiles[0].OffsetX, s.Tiles[0].OffsetY
	maxX, maxY := minX, minY
	for _, ref := range s.Tiles {
		if int(ref.TileIndex) >= len(tiles) {
			return nil, fmt.Errorf("%w: %q uses tile %d of %d", ErrOutOfRange, s.Name, ref.TileIndex, len(tiles))
		}
		if int(ref.PaletteIndex) >= len(palettes) {
			return nil, fmt.Errorf("%w: %q uses palette %d of %d", ErrOutOfRange, s.Name, ref.PaletteIndex, len(palettes))
		}
		if ref.OffsetX < minX {
			minX = ref.OffsetX
		}
		if ref.OffsetX > maxX {
			maxX = ref.OffsetX
		}
		if ref.OffsetY < minY {
			minY = ref.OffsetY
		}
		if ref.OffsetY > maxY {
			maxY = ref.OffsetY
		}
	}

	cols, rows := int(maxX)-int(minX)+1, int(maxY)-int(minY)+1
	if cols > MaxRenderTiles || rows > MaxRenderTiles {
		return nil, fmt.Errorf("%w: %q spans %dx%d tiles", ErrOutOfRange, s.Name, cols, rows)
	}

	w, h := cols*tile.Width, rows*tile.Height
	m := image.NewRGBA(image.Rect(0, 0, w, h))

	for _, ref := range s.Tiles {
		// Offsets count up from the bottom but images count down from
		// the top
		pt := image.Pt((int(ref.OffsetX)-int(minX))*tile.Width, (int(maxY)-int(ref.OffsetY))*tile.Height)
		tile.DrawAt(m, pt, tiles[ref.TileIndex], palettes[ref.PaletteIndex])
	}

	return m, nil
}
