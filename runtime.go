package ppu466

import (
	"fmt"
	"io"

	"github.com/bodgit/ppu466/tile"
)

const (
	// MaxTiles is the size of the display core's tile table.
	MaxTiles = 256
	// MaxPalettes is the size of the display core's palette table.
	MaxPalettes = 8
	// MaxSprites is the number of hardware sprites.
	MaxSprites = 64
)

// SpriteAttr is one hardware sprite: a single tile drawn with its
// bottom-left corner at X, Y. The low three bits of Attributes select the
// palette.
type SpriteAttr struct {
	X          uint8
	Y          uint8
	Index      uint8
	Attributes uint8
}

// Runtime mirrors the fixed-size tables of the display core. Nothing is ever
// truncated to fit; anything too big is an error.
type Runtime struct {
	Tiles    [MaxTiles]tile.Tile
	Palettes [MaxPalettes]tile.Palette
	Sprites  [MaxSprites]SpriteAttr

	numTiles    int
	numPalettes int
}

func (rt *Runtime) NumTiles() int {
	return rt.numTiles
}

func (rt *Runtime) NumPalettes() int {
	return rt.numPalettes
}

func (rt *Runtime) load(tiles []tile.Tile, palettes []tile.Palette) error {
	if len(tiles) > MaxTiles {
		return fmt.Errorf("%w: %d tiles, capacity is %d", ErrOutOfRange, len(tiles), MaxTiles)
	}
	if len(palettes) > MaxPalettes {
		return fmt.Errorf("%w: %d palettes, capacity is %d", ErrOutOfRange, len(palettes), MaxPalettes)
	}

	rt.numTiles = copy(rt.Tiles[:], tiles)
	rt.numPalettes = copy(rt.Palettes[:], palettes)

	return nil
}

// LoadTables reads the tile and palette tables from r into rt.
func (rt *Runtime) LoadTables(r io.Reader) error {
	tiles, palettes, err := ReadTables(r)
	if err != nil {
		return err
	}
	return rt.load(tiles, palettes)
}

// LoadTablesFile reads the tile and palette tables from the named file into
// rt.
func (rt *Runtime) LoadTablesFile(file string) error {
	tiles, palettes, err := ReadTablesFile(file)
	if err != nil {
		return err
	}
	if err := rt.load(tiles, palettes); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	return nil
}

// Place copies the tiles of s into consecutive sprite slots starting at slot
// with the bottom-left tile at x, y. Positions wrap around the screen as they
// do on the display core. It returns the next free slot. The tables must be
// loaded first as every reference is checked against them.
func (rt *Runtime) Place(slot int, s *Sprite, x, y uint8) (int, error) {
	if slot < 0 || slot+len(s.Tiles) > MaxSprites {
		return slot, fmt.Errorf("%w: %q needs slots %d-%d, capacity is %d", ErrOutOfRange, s.Name, slot, slot+len(s.Tiles)-1, MaxSprites)
	}

	for _, ref := range s.Tiles {
		if int(ref.TileIndex) >= rt.numTiles {
			return slot, fmt.Errorf("%w: %q uses tile %d of %d", ErrOutOfRange, s.Name, ref.TileIndex, rt.numTiles)
		}
		if int(ref.PaletteIndex) >= rt.numPalettes {
			return slot, fmt.Errorf("%w: %q uses palette %d of %d", ErrOutOfRange, s.Name, ref.PaletteIndex, rt.numPalettes)
		}
	}

	for _, ref := range s.Tiles {
		rt.Sprites[slot] = SpriteAttr{
			X:          uint8(int(x) + int(ref.OffsetX)*tile.Width),
			Y:          uint8(int(y) + int(ref.OffsetY)*tile.Height),
			Index:      uint8(ref.TileIndex),
			Attributes: uint8(ref.PaletteIndex),
		}
		slot++
	}

	return slot, nil
}
