package ppu466

import (
	"fmt"
	"image"
	"io"
	"log"
	"math"

	"github.com/bodgit/ppu466/chunk"
	"github.com/bodgit/ppu466/tile"
)

// Session holds the tile and palette tables shared by every image converted
// in one run. It is not safe for concurrent use.
type Session struct {
	tiles    []tile.Tile
	palettes tile.PaletteTable
	logger   *log.Logger
}

func NewSession(logger *log.Logger) *Session {
	return &Session{
		logger: logger,
	}
}

func (s *Session) Tiles() []tile.Tile {
	return append([]tile.Tile{}, s.tiles...)
}

// Palettes returns a copy of the palette table.
func (s *Session) Palettes() []tile.Palette {
	return append([]tile.Palette{}, s.palettes...)
}

func (s *Session) addBlock(b *Block) (TileRef, error) {
	t, p, err := tile.Quantize(&b.Pixels)
	if err != nil {
		return TileRef{}, err
	}

	if len(s.tiles) > math.MaxUint16 {
		return TileRef{}, fmt.Errorf("%w: more than %d tiles", ErrOutOfRange, math.MaxUint16+1)
	}

	i := s.palettes.Assign(p)
	if i > math.MaxUint16 {
		return TileRef{}, fmt.Errorf("%w: more than %d palettes", ErrOutOfRange, math.MaxUint16+1)
	}

	// The palette may hold the colors in different slots
	if t, err = tile.Remap(t, p, s.palettes[i]); err != nil {
		return TileRef{}, err
	}
	s.tiles = append(s.tiles, t)

	return TileRef{
		TileIndex:    uint16(len(s.tiles) - 1),
		PaletteIndex: uint16(i),
		OffsetX:      int16(b.X),
		OffsetY:      int16(b.Y),
	}, nil
}

// ConvertImage converts m into a sprite named name, adding its tiles and any
// new palettes to the session tables. If an error is returned the tables are
// left as they were.
func (s *Session) ConvertImage(name string, m image.Image) (*Sprite, error) {
	blocks, err := Decompose(m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	tiles, palettes := len(s.tiles), len(s.palettes)

	sprite := &Sprite{
		Name:  name,
		Tiles: make([]TileRef, 0, len(blocks)),
	}
	for i := range blocks {
		ref, err := s.addBlock(&blocks[i])
		if err != nil {
			s.tiles, s.palettes = s.tiles[:tiles], s.palettes[:palettes]
			return nil, fmt.Errorf("%s: block at %d,%d: %w", name, blocks[i].X, blocks[i].Y, err)
		}
		sprite.Tiles = append(sprite.Tiles, ref)
	}

	s.logger.Printf("Converted \"%s\" into %d tiles, %d new palettes\n", name, len(sprite.Tiles), len(s.palettes)-palettes)

	return sprite, nil
}

// WriteTables writes the tile table followed by the palette table to w.
func (s *Session) WriteTables(w io.Writer) error {
	if err := chunk.Write(w, TagTiles, s.tiles); err != nil {
		return err
	}
	return chunk.Write(w, TagPalettes, []tile.Palette(s.palettes))
}

// WriteTablesFile writes the tables to the named file.
func (s *Session) WriteTablesFile(file string) error {
	return chunk.WriteFile(file,
		chunk.Spec{Tag: TagTiles, Records: s.tiles},
		chunk.Spec{Tag: TagPalettes, Records: []tile.Palette(s.palettes)},
	)
}

// ReadTables reads a tile table and a palette table from r, which must not
// contain anything else.
func ReadTables(r io.Reader) ([]tile.Tile, []tile.Palette, error) {
	var tiles []tile.Tile
	var palettes []tile.Palette
	if err := chunk.Read(r, TagTiles, &tiles); err != nil {
		return nil, nil, err
	}
	if err := chunk.Read(r, TagPalettes, &palettes); err != nil {
		return nil, nil, err
	}
	if err := chunk.ExpectEOF(r); err != nil {
		return nil, nil, err
	}
	return tiles, palettes, nil
}

// ReadTablesFile reads the tables from the named file.
func ReadTablesFile(file string) ([]tile.Tile, []tile.Palette, error) {
	var tiles []tile.Tile
	var palettes []tile.Palette
	if err := chunk.ReadFile(file,
		chunk.Spec{Tag: TagTiles, Records: &tiles},
		chunk.Spec{Tag: TagPalettes, Records: &palettes},
	); err != nil {
		return nil, nil, err
	}
	return tiles, palettes, nil
}
