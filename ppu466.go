/*
Package ppu466 converts images into tiles and palettes for the PPU466 display
core and loads them back.

Every image is split into 8 by 8 blocks and each block becomes one tile with
at most four colors. Palettes are shared between tiles whenever one palette
contains all of the colors another tile needs, which keeps the palette table
small. Each image is written as a sprite file holding a list of tile
references and once every image has been converted the tile and palette
tables are written to a single file.
*/
package ppu466

import (
	"errors"
	"log"
)

const (
	// TagRefs is the chunk tag used for the tile references in a sprite
	// file.
	TagRefs = "refs"
	// TagTiles is the chunk tag used for the tile table.
	TagTiles = "tile"
	// TagPalettes is the chunk tag used for the palette table.
	TagPalettes = "palt"

	// SpriteExt is the file extension used for sprite files.
	SpriteExt = ".ppu"
)

var (
	// ErrDuplicateSprite is returned when two sprites share the same name.
	ErrDuplicateSprite = errors.New("ppu466: duplicate sprite name")
	// ErrMissingSprite is returned when looking up an unknown sprite.
	ErrMissingSprite = errors.New("ppu466: no such sprite")
	// ErrOutOfRange is returned when a table or a reference into it does
	// not fit its destination.
	ErrOutOfRange = errors.New("ppu466: reference out of range")
	// ErrImageSize is returned for images whose dimensions aren't a
	// non-zero multiple of the tile size.
	ErrImageSize = errors.New("ppu466: image size is not a multiple of 8")
)

// Converter converts directories of images into sprite files and a combined
// table file.
type Converter struct {
	catalog *Catalog
	logger  *log.Logger
}

// New returns a Converter. catalog may be nil, otherwise every converted
// sprite is recorded in it.
func New(catalog *Catalog, logger *log.Logger) *Converter {
	return &Converter{
		catalog: catalog,
		logger:  logger,
	}
}
