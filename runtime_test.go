package ppu466

import (
	"bytes"
	"errors"
	"testing"

	"github.com/bodgit/ppu466/chunk"
	"github.com/bodgit/ppu466/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tables(t *testing.T, tiles, palettes int) []byte {
	t.Helper()
	b := new(bytes.Buffer)
	require.NoError(t, chunk.Write(b, TagTiles, make([]tile.Tile, tiles)))
	require.NoError(t, chunk.Write(b, TagPalettes, make([]tile.Palette, palettes)))
	return b.Bytes()
}

func TestRuntimeLoad(t *testing.T) {
	var rt Runtime
	require.NoError(t, rt.LoadTables(bytes.NewReader(tables(t, MaxTiles, MaxPalettes))))
	assert.Equal(t, MaxTiles, rt.NumTiles())
	assert.Equal(t, MaxPalettes, rt.NumPalettes())
}

func TestRuntimeCapacity(t *testing.T) {
	tests := map[string]struct {
		tiles, palettes int
	}{
		"too many tiles": {
			tiles:    MaxTiles + 1,
			palettes: 1,
		},
		"too many palettes": {
			tiles:    1,
			palettes: MaxPalettes + 1,
		},
	}

	for name, table := range tests {
		t.Run(name, func(t *testing.T) {
			var rt Runtime
			err := rt.LoadTables(bytes.NewReader(tables(t, table.tiles, table.palettes)))
			assert.True(t, errors.Is(err, ErrOutOfRange), "got %v", err)
			assert.Equal(t, 0, rt.NumTiles())
		})
	}
}

func TestRuntimeMalformed(t *testing.T) {
	b := new(bytes.Buffer)
	require.NoError(t, chunk.Write(b, TagPalettes, make([]tile.Palette, 1)))
	require.NoError(t, chunk.Write(b, TagTiles, make([]tile.Tile, 1)))

	var rt Runtime
	err := rt.LoadTables(b)
	assert.True(t, errors.Is(err, chunk.ErrMalformed))
}

func TestRuntimePlace(t *testing.T) {
	var rt Runtime
	require.NoError(t, rt.LoadTables(bytes.NewReader(tables(t, 10, 3))))

	flower := &Sprite{
		Name: "flower",
		Tiles: []TileRef{
			{TileIndex: 7, PaletteIndex: 2, OffsetX: 0, OffsetY: 1},
			{TileIndex: 8, PaletteIndex: 2, OffsetX: 1, OffsetY: 0},
		},
	}

	next, err := rt.Place(7, flower, 0, 240)
	require.NoError(t, err)
	assert.Equal(t, 9, next)
	assert.Equal(t, SpriteAttr{X: 0, Y: 248, Index: 7, Attributes: 2}, rt.Sprites[7])
	assert.Equal(t, SpriteAttr{X: 8, Y: 240, Index: 8, Attributes: 2}, rt.Sprites[8])

	// Wraps around the bottom of the screen
	_, err = rt.Place(0, flower, 0, 250)
	require.NoError(t, err)
	assert.Equal(t, uint8(2), rt.Sprites[0].Y)
}

func TestRuntimePlaceOutOfRange(t *testing.T) {
	var rt Runtime
	require.NoError(t, rt.LoadTables(bytes.NewReader(tables(t, 4, 2))))

	tests := map[string]struct {
		slot   int
		sprite *Sprite
	}{
		"slots": {
			slot:   MaxSprites - 1,
			sprite: &Sprite{Tiles: make([]TileRef, 2)},
		},
		"negative slot": {
			slot:   -1,
			sprite: &Sprite{Tiles: make([]TileRef, 1)},
		},
		"tile": {
			sprite: &Sprite{Tiles: []TileRef{{TileIndex: 4}}},
		},
		"palette": {
			sprite: &Sprite{Tiles: []TileRef{{PaletteIndex: 2}}},
		},
	}

	for name, table := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := rt.Place(table.slot, table.sprite, 0, 0)
			assert.True(t, errors.Is(err, ErrOutOfRange), "got %v", err)
		})
	}

	assert.Equal(t, SpriteAttr{}, rt.Sprites[MaxSprites-1])
}
