package ppu466

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	c, err := NewCatalog(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Record(CatalogEntry{Name: "player", Source: "sprites/player.ppm", SHA1: "AA", Tiles: 1}))
	require.NoError(t, c.Record(CatalogEntry{Name: "flower", Source: "sprites/flower.ppm", SHA1: "BB", Tiles: 4}))

	name, err := c.FindBySHA1("BB")
	require.NoError(t, err)
	assert.Equal(t, "flower", name)

	name, err = c.FindBySHA1("CC")
	require.NoError(t, err)
	assert.Equal(t, "", name)

	entries, err := c.Entries()
	require.NoError(t, err)
	assert.Equal(t, []CatalogEntry{
		{Name: "player", Source: "sprites/player.ppm", SHA1: "AA", Tiles: 1},
		{Name: "flower", Source: "sprites/flower.ppm", SHA1: "BB", Tiles: 4},
	}, entries)

	require.NoError(t, c.Reset())
	entries, err = c.Entries()
	require.NoError(t, err)
	assert.Len(t, entries, 0)
}
