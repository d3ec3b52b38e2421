package ppu466

import (
	"errors"
	"image/png"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/ppu466/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertDirectory(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()

	writePPM(t, filepath.Join(src, "player.ppm"), checkerboard(8, 8, red, green))
	writePPM(t, filepath.Join(src, "scenery", "background.ppm"), solid(16, 8, blue))
	writePPM(t, filepath.Join(src, "scenery", "void.ppm"), checkerboard(8, 16, green, red))
	writePPM(t, filepath.Join(src, ".hidden", "ignored.ppm"), solid(8, 8, yellow))
	require.NoError(t, ioutil.WriteFile(filepath.Join(src, "README.txt"), []byte("not an image"), 0644))

	f, err := os.Create(filepath.Join(src, "flower.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, checkerboard(8, 8, yellow, white)))
	require.NoError(t, f.Close())

	catalog, err := NewCatalog(filepath.Join(out, "catalog.db"))
	require.NoError(t, err)
	defer catalog.Close()

	spriteDir := filepath.Join(out, "sprites")
	tablesFile := filepath.Join(out, "tables.ppu")

	session, err := New(catalog, discard).ConvertDirectory(src, spriteDir, tablesFile)
	require.NoError(t, err)

	// flower, player, background (2 tiles), void (2 tiles)
	assert.Len(t, session.Tiles(), 6)
	// {yellow, white}, {red, green}, {blue}
	assert.Len(t, session.Palettes(), 3)

	l, err := LoadLibrary(spriteDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"background", "flower", "player", "void"}, l.Names())

	void, err := l.Lookup("void")
	require.NoError(t, err)
	assert.Equal(t, []TileRef{{4, 1, 0, 1}, {5, 1, 0, 0}}, void.Tiles)

	var rt Runtime
	require.NoError(t, rt.LoadTablesFile(tablesFile))
	assert.Equal(t, 6, rt.NumTiles())
	assert.Equal(t, 3, rt.NumPalettes())

	tiles, palettes, err := ReadTablesFile(tablesFile)
	require.NoError(t, err)
	m, err := Render(void, tiles, palettes)
	require.NoError(t, err)
	assert.Equal(t, checkerboard(8, 16, green, red).Pix, m.Pix)

	entries, err := catalog.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, "flower", entries[0].Name)
	assert.Equal(t, 2, entries[2].Tiles)
}

func TestConvertDirectoryDuplicate(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()

	writePPM(t, filepath.Join(src, "a", "tree.ppm"), solid(8, 8, green))
	writePPM(t, filepath.Join(src, "b", "tree.ppm"), solid(8, 8, red))

	_, err := New(nil, discard).ConvertDirectory(src, filepath.Join(out, "sprites"), filepath.Join(out, "tables.ppu"))
	assert.True(t, errors.Is(err, ErrDuplicateSprite), "got %v", err)

	_, err = os.Stat(filepath.Join(out, "tables.ppu"))
	assert.True(t, os.IsNotExist(err))

	// Nothing is converted when any name is ambiguous
	sprites, err := filepath.Glob(filepath.Join(out, "sprites", "*"+SpriteExt))
	require.NoError(t, err)
	assert.Empty(t, sprites)
}

func TestConvertDirectoryAbortsOnOverflow(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()

	m := solid(8, 8, black)
	m.SetRGBA(1, 0, red)
	m.SetRGBA(2, 0, green)
	m.SetRGBA(3, 0, blue)
	m.SetRGBA(4, 0, white)
	writePPM(t, filepath.Join(src, "a.ppm"), solid(8, 8, red))
	writePPM(t, filepath.Join(src, "b.ppm"), m)
	writePPM(t, filepath.Join(src, "c.ppm"), solid(8, 8, red))

	_, err := New(nil, discard).ConvertDirectory(src, filepath.Join(out, "sprites"), filepath.Join(out, "tables.ppu"))
	assert.True(t, errors.Is(err, tile.ErrOverflow))
	assert.Contains(t, err.Error(), "b.ppm")

	_, err = os.Stat(filepath.Join(out, "sprites", "c.ppu"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(out, "tables.ppu"))
	assert.True(t, os.IsNotExist(err))
}

func TestConvertDirectoryBadImage(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()

	require.NoError(t, ioutil.WriteFile(filepath.Join(src, "broken.ppm"), []byte("P3 8 8 255 1 2"), 0644))

	_, err := New(nil, discard).ConvertDirectory(src, filepath.Join(out, "sprites"), filepath.Join(out, "tables.ppu"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "broken.ppm")
}

func TestDecodeImageHashesWholeFile(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.ppm")
	b := filepath.Join(dir, "b.ppm")
	writePPM(t, a, solid(8, 8, red))

	data, err := ioutil.ReadFile(a)
	require.NoError(t, err)
	require.NoError(t, ioutil.WriteFile(b, append(data, "# extra\n"...), 0644))

	ma, shaA, err := decodeImage(a)
	require.NoError(t, err)
	mb, shaB, err := decodeImage(b)
	require.NoError(t, err)

	assert.Equal(t, ma, mb)
	assert.NotEqual(t, shaA, shaB)
}
