package ppu466

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/bodgit/ppu466/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompose(t *testing.T) {
	// 2 blocks wide, 3 blocks tall; mark each block with its own color
	m := solid(16, 24, black)
	marks := [][]color.RGBA{{red, green}, {blue, white}, {yellow, black}}
	for by, row := range marks {
		for bx, c := range row {
			m.SetRGBA(bx*8+1, by*8+2, c)
		}
	}

	blocks, err := Decompose(m)
	require.NoError(t, err)
	require.Len(t, blocks, 6)

	want := []struct{ x, y int }{
		{0, 2}, {1, 2},
		{0, 1}, {1, 1},
		{0, 0}, {1, 0},
	}
	for i, b := range blocks {
		assert.Equal(t, want[i].x, b.X, "block %d", i)
		assert.Equal(t, want[i].y, b.Y, "block %d", i)
	}

	assert.Equal(t, red, blocks[0].Pixels[2*tile.Width+1])
	assert.Equal(t, green, blocks[1].Pixels[2*tile.Width+1])
	assert.Equal(t, yellow, blocks[4].Pixels[2*tile.Width+1])
	assert.Equal(t, black, blocks[4].Pixels[0])
}

func TestDecomposeSubImage(t *testing.T) {
	m := solid(24, 16, red)
	m.SetRGBA(8, 8, blue)
	sub := m.SubImage(image.Rect(8, 8, 16, 16))

	blocks, err := Decompose(sub)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, blue, blocks[0].Pixels[0])
	assert.Equal(t, red, blocks[0].Pixels[1])
}

func TestDecomposeSize(t *testing.T) {
	for _, r := range []image.Rectangle{
		image.Rect(0, 0, 0, 0),
		image.Rect(0, 0, 7, 8),
		image.Rect(0, 0, 8, 12),
		image.Rect(0, 0, 9, 9),
	} {
		_, err := Decompose(image.NewRGBA(r))
		assert.True(t, errors.Is(err, ErrImageSize), "%v: got %v", r, err)
	}
}
