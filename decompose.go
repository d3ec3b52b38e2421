package ppu466

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/bodgit/ppu466/tile"
)

// Block is one 8 by 8 region of an image. X and Y are the position of the
// block in whole tiles with the origin at the bottom-left of the image.
type Block struct {
	X, Y   int
	Pixels tile.Block
}

// Decompose splits m into blocks, starting at the top-left and working across
// each row of blocks in turn. The width and height of m must be multiples of
// 8.
func Decompose(m image.Image) ([]Block, error) {
	b := m.Bounds()
	if b.Empty() || b.Dx()%tile.Width != 0 || b.Dy()%tile.Height != 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageSize, b.Dx(), b.Dy())
	}

	cols, rows := b.Dx()/tile.Width, b.Dy()/tile.Height
	if cols > math.MaxInt16+1 || rows > math.MaxInt16+1 {
		return nil, fmt.Errorf("%w: %dx%d blocks", ErrOutOfRange, cols, rows)
	}

	blocks := make([]Block, 0, cols*rows)
	for by := 0; by < rows; by++ {
		for bx := 0; bx < cols; bx++ {
			blk := Block{
				X: bx,
				// Images are read top-down but sprites are drawn
				// from the bottom-left
				Y: rows - 1 - by,
			}
			for y := 0; y < tile.Height; y++ {
				for x := 0; x < tile.Width; x++ {
					c := color.RGBAModel.Convert(m.At(b.Min.X+bx*tile.Width+x, b.Min.Y+by*tile.Height+y)).(color.RGBA)
					c.A = 0xff
					blk.Pixels[y*tile.Width+x] = c
				}
			}
			blocks = append(blocks, blk)
		}
	}

	return blocks, nil
}
