/*
Package prepare reduces the colors in an arbitrary image so that it can be
converted into PPU466 tiles.

The image is optionally rescaled, then quantized down to a small number of
colors for the whole image and finally every 8 by 8 block is reduced to no
more than four colors by repeatedly merging the two closest colors in that
block.
*/
package prepare

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"math"

	"github.com/bodgit/ppu466/tile"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/esimov/colorquant"
	"github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"
)

// DefaultColors is the number of colors the whole image is reduced to by
// default, enough to fill every palette of the display core.
const DefaultColors = tile.ColorsPerPalette * 8

// Quantizer selects the algorithm used to reduce the colors of the whole
// image.
type Quantizer int

const (
	// MedianCut uses a median cut quantizer.
	MedianCut Quantizer = iota
	// KMeans uses a k-means quantizer which also supports dithering.
	KMeans
)

// ErrImageSize is returned when the image, after any scaling, isn't a
// multiple of the tile size.
var ErrImageSize = errors.New("prepare: image size is not a multiple of 8")

var floydSteinberg = [][]float32{
	{0.0, 0.0, 0.0, 7.0 / 16.0, 0.0},
	{0.0, 3.0 / 16.0, 5.0 / 16.0, 1.0 / 16.0, 0.0},
	{0.0, 0.0, 0.0, 0.0, 0.0},
}

// Options control how an image is prepared.
type Options struct {
	// Width and Height rescale the image using nearest neighbour
	// sampling if either is non-zero. A zero value keeps the aspect
	// ratio.
	Width, Height int
	// Colors is the maximum number of colors in the whole image,
	// DefaultColors if zero.
	Colors    int
	Quantizer Quantizer
	// Dither is only supported by KMeans.
	Dither bool
}

func scale(m image.Image, width, height int) image.Image {
	b := m.Bounds()
	switch {
	case width == 0 && height == 0:
		return m
	case width == 0:
		width = int(math.Round(float64(b.Dx()) * float64(height) / float64(b.Dy())))
	case height == 0:
		height = int(math.Round(float64(b.Dy()) * float64(width) / float64(b.Dx())))
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), m, b, xdraw.Src, nil)
	return dst
}

func opaque(c color.Color) color.RGBA {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	rgba.A = 0xff
	return rgba
}

func countColors(m image.Image, r image.Rectangle) map[color.RGBA]int {
	colors := make(map[color.RGBA]int)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			colors[opaque(m.At(x, y))]++
		}
	}
	return colors
}

func reduce(m image.Image, opts Options) image.Image {
	b := m.Bounds()
	n := opts.Colors
	if n <= 0 {
		n = DefaultColors
	}

	// Nothing to do if it already fits
	if len(countColors(m, b)) <= n {
		return m
	}

	switch opts.Quantizer {
	case KMeans:
		dst := image.NewPaletted(b, palette.WebSafe)
		if opts.Dither {
			return colorquant.Dither{Filter: floydSteinberg}.Quantize(m, dst, n, true, true)
		}
		return colorquant.NoDither.Quantize(m, dst, n, false, true)
	default:
		q := quantize.MedianCutQuantizer{}
		pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, n), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
		return pm
	}
}

// Return the two closest colors in a given set of colors
func closestColors(colors []color.RGBA) (color.RGBA, color.RGBA) {
	var rc1, rc2 color.RGBA
	best := math.MaxFloat64
	for i, c1 := range colors {
		l1, _ := colorful.MakeColor(c1)
		for _, c2 := range colors[i+1:] {
			l2, _ := colorful.MakeColor(c2)
			if d := l1.DistanceLab(l2); d < best {
				best, rc1, rc2 = d, c1, c2
			}
		}
	}
	return rc1, rc2
}

// Replace all occurrences of one color in part of an image with another
func replaceColor(m *image.RGBA, r image.Rectangle, o, n color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if m.RGBAAt(x, y) == o {
				m.SetRGBA(x, y, n)
			}
		}
	}
}

func reduceBlock(m *image.RGBA, r image.Rectangle) {
	counts := countColors(m, r)
	for len(counts) > tile.ColorsPerPalette {
		colors := make([]color.RGBA, 0, len(counts))
		for c := range counts {
			colors = append(colors, c)
		}
		sortColors(colors)

		// Keep whichever color appears more frequently in the block
		// and replace any occurrence of the other color
		c1, c2 := closestColors(colors)
		if counts[c2] > counts[c1] {
			c1, c2 = c2, c1
		}
		replaceColor(m, r, c2, c1)
		counts[c1] += counts[c2]
		delete(counts, c2)
	}
}

// Image returns a copy of m, rescaled according to opts, where every 8 by 8
// block has at most four colors. The result is fully opaque and its bounds
// start at (0, 0).
func Image(m image.Image, opts Options) (*image.RGBA, error) {
	m = scale(m, opts.Width, opts.Height)

	b := m.Bounds()
	if b.Empty() || b.Dx()%tile.Width != 0 || b.Dy()%tile.Height != 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageSize, b.Dx(), b.Dy())
	}

	reduced := reduce(m, opts)

	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	rb := reduced.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.SetRGBA(x, y, opaque(reduced.At(rb.Min.X+x, rb.Min.Y+y)))
		}
	}

	for ty := 0; ty < b.Dy(); ty += tile.Height {
		for tx := 0; tx < b.Dx(); tx += tile.Width {
			reduceBlock(out, image.Rect(tx, ty, tx+tile.Width, ty+tile.Height))
		}
	}

	return out, nil
}
