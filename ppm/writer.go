package ppm

import (
	"bufio"
	"image"
	"image/color"
	"io"
	"strconv"
)

// Samples per line, the format recommends keeping lines under 70 characters
const samplesPerLine = 12

// Encode writes the Image m to w in plain PPM format with a maximum value of
// 255. Alpha is discarded.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()
	wr := bufio.NewWriter(w)

	if _, err := wr.WriteString(magic + "\n" + strconv.Itoa(b.Dx()) + " " + strconv.Itoa(b.Dy()) + "\n255\n"); err != nil {
		return err
	}

	n := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(m.At(x, y)).(color.RGBA)
			for _, v := range [3]uint8{c.R, c.G, c.B} {
				sep := " "
				if n++; n%samplesPerLine == 0 {
					sep = "\n"
				}
				if _, err := wr.WriteString(strconv.Itoa(int(v)) + sep); err != nil {
					return err
				}
			}
		}
	}

	if n%samplesPerLine != 0 {
		if err := wr.WriteByte('\n'); err != nil {
			return err
		}
	}

	return wr.Flush()
}
