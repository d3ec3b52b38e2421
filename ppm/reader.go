package ppm

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
)

type decoder struct {
	r *bufio.Reader

	width, height, maxValue int

	image *image.RGBA
}

func (d *decoder) skipSpace() error {
	for {
		c, err := d.r.ReadByte()
		if err != nil {
			return err
		}
		switch c {
		case ' ', '\t', '\n', '\r', '\v', '\f':
		case '#':
			if _, err := d.r.ReadString('\n'); err != nil {
				return err
			}
		default:
			return d.r.UnreadByte()
		}
	}
}

func (d *decoder) readInt() (int, error) {
	if err := d.skipSpace(); err != nil {
		if err == io.EOF {
			return 0, fmt.Errorf("%w: not enough data", ErrFormat)
		}
		return 0, err
	}

	var b []byte
	for {
		c, err := d.r.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		if c < '0' || c > '9' {
			if err := d.r.UnreadByte(); err != nil {
				return 0, err
			}
			break
		}
		b = append(b, c)
	}

	if len(b) == 0 {
		return 0, fmt.Errorf("%w: expected integer", ErrFormat)
	}

	n, err := strconv.Atoi(string(b))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return n, nil
}

func (d *decoder) readHeader() error {
	var tmp [len(magic)]byte
	if _, err := io.ReadFull(d.r, tmp[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return fmt.Errorf("%w: missing header", ErrFormat)
		}
		return err
	}
	if string(tmp[:]) != magic {
		return fmt.Errorf("%w: bad magic %q", ErrFormat, tmp[:])
	}

	var err error
	if d.width, err = d.readInt(); err != nil {
		return err
	}
	if d.height, err = d.readInt(); err != nil {
		return err
	}
	if d.maxValue, err = d.readInt(); err != nil {
		return err
	}

	if d.width <= 0 || d.height <= 0 {
		return fmt.Errorf("%w: invalid dimensions %dx%d", ErrFormat, d.width, d.height)
	}
	if d.maxValue <= 0 || d.maxValue > maxMaxValue {
		return fmt.Errorf("%w: invalid maximum value %d", ErrFormat, d.maxValue)
	}

	return nil
}

func (d *decoder) readSample() (uint8, error) {
	v, err := d.readInt()
	if err != nil {
		return 0, err
	}
	if v > d.maxValue {
		return 0, fmt.Errorf("%w: sample %d exceeds maximum %d", ErrFormat, v, d.maxValue)
	}
	if d.maxValue == 0xff {
		return uint8(v), nil
	}
	// Scale to 8 bits, rounding to nearest
	return uint8((v*0xff + d.maxValue/2) / d.maxValue), nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = bufio.NewReader(r)

	if err := d.readHeader(); err != nil {
		return err
	}

	if configOnly {
		return nil
	}

	if d.width > maxPixels/d.height {
		return fmt.Errorf("%w: image too large %dx%d", ErrFormat, d.width, d.height)
	}

	d.image = image.NewRGBA(image.Rect(0, 0, d.width, d.height))
	for y := 0; y < d.height; y++ {
		for x := 0; x < d.width; x++ {
			var rgb [3]uint8
			for i := range rgb {
				v, err := d.readSample()
				if err != nil {
					return err
				}
				rgb[i] = v
			}
			d.image.SetRGBA(x, y, color.RGBA{rgb[0], rgb[1], rgb[2], 0xff})
		}
	}

	return nil
}

// Decode reads a plain PPM image from r and returns it as an image.Image.
func Decode(r io.Reader) (image.Image, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.image, nil
}

// DecodeConfig returns the color model and dimensions of a plain PPM image
// without decoding the entire image.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.RGBAModel,
		Width:      d.width,
		Height:     d.height,
	}, nil
}
