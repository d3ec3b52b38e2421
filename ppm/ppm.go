/*
Package ppm implements a decoder and encoder for plain (P3) Portable Pixmap
images.

The format is the two byte magic "P3", followed by the width, height and
maximum color value and then width*height RGB triples, all written as ASCII
decimal integers separated by whitespace. Rows run top to bottom. Anything
from a '#' to the end of a line is a comment.
*/
package ppm

import (
	"errors"
	"image"
)

const (
	magic       = "P3"
	maxMaxValue = 65535
	maxPixels   = 1 << 26
)

// ErrFormat is returned, possibly wrapped, for any input that is not a valid
// plain PPM image.
var ErrFormat = errors.New("ppm: invalid format")

func init() {
	image.RegisterFormat("ppm", magic, Decode, DecodeConfig)
}
