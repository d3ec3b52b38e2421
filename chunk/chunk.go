/*
Package chunk implements a simple container of named chunks.

Each chunk is written as a four byte ASCII tag, followed by the length of the
payload in bytes as a little-endian 32-bit value and finally the payload
itself, which is an array of packed fixed-size little-endian records. A file
is a sequence of chunks with nothing following the last one.
*/
package chunk

import (
	"encoding/binary"
	"errors"
	"math"
)

// TagSize is the length in bytes of every chunk tag.
const TagSize = 4

// ErrMalformed is returned, possibly wrapped, whenever the container does not
// match what the caller expects.
var ErrMalformed = errors.New("chunk: malformed container")

var (
	errBadTag     = errors.New("chunk: tag must be exactly 4 bytes")
	errNotFixed   = errors.New("chunk: records must be a slice of fixed-size values")
	errNotPointer = errors.New("chunk: records must be a pointer to a slice")
	errTooLarge   = errors.New("chunk: payload too large")
)

type header struct {
	Tag  [TagSize]byte
	Size uint32
}

// Spec pairs a tag with the records stored under it. When reading, Records
// must be a pointer to a slice; when writing it can be the slice itself.
type Spec struct {
	Tag     string
	Records interface{}
}

func makeHeader(tag string, size int) (header, error) {
	var h header
	if len(tag) != TagSize {
		return h, errBadTag
	}
	if uint64(size) > math.MaxUint32 {
		return h, errTooLarge
	}
	copy(h.Tag[:], tag)
	h.Size = uint32(size)
	return h, nil
}

var byteOrder = binary.LittleEndian
