package chunk

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"reflect"
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// Read reads the next chunk from r, checks its tag and decodes its payload
// into records, which must be a pointer to a slice of fixed-size values. Any
// mismatch between the chunk and the expected layout returns an error
// wrapping ErrMalformed.
func Read(r io.Reader, tag string, records interface{}) error {
	if len(tag) != TagSize {
		return errBadTag
	}

	v := reflect.ValueOf(records)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Slice {
		return errNotPointer
	}

	t := v.Elem().Type()
	recordSize := binary.Size(reflect.Zero(t.Elem()).Interface())
	if recordSize <= 0 {
		return errNotFixed
	}

	var tmp [TagSize + 4]byte
	if err := readFull(r, tmp[:]); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return fmt.Errorf("%w: %q: truncated header", ErrMalformed, tag)
	}

	if got := string(tmp[:TagSize]); got != tag {
		return fmt.Errorf("%w: expected tag %q, found %q", ErrMalformed, tag, got)
	}

	size := int64(byteOrder.Uint32(tmp[TagSize:]))
	if size%int64(recordSize) != 0 {
		return fmt.Errorf("%w: %q: length %d is not a multiple of %d", ErrMalformed, tag, size, recordSize)
	}

	// Copy rather than allocate up front so a bogus length can't force a
	// huge allocation
	b := new(bytes.Buffer)
	n, err := io.CopyN(b, r, size)
	if err != nil && err != io.EOF {
		return err
	}
	if n != size {
		return fmt.Errorf("%w: %q: expected %d bytes, found %d", ErrMalformed, tag, size, n)
	}

	count := int(size) / recordSize
	s := reflect.MakeSlice(t, count, count)
	if count > 0 {
		if err := binary.Read(b, byteOrder, s.Interface()); err != nil {
			return err
		}
	}
	v.Elem().Set(s)

	return nil
}

// ExpectEOF returns an error wrapping ErrMalformed if r has any data left.
func ExpectEOF(r io.Reader) error {
	var tmp [1]byte
	n, err := r.Read(tmp[:])
	for n == 0 && err == nil {
		n, err = r.Read(tmp[:])
	}
	if n != 0 {
		return fmt.Errorf("%w: trailing data", ErrMalformed)
	}
	if err != io.EOF {
		return err
	}
	return nil
}

// ReadFile reads the named file which must contain exactly the chunks listed,
// in order, and nothing else.
func ReadFile(file string, specs ...Spec) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	for _, s := range specs {
		if err := Read(r, s.Tag, s.Records); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
	}

	if err := ExpectEOF(r); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	return nil
}
