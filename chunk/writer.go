package chunk

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
)

// Write writes records to w as a single chunk with the given tag. records
// must be a slice (or array) of fixed-size values.
func Write(w io.Writer, tag string, records interface{}) error {
	size := binary.Size(records)
	if size < 0 {
		return errNotFixed
	}

	h, err := makeHeader(tag, size)
	if err != nil {
		return err
	}

	if err := binary.Write(w, byteOrder, &h); err != nil {
		return err
	}

	if size == 0 {
		return nil
	}

	return binary.Write(w, byteOrder, records)
}

// WriteFile creates the named file and writes each chunk to it in order.
func WriteFile(file string, specs ...Spec) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, s := range specs {
		if err := Write(w, s.Tag, s.Records); err != nil {
			return err
		}
	}

	if err := w.Flush(); err != nil {
		return err
	}

	return f.Close()
}
