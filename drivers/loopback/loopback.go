// Package loopback provides an in-memory link.Driver backed by io.Pipe, for
// tests and the demo command — it exercises the full socket (reader,
// writer, pending list, value table) without any hardware.
package loopback

import (
	"io"
)

// Driver is a link.Driver over an io.Pipe pair: writes on one end appear as
// reads on the other. Pair returns two Drivers wired to each other.
type Driver struct {
	w io.WriteCloser
	r io.ReadCloser
}

// Pair returns two Drivers, each other's peer: bytes written to a are read
// from b and vice versa.
func Pair() (a, b *Driver) {
	r1, w1 := io.Pipe()
	r2, w2 := io.Pipe()
	a = &Driver{w: w1, r: r2}
	b = &Driver{w: w2, r: r1}
	return a, b
}

// Write implements link.Driver.
func (d *Driver) Write(buf []byte) bool {
	_, err := d.w.Write(buf)
	return err == nil
}

// Read implements link.Driver: it appends newly available bytes to *buf.
// io.Pipe's Read blocks until a matching Write occurs, so this matches
// spec.md's "driver read may block for short, bounded periods" note.
func (d *Driver) Read(buf *[]byte) int {
	scratch := make([]byte, 512)
	n, err := d.r.Read(scratch)
	if err != nil {
		if err == io.EOF {
			return 0
		}
		return -1
	}
	*buf = append(*buf, scratch[:n]...)
	return n
}

// Close closes both ends of this side of the pair.
func (d *Driver) Close() error {
	werr := d.w.Close()
	rerr := d.r.Close()
	if werr != nil {
		return werr
	}
	return rerr
}
