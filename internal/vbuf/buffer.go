// Package vbuf implements the growable byte buffer and the sequential
// reader/writer primitives the wire codecs are built on.
package vbuf

// Buffer is an ordered, dynamically-growing sequence of bytes. Its length is
// always the authoritative size; there is no sentinel-terminated semantics.
type Buffer []byte

// NewBuffer returns an empty buffer ready to be appended to.
func NewBuffer() Buffer {
	return make(Buffer, 0)
}

// Len reports the current size of the buffer.
func (b Buffer) Len() int {
	return len(b)
}

// Bytes returns the underlying byte slice.
func (b Buffer) Bytes() []byte {
	return []byte(b)
}

// Clone returns an independent copy of the buffer.
func (b Buffer) Clone() Buffer {
	out := make(Buffer, len(b))
	copy(out, b)
	return out
}
