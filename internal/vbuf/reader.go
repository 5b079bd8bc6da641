package vbuf

import (
	"encoding/binary"
	"math"
)

// Reader walks a Buffer sequentially. Reads past the end of the buffer never
// fail: scalars return zero, strings are truncated, and ReadBytes returns a
// shortened copy. Tolerating truncation here lets corrupt or partial frames
// reach the checksum, which is the real integrity gate (see
// internal/checksum).
type Reader struct {
	buf    Buffer
	offset int
}

// NewReader returns a reader positioned at the start of buf.
func NewReader(buf Buffer) *Reader {
	return &Reader{buf: buf}
}

// Offset reports the current read cursor.
func (r *Reader) Offset() int {
	return r.offset
}

// SetOffset repositions the read cursor.
func (r *Reader) SetOffset(off int) {
	r.offset = off
}

// BytesAvailable reports how many unread bytes remain.
func (r *Reader) BytesAvailable() int {
	n := len(r.buf) - r.offset
	if n < 0 {
		return 0
	}
	return n
}

// HasData reports whether any unread bytes remain.
func (r *Reader) HasData() bool {
	return r.BytesAvailable() > 0
}

func (r *Reader) take(n int) []byte {
	if r.offset >= len(r.buf) {
		return nil
	}
	end := r.offset + n
	if end > len(r.buf) {
		end = len(r.buf)
	}
	out := r.buf[r.offset:end]
	r.offset = end
	return out
}

// ReadUint8 reads a single byte, or 0 past the end.
func (r *Reader) ReadUint8() uint8 {
	b := r.take(1)
	if len(b) < 1 {
		return 0
	}
	return b[0]
}

// ReadUint16LE reads a 16-bit little-endian integer, or 0 past the end.
func (r *Reader) ReadUint16LE() uint16 {
	b := r.take(2)
	var tmp [2]byte
	if len(b) == 2 {
		copy(tmp[:], b)
	}
	return binary.LittleEndian.Uint16(tmp[:])
}

// ReadUint16BE reads a 16-bit big-endian integer, or 0 past the end.
func (r *Reader) ReadUint16BE() uint16 {
	b := r.take(2)
	var tmp [2]byte
	if len(b) == 2 {
		copy(tmp[:], b)
	}
	return binary.BigEndian.Uint16(tmp[:])
}

// ReadFloat32BE reads a big-endian IEEE-754 single, or 0 past the end.
func (r *Reader) ReadFloat32BE() float32 {
	b := r.take(4)
	var tmp [4]byte
	if len(b) == 4 {
		copy(tmp[:], b)
	}
	return math.Float32frombits(binary.BigEndian.Uint32(tmp[:]))
}

// ReadFloat32LE reads a little-endian IEEE-754 single, or 0 past the end.
func (r *Reader) ReadFloat32LE() float32 {
	b := r.take(4)
	var tmp [4]byte
	if len(b) == 4 {
		copy(tmp[:], b)
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(tmp[:]))
}

// ReadFloat64BE reads a big-endian IEEE-754 double, or 0 past the end.
func (r *Reader) ReadFloat64BE() float64 {
	b := r.take(8)
	var tmp [8]byte
	if len(b) == 8 {
		copy(tmp[:], b)
	}
	return math.Float64frombits(binary.BigEndian.Uint64(tmp[:]))
}

// ReadFloat64LE reads a little-endian IEEE-754 double, or 0 past the end.
func (r *Reader) ReadFloat64LE() float64 {
	b := r.take(8)
	var tmp [8]byte
	if len(b) == 8 {
		copy(tmp[:], b)
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(tmp[:]))
}

// ReadBytes copies n bytes, or fewer if the buffer is exhausted.
func (r *Reader) ReadBytes(n int) Buffer {
	b := r.take(n)
	out := make(Buffer, len(b))
	copy(out, b)
	return out
}

// ReadString8 reads a 1-byte-length-prefixed string, truncated if the
// buffer runs out before the declared length.
func (r *Reader) ReadString8() string {
	n := int(r.ReadUint8())
	return string(r.ReadBytes(n))
}

// ReadString16 reads a 2-byte-big-endian-length-prefixed string, truncated
// if the buffer runs out before the declared length.
func (r *Reader) ReadString16() string {
	n := int(r.ReadUint16BE())
	return string(r.ReadBytes(n))
}
