// Package checksum implements the link's integrity check: an additive 8-bit
// sum over a prefix of a buffer. The wire is short-frame and already
// byte-stuffed, so a CRC would be overkill — one byte of additive sum
// catches the lost/duplicated/garbled byte runs a noisy radio link actually
// produces.
package checksum

import (
	"errors"

	"github.com/uwst-robotics/vexbridge-link/internal/vbuf"
)

// ErrLengthExceedsBuffer is returned when Sum is asked to checksum more
// bytes than the buffer holds.
var ErrLengthExceedsBuffer = errors.New("checksum: length exceeds buffer size")

// Sum computes the additive 8-bit checksum over the first n bytes of buf.
func Sum(buf vbuf.Buffer, n int) (uint8, error) {
	if n > buf.Len() {
		return 0, ErrLengthExceedsBuffer
	}
	var sum uint8
	for i := 0; i < n; i++ {
		sum += buf[i]
	}
	return sum, nil
}
