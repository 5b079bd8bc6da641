// Package framing implements the link's byte-stuffed delimiter scheme: three
// sentinel bytes (START, ESCAPE, END) that produce a self-delimiting frame
// and let a decoder resynchronize from arbitrary mid-stream garbage.
package framing

const (
	// Start marks the beginning of a frame.
	Start byte = 0xAA
	// Escape precedes any payload byte equal to Start, End, or Escape.
	Escape byte = 0x92
	// End marks the end of a frame.
	End byte = 0x00
)

func isSentinel(b byte) bool {
	return b == Start || b == End || b == Escape
}

// Stuff encodes in as one delimited frame: a leading Start, each sentinel
// byte of in escaped, and a trailing End.
func Stuff(in []byte) []byte {
	out := make([]byte, 0, len(in)+4)
	out = append(out, Start)
	for _, b := range in {
		if isSentinel(b) {
			out = append(out, Escape)
		}
		out = append(out, b)
	}
	out = append(out, End)
	return out
}

// Unstuff recovers a single frame from the head of a rolling inbound
// buffer. It walks in looking for a Start (resynchronizing — discarding any
// partial output — on every Start it sees) and returns the unescaped
// payload bytes up to the first unescaped End, along with the number of
// input bytes consumed. ok is false if no complete frame was found, in
// which case consumed and out should both be ignored by the caller.
func Unstuff(in []byte) (out []byte, consumed int, ok bool) {
	out = make([]byte, 0, len(in))
	i := 0
	for i < len(in) {
		b := in[i]
		switch {
		case b == Start:
			out = out[:0]
			i++
		case b == Escape:
			if i+1 >= len(in) {
				return nil, 0, false
			}
			out = append(out, in[i+1])
			i += 2
		case b == End:
			return out, i + 1, true
		default:
			out = append(out, b)
			i++
		}
	}
	return nil, 0, false
}
