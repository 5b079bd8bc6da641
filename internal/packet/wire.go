package packet

import (
	"fmt"

	"github.com/uwst-robotics/vexbridge-link/internal/checksum"
	"github.com/uwst-robotics/vexbridge-link/internal/framing"
	"github.com/uwst-robotics/vexbridge-link/internal/vbuf"
)

// headerSize is the fixed 4-byte header (kind, seq_id, 2-byte payload size)
// that precedes every payload on the wire, before the trailing checksum
// byte.
const headerSize = 4

// EncodeFrame serializes d via reg, builds the full header+payload+checksum
// frame from spec.md §6, and byte-stuffs it — the single call the write
// pipeline needs to go from a decoded packet to wire bytes.
func EncodeFrame(reg Registry, d Decoded) ([]byte, error) {
	encoded, err := reg.Serialize(d)
	if err != nil {
		return nil, err
	}
	if encoded.Payload.Len() > 65535 {
		return nil, ErrPayloadTooLarge
	}

	w := vbuf.NewWriter()
	w.WriteUint8(uint8(encoded.Kind))
	w.WriteUint8(encoded.SeqID)
	w.WriteUint16BE(uint16(encoded.Payload.Len()))
	w.WriteBytes(encoded.Payload.Bytes(), encoded.Payload.Len())

	sum, err := checksum.Sum(w.Buffer(), w.Offset())
	if err != nil {
		return nil, err
	}
	w.WriteUint8(sum)

	return framing.Stuff(w.Buffer()), nil
}

// DecodeFrame unstuffs and verifies one frame from the head of in (a rolling
// inbound buffer), returning the decoded packet, the number of input bytes
// consumed, and whether a complete frame was found at all. consumed is
// meaningful even when err != nil: the caller must still advance past a
// frame that failed to decode, to resynchronize on the next one.
func DecodeFrame(reg Registry, in []byte) (d Decoded, consumed int, found bool, err error) {
	unstuffed, consumed, ok := framing.Unstuff(in)
	if !ok {
		return Decoded{}, 0, false, nil
	}

	r := vbuf.NewReader(vbuf.Buffer(unstuffed))
	kind := Kind(r.ReadUint8())
	seqID := r.ReadUint8()
	payloadSize := int(r.ReadUint16BE())
	payload := r.ReadBytes(payloadSize)
	gotChecksum := r.ReadUint8()

	wantChecksum, err := checksum.Sum(vbuf.Buffer(unstuffed), headerSize+payloadSize)
	if err != nil {
		return Decoded{}, consumed, true, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if gotChecksum != wantChecksum {
		return Decoded{}, consumed, true, fmt.Errorf("%w: checksum mismatch for seq %d", ErrInvalid, seqID)
	}

	decoded, err := reg.Deserialize(Encoded{Kind: kind, SeqID: seqID, Payload: payload})
	if err != nil {
		return Decoded{}, consumed, true, err
	}
	return decoded, consumed, true, nil
}
