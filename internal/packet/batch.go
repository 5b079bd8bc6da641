package packet

import (
	"fmt"

	"github.com/uwst-robotics/vexbridge-link/internal/vbuf"
)

// batchCodec implements the BATCH kind: a single sub_kind byte followed by
// repeated {u8 length, sub_payload} records, each of which is recursively
// run back through reg for the sub_kind's own codec. reg is the full
// Registry (including this very entry) so batches-of-batches would even
// work, though nothing in the core constructs one.
func batchCodec(reg Registry) Codec {
	return Codec{
		Serialize: func(d Decoded) (Encoded, error) {
			if len(d.Body.SubPackets) > MaxBatchSubPackets {
				return Encoded{}, fmt.Errorf("%w: batch has %d sub-packets, max %d",
					ErrInvalid, len(d.Body.SubPackets), MaxBatchSubPackets)
			}
			w := vbuf.NewWriter()
			w.WriteUint8(uint8(d.Body.SubKind))
			for _, sub := range d.Body.SubPackets {
				subEncoded, err := reg.Serialize(sub)
				if err != nil {
					return Encoded{}, err
				}
				if subEncoded.Payload.Len() > MaxBatchSubPayloadLen {
					return Encoded{}, fmt.Errorf("%w: batch sub-payload of %d bytes exceeds %d",
						ErrInvalid, subEncoded.Payload.Len(), MaxBatchSubPayloadLen)
				}
				w.WriteUint8(uint8(subEncoded.Payload.Len()))
				w.WriteBytes(subEncoded.Payload.Bytes(), subEncoded.Payload.Len())
			}
			return Encoded{Kind: d.Kind, SeqID: d.SeqID, Payload: w.Buffer()}, nil
		},
		Deserialize: func(e Encoded) (Decoded, error) {
			r := vbuf.NewReader(e.Payload)
			subKind := Kind(r.ReadUint8())

			subCodec, ok := reg[subKind]
			if !ok {
				return Decoded{}, fmt.Errorf("%w: unregistered batch sub-kind 0x%02X", ErrInvalid, uint8(subKind))
			}

			var subs []Decoded
			for r.HasData() {
				if len(subs) >= MaxBatchSubPackets {
					return Decoded{}, fmt.Errorf("%w: batch exceeds %d sub-packets", ErrInvalid, MaxBatchSubPackets)
				}
				subLen := int(r.ReadUint8())
				if subLen > MaxBatchSubPayloadLen {
					return Decoded{}, fmt.Errorf("%w: batch sub-payload length %d exceeds %d",
						ErrInvalid, subLen, MaxBatchSubPayloadLen)
				}
				subPayload := r.ReadBytes(subLen)
				if subPayload.Len() != subLen {
					return Decoded{}, fmt.Errorf("%w: batch sub-payload truncated", ErrInvalid)
				}
				sub, err := subCodec.Deserialize(Encoded{Kind: subKind, SeqID: e.SeqID, Payload: subPayload})
				if err != nil {
					return Decoded{}, err
				}
				subs = append(subs, sub)
			}

			return Decoded{
				Kind:  e.Kind,
				SeqID: e.SeqID,
				Body:  Body{SubKind: subKind, SubPackets: subs},
			}, nil
		},
	}
}
