package packet

import "fmt"

const (
	// MaxBatchSubPackets bounds how many sub-packets a single BATCH payload
	// may carry.
	MaxBatchSubPackets = 20
	// MaxBatchSubPayloadLen bounds the length of each BATCH sub-payload.
	MaxBatchSubPayloadLen = 255
)

// Codec is the pair of functions a Registry holds for one Kind: one to
// serialize a Decoded packet of that kind into wire bytes, one to reverse
// it. Exactly one Codec is registered per Kind other than KindUnknown.
type Codec struct {
	Serialize   func(Decoded) (Encoded, error)
	Deserialize func(Encoded) (Decoded, error)
}

// Registry maps each wire Kind to its Codec. It is populated once, at
// construction, with exactly one handler per kind — there is no runtime
// registration. KindUnknown has no codec and is rejected like any
// unrecognized kind.
type Registry map[Kind]Codec

// NewRegistry builds the closed set of codecs for every Kind in spec.md's
// table except KindUnknown (0x00).
func NewRegistry() Registry {
	reg := Registry{
		KindReset:       emptyBodyCodec(),
		KindFetchValues: emptyBodyCodec(),
		KindPing:        emptyBodyCodec(),
		KindGenericAck:  emptyBodyCodec(),
		KindGenericNack: emptyBodyCodec(),

		KindAssignLabel: assignLabelCodec(),
		KindLog:         logCodec(),

		KindUpdateBool:   updateScalarCodec(KindUpdateBool),
		KindUpdateInt:    updateScalarCodec(KindUpdateInt),
		KindUpdateFloat:  updateScalarCodec(KindUpdateFloat),
		KindUpdateDouble: updateScalarCodec(KindUpdateDouble),
		KindUpdateString: updateScalarCodec(KindUpdateString),

		KindUpdateBoolArray:   updateArrayCodec(KindUpdateBoolArray),
		KindUpdateIntArray:    updateArrayCodec(KindUpdateIntArray),
		KindUpdateFloatArray:  updateArrayCodec(KindUpdateFloatArray),
		KindUpdateDoubleArray: updateArrayCodec(KindUpdateDoubleArray),
	}
	// batchCodec closes over reg itself for recursive sub-packet dispatch;
	// reg is a map (reference type) so later entries above are visible by
	// the time a BATCH is actually decoded.
	reg[KindBatch] = batchCodec(reg)
	return reg
}

// Serialize looks up d.Kind's codec and serializes it.
func (r Registry) Serialize(d Decoded) (Encoded, error) {
	codec, ok := r[d.Kind]
	if !ok {
		return Encoded{}, fmt.Errorf("%w: unknown kind 0x%02X", ErrInvalid, uint8(d.Kind))
	}
	return codec.Serialize(d)
}

// Deserialize looks up e.Kind's codec and deserializes it.
func (r Registry) Deserialize(e Encoded) (Decoded, error) {
	codec, ok := r[e.Kind]
	if !ok {
		return Decoded{}, fmt.Errorf("%w: unknown kind 0x%02X", ErrInvalid, uint8(e.Kind))
	}
	return codec.Deserialize(e)
}
