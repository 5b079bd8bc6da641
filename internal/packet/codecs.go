package packet

import (
	"github.com/uwst-robotics/vexbridge-link/internal/vbuf"
)

// clampUint16 clamps a conceptually-32-bit integer to the wire's 16-bit
// UPDATE_INT field, per spec.md's "preserve the wire truncation rather than
// silently changing the wire format" note.
func clampUint16(v int32) uint16 {
	if v < 0 {
		return 0
	}
	if v > 65535 {
		return 65535
	}
	return uint16(v)
}

// writeScalar appends just the value bytes (no value id, no length) for one
// scalar UPDATE_* kind.
func writeScalar(w *vbuf.Writer, kind Kind, v Value) {
	switch kind {
	case KindUpdateBool:
		if v.Bool {
			w.WriteUint8(1)
		} else {
			w.WriteUint8(0)
		}
	case KindUpdateInt:
		w.WriteUint16BE(clampUint16(v.Int))
	case KindUpdateFloat:
		w.WriteFloat32BE(v.Float)
	case KindUpdateDouble:
		w.WriteFloat64BE(v.Double)
	case KindUpdateString:
		w.WriteString16(v.String)
	}
}

// readScalar reads one scalar UPDATE_* value (no value id, no length).
func readScalar(r *vbuf.Reader, kind Kind) Value {
	switch kind {
	case KindUpdateBool:
		return Value{Kind: ValueBool, Bool: r.ReadUint8() != 0}
	case KindUpdateInt:
		return Value{Kind: ValueInt, Int: int32(r.ReadUint16BE())}
	case KindUpdateFloat:
		return Value{Kind: ValueFloat, Float: r.ReadFloat32BE()}
	case KindUpdateDouble:
		return Value{Kind: ValueDouble, Double: r.ReadFloat64BE()}
	case KindUpdateString:
		return Value{Kind: ValueString, String: r.ReadString16()}
	default:
		return Value{}
	}
}

// arrayElemKind maps an UPDATE_*_ARRAY kind to its scalar element kind, for
// reuse of writeScalar/readScalar element-by-element.
func arrayElemKind(k Kind) Kind {
	switch k {
	case KindUpdateBoolArray:
		return KindUpdateBool
	case KindUpdateIntArray:
		return KindUpdateInt
	case KindUpdateFloatArray:
		return KindUpdateFloat
	case KindUpdateDoubleArray:
		return KindUpdateDouble
	default:
		return KindUnknown
	}
}

func emptyBodyCodec() Codec {
	return Codec{
		Serialize: func(d Decoded) (Encoded, error) {
			return Encoded{Kind: d.Kind, SeqID: d.SeqID, Payload: vbuf.NewBuffer()}, nil
		},
		Deserialize: func(e Encoded) (Decoded, error) {
			return Decoded{Kind: e.Kind, SeqID: e.SeqID}, nil
		},
	}
}

func assignLabelCodec() Codec {
	return Codec{
		Serialize: func(d Decoded) (Encoded, error) {
			w := vbuf.NewWriter()
			w.WriteUint16BE(d.Body.ValueID)
			w.WriteString8(d.Body.Label)
			return Encoded{Kind: d.Kind, SeqID: d.SeqID, Payload: w.Buffer()}, nil
		},
		Deserialize: func(e Encoded) (Decoded, error) {
			r := vbuf.NewReader(e.Payload)
			valueID := r.ReadUint16BE()
			label := r.ReadString8()
			return Decoded{Kind: e.Kind, SeqID: e.SeqID, Body: Body{ValueID: valueID, Label: label}}, nil
		},
	}
}

func logCodec() Codec {
	return Codec{
		Serialize: func(d Decoded) (Encoded, error) {
			w := vbuf.NewWriter()
			w.WriteString16(d.Body.Message)
			return Encoded{Kind: d.Kind, SeqID: d.SeqID, Payload: w.Buffer()}, nil
		},
		Deserialize: func(e Encoded) (Decoded, error) {
			r := vbuf.NewReader(e.Payload)
			msg := r.ReadString16()
			return Decoded{Kind: e.Kind, SeqID: e.SeqID, Body: Body{Message: msg}}, nil
		},
	}
}

func updateScalarCodec(kind Kind) Codec {
	return Codec{
		Serialize: func(d Decoded) (Encoded, error) {
			w := vbuf.NewWriter()
			w.WriteUint16BE(d.Body.ValueID)
			writeScalar(w, kind, d.Body.Value)
			return Encoded{Kind: d.Kind, SeqID: d.SeqID, Payload: w.Buffer()}, nil
		},
		Deserialize: func(e Encoded) (Decoded, error) {
			r := vbuf.NewReader(e.Payload)
			valueID := r.ReadUint16BE()
			val := readScalar(r, kind)
			return Decoded{Kind: e.Kind, SeqID: e.SeqID, Body: Body{ValueID: valueID, Value: val}}, nil
		},
	}
}

func updateArrayCodec(kind Kind) Codec {
	elem := arrayElemKind(kind)
	return Codec{
		Serialize: func(d Decoded) (Encoded, error) {
			w := vbuf.NewWriter()
			w.WriteUint16BE(d.Body.ValueID)
			v := d.Body.Value
			switch kind {
			case KindUpdateBoolArray:
				w.WriteUint16BE(uint16(len(v.BoolArray)))
				for _, b := range v.BoolArray {
					writeScalar(w, elem, Value{Bool: b})
				}
			case KindUpdateIntArray:
				w.WriteUint16BE(uint16(len(v.IntArray)))
				for _, n := range v.IntArray {
					writeScalar(w, elem, Value{Int: n})
				}
			case KindUpdateFloatArray:
				w.WriteUint16BE(uint16(len(v.FloatArray)))
				for _, f := range v.FloatArray {
					writeScalar(w, elem, Value{Float: f})
				}
			case KindUpdateDoubleArray:
				w.WriteUint16BE(uint16(len(v.DoubleArray)))
				for _, f := range v.DoubleArray {
					writeScalar(w, elem, Value{Double: f})
				}
			}
			return Encoded{Kind: d.Kind, SeqID: d.SeqID, Payload: w.Buffer()}, nil
		},
		Deserialize: func(e Encoded) (Decoded, error) {
			r := vbuf.NewReader(e.Payload)
			valueID := r.ReadUint16BE()
			count := int(r.ReadUint16BE())

			var value Value
			switch kind {
			case KindUpdateBoolArray:
				value.Kind = ValueBoolArray
				value.BoolArray = make([]bool, 0, count)
				for i := 0; i < count; i++ {
					value.BoolArray = append(value.BoolArray, readScalar(r, elem).Bool)
				}
			case KindUpdateIntArray:
				value.Kind = ValueIntArray
				value.IntArray = make([]int32, 0, count)
				for i := 0; i < count; i++ {
					value.IntArray = append(value.IntArray, readScalar(r, elem).Int)
				}
			case KindUpdateFloatArray:
				value.Kind = ValueFloatArray
				value.FloatArray = make([]float32, 0, count)
				for i := 0; i < count; i++ {
					value.FloatArray = append(value.FloatArray, readScalar(r, elem).Float)
				}
			case KindUpdateDoubleArray:
				value.Kind = ValueDoubleArray
				value.DoubleArray = make([]float64, 0, count)
				for i := 0; i < count; i++ {
					value.DoubleArray = append(value.DoubleArray, readScalar(r, elem).Double)
				}
			}
			return Decoded{Kind: e.Kind, SeqID: e.SeqID, Body: Body{ValueID: valueID, Value: value}}, nil
		},
	}
}
