package packet

// ValueKind discriminates the payload carried by a Value — one variant per
// UPDATE_* scalar/array kind in the wire format.
type ValueKind uint8

const (
	ValueBool ValueKind = iota
	ValueInt
	ValueFloat
	ValueDouble
	ValueString
	ValueBoolArray
	ValueIntArray
	ValueFloatArray
	ValueDoubleArray
)

// Value is the sum type carried by every UPDATE_* packet body, and the
// type stored per ID in the value table. Only the field matching Kind is
// meaningful.
type Value struct {
	Kind ValueKind

	Bool   bool
	Int    int32
	Float  float32
	Double float64
	String string

	BoolArray   []bool
	IntArray    []int32
	FloatArray  []float32
	DoubleArray []float64
}

// KindForValue returns the UPDATE_* scalar or array Kind matching v's
// ValueKind.
func KindForValue(v ValueKind) Kind {
	switch v {
	case ValueBool:
		return KindUpdateBool
	case ValueInt:
		return KindUpdateInt
	case ValueFloat:
		return KindUpdateFloat
	case ValueDouble:
		return KindUpdateDouble
	case ValueString:
		return KindUpdateString
	case ValueBoolArray:
		return KindUpdateBoolArray
	case ValueIntArray:
		return KindUpdateIntArray
	case ValueFloatArray:
		return KindUpdateFloatArray
	case ValueDoubleArray:
		return KindUpdateDoubleArray
	default:
		return KindUnknown
	}
}
