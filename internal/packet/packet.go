package packet

import "github.com/uwst-robotics/vexbridge-link/internal/vbuf"

// Body is the decoded packet payload, a sum type over all of spec.md's
// PacketBody variants discriminated by the owning Decoded's Kind. Only the
// fields relevant to that Kind are meaningful; this mirrors the source's
// one-class-per-kind hierarchy collapsed into a single Go struct per the
// REDESIGN FLAGS guidance.
type Body struct {
	// AssignLabel, Update*: the target value ID.
	ValueID uint16

	// AssignLabel.
	Label string

	// Log.
	Message string

	// Update* (scalar and array).
	Value Value

	// Batch.
	SubKind    Kind
	SubPackets []Decoded
}

// Decoded is a fully parsed packet: the wire discriminant, the sender's
// rolling sequence id, and the typed body.
type Decoded struct {
	Kind  Kind
	SeqID uint8
	Body  Body
}

// Encoded is a packet whose body has been serialized to bytes but not yet
// byte-stuffed. EncodeFrame rejects a Payload over 65535 bytes (the wire's
// 16-bit length field).
type Encoded struct {
	Kind    Kind
	SeqID   uint8
	Payload vbuf.Buffer
}
