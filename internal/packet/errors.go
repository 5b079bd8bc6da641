package packet

import "errors"

// ErrInvalid is returned (directly, or wrapped) whenever a packet cannot be
// trusted: an unknown Kind, an unregistered, oversized or truncated BATCH,
// a checksum mismatch, or a frame whose declared payload size runs past the
// end of the frame. A non-batch body shorter than its layout is not an
// error: the missing fields decode as zero. Callers drop the packet and
// move on — this is never surfaced past the read pipeline.
var ErrInvalid = errors.New("packet: invalid packet")

// ErrPayloadTooLarge is returned by EncodeFrame when an encoded payload
// would exceed the wire's 16-bit length field.
var ErrPayloadTooLarge = errors.New("packet: payload exceeds 65535 bytes")
