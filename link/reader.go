package link

import (
	"time"

	"github.com/uwst-robotics/vexbridge-link/internal/config"
	"github.com/uwst-robotics/vexbridge-link/internal/packet"
	"github.com/uwst-robotics/vexbridge-link/internal/valuetable"
	"github.com/uwst-robotics/vexbridge-link/pkg/logger"
	"github.com/uwst-robotics/vexbridge-link/pkg/metrics"
)

// Handler receives packets the core dispatch does not itself consume
// (PING, LOG, RESET, FETCH_VALUES, ASSIGN_LABEL, GENERIC_NACK, BATCH).
type Handler func(packet.Decoded)

// reader is the receive task owned exclusively by one Socket: it pulls
// bytes from the driver into a rolling buffer, extracts and decodes frames,
// and dispatches them.
type reader struct {
	driver   Driver
	registry packet.Registry
	values   *valuetable.Table
	writer   *writer
	handler  Handler
	cfg      config.Config

	buf []byte
}

func newReader(driver Driver, reg packet.Registry, values *valuetable.Table, w *writer, handler Handler, cfg config.Config) *reader {
	return &reader{driver: driver, registry: reg, values: values, writer: w, handler: handler, cfg: cfg}
}

// run pulls bytes and decodes frames until stop is closed.
func (r *reader) run(stop <-chan struct{}) {
	scratch := make([]byte, 0, 512)
	for {
		select {
		case <-stop:
			return
		default:
		}

		scratch = scratch[:0]
		n := r.driver.Read(&scratch)
		if n > 0 {
			r.ingest(scratch)
		}
		if n <= 0 {
			time.Sleep(time.Millisecond)
		}
	}
}

// ingest appends newBytes to the rolling buffer, caps it at MaxBufferSize by
// discarding the oldest prefix, then decodes and dispatches every complete
// frame it can find.
func (r *reader) ingest(newBytes []byte) {
	r.buf = append(r.buf, newBytes...)
	if over := len(r.buf) - r.cfg.MaxBufferSize; over > 0 {
		r.buf = r.buf[over:]
	}

	for len(r.buf) > 0 {
		d, consumed, found, err := packet.DecodeFrame(r.registry, r.buf)
		if !found {
			// No complete frame yet; wait for more bytes.
			return
		}
		if consumed > 0 {
			r.buf = r.buf[consumed:]
		} else {
			// Defensive: DecodeFrame should never report found with
			// consumed == 0, but refusing to spin protects against a
			// framing bug turning into a busy loop.
			return
		}
		if err != nil {
			metrics.FramesDropped.Inc()
			logger.Warn("link: dropping malformed frame: %v", err)
			continue
		}
		metrics.FramesReceived.Inc()
		r.dispatch(d)
	}
}

func (r *reader) dispatch(d packet.Decoded) {
	switch d.Kind {
	case packet.KindGenericAck:
		r.writer.pending.ack(d.SeqID)
		return
	default:
		if d.Kind.IsUpdate() {
			r.values.Set(d.Body.ValueID, d.Body.Value)
			metrics.ValueTableSize.Set(float64(r.values.Len()))
			return
		}
	}

	// PING, LOG, RESET, FETCH_VALUES, ASSIGN_LABEL, GENERIC_NACK, BATCH: the
	// core accepts these without rejecting them, handling GENERIC_NACK's
	// retry side effect itself and otherwise leaving consumption to a
	// caller-supplied Handler.
	if d.Kind == packet.KindGenericNack {
		r.writer.handleNack(d.SeqID)
	}
	if r.handler != nil {
		r.handler(d)
	}
}
