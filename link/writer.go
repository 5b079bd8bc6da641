package link

import (
	"sync/atomic"
	"time"

	"github.com/uwst-robotics/vexbridge-link/internal/config"
	"github.com/uwst-robotics/vexbridge-link/internal/packet"
	"github.com/uwst-robotics/vexbridge-link/pkg/logger"
	"github.com/uwst-robotics/vexbridge-link/pkg/metrics"
)

// writer is the sender task owned exclusively by one Socket: it drains the
// queue, assigns rolling sequence ids, encodes and transmits frames, and
// periodically sweeps the pending-ack list for timeouts.
type writer struct {
	driver   Driver
	queue    *queue
	pending  *pendingList
	registry packet.Registry
	cfg      config.Config
	seqID    uint32 // accessed via atomic; wraps to uint8 on use
}

func newWriter(driver Driver, q *queue, pending *pendingList, reg packet.Registry, cfg config.Config) *writer {
	return &writer{driver: driver, queue: q, pending: pending, registry: reg, cfg: cfg}
}

func (w *writer) nextSeqID() uint8 {
	return uint8(atomic.AddUint32(&w.seqID, 1) - 1)
}

// run drains the queue and sweeps the pending list in a loop until stop is
// closed. A panic is never expected from this loop's own logic; Socket's
// supervising goroutine handles recovery at a higher level.
func (w *writer) run(stop <-chan struct{}) {
	sweepTicker := time.NewTicker(w.cfg.Timeout / 2)
	defer sweepTicker.Stop()

	for {
		select {
		case <-stop:
			return
		default:
		}

		metrics.QueueDepth.Set(float64(w.queue.len()))
		items := w.queue.drain()
		for _, item := range items {
			w.send(item)
			time.Sleep(w.cfg.PostReceiveDelay)
		}

		select {
		case <-sweepTicker.C:
			w.sweepPending()
		default:
		}

		time.Sleep(w.cfg.UpdateInterval)
	}
}

func (w *writer) send(item Item) {
	d := item.Packet
	d.SeqID = w.nextSeqID()

	frame, err := packet.EncodeFrame(w.registry, d)
	if err != nil {
		logger.Error("link: failed to encode %s packet: %v", d.Kind, err)
		return
	}

	if !w.driver.Write(frame) {
		logger.Warn("link: driver write failed for %s seq=%d", d.Kind, d.SeqID)
		// No re-enqueue: if this packet needed an ack, the pending-ack
		// sweep below will resend it; if not, it is simply lost, as
		// spec.md's IoFailure policy requires.
		if item.WaitForAck {
			w.pending.add(d.SeqID, d, frame, time.Now())
		}
		return
	}
	metrics.FramesSent.Inc()

	if item.WaitForAck {
		w.pending.add(d.SeqID, d, frame, time.Now())
	}
}

func (w *writer) sweepPending() {
	for _, result := range w.pending.sweep(time.Now(), w.cfg.Timeout, w.cfg.MaxRetries) {
		if result.dropped {
			metrics.PendingDropped.Inc()
			logger.Warn("link: %s seq=%d exceeded max retries, dropping", result.entry.packet.Kind, result.entry.seqID)
			continue
		}
		metrics.Retries.Inc()
		if !w.driver.Write(result.entry.frame) {
			logger.Warn("link: retry write failed for %s seq=%d", result.entry.packet.Kind, result.entry.seqID)
		}
	}
}

// handleNack forces an immediate resend of the pending entry matching
// seqID, per spec.md §4.6's GENERIC_NACK handling.
func (w *writer) handleNack(seqID uint8) {
	result, matched := w.pending.nack(seqID, time.Now(), w.cfg.MaxRetries)
	if !matched {
		return
	}
	if result.dropped {
		metrics.PendingDropped.Inc()
		logger.Warn("link: NACK for seq=%d exceeded max retries, dropping", seqID)
		return
	}
	metrics.Retries.Inc()
	if !w.driver.Write(result.entry.frame) {
		logger.Warn("link: NACK-triggered retry write failed for seq=%d", seqID)
	}
}
