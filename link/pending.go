package link

import (
	"sync"
	"time"

	"github.com/uwst-robotics/vexbridge-link/internal/packet"
)

// pendingEntry is one in-flight packet awaiting GENERIC_ACK.
type pendingEntry struct {
	seqID   uint8
	packet  packet.Decoded
	frame   []byte
	sentAt  time.Time
	retries int
}

// pendingList tracks packets sent with WaitForAck, keyed by seq_id, under
// its own mutex per spec.md §5 ("pending-ack list: one mutex per socket").
type pendingList struct {
	mu      sync.Mutex
	entries map[uint8]*pendingEntry
	order   []uint8
}

func newPendingList() *pendingList {
	return &pendingList{entries: make(map[uint8]*pendingEntry)}
}

// add records a freshly sent packet.
func (p *pendingList) add(seqID uint8, pkt packet.Decoded, frame []byte, now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.entries[seqID]; !exists {
		p.order = append(p.order, seqID)
	}
	p.entries[seqID] = &pendingEntry{seqID: seqID, packet: pkt, frame: frame, sentAt: now}
}

// ack removes the entry matching seqID, reporting whether one existed.
func (p *pendingList) ack(seqID uint8) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.remove(seqID)
}

func (p *pendingList) remove(seqID uint8) bool {
	if _, ok := p.entries[seqID]; !ok {
		return false
	}
	delete(p.entries, seqID)
	for i, id := range p.order {
		if id == seqID {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	return true
}

// len reports how many packets are currently awaiting acknowledgement.
func (p *pendingList) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// resendResult is produced by sweep for one entry, used by the caller (the
// writer) to actually transmit the bytes and log outcomes.
type resendResult struct {
	entry   pendingEntry
	dropped bool
}

// sweep walks entries older than timeout; entries at maxRetries are dropped
// and reported, others are reported for retransmission with sentAt reset
// and retries incremented. The caller performs the actual I/O — sweep only
// decides who needs it, to keep the driver call outside the mutex.
func (p *pendingList) sweep(now time.Time, timeout time.Duration, maxRetries int) []resendResult {
	p.mu.Lock()
	defer p.mu.Unlock()

	var results []resendResult
	for _, seqID := range append([]uint8(nil), p.order...) {
		e, ok := p.entries[seqID]
		if !ok || now.Sub(e.sentAt) <= timeout {
			continue
		}
		if e.retries >= maxRetries {
			results = append(results, resendResult{entry: *e, dropped: true})
			p.remove(seqID)
			continue
		}
		e.retries++
		e.sentAt = now
		results = append(results, resendResult{entry: *e})
	}
	return results
}

// nack forces the matching entry to resend immediately, counting toward the
// retry cap same as a timeout-triggered resend. Returns (result, true) if a
// matching entry existed and had retries left, or drops and reports it if
// the cap was already reached.
func (p *pendingList) nack(seqID uint8, now time.Time, maxRetries int) (resendResult, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.entries[seqID]
	if !ok {
		return resendResult{}, false
	}
	if e.retries >= maxRetries {
		p.remove(seqID)
		return resendResult{entry: *e, dropped: true}, true
	}
	e.retries++
	e.sentAt = now
	return resendResult{entry: *e}, true
}
