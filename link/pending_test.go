package link

import (
	"testing"
	"time"

	"github.com/uwst-robotics/vexbridge-link/internal/packet"
)

func TestAckRemovesMatchingEntry(t *testing.T) {
	p := newPendingList()
	p.add(5, packet.Decoded{Kind: packet.KindUpdateBool, SeqID: 5}, []byte{1, 2, 3}, time.Now())

	if !p.ack(5) {
		t.Fatal("expected ack to find the entry")
	}
	if p.len() != 0 {
		t.Errorf("expected pending list to be empty after ack, len=%d", p.len())
	}
}

func TestAckUnknownSeqIsNoop(t *testing.T) {
	p := newPendingList()
	if p.ack(9) {
		t.Error("expected ack of unknown seq_id to report no match")
	}
}

func TestSweepLeavesFreshEntriesAlone(t *testing.T) {
	p := newPendingList()
	now := time.Now()
	p.add(1, packet.Decoded{SeqID: 1}, nil, now)

	results := p.sweep(now.Add(1*time.Millisecond), 10*time.Millisecond, 3)
	if len(results) != 0 {
		t.Errorf("expected no resends before timeout elapses, got %d", len(results))
	}
	if p.len() != 1 {
		t.Errorf("expected entry to remain pending, len=%d", p.len())
	}
}

func TestSweepRetriesUntilCapThenDrops(t *testing.T) {
	p := newPendingList()
	start := time.Now()
	p.add(1, packet.Decoded{SeqID: 1}, []byte{0xAA}, start)

	// Three retransmissions (retries becomes 1, 2, 3), then a final sweep
	// drops the entry because retries has reached maxRetries.
	now := start
	for i := 0; i < 3; i++ {
		now = now.Add(11 * time.Millisecond)
		results := p.sweep(now, 10*time.Millisecond, 3)
		if len(results) != 1 || results[0].dropped {
			t.Fatalf("retry %d: expected one non-dropped resend, got %+v", i, results)
		}
	}
	if p.len() != 1 {
		t.Fatalf("expected entry to still be pending after 3 retries, len=%d", p.len())
	}

	now = now.Add(11 * time.Millisecond)
	results := p.sweep(now, 10*time.Millisecond, 3)
	if len(results) != 1 || !results[0].dropped {
		t.Fatalf("expected the entry to be dropped on the 4th timeout, got %+v", results)
	}
	if p.len() != 0 {
		t.Errorf("expected pending list empty after drop, len=%d", p.len())
	}
}

func TestNackForcesImmediateResendCountingTowardCap(t *testing.T) {
	p := newPendingList()
	now := time.Now()
	p.add(2, packet.Decoded{SeqID: 2}, []byte{0xBB}, now)

	result, matched := p.nack(2, now, 3)
	if !matched || result.dropped {
		t.Fatalf("expected an immediate, non-dropped resend, got matched=%v result=%+v", matched, result)
	}

	entry := p.entries[2]
	if entry.retries != 1 {
		t.Errorf("expected nack to increment retries, got %d", entry.retries)
	}
}

func TestNackOnUnknownSeqIsNoop(t *testing.T) {
	p := newPendingList()
	if _, matched := p.nack(99, time.Now(), 3); matched {
		t.Error("expected nack of unknown seq_id to report no match")
	}
}
