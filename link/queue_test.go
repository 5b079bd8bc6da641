package link

import (
	"testing"

	"github.com/uwst-robotics/vexbridge-link/internal/packet"
)

func updateInt(id uint16, v int32) Item {
	return Item{Packet: packet.Decoded{
		Kind: packet.KindUpdateInt,
		Body: packet.Body{ValueID: id, Value: packet.Value{Kind: packet.ValueInt, Int: v}},
	}}
}

func TestEnqueueCoalescesUpdatesBySameValueID(t *testing.T) {
	q := newQueue(512)

	mustEnqueue(t, q, updateInt(7, 1))
	mustEnqueue(t, q, updateInt(7, 2))
	mustEnqueue(t, q, updateInt(8, 3))

	items := q.drain()
	if len(items) != 2 {
		t.Fatalf("expected 2 entries after coalescing, got %d", len(items))
	}
	if items[0].Packet.Body.ValueID != 7 || items[0].Packet.Body.Value.Int != 2 {
		t.Errorf("entry 0 = %+v, want (id=7, v=2)", items[0].Packet.Body)
	}
	if items[1].Packet.Body.ValueID != 8 || items[1].Packet.Body.Value.Int != 3 {
		t.Errorf("entry 1 = %+v, want (id=8, v=3)", items[1].Packet.Body)
	}
}

func TestEnqueueDistinctKindsDoNotCoalesce(t *testing.T) {
	q := newQueue(512)
	mustEnqueue(t, q, Item{Packet: packet.Decoded{Kind: packet.KindUpdateBool, Body: packet.Body{ValueID: 1}}})
	mustEnqueue(t, q, Item{Packet: packet.Decoded{Kind: packet.KindUpdateInt, Body: packet.Body{ValueID: 1}}})

	if got := q.len(); got != 2 {
		t.Errorf("expected 2 entries for differing kinds sharing a value id, got %d", got)
	}
}

func TestEnqueueOnFullQueueFailsWithoutDisplacing(t *testing.T) {
	q := newQueue(2)
	mustEnqueue(t, q, Item{Packet: packet.Decoded{Kind: packet.KindPing}})
	mustEnqueue(t, q, Item{Packet: packet.Decoded{Kind: packet.KindReset}})

	if err := q.enqueue(Item{Packet: packet.Decoded{Kind: packet.KindLog}}); err != ErrQueueFull {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}

	items := q.drain()
	if len(items) != 2 || items[0].Packet.Kind != packet.KindPing || items[1].Packet.Kind != packet.KindReset {
		t.Errorf("existing entries were displaced: %+v", items)
	}
}

func TestDrainEmptiesQueue(t *testing.T) {
	q := newQueue(4)
	mustEnqueue(t, q, Item{Packet: packet.Decoded{Kind: packet.KindPing}})

	if got := len(q.drain()); got != 1 {
		t.Fatalf("expected 1 item drained, got %d", got)
	}
	if got := q.len(); got != 0 {
		t.Errorf("expected empty queue after drain, got len=%d", got)
	}
}

func mustEnqueue(t *testing.T, q *queue, item Item) {
	t.Helper()
	if err := q.enqueue(item); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}
}
