package valuetable

import (
	"sync"
	"testing"

	"github.com/uwst-robotics/vexbridge-link/internal/packet"
)

func TestGetMissingReturnsFalse(t *testing.T) {
	table := New()
	if _, ok := table.Get(42); ok {
		t.Error("expected no value for an id that was never set")
	}
}

func TestSetThenGetRoundTrips(t *testing.T) {
	table := New()
	table.Set(7, packet.Value{Kind: packet.ValueInt, Int: 99})

	v, ok := table.Get(7)
	if !ok {
		t.Fatal("expected a value to be present")
	}
	if v.Kind != packet.ValueInt || v.Int != 99 {
		t.Errorf("got %+v", v)
	}
}

func TestSetOverwritesAcrossTypeChange(t *testing.T) {
	table := New()
	table.Set(7, packet.Value{Kind: packet.ValueBool, Bool: true})
	table.Set(7, packet.Value{Kind: packet.ValueString, String: "now a string"})

	v, ok := table.Get(7)
	if !ok {
		t.Fatal("expected a value to be present")
	}
	if v.Kind != packet.ValueString || v.String != "now a string" {
		t.Errorf("expected the later write to win outright, got %+v", v)
	}
}

func TestConcurrentSetAndGet(t *testing.T) {
	table := New()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		id := uint16(i % 5)
		go func(id uint16, n int) {
			defer wg.Done()
			table.Set(id, packet.Value{Kind: packet.ValueInt, Int: int32(n)})
		}(id, i)
		go func(id uint16) {
			defer wg.Done()
			table.Get(id)
		}(id)
	}
	wg.Wait()

	if table.Len() > 5 {
		t.Errorf("expected at most 5 distinct ids, got %d", table.Len())
	}
}

func TestSnapshotIsIndependentCopy(t *testing.T) {
	table := New()
	table.Set(1, packet.Value{Kind: packet.ValueInt, Int: 1})

	snap := table.Snapshot()
	table.Set(1, packet.Value{Kind: packet.ValueInt, Int: 2})

	if snap[1].Int != 1 {
		t.Errorf("expected snapshot to be unaffected by later writes, got %+v", snap[1])
	}
}
