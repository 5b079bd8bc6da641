// Package valuetable holds the process-wide value_id -> last-known-value
// map that the read pipeline's update-value handler populates and user code
// reads back.
package valuetable

import (
	"sync"

	"github.com/uwst-robotics/vexbridge-link/internal/packet"
)

// Table maps a 16-bit value id to the most recently received value. Writes
// replace whatever was there before regardless of ValueKind — last writer
// wins, even across a type change; callers above this layer are responsible
// for keeping a given id's type stable.
type Table struct {
	mu   sync.RWMutex
	vals map[uint16]packet.Value
}

// New returns an empty Table.
func New() *Table {
	return &Table{vals: make(map[uint16]packet.Value)}
}

// Set records v as the current value for id, overwriting whatever was there.
func (t *Table) Set(id uint16, v packet.Value) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.vals[id] = v
}

// Get returns the current value for id and whether one has ever been set.
func (t *Table) Get(id uint16) (packet.Value, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.vals[id]
	return v, ok
}

// Len reports how many distinct ids have a recorded value.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.vals)
}

// Snapshot returns a copy of the current id -> value map, suitable for
// servicing a FETCH_VALUES broadcast without holding the table's lock while
// packets are built.
func (t *Table) Snapshot() map[uint16]packet.Value {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[uint16]packet.Value, len(t.vals))
	for id, v := range t.vals {
		out[id] = v
	}
	return out
}
