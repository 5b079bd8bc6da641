package link

import (
	"sync"

	"github.com/uwst-robotics/vexbridge-link/internal/packet"
)

// Set is a process-wide registry of active Sockets, guarded by one mutex,
// used to fan a packet out to every socket at once.
type Set struct {
	mu      sync.Mutex
	sockets map[*Socket]struct{}
}

// NewSet returns an empty socket set.
func NewSet() *Set {
	return &Set{sockets: make(map[*Socket]struct{})}
}

// DefaultSet is the process-wide set Sockets register into unless
// constructed with WithSet.
var DefaultSet = NewSet()

// Register adds s to the set. Called once from NewSocket.
func (set *Set) Register(s *Socket) {
	set.mu.Lock()
	defer set.mu.Unlock()
	set.sockets[s] = struct{}{}
}

// Deregister removes s from the set.
func (set *Set) Deregister(s *Socket) {
	set.mu.Lock()
	defer set.mu.Unlock()
	delete(set.sockets, s)
}

// Len reports how many sockets are currently registered.
func (set *Set) Len() int {
	set.mu.Lock()
	defer set.mu.Unlock()
	return len(set.sockets)
}

// Broadcast enqueues p on every registered socket.
func (set *Set) Broadcast(p packet.Decoded) {
	set.mu.Lock()
	defer set.mu.Unlock()
	for s := range set.sockets {
		s.WritePacket(p)
	}
}
