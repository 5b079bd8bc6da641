package link

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/uwst-robotics/vexbridge-link/internal/packet"
)

func TestNewSocketSendsResetOnConstruction(t *testing.T) {
	driver := &fakeDriver{}
	set := NewSet()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewSocket(ctx, driver, testConfig(), WithSet(set))
	defer s.Close()

	require.Eventually(t, func() bool {
		for _, frame := range driver.writes() {
			d, _, found, err := packet.DecodeFrame(s.registry, frame)
			if found && err == nil && d.Kind == packet.KindReset {
				return true
			}
		}
		return false
	}, time.Second, time.Millisecond, "expected a RESET frame to be transmitted on construction")
}

func TestNewSocketRegistersInSet(t *testing.T) {
	driver := &fakeDriver{}
	set := NewSet()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Closed explicitly below; Close is not safe to call twice.
	s := NewSocket(ctx, driver, testConfig(), WithSet(set))

	require.Equal(t, 1, set.Len())

	s.Close()
	require.Equal(t, 0, set.Len())
}

func TestSocketWritePacketIsTransmitted(t *testing.T) {
	driver := &fakeDriver{}
	set := NewSet()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewSocket(ctx, driver, testConfig(), WithSet(set))
	defer s.Close()

	require.NoError(t, s.WritePacket(packet.Decoded{
		Kind: packet.KindUpdateInt,
		Body: packet.Body{ValueID: 9, Value: packet.Value{Kind: packet.ValueInt, Int: 123}},
	}))

	require.Eventually(t, func() bool {
		for _, frame := range driver.writes() {
			d, _, found, err := packet.DecodeFrame(s.registry, frame)
			if found && err == nil && d.Kind == packet.KindUpdateInt && d.Body.ValueID == 9 {
				return true
			}
		}
		return false
	}, time.Second, time.Millisecond, "expected the UPDATE_INT packet to be transmitted")
}

func TestSocketIngestUpdatesOwnValueTable(t *testing.T) {
	driver := &fakeDriver{}
	set := NewSet()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewSocket(ctx, driver, testConfig(), WithSet(set))
	defer s.Close()

	frame, err := packet.EncodeFrame(s.registry, packet.Decoded{
		Kind: packet.KindUpdateBool,
		Body: packet.Body{ValueID: 3, Value: packet.Value{Kind: packet.ValueBool, Bool: true}},
	})
	require.NoError(t, err)
	driver.feed(frame)

	require.Eventually(t, func() bool {
		v, ok := s.Values().Get(3)
		return ok && v.Bool
	}, time.Second, time.Millisecond, "expected inbound UPDATE_BOOL to reach the value table")
}

func TestBroadcastReachesAllRegisteredSockets(t *testing.T) {
	set := NewSet()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d1, d2 := &fakeDriver{}, &fakeDriver{}
	s1 := NewSocket(ctx, d1, testConfig(), WithSet(set))
	s2 := NewSocket(ctx, d2, testConfig(), WithSet(set))
	defer s1.Close()
	defer s2.Close()

	set.Broadcast(packet.Decoded{Kind: packet.KindFetchValues})

	require.Eventually(t, func() bool {
		return hasKind(d1, s1.registry, packet.KindFetchValues) && hasKind(d2, s2.registry, packet.KindFetchValues)
	}, time.Second, time.Millisecond, "expected broadcast to reach both sockets")
}

func hasKind(driver *fakeDriver, reg packet.Registry, kind packet.Kind) bool {
	for _, frame := range driver.writes() {
		d, _, found, err := packet.DecodeFrame(reg, frame)
		if found && err == nil && d.Kind == kind {
			return true
		}
	}
	return false
}
