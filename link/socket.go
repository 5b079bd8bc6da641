package link

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/uwst-robotics/vexbridge-link/internal/config"
	"github.com/uwst-robotics/vexbridge-link/internal/packet"
	"github.com/uwst-robotics/vexbridge-link/internal/valuetable"
	"github.com/uwst-robotics/vexbridge-link/pkg/logger"
)

// State is a Socket's coarse run state.
type State int

const (
	// Running is the initial and steady state: reader and writer loop.
	Running State = iota
	// Faulted means a task's loop panicked; it sleeps cfg.ReviveDelay then
	// returns to Running. There is no terminal state — process exit is the
	// only shutdown.
	Faulted
)

// Option configures a Socket at construction.
type Option func(*Socket)

// WithSet registers the Socket in set instead of DefaultSet.
func WithSet(set *Set) Option {
	return func(s *Socket) { s.set = set }
}

// WithHandler supplies a Handler for packet kinds the core does not itself
// consume.
func WithHandler(h Handler) Option {
	return func(s *Socket) { s.handler = h }
}

// WithValueTable shares an existing value table instead of each Socket
// getting its own.
func WithValueTable(t *valuetable.Table) Option {
	return func(s *Socket) { s.values = t }
}

// Socket owns one Driver and its write pipeline (queue + pendingList +
// writer) and read pipeline (reader), and registers itself in a
// process-wide Set so Broadcast can fan packets out to every socket.
type Socket struct {
	driver   Driver
	registry packet.Registry
	cfg      config.Config

	queue   *queue
	pending *pendingList
	writer  *writer
	reader  *reader
	values  *valuetable.Table
	set     *Set
	handler Handler

	state State
	stop  chan struct{}
}

// NewSocket constructs a Socket over driver, spawns its reader and writer
// goroutines, enqueues a RESET packet, and registers it in its Set
// (DefaultSet unless WithSet is given).
func NewSocket(ctx context.Context, driver Driver, cfg config.Config, opts ...Option) *Socket {
	s := &Socket{
		driver:   driver,
		registry: packet.NewRegistry(),
		cfg:      cfg,
		queue:    newQueue(cfg.MaxQueueSize),
		pending:  newPendingList(),
		values:   valuetable.New(),
		set:      DefaultSet,
		stop:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.writer = newWriter(s.driver, s.queue, s.pending, s.registry, s.cfg)
	s.reader = newReader(s.driver, s.registry, s.values, s.writer, s.handler, s.cfg)

	s.set.Register(s)
	s.WritePacket(packet.Decoded{Kind: packet.KindReset})
	s.run(ctx)
	return s
}

// Values returns the socket's value table.
func (s *Socket) Values() *valuetable.Table {
	return s.values
}

// WritePacket enqueues p for transmission.
func (s *Socket) WritePacket(p packet.Decoded) error {
	return s.queue.enqueue(Item{Packet: p})
}

// WritePacketWithAck enqueues p and records it on the pending-ack list once
// sent, so a missing GENERIC_ACK triggers retransmission.
func (s *Socket) WritePacketWithAck(p packet.Decoded) error {
	return s.queue.enqueue(Item{Packet: p, WaitForAck: true})
}

// Close stops the reader and writer loops and deregisters the socket.
func (s *Socket) Close() {
	close(s.stop)
	s.set.Deregister(s)
}

// run launches the supervised reader and writer goroutines; each is
// restarted after cfg.ReviveDelay if it panics, matching spec.md §4.8's
// Running/Faulted state machine.
func (s *Socket) run(ctx context.Context) {
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		s.supervise(egCtx, "reader", s.reader.run)
		return nil
	})
	eg.Go(func() error {
		s.supervise(egCtx, "writer", s.writer.run)
		return nil
	})

	go func() {
		if err := eg.Wait(); err != nil {
			logger.Error("link: socket supervisor exited: %v", err)
		}
	}()
}

// supervise runs loop(s.stop) repeatedly, recovering from any panic,
// logging it, sleeping cfg.ReviveDelay, and resuming — until ctx is done or
// the socket is closed.
func (s *Socket) supervise(ctx context.Context, name string, loop func(<-chan struct{})) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		default:
		}

		s.runOnce(name, loop)

		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case <-time.After(0):
		}
	}
}

func (s *Socket) runOnce(name string, loop func(<-chan struct{})) {
	defer func() {
		if r := recover(); r != nil {
			s.state = Faulted
			logger.Error("link: %s task faulted: %v", name, r)
			time.Sleep(s.cfg.ReviveDelay)
			s.state = Running
		}
	}()
	loop(s.stop)
}

// FetchBroadcaster spawns an adjunct goroutine that enqueues FETCH_VALUES
// on s every cfg.FetchInterval until the socket is closed.
func (s *Socket) FetchBroadcaster(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.cfg.FetchInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stop:
				return
			case <-ticker.C:
				if err := s.WritePacket(packet.Decoded{Kind: packet.KindFetchValues}); err != nil {
					logger.Warn("link: FETCH_VALUES broadcast enqueue failed: %v", err)
				}
			}
		}
	}()
}
