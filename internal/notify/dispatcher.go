package notify

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultQueueSize bounds the dispatcher queue when none is configured.
const DefaultQueueSize = 256

// DefaultSendTimeout bounds a single delivery to one sink.
const DefaultSendTimeout = 10 * time.Second

// Sender delivers a message to one sink.
type Sender interface {
	Name() string
	Send(ctx context.Context, m Message) error
}

// Dispatcher queues messages and delivers them from one worker goroutine.
// Enqueue never blocks; a full queue drops the message.
type Dispatcher struct {
	senders     []Sender
	queue       chan Message
	sendTimeout time.Duration
	log         zerolog.Logger

	mu     sync.RWMutex
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewDispatcher starts a dispatcher delivering to senders. With no senders a
// LogSender is used.
func NewDispatcher(size int, senders ...Sender) *Dispatcher {
	if size <= 0 {
		size = DefaultQueueSize
	}
	if len(senders) == 0 {
		senders = []Sender{LogSender{}}
	}
	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		senders:     senders,
		queue:       make(chan Message, size),
		sendTimeout: DefaultSendTimeout,
		log:         log.Logger.With().Str("component", "notify").Logger(),
		ctx:         ctx,
		cancel:      cancel,
		done:        make(chan struct{}),
	}
	go d.run()
	return d
}

// Enqueue hands m to the worker. It reports false when the message was
// dropped because the queue is full or the dispatcher is closed.
func (d *Dispatcher) Enqueue(m Message) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		droppedTotal.Inc()
		d.log.Warn().Str("type", m.Type).Msg("notification dropped: dispatcher closed")
		return false
	}
	select {
	case d.queue <- m:
		return true
	default:
		droppedTotal.Inc()
		d.log.Warn().Str("type", m.Type).Int("capacity", cap(d.queue)).Msg("notification dropped: queue full")
		return false
	}
}

// Pending returns the number of queued, undelivered messages.
func (d *Dispatcher) Pending() int { return len(d.queue) }

// Close stops intake and waits for queued messages to be delivered. If ctx
// expires first, in-flight deliveries are cancelled and ctx.Err() is returned.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		<-d.done
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	defer d.closeSenders()
	for m := range d.queue {
		if d.ctx.Err() != nil {
			droppedTotal.Inc()
			continue
		}
		d.deliver(m)
	}
}

// closeSenders releases senders that hold connections.
func (d *Dispatcher) closeSenders() {
	for _, s := range d.senders {
		if c, isCloser := s.(io.Closer); isCloser {
			if err := c.Close(); err != nil {
				d.log.Warn().Err(err).Str("sink", s.Name()).Msg("notification sink close failed")
			}
		}
	}
}

func (d *Dispatcher) deliver(m Message) {
	for _, s := range d.senders {
		ctx, cancel := context.WithTimeout(d.ctx, d.sendTimeout)
		err := s.Send(ctx, m)
		cancel()
		if err != nil {
			sentTotal.WithLabelValues(m.Type, "failed").Inc()
			d.log.Error().Err(err).Str("sink", s.Name()).Str("type", m.Type).Msg("notification delivery failed")
			continue
		}
		sentTotal.WithLabelValues(m.Type, "sent").Inc()
	}
}
