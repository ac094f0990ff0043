package utils

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const sendTimeout = 30 * time.Second

// Notifier delivers notifications from a buffered queue on a single worker
// goroutine. Enqueue never blocks; delivery failures are logged and counted.
type Notifier struct {
	mailer  Mailer
	queue   chan Notification
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once

	// mu is held shared by Enqueue across the closed check and the send, and
	// exclusively by Stop while it flips closed.
	mu     sync.RWMutex
	closed bool

	logger  *zap.Logger
	outcome *prometheus.CounterVec
}

func NewNotifier(mailer Mailer, size int, logger *zap.Logger, outcome *prometheus.CounterVec) *Notifier {
	return &Notifier{
		mailer:  mailer,
		queue:   make(chan Notification, size),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		logger:  logger,
		outcome: outcome,
	}
}

// Start launches the worker. Call it once.
func (n *Notifier) Start() {
	go n.loop()
}

// Enqueue schedules a notification and reports whether it was accepted.
// Messages are dropped when the queue is full or the notifier is stopping.
func (n *Notifier) Enqueue(msg Notification) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.closed {
		n.record("dropped")
		return false
	}

	select {
	case n.queue <- msg:
		return true
	default:
		n.record("dropped")
		n.logger.Warn("notification queue full, dropping message",
			zap.String("to", msg.To), zap.String("subject", msg.Subject))
		return false
	}
}

// Stop signals the worker to deliver what is already queued and exit, and
// waits for it until ctx is done.
func (n *Notifier) Stop(ctx context.Context) error {
	n.once.Do(func() {
		n.mu.Lock()
		n.closed = true
		close(n.stop)
		n.mu.Unlock()
	})
	select {
	case <-n.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (n *Notifier) loop() {
	defer close(n.done)
	for {
		select {
		case msg := <-n.queue:
			n.deliver(msg)
		case <-n.stop:
			for {
				select {
				case msg := <-n.queue:
					n.deliver(msg)
				default:
					return
				}
			}
		}
	}
}

func (n *Notifier) deliver(msg Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := n.mailer.Send(ctx, msg); err != nil {
		n.record("failed")
		n.logger.Error("notification delivery failed",
			zap.String("to", msg.To), zap.String("subject", msg.Subject), zap.Error(err))
		return
	}
	n.record("sent")
}

func (n *Notifier) record(outcome string) {
	if n.outcome != nil {
		n.outcome.WithLabelValues(outcome).Inc()
	}
}
