//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package multiplexer

import (
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/Viet-ph/kevent/event"
	custom_err "github.com/Viet-ph/kevent/internal/error"
	"github.com/Viet-ph/kevent/internal/queue"
)

// Kqueue owns one kernel queue and a reusable event buffer. Changes passed
// to Submit are held until the next Poll or Flush and go to the kernel in
// that same kevent call.
//
// Poll is meant to be called from a single goroutine; Submit may be called
// from any.
type Kqueue struct {
	fd       int
	kqEvents []event.KEvent
	changes  *queue.Queue[event.KEvent]
	pending  []event.KEvent
	closed   atomic.Bool
	logger   *zap.Logger
}

var _ Iomultiplexer = (*Kqueue)(nil)

func New(maxEvents int, logger *zap.Logger) (*Kqueue, error) {
	if maxEvents <= 0 {
		return nil, fmt.Errorf("invalid number of max events: %d", maxEvents)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	kqFD, err := event.Kqueue()
	if err != nil {
		return nil, err
	}
	logger.Debug("kqueue opened", zap.Int("fd", kqFD), zap.Int("max_events", maxEvents))

	return &Kqueue{
		fd:       kqFD,
		kqEvents: make([]event.KEvent, maxEvents),
		changes:  queue.New[event.KEvent](),
		logger:   logger,
	}, nil
}

// Submit queues changes for the next Poll or Flush.
func (kq *Kqueue) Submit(changes ...event.KEvent) error {
	if kq.closed.Load() {
		return custom_err.ErrorPollerClosed
	}
	kq.changes.Add(changes...)
	return nil
}

// Flush hands every pending change to the kernel without waiting for events.
// Rejected changes fail the whole call.
func (kq *Kqueue) Flush() error {
	if kq.closed.Load() {
		return custom_err.ErrorPollerClosed
	}

	changes := kq.drain()
	if len(changes) == 0 {
		return nil
	}
	if _, err := event.KeventTs(kq.fd, changes, nil, &unix.Timespec{}); err != nil {
		kq.logger.Debug("flush failed", zap.Int("changes", len(changes)), zap.Error(err))
		return fmt.Errorf("error applying %d changes: %w", len(changes), err)
	}
	kq.logger.Debug("changes flushed", zap.Int("changes", len(changes)))
	return nil
}

// Poll submits pending changes and waits up to timeout for events. A
// negative timeout blocks until an event arrives and zero returns at once.
// The returned slice aliases the internal buffer and is only valid until the
// next Poll.
//
// Interrupted waits come back as errors wrapping unix.EINTR; retrying is up
// to the caller. Changes rejected by the kernel come back as events with
// EV_ERROR set.
func (kq *Kqueue) Poll(timeout time.Duration) ([]event.KEvent, error) {
	if kq.closed.Load() {
		return nil, custom_err.ErrorPollerClosed
	}

	var ts *unix.Timespec
	if timeout >= 0 {
		t := unix.NsecToTimespec(int64(timeout))
		ts = &t
	}

	changes := kq.drain()
	numEvents, err := event.KeventTs(kq.fd, changes, kq.kqEvents, ts)
	if err != nil {
		return nil, fmt.Errorf("error waiting for events: %w", err)
	}
	if len(changes) > 0 || numEvents > 0 {
		kq.logger.Debug("polled",
			zap.Int("changes", len(changes)),
			zap.Int("events", numEvents),
		)
	}

	return kq.kqEvents[:numEvents], nil
}

func (kq *Kqueue) drain() []event.KEvent {
	kq.pending = kq.changes.Drain(kq.pending[:0])
	return kq.pending
}

// Close releases the kernel queue. Later calls return nil.
func (kq *Kqueue) Close() error {
	if kq.closed.Swap(true) {
		return nil
	}
	kq.logger.Debug("kqueue closed", zap.Int("fd", kq.fd))
	return unix.Close(kq.fd)
}

func IsReadable(ev *event.KEvent) bool {
	return ev.Filter == event.EVFILT_READ
}

func IsWritable(ev *event.KEvent) bool {
	return ev.Filter == event.EVFILT_WRITE
}
