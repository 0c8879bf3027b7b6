//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package watcher

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/Viet-ph/kevent/config"
	"github.com/Viet-ph/kevent/event"
	custom_err "github.com/Viet-ph/kevent/internal/error"
	"github.com/Viet-ph/kevent/internal/multiplexer"
)

const (
	vnodeNotes = event.NOTE_DELETE | event.NOTE_WRITE | event.NOTE_EXTEND |
		event.NOTE_ATTRIB | event.NOTE_LINK | event.NOTE_RENAME | event.NOTE_REVOKE
	procNotes = event.NOTE_EXIT | event.NOTE_FORK | event.NOTE_EXEC
)

// Notification is a ready event resolved to the watch that produced it.
type Notification struct {
	Watch  *Watch
	Filter event.EventFilter
	Flags  event.EventFlag
	Fflags event.FilterFlag
	Data   int64
	Time   time.Time
}

func (n Notification) String() string {
	return fmt.Sprintf("%s %s %s %s flags=%s fflags=%#x data=%d",
		n.Time.Format(time.RFC3339Nano), n.Watch.Kind, n.Watch.Target,
		n.Filter, n.Flags, uint32(n.Fflags), n.Data)
}

type Handler func(Notification)

// Watcher registers the watches a Config asks for on a poller and turns the
// events coming back into Notifications.
type Watcher struct {
	cfg      *config.Config
	poller   multiplexer.Iomultiplexer
	registry *Registry
	handler  Handler
	logger   *zap.Logger

	signals   []syscall.Signal
	remaining int
	seen      int
	input     int
	readBuf   []byte
}

func New(cfg *config.Config, poller multiplexer.Iomultiplexer, handler Handler, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		cfg:      cfg,
		poller:   poller,
		registry: NewRegistry(),
		handler:  handler,
		logger:   logger,
		input:    syscall.Stdin,
		readBuf:  make([]byte, 4096),
	}
}

func (w *Watcher) Registry() *Registry {
	return w.registry
}

// Register builds one kevent per configured watch, plus SIGINT and SIGTERM
// watches that end the run, and applies them in a single call.
func (w *Watcher) Register() error {
	var changes []event.KEvent

	for _, path := range w.cfg.Files {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
		if err != nil {
			w.closeFiles()
			return fmt.Errorf("opening %s: %w", path, err)
		}
		tag, _ := w.registry.Add(Watch{Kind: KindFile, Target: path, Ident: uint(fd), Fd: fd})
		changes = append(changes, event.NewKEvent(uint(fd), event.EVFILT_VNODE, event.EV_ADD|event.EV_CLEAR, vnodeNotes, tag))
		w.remaining++
	}

	for _, pid := range w.cfg.Pids {
		tag, _ := w.registry.Add(Watch{Kind: KindProcess, Target: strconv.Itoa(pid), Ident: uint(pid), Fd: -1})
		changes = append(changes, event.NewKEvent(uint(pid), event.EVFILT_PROC, event.EV_ADD, procNotes, tag))
		w.remaining++
	}

	watched := make(map[syscall.Signal]bool)
	stopRequested := false
	for _, name := range w.cfg.Signals {
		sig, err := ParseSignal(name)
		if err != nil {
			w.closeFiles()
			return err
		}
		// One registration per signal: the kernel keys it on the signal
		// number, and the stop watches below already own SIGINT and SIGTERM.
		if slices.Contains(stopSignals, sig) {
			stopRequested = true
			continue
		}
		if watched[sig] {
			continue
		}
		watched[sig] = true
		changes = append(changes, w.signalWatch(sig, false))
		w.remaining++
	}
	for _, sig := range stopSignals {
		changes = append(changes, w.signalWatch(sig, true))
	}

	for _, period := range w.cfg.Timers {
		tag, watch := w.registry.Add(Watch{Kind: KindTimer, Target: (time.Duration(period) * time.Millisecond).String(), Fd: -1})
		// Timers have no natural ident; their tag is unique and serves.
		watch.Ident = uint(tag)
		ev := event.NewKEvent(watch.Ident, event.EVFILT_TIMER, event.EV_ADD, 0, tag)
		ev.Data = int64(period)
		changes = append(changes, ev)
		w.remaining++
	}

	if w.cfg.Stdin {
		tag, _ := w.registry.Add(Watch{Kind: KindRead, Target: "stdin", Ident: uint(w.input), Fd: -1})
		changes = append(changes, event.NewKEvent(uint(w.input), event.EVFILT_READ, event.EV_ADD, 0, tag))
		w.remaining++
	}

	if w.remaining == 0 && !stopRequested {
		return custom_err.ErrorNoWatches
	}

	if err := w.poller.Submit(changes...); err != nil {
		return err
	}
	if err := w.poller.Flush(); err != nil {
		w.closeFiles()
		return fmt.Errorf("registering %d watches: %w", len(changes), err)
	}

	w.registry.Each(func(tag uintptr, watch *Watch) {
		w.logger.Info("watching",
			zap.Stringer("id", watch.ID),
			zap.Stringer("kind", watch.Kind),
			zap.String("target", watch.Target),
			zap.Uint64("tag", uint64(tag)),
		)
	})
	return nil
}

var stopSignals = []syscall.Signal{unix.SIGINT, unix.SIGTERM}

// The kernel records signals even while they are ignored, so the default
// action is disabled for every signal that gets a watch.
func (w *Watcher) signalWatch(sig syscall.Signal, stop bool) event.KEvent {
	signal.Ignore(sig)
	w.signals = append(w.signals, sig)
	tag, _ := w.registry.Add(Watch{Kind: KindSignal, Target: unix.SignalName(sig), Ident: uint(sig), Fd: -1, Stop: stop})
	return event.NewKEvent(uint(sig), event.EVFILT_SIGNAL, event.EV_ADD, 0, tag)
}

// Run polls until ctx is done, a stop signal arrives, cfg.Count events have
// been seen or no watch is left. A blocking wait is not interrupted by ctx;
// cancellation is noticed when the wait returns.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		events, err := w.poller.Poll(w.cfg.Timeout())
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				w.logger.Debug("wait interrupted, retrying")
				continue
			}
			return err
		}

		for i := range events {
			if w.dispatch(&events[i]) {
				return nil
			}
		}
	}
}

// dispatch reports whether the run is over.
func (w *Watcher) dispatch(ev *event.KEvent) bool {
	watch, err := w.registry.Lookup(ev.Udata)
	if err != nil {
		w.logger.Warn("dropping event",
			zap.Stringer("filter", ev.Filter),
			zap.Uint64("ident", uint64(ev.Ident)),
			zap.Error(err),
		)
		return false
	}
	if err := ev.Err(); err != nil {
		w.logger.Error("change rejected", zap.Stringer("watch", watch), zap.Error(err))
		return false
	}

	n := Notification{
		Watch:  watch,
		Filter: ev.Filter,
		Flags:  ev.Flags,
		Fflags: ev.Fflags,
		Data:   ev.Data,
		Time:   time.Now(),
	}
	w.logger.Debug("event",
		zap.Stringer("id", watch.ID),
		zap.Stringer("filter", ev.Filter),
		zap.Stringer("flags", ev.Flags),
		zap.Uint32("fflags", uint32(ev.Fflags)),
		zap.Int64("data", ev.Data),
	)
	if w.handler != nil {
		w.handler(n)
	}
	w.seen++

	switch watch.Kind {
	case KindProcess:
		if ev.Fflags.Contains(event.NOTE_EXIT) {
			w.forget(ev.Udata)
		}
	case KindFile:
		if ev.Fflags.Intersects(event.NOTE_DELETE | event.NOTE_REVOKE) {
			unix.Close(watch.Fd)
			w.forget(ev.Udata)
		}
	case KindRead:
		if multiplexer.IsReadable(ev) {
			w.drainRead(ev)
		}
	}

	if watch.Stop {
		w.logger.Info("stop signal received", zap.String("signal", watch.Target))
		return true
	}
	if w.cfg.Count > 0 && w.seen >= w.cfg.Count {
		return true
	}
	return w.remaining == 0
}

// drainRead consumes what a read watch reported so the level-triggered
// registration does not fire again for the same bytes. At end of file the
// registration is deleted.
func (w *Watcher) drainRead(ev *event.KEvent) {
	for left := ev.Data; left > 0; {
		n, err := unix.Read(int(ev.Ident), w.readBuf[:min(int64(len(w.readBuf)), left)])
		if n <= 0 || err != nil {
			break
		}
		left -= int64(n)
	}
	if !ev.IsEOF() {
		return
	}
	if err := w.poller.Submit(event.NewKEvent(uint(ev.Ident), event.EVFILT_READ, event.EV_DELETE, 0, 0)); err != nil {
		w.logger.Warn("removing read watch", zap.Error(err))
	}
	w.forget(ev.Udata)
}

func (w *Watcher) forget(tag uintptr) {
	if watch := w.registry.Remove(tag); watch != nil {
		w.remaining--
		w.logger.Info("watch finished", zap.Stringer("watch", watch))
	}
}

func (w *Watcher) closeFiles() {
	w.registry.Each(func(_ uintptr, watch *Watch) {
		if watch.Kind == KindFile && watch.Fd >= 0 {
			unix.Close(watch.Fd)
			watch.Fd = -1
		}
	})
}

// Close releases the descriptors opened for file watches and restores the
// default action of watched signals. The poller is left to its owner.
func (w *Watcher) Close() error {
	w.closeFiles()
	for _, sig := range w.signals {
		signal.Reset(sig)
	}
	w.signals = nil
	return nil
}

// ParseSignal accepts "HUP", "SIGHUP" or a signal number.
func ParseSignal(name string) (syscall.Signal, error) {
	if num, err := strconv.Atoi(name); err == nil {
		if num <= 0 || unix.SignalName(syscall.Signal(num)) == "" {
			return 0, fmt.Errorf("%w: signal %d", custom_err.ErrorInvalidWatch, num)
		}
		return syscall.Signal(num), nil
	}
	upper := strings.ToUpper(name)
	if !strings.HasPrefix(upper, "SIG") {
		upper = "SIG" + upper
	}
	if sig := unix.SignalNum(upper); sig != 0 {
		return sig, nil
	}
	return 0, fmt.Errorf("%w: signal %q", custom_err.ErrorInvalidWatch, name)
}
