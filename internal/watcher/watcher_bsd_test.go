//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package watcher

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sys/unix"

	"github.com/Viet-ph/kevent/config"
	"github.com/Viet-ph/kevent/event"
	custom_err "github.com/Viet-ph/kevent/internal/error"
	"github.com/Viet-ph/kevent/internal/multiplexer"
)

type recorder struct {
	got []Notification
}

func (r *recorder) handle(n Notification) {
	r.got = append(r.got, n)
}

func newWatcher(t *testing.T, cfg *config.Config) (*Watcher, *recorder) {
	t.Helper()
	if cfg.MaxEvents == 0 {
		cfg.MaxEvents = 8
	}
	if cfg.TimeoutMs == 0 {
		cfg.TimeoutMs = 2000
	}

	logger := zaptest.NewLogger(t)
	kq, err := multiplexer.New(cfg.MaxEvents, logger)
	require.NoError(t, err)
	t.Cleanup(func() { kq.Close() })

	rec := &recorder{}
	w := New(cfg, kq, rec.handle, logger)
	t.Cleanup(func() { w.Close() })
	return w, rec
}

func runWithTimeout(t *testing.T, w *Watcher) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return w.Run(ctx)
}

func TestTimerWatchStopsAtCount(t *testing.T) {
	w, rec := newWatcher(t, &config.Config{Timers: []int{10}, Count: 2})
	require.NoError(t, w.Register())

	require.NoError(t, runWithTimeout(t, w))
	require.Len(t, rec.got, 2)
	for _, n := range rec.got {
		assert.Equal(t, KindTimer, n.Watch.Kind)
		assert.Equal(t, event.EVFILT_TIMER, n.Filter)
		assert.Equal(t, "10ms", n.Watch.Target)
		assert.GreaterOrEqual(t, n.Data, int64(1))
	}
	assert.Contains(t, rec.got[0].String(), "timer 10ms EVFILT_TIMER")
}

func TestFileWatchSeesWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watched")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o600))

	w, rec := newWatcher(t, &config.Config{Files: []string{path}, Count: 1})
	require.NoError(t, w.Register())

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	require.NoError(t, err)
	_, err = f.WriteString("more")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, runWithTimeout(t, w))
	require.Len(t, rec.got, 1)
	assert.Equal(t, KindFile, rec.got[0].Watch.Kind)
	assert.Equal(t, event.EVFILT_VNODE, rec.got[0].Filter)
	assert.True(t, rec.got[0].Fflags.Intersects(event.NOTE_WRITE|event.NOTE_EXTEND))
}

func TestFileDeletionEndsRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doomed")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	w, rec := newWatcher(t, &config.Config{Files: []string{path}})
	require.NoError(t, w.Register())
	require.NoError(t, os.Remove(path))

	require.NoError(t, runWithTimeout(t, w))
	require.NotEmpty(t, rec.got)
	assert.True(t, rec.got[len(rec.got)-1].Fflags.Contains(event.NOTE_DELETE))
	assert.Zero(t, w.remaining)
}

func TestMissingFileFailsRegister(t *testing.T) {
	w, _ := newWatcher(t, &config.Config{Files: []string{filepath.Join(t.TempDir(), "nope")}})
	err := w.Register()
	assert.True(t, errors.Is(err, unix.ENOENT), "got %v", err)
}

func TestProcessExitEndsRun(t *testing.T) {
	cmd := exec.Command("sleep", "30")
	require.NoError(t, cmd.Start())
	t.Cleanup(func() { cmd.Wait() })

	w, rec := newWatcher(t, &config.Config{Pids: []int{cmd.Process.Pid}})
	require.NoError(t, w.Register())
	require.NoError(t, cmd.Process.Kill())

	require.NoError(t, runWithTimeout(t, w))
	require.NotEmpty(t, rec.got)
	last := rec.got[len(rec.got)-1]
	assert.Equal(t, KindProcess, last.Watch.Kind)
	assert.True(t, last.Fflags.Contains(event.NOTE_EXIT))
}

func TestReadWatchDrainsUntilEOF(t *testing.T) {
	var fds [2]int
	require.NoError(t, unix.Pipe(fds[:]))
	t.Cleanup(func() { unix.Close(fds[0]) })

	w, rec := newWatcher(t, &config.Config{Stdin: true})
	w.input = fds[0]
	require.NoError(t, w.Register())

	_, err := unix.Write(fds[1], []byte("abc"))
	require.NoError(t, err)
	require.NoError(t, unix.Close(fds[1]))

	require.NoError(t, runWithTimeout(t, w))
	require.NotEmpty(t, rec.got)
	last := rec.got[len(rec.got)-1]
	assert.Equal(t, KindRead, last.Watch.Kind)
	assert.True(t, last.Flags.Contains(event.EV_EOF))
}

func TestSignalWatch(t *testing.T) {
	w, rec := newWatcher(t, &config.Config{Signals: []string{"USR1"}, Count: 1})
	require.NoError(t, w.Register())

	require.NoError(t, unix.Kill(os.Getpid(), syscall.SIGUSR1))

	require.NoError(t, runWithTimeout(t, w))
	require.Len(t, rec.got, 1)
	assert.Equal(t, KindSignal, rec.got[0].Watch.Kind)
	assert.Equal(t, event.EVFILT_SIGNAL, rec.got[0].Filter)
	assert.Equal(t, "SIGUSR1", rec.got[0].Watch.Target)
}

func TestStopSignalEndsRun(t *testing.T) {
	w, rec := newWatcher(t, &config.Config{Timers: []int{60_000}})
	require.NoError(t, w.Register())

	require.NoError(t, unix.Kill(os.Getpid(), syscall.SIGTERM))

	require.NoError(t, runWithTimeout(t, w))
	require.Len(t, rec.got, 1)
	assert.True(t, rec.got[0].Watch.Stop)
	assert.Equal(t, "SIGTERM", rec.got[0].Watch.Target)
}

func TestRunHonoursCancelledContext(t *testing.T) {
	w, rec := newWatcher(t, &config.Config{Timers: []int{5}})
	require.NoError(t, w.Register())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, w.Run(ctx), context.Canceled)
	assert.Empty(t, rec.got)
}

func TestParseSignal(t *testing.T) {
	tests := []struct {
		in   string
		want syscall.Signal
	}{
		{in: "HUP", want: syscall.SIGHUP},
		{in: "sighup", want: syscall.SIGHUP},
		{in: "SIGUSR2", want: syscall.SIGUSR2},
		{in: "15", want: syscall.SIGTERM},
	}
	for _, tt := range tests {
		got, err := ParseSignal(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "NOPE", "0", "-3", "1000"} {
		_, err := ParseSignal(bad)
		assert.ErrorIs(t, err, custom_err.ErrorInvalidWatch, bad)
	}
}

// scriptedPoller replays canned Poll results.
type scriptedPoller struct {
	submitted []event.KEvent
	results   [][]event.KEvent
	errs      []error
}

func (p *scriptedPoller) Submit(changes ...event.KEvent) error {
	p.submitted = append(p.submitted, changes...)
	return nil
}

func (p *scriptedPoller) Flush() error { return nil }

func (p *scriptedPoller) Poll(time.Duration) ([]event.KEvent, error) {
	if len(p.errs) > 0 {
		err := p.errs[0]
		p.errs = p.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	if len(p.results) == 0 {
		return nil, errors.New("script exhausted")
	}
	evs := p.results[0]
	p.results = p.results[1:]
	return evs, nil
}

func (p *scriptedPoller) Close() error { return nil }

func TestRunRetriesInterruptedWait(t *testing.T) {
	poller := &scriptedPoller{
		errs: []error{os.NewSyscallError("kevent", unix.EINTR)},
	}
	cfg := &config.Config{TimeoutMs: -1, MaxEvents: 1, Timers: []int{1}, Count: 1}
	rec := &recorder{}
	w := New(cfg, poller, rec.handle, zaptest.NewLogger(t))
	t.Cleanup(func() { w.Close() })
	require.NoError(t, w.Register())

	timer := poller.submitted[len(poller.submitted)-1]
	require.Equal(t, event.EVFILT_TIMER, timer.Filter)
	poller.results = [][]event.KEvent{{timer}}

	require.NoError(t, w.Run(context.Background()))
	require.Len(t, rec.got, 1)
	assert.Equal(t, KindTimer, rec.got[0].Watch.Kind)
}

func TestRunSurfacesOtherErrors(t *testing.T) {
	poller := &scriptedPoller{
		errs: []error{os.NewSyscallError("kevent", unix.EBADF)},
	}
	cfg := &config.Config{MaxEvents: 1, Timers: []int{1}}
	w := New(cfg, poller, nil, zaptest.NewLogger(t))
	t.Cleanup(func() { w.Close() })
	require.NoError(t, w.Register())

	assert.ErrorIs(t, w.Run(context.Background()), unix.EBADF)
}

func TestDispatchSkipsUnknownAndRejected(t *testing.T) {
	poller := &scriptedPoller{}
	cfg := &config.Config{MaxEvents: 1, Timers: []int{1}, Count: 1}
	rec := &recorder{}
	w := New(cfg, poller, rec.handle, zaptest.NewLogger(t))
	t.Cleanup(func() { w.Close() })
	require.NoError(t, w.Register())

	unknown := event.NewKEvent(1, event.EVFILT_TIMER, 0, 0, 9999)
	assert.False(t, w.dispatch(&unknown))

	timer := poller.submitted[len(poller.submitted)-1]
	rejected := timer
	rejected.Flags = event.EV_ERROR
	rejected.Data = int64(unix.EINVAL)
	assert.False(t, w.dispatch(&rejected))
	assert.Empty(t, rec.got)

	assert.True(t, w.dispatch(&timer))
	assert.Len(t, rec.got, 1)
}

func TestSignalsRegisterOncePerNumber(t *testing.T) {
	poller := &scriptedPoller{}
	cfg := &config.Config{MaxEvents: 1, Signals: []string{"INT", "HUP", "SIGHUP", "TERM"}}
	w := New(cfg, poller, nil, zaptest.NewLogger(t))
	t.Cleanup(func() { w.Close() })
	require.NoError(t, w.Register())

	perSignal := map[uintptr]int{}
	for _, ev := range poller.submitted {
		require.Equal(t, event.EVFILT_SIGNAL, ev.Filter)
		perSignal[ev.Ident]++
	}
	assert.Equal(t, map[uintptr]int{
		uintptr(syscall.SIGHUP):  1,
		uintptr(syscall.SIGINT):  1,
		uintptr(syscall.SIGTERM): 1,
	}, perSignal)
	assert.Equal(t, 1, w.remaining)

	w.Registry().Each(func(_ uintptr, watch *Watch) {
		stop := watch.Target == "SIGINT" || watch.Target == "SIGTERM"
		assert.Equal(t, stop, watch.Stop, watch.Target)
	})
}

func TestStopSignalAloneIsEnough(t *testing.T) {
	poller := &scriptedPoller{}
	cfg := &config.Config{MaxEvents: 1, Signals: []string{"TERM"}}
	w := New(cfg, poller, nil, zaptest.NewLogger(t))
	t.Cleanup(func() { w.Close() })

	require.NoError(t, w.Register())
	assert.Zero(t, w.remaining)
	assert.Len(t, poller.submitted, 2)
}

func TestTimerIdentIsItsTag(t *testing.T) {
	poller := &scriptedPoller{}
	cfg := &config.Config{MaxEvents: 1, Timers: []int{5, 7}}
	w := New(cfg, poller, nil, zaptest.NewLogger(t))
	t.Cleanup(func() { w.Close() })
	require.NoError(t, w.Register())

	var timers int
	for _, ev := range poller.submitted {
		if ev.Filter != event.EVFILT_TIMER {
			continue
		}
		timers++
		watch, err := w.Registry().Lookup(ev.Udata)
		require.NoError(t, err)
		assert.Equal(t, uint(ev.Udata), watch.Ident)
		assert.Equal(t, uintptr(watch.Ident), ev.Ident)
	}
	assert.Equal(t, 2, timers)
}
