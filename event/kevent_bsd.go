//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package event

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// KEvent is handed to the kernel in place of unix.Kevent_t, so the two must
// agree in size. Either subtraction underflows and fails to compile if not.
var (
	_ [unsafe.Sizeof(KEvent{}) - unsafe.Sizeof(unix.Kevent_t{})]struct{}
	_ [unsafe.Sizeof(unix.Kevent_t{}) - unsafe.Sizeof(KEvent{})]struct{}
)

// Set fills every field of ev for a registration. Data and any OS specific
// extension words are zeroed, so a record taken from kernel output can be
// reused. The filter, flags and fflags are not checked against each other:
// the kernel decides what it accepts when the record is submitted.
func Set(ev *KEvent, ident uint, filter EventFilter, flags EventFlag, fflags FilterFlag, udata uintptr) {
	*ev = KEvent{
		Ident:  uintptr(ident),
		Filter: filter,
		Flags:  flags,
		Fflags: fflags,
		Udata:  udata,
	}
}

// NewKEvent is the value form of Set.
func NewKEvent(ident uint, filter EventFilter, flags EventFlag, fflags FilterFlag, udata uintptr) KEvent {
	var ev KEvent
	Set(&ev, ident, filter, flags, fflags, udata)
	return ev
}

// IsEOF reports whether the kernel marked the event with EV_EOF.
func (ev *KEvent) IsEOF() bool {
	return ev.Flags&EV_EOF != 0
}

// Err returns the per-record error the kernel reports through EV_ERROR, with
// the errno stored in Data. Records submitted with EV_RECEIPT come back this
// way with a zero Data on success, for which Err returns nil.
func (ev *KEvent) Err() error {
	if ev.Flags&EV_ERROR == 0 || ev.Data == 0 {
		return nil
	}
	return os.NewSyscallError("kevent", unix.Errno(ev.Data))
}

// Kqueue opens a new kernel event queue. The descriptor is close-on-exec and
// is released with unix.Close.
func Kqueue() (int, error) {
	kq, err := unix.Kqueue()
	if err != nil {
		return -1, os.NewSyscallError("kqueue", err)
	}
	unix.CloseOnExec(kq)
	return kq, nil
}

// Kevent applies changes and waits up to timeoutMs milliseconds for events.
// See KeventTs.
func Kevent(kq int, changes, events []KEvent, timeoutMs uint) (int, error) {
	ts := MillisToTimespec(timeoutMs)
	return KeventTs(kq, changes, events, &ts)
}

// KeventTs applies every record in changes and then collects up to
// len(events) ready events into events, in a single kevent call. A nil
// timeout blocks until an event arrives; a zero timeout polls. It returns the
// number of records written to events.
//
// Failures, including EINTR, are returned as *os.SyscallError wrapping the
// unix.Errno and are never retried here.
func KeventTs(kq int, changes, events []KEvent, timeout *unix.Timespec) (int, error) {
	n, err := unix.Kevent(kq, native(changes), native(events), timeout)
	if err != nil {
		return 0, os.NewSyscallError("kevent", err)
	}
	return n, nil
}

// native reinterprets evs as the x/sys record type without copying. The
// backing array stays typed as KEvent, so the integer Udata is never seen by
// the garbage collector as a pointer.
func native(evs []KEvent) []unix.Kevent_t {
	if len(evs) == 0 {
		return nil
	}
	return unsafe.Slice((*unix.Kevent_t)(unsafe.Pointer(unsafe.SliceData(evs))), len(evs))
}
