// Package event is a typed view of the kqueue/kevent facility found on
// darwin, dragonfly, freebsd, netbsd and openbsd.
//
// KEvent has the exact layout of the native struct kevent, so change and
// event lists are passed to the kernel as they are. Filters, control flags
// and note flags are typed constants named after <sys/event.h>; the set of
// names and their widths follow the target OS and are fixed at build time.
//
// A typical loop opens one queue, registers interest, then waits:
//
//	kq, err := event.Kqueue()
//	if err != nil {
//		return err
//	}
//	defer unix.Close(kq)
//
//	changes := []event.KEvent{
//		event.NewKEvent(uint(fd), event.EVFILT_READ, event.EV_ADD|event.EV_CLEAR, 0, 1),
//	}
//	events := make([]event.KEvent, 64)
//	n, err := event.Kevent(kq, changes, events, 500)
//
// Udata is an opaque word round-tripped by the kernel; an index into a
// caller-held table is the intended use.
package event
