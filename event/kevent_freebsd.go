//go:build !arm

package event

// KEvent mirrors struct kevent from <sys/event.h> (freebsd 12 and later).
type KEvent struct {
	Ident  uintptr
	Filter EventFilter
	Flags  EventFlag
	Fflags FilterFlag
	Data   int64
	Udata  uintptr
	ext    [4]uint64
}
