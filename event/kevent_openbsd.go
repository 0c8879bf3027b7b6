//go:build !arm

package event

// KEvent mirrors struct kevent from <sys/event.h> (openbsd).
type KEvent struct {
	Ident  uintptr
	Filter EventFilter
	Flags  EventFlag
	Fflags FilterFlag
	Data   int64
	Udata  uintptr
}
