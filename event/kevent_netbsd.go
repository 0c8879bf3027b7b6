//go:build !arm

package event

// KEvent mirrors struct kevent from <sys/event.h> (netbsd). Filter and Flags
// are 32 bits wide here, unlike the other BSDs.
type KEvent struct {
	Ident  uintptr
	Filter EventFilter
	Flags  EventFlag
	Fflags FilterFlag
	Data   int64
	Udata  uintptr
}
