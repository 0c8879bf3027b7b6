package event

// KEvent mirrors struct kevent from <sys/event.h> (freebsd 12 and later).
// The arm ABI aligns 64-bit fields to 8 bytes, Go only to 4, so the native
// padding is spelled out.
type KEvent struct {
	Ident  uintptr
	Filter EventFilter
	Flags  EventFlag
	Fflags FilterFlag
	_      [4]byte
	Data   int64
	Udata  uintptr
	_      [4]byte
	ext    [4]uint64
}
