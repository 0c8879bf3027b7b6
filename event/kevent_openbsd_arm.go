package event

// KEvent mirrors struct kevent from <sys/event.h> (openbsd). The arm ABI
// aligns Data to 8 bytes and pads the record after Udata.
type KEvent struct {
	Ident  uintptr
	Filter EventFilter
	Flags  EventFlag
	Fflags FilterFlag
	_      [4]byte
	Data   int64
	Udata  uintptr
	_      [4]byte
}
