package event

// KEvent mirrors struct kevent from <sys/event.h> (netbsd). The arm ABI pads
// the record to a multiple of 8 after Udata.
type KEvent struct {
	Ident  uintptr
	Filter EventFilter
	Flags  EventFlag
	Fflags FilterFlag
	Data   int64
	Udata  uintptr
	_      [4]byte
}
