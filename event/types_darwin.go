package event

// KEvent mirrors struct kevent from <sys/event.h> (darwin).
type KEvent struct {
	Ident  uintptr
	Filter EventFilter
	Flags  EventFlag
	Fflags FilterFlag
	Data   int64
	Udata  uintptr
}

type EventFilter int16

// From <sys/event.h>.
const (
	EVFILT_READ     EventFilter = -1
	EVFILT_WRITE    EventFilter = -2
	EVFILT_AIO      EventFilter = -3
	EVFILT_VNODE    EventFilter = -4
	EVFILT_PROC     EventFilter = -5
	EVFILT_SIGNAL   EventFilter = -6
	EVFILT_TIMER    EventFilter = -7
	EVFILT_MACHPORT EventFilter = -8
	EVFILT_FS       EventFilter = -9
	EVFILT_USER     EventFilter = -10
	EVFILT_VM       EventFilter = -12
	EVFILT_EXCEPT   EventFilter = -15
	EVFILT_SYSCOUNT EventFilter = 17
)

var filterNames = map[EventFilter]string{
	EVFILT_READ:     "EVFILT_READ",
	EVFILT_WRITE:    "EVFILT_WRITE",
	EVFILT_AIO:      "EVFILT_AIO",
	EVFILT_VNODE:    "EVFILT_VNODE",
	EVFILT_PROC:     "EVFILT_PROC",
	EVFILT_SIGNAL:   "EVFILT_SIGNAL",
	EVFILT_TIMER:    "EVFILT_TIMER",
	EVFILT_MACHPORT: "EVFILT_MACHPORT",
	EVFILT_FS:       "EVFILT_FS",
	EVFILT_USER:     "EVFILT_USER",
	EVFILT_VM:       "EVFILT_VM",
	EVFILT_EXCEPT:   "EVFILT_EXCEPT",
	EVFILT_SYSCOUNT: "EVFILT_SYSCOUNT",
}

type EventFlag uint16

const (
	EV_ADD            EventFlag = 0x0001
	EV_DELETE         EventFlag = 0x0002
	EV_ENABLE         EventFlag = 0x0004
	EV_DISABLE        EventFlag = 0x0008
	EV_ONESHOT        EventFlag = 0x0010
	EV_CLEAR          EventFlag = 0x0020
	EV_RECEIPT        EventFlag = 0x0040
	EV_DISPATCH       EventFlag = 0x0080
	EV_UDATA_SPECIFIC EventFlag = 0x0100
	EV_DISPATCH2      EventFlag = EV_DISPATCH | EV_UDATA_SPECIFIC
	EV_VANISHED       EventFlag = 0x0200
	EV_SYSFLAGS       EventFlag = 0xF000
	EV_FLAG0          EventFlag = 0x1000
	EV_FLAG1          EventFlag = 0x2000
	EV_POLL           EventFlag = EV_FLAG0
	EV_OOBAND         EventFlag = EV_FLAG1
	EV_ERROR          EventFlag = 0x4000
	EV_EOF            EventFlag = 0x8000
)

// Single-bit flags in ascending order. Aliases (EV_POLL, EV_OOBAND) and
// masks are left out so every bit renders under one name.
var eventFlagNames = []flagName[EventFlag]{
	{EV_ADD, "EV_ADD"},
	{EV_DELETE, "EV_DELETE"},
	{EV_ENABLE, "EV_ENABLE"},
	{EV_DISABLE, "EV_DISABLE"},
	{EV_ONESHOT, "EV_ONESHOT"},
	{EV_CLEAR, "EV_CLEAR"},
	{EV_RECEIPT, "EV_RECEIPT"},
	{EV_DISPATCH, "EV_DISPATCH"},
	{EV_UDATA_SPECIFIC, "EV_UDATA_SPECIFIC"},
	{EV_VANISHED, "EV_VANISHED"},
	{EV_FLAG0, "EV_FLAG0"},
	{EV_FLAG1, "EV_FLAG1"},
	{EV_ERROR, "EV_ERROR"},
	{EV_EOF, "EV_EOF"},
}

type FilterFlag uint32

const (
	// EVFILT_USER
	NOTE_FFNOP      FilterFlag = 0x00000000
	NOTE_FFAND      FilterFlag = 0x40000000
	NOTE_FFOR       FilterFlag = 0x80000000
	NOTE_FFCOPY     FilterFlag = 0xc0000000
	NOTE_FFCTRLMASK FilterFlag = 0xc0000000
	NOTE_FFLAGSMASK FilterFlag = 0x00ffffff
	NOTE_TRIGGER    FilterFlag = 0x01000000

	// EVFILT_READ
	NOTE_LOWAT FilterFlag = 0x00000001

	// EVFILT_VNODE
	NOTE_DELETE FilterFlag = 0x00000001
	NOTE_WRITE  FilterFlag = 0x00000002
	NOTE_EXTEND FilterFlag = 0x00000004
	NOTE_ATTRIB FilterFlag = 0x00000008
	NOTE_LINK   FilterFlag = 0x00000010
	NOTE_RENAME FilterFlag = 0x00000020
	NOTE_REVOKE FilterFlag = 0x00000040
	NOTE_NONE   FilterFlag = 0x00000080

	// EVFILT_PROC
	NOTE_EXIT            FilterFlag = 0x80000000
	NOTE_FORK            FilterFlag = 0x40000000
	NOTE_EXEC            FilterFlag = 0x20000000
	NOTE_REAP            FilterFlag = 0x10000000
	NOTE_SIGNAL          FilterFlag = 0x08000000
	NOTE_EXITSTATUS      FilterFlag = 0x04000000
	NOTE_RESOURCEEND     FilterFlag = 0x02000000
	NOTE_APPACTIVE       FilterFlag = 0x00800000
	NOTE_APPBACKGROUND   FilterFlag = 0x00400000
	NOTE_APPNONUI        FilterFlag = 0x00200000
	NOTE_APPINACTIVE     FilterFlag = 0x00100000
	NOTE_APPALLSTATES    FilterFlag = 0x00f00000
	NOTE_EXIT_REPARENTED FilterFlag = 0x00080000
	NOTE_PDATAMASK       FilterFlag = 0x000fffff
	NOTE_PCTRLMASK       FilterFlag = ^NOTE_PDATAMASK
	NOTE_TRACK           FilterFlag = 0x00000001
	NOTE_TRACKERR        FilterFlag = 0x00000002
	NOTE_CHILD           FilterFlag = 0x00000004

	// EVFILT_TIMER
	NOTE_SECONDS  FilterFlag = 0x00000001
	NOTE_USECONDS FilterFlag = 0x00000002
	NOTE_NSECONDS FilterFlag = 0x00000004
	NOTE_ABSOLUTE FilterFlag = 0x00000008

	// EVFILT_VM
	NOTE_VM_PRESSURE                  FilterFlag = 0x80000000
	NOTE_VM_PRESSURE_TERMINATE        FilterFlag = 0x40000000
	NOTE_VM_PRESSURE_SUDDEN_TERMINATE FilterFlag = 0x20000000
	NOTE_VM_ERROR                     FilterFlag = 0x10000000
)
