package event

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
	EVFILT_PROCDESC EventFilter = -8
	EVFILT_FS       EventFilter = -9
	EVFILT_LIO      EventFilter = -10
	EVFILT_USER     EventFilter = -11
	EVFILT_SENDFILE EventFilter = -12
	EVFILT_EMPTY    EventFilter = -13
	EVFILT_SYSCOUNT EventFilter = 13
)

var filterNames = map[EventFilter]string{
	EVFILT_READ:     "EVFILT_READ",
	EVFILT_WRITE:    "EVFILT_WRITE",
	EVFILT_AIO:      "EVFILT_AIO",
	EVFILT_VNODE:    "EVFILT_VNODE",
	EVFILT_PROC:     "EVFILT_PROC",
	EVFILT_SIGNAL:   "EVFILT_SIGNAL",
	EVFILT_TIMER:    "EVFILT_TIMER",
	EVFILT_PROCDESC: "EVFILT_PROCDESC",
	EVFILT_FS:       "EVFILT_FS",
	EVFILT_LIO:      "EVFILT_LIO",
	EVFILT_USER:     "EVFILT_USER",
	EVFILT_SENDFILE: "EVFILT_SENDFILE",
	EVFILT_EMPTY:    "EVFILT_EMPTY",
	EVFILT_SYSCOUNT: "EVFILT_SYSCOUNT",
}

type EventFlag uint16

const (
	EV_ADD          EventFlag = 0x0001
	EV_DELETE       EventFlag = 0x0002
	EV_ENABLE       EventFlag = 0x0004
	EV_DISABLE      EventFlag = 0x0008
	EV_ONESHOT      EventFlag = 0x0010
	EV_CLEAR        EventFlag = 0x0020
	EV_RECEIPT      EventFlag = 0x0040
	EV_DISPATCH     EventFlag = 0x0080
	EV_FORCEONESHOT EventFlag = 0x0100
	EV_KEEPUDATA    EventFlag = 0x0200
	EV_SYSFLAGS     EventFlag = 0xF000
	EV_DROP         EventFlag = 0x1000
	EV_FLAG1        EventFlag = 0x2000
	EV_FLAG2        EventFlag = 0x4000
	EV_ERROR        EventFlag = 0x4000
	EV_EOF          EventFlag = 0x8000
)

// EV_FLAG2 shares its bit with EV_ERROR and renders as the latter.
var eventFlagNames = []flagName[EventFlag]{
	{EV_ADD, "EV_ADD"},
	{EV_DELETE, "EV_DELETE"},
	{EV_ENABLE, "EV_ENABLE"},
	{EV_DISABLE, "EV_DISABLE"},
	{EV_ONESHOT, "EV_ONESHOT"},
	{EV_CLEAR, "EV_CLEAR"},
	{EV_RECEIPT, "EV_RECEIPT"},
	{EV_DISPATCH, "EV_DISPATCH"},
	{EV_FORCEONESHOT, "EV_FORCEONESHOT"},
	{EV_KEEPUDATA, "EV_KEEPUDATA"},
	{EV_DROP, "EV_DROP"},
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

	// EVFILT_READ, EVFILT_WRITE
	NOTE_LOWAT     FilterFlag = 0x00000001
	NOTE_FILE_POLL FilterFlag = 0x00000002

	// EVFILT_VNODE
	NOTE_DELETE      FilterFlag = 0x00000001
	NOTE_WRITE       FilterFlag = 0x00000002
	NOTE_EXTEND      FilterFlag = 0x00000004
	NOTE_ATTRIB      FilterFlag = 0x00000008
	NOTE_LINK        FilterFlag = 0x00000010
	NOTE_RENAME      FilterFlag = 0x00000020
	NOTE_REVOKE      FilterFlag = 0x00000040
	NOTE_OPEN        FilterFlag = 0x00000080
	NOTE_CLOSE       FilterFlag = 0x00000100
	NOTE_CLOSE_WRITE FilterFlag = 0x00000200
	NOTE_READ        FilterFlag = 0x00000400

	// EVFILT_PROC, EVFILT_PROCDESC
	NOTE_EXIT      FilterFlag = 0x80000000
	NOTE_FORK      FilterFlag = 0x40000000
	NOTE_EXEC      FilterFlag = 0x20000000
	NOTE_PCTRLMASK FilterFlag = 0xf0000000
	NOTE_PDATAMASK FilterFlag = 0x000fffff
	NOTE_TRACK     FilterFlag = 0x00000001
	NOTE_TRACKERR  FilterFlag = 0x00000002
	NOTE_CHILD     FilterFlag = 0x00000004

	// EVFILT_TIMER
	NOTE_SECONDS  FilterFlag = 0x00000001
	NOTE_MSECONDS FilterFlag = 0x00000002
	NOTE_USECONDS FilterFlag = 0x00000004
	NOTE_NSECONDS FilterFlag = 0x00000008
	NOTE_ABSTIME  FilterFlag = 0x00000010
)
