package watcher

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	custom_err "github.com/Viet-ph/kevent/internal/error"
)

type Kind int

const (
	KindFile Kind = iota + 1
	KindProcess
	KindSignal
	KindTimer
	KindRead
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindProcess:
		return "process"
	case KindSignal:
		return "signal"
	case KindTimer:
		return "timer"
	case KindRead:
		return "read"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Watch is one registration as the caller sees it. Its tag in the Registry
// travels through the kernel as the record's udata.
type Watch struct {
	ID     uuid.UUID
	Kind   Kind
	Target string
	Ident  uint
	// Fd is the descriptor opened for a file watch, -1 otherwise.
	Fd int
	// Stop ends the run when the watch fires.
	Stop bool
}

func (w *Watch) String() string {
	return fmt.Sprintf("%s:%s (%s)", w.Kind, w.Target, w.ID)
}

// Registry maps udata tags to watches. Tags are table positions starting at
// 1 so that a zero udata never matches.
type Registry struct {
	watches []*Watch
	active  int
	mut     sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Add stores w, giving it an ID if it has none, and returns its tag.
func (r *Registry) Add(w Watch) (uintptr, *Watch) {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}

	defer r.mut.Unlock()

	r.mut.Lock()
	r.watches = append(r.watches, &w)
	r.active++
	return uintptr(len(r.watches)), &w
}

func (r *Registry) Lookup(tag uintptr) (*Watch, error) {
	defer r.mut.RUnlock()

	r.mut.RLock()
	if tag == 0 || tag > uintptr(len(r.watches)) || r.watches[tag-1] == nil {
		return nil, fmt.Errorf("%w: %d", custom_err.ErrorUnknownTag, tag)
	}
	return r.watches[tag-1], nil
}

// Remove forgets the watch behind tag. Tags are never reused, so late events
// carrying it fail Lookup.
func (r *Registry) Remove(tag uintptr) *Watch {
	defer r.mut.Unlock()

	r.mut.Lock()
	if tag == 0 || tag > uintptr(len(r.watches)) {
		return nil
	}
	w := r.watches[tag-1]
	if w != nil {
		r.watches[tag-1] = nil
		r.active--
	}
	return w
}

// Len returns the number of watches not yet removed.
func (r *Registry) Len() int {
	defer r.mut.RUnlock()

	r.mut.RLock()
	return r.active
}

// Each calls fn for every live watch in tag order.
func (r *Registry) Each(fn func(tag uintptr, w *Watch)) {
	r.mut.RLock()
	live := make([]*Watch, len(r.watches))
	copy(live, r.watches)
	r.mut.RUnlock()

	for i, w := range live {
		if w != nil {
			fn(uintptr(i+1), w)
		}
	}
}
