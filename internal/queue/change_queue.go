package queue

import (
	"sync"

	"github.com/eapache/queue"
)

// Queue is a FIFO of pending items, typically kevent changes waiting for the
// next submit. It is safe for concurrent use.
type Queue[T any] struct {
	items *queue.Queue
	mut   sync.Mutex
}

func New[T any]() *Queue[T] {
	return &Queue[T]{
		items: queue.New(),
	}
}

func (q *Queue[T]) Add(items ...T) {
	defer q.mut.Unlock()

	q.mut.Lock()
	for _, item := range items {
		q.items.Add(item)
	}
}

func (q *Queue[T]) Len() int {
	defer q.mut.Unlock()

	q.mut.Lock()
	return q.items.Length()
}

// Drain appends every queued item to dst in insertion order, empties the
// queue and returns the extended slice.
func (q *Queue[T]) Drain(dst []T) []T {
	defer q.mut.Unlock()

	q.mut.Lock()
	for q.items.Length() > 0 {
		dst = append(dst, q.items.Remove().(T))
	}
	return dst
}
