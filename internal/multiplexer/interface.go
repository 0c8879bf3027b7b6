//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package multiplexer

import (
	"time"

	"github.com/Viet-ph/kevent/event"
)

type Iomultiplexer interface {
	Submit(changes ...event.KEvent) error
	Flush() error
	Poll(timeout time.Duration) ([]event.KEvent, error)
	Close() error
}
