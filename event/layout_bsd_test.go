//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package event

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

func TestKEventLayoutMatchesNative(t *testing.T) {
	var (
		ev  KEvent
		nat unix.Kevent_t
	)

	assert.Equal(t, unsafe.Sizeof(nat), unsafe.Sizeof(ev))
	assert.Equal(t, unsafe.Alignof(nat), unsafe.Alignof(ev))

	assert.Equal(t, unsafe.Offsetof(nat.Ident), unsafe.Offsetof(ev.Ident))
	assert.Equal(t, unsafe.Sizeof(nat.Ident), unsafe.Sizeof(ev.Ident))

	assert.Equal(t, unsafe.Offsetof(nat.Filter), unsafe.Offsetof(ev.Filter))
	assert.Equal(t, unsafe.Sizeof(nat.Filter), unsafe.Sizeof(ev.Filter))

	assert.Equal(t, unsafe.Offsetof(nat.Flags), unsafe.Offsetof(ev.Flags))
	assert.Equal(t, unsafe.Sizeof(nat.Flags), unsafe.Sizeof(ev.Flags))

	assert.Equal(t, unsafe.Offsetof(nat.Fflags), unsafe.Offsetof(ev.Fflags))
	assert.Equal(t, unsafe.Sizeof(nat.Fflags), unsafe.Sizeof(ev.Fflags))

	assert.Equal(t, unsafe.Offsetof(nat.Data), unsafe.Offsetof(ev.Data))
	assert.Equal(t, unsafe.Sizeof(nat.Data), unsafe.Sizeof(ev.Data))

	assert.Equal(t, unsafe.Offsetof(nat.Udata), unsafe.Offsetof(ev.Udata))
	assert.Equal(t, unsafe.Sizeof(nat.Udata), unsafe.Sizeof(ev.Udata))
}

func TestNativeSharesBackingArray(t *testing.T) {
	evs := make([]KEvent, 3)
	view := native(evs)

	assert.Len(t, view, 3)
	assert.Equal(t, unsafe.Pointer(&evs[0]), unsafe.Pointer(&view[0]))
	assert.Nil(t, native(nil))
	assert.Nil(t, native(evs[:0]))
}
