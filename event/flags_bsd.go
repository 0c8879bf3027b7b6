//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package event

import (
	"fmt"
	"strings"
)

type flagName[F ~uint16 | ~uint32] struct {
	flag F
	name string
}

// Valid reports whether f is one of the filters declared for this OS. Values
// outside that set only arise from converting raw integers.
func (f EventFilter) Valid() bool {
	_, ok := filterNames[f]
	return ok
}

func (f EventFilter) String() string {
	if name, ok := filterNames[f]; ok {
		return name
	}
	return fmt.Sprintf("EventFilter(%d)", int64(f))
}

// Contains reports whether every bit of other is set in f.
func (f EventFlag) Contains(other EventFlag) bool {
	return f&other == other
}

// Intersects reports whether f and other share at least one bit.
func (f EventFlag) Intersects(other EventFlag) bool {
	return f&other != 0
}

func (f EventFlag) String() string {
	if f == 0 {
		return "0"
	}
	var (
		b    strings.Builder
		rest = f
	)
	for _, n := range eventFlagNames {
		if f&n.flag == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		b.WriteString(n.name)
		rest &^= n.flag
	}
	if rest != 0 {
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		fmt.Fprintf(&b, "%#x", uint32(rest))
	}
	return b.String()
}

// Contains reports whether every bit of other is set in f.
func (f FilterFlag) Contains(other FilterFlag) bool {
	return f&other == other
}

// Intersects reports whether f and other share at least one bit.
func (f FilterFlag) Intersects(other FilterFlag) bool {
	return f&other != 0
}
