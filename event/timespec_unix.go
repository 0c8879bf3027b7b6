//go:build unix

package event

import "golang.org/x/sys/unix"

// MillisToTimespec converts a millisecond timeout to unix.Timespec. Seconds
// that do not fit the platform's field wrap; guarding that is up to the
// caller.
func MillisToTimespec(ms uint) unix.Timespec {
	var ts unix.Timespec
	sec, nsec := MillisToNative(ms)
	setTimespec(&ts.Sec, &ts.Nsec, sec, nsec)
	return ts
}

// Timespec field widths differ between platforms and architectures.
func setTimespec[S, N ~int32 | ~int64](sec *S, nsec *N, s, ns int64) {
	*sec = S(s)
	*nsec = N(ns)
}
