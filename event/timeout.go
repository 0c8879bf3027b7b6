package event

// MillisToNative splits a millisecond timeout into the seconds and
// nanoseconds of a native timespec. Sub-millisecond precision needs a
// timespec built directly.
func MillisToNative(ms uint) (sec, nsec int64) {
	return int64(ms / 1000), int64(ms%1000) * 1_000_000
}
