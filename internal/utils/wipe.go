package utils

import "runtime"

// Wipe zeroes the provided buffer. Best-effort: it aims to reduce the
// chance of the compiler eliding the write.
//
//go:noinline
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(&b)
}
