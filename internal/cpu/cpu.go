// Package cpu places long-running goroutines on dedicated OS threads.
package cpu

import (
	"errors"
	"runtime"
)

// ErrPinningUnsupported is returned by Dedicate when the platform cannot pin
// a thread to a core. The thread is still dedicated.
var ErrPinningUnsupported = errors.New("cpu: core pinning not supported on this platform")

// NumCPU returns the number of logical CPUs available.
func NumCPU() int {
	return runtime.NumCPU()
}

// Dedicate locks the calling goroutine to its current OS thread and, when pin
// is set, binds that thread to core (taken modulo NumCPU).
//
// The caller must not unlock the thread. When the goroutine returns while
// still locked the runtime terminates the thread, so a pinned affinity mask
// never leaks back into the shared scheduler pool.
func Dedicate(core int, pin bool) error {
	runtime.LockOSThread()
	if !pin {
		return nil
	}

	n := NumCPU()
	core %= n
	if core < 0 {
		core += n
	}
	return pinToCore(core)
}
