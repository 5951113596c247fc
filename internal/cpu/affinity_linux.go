//go:build linux

package cpu

import (
	"golang.org/x/sys/unix"
)

// pinToCore pins the current OS thread to the cpuID-th core of the thread's
// allowed set, so cgroup or taskset restrictions are respected.
// Must be called after runtime.LockOSThread().
func pinToCore(cpuID int) error {
	var allowed unix.CPUSet
	if err := unix.SchedGetaffinity(0, &allowed); err != nil {
		return err
	}

	n := allowed.Count()
	if n == 0 {
		return ErrPinningUnsupported
	}
	target := cpuID % n

	var mask unix.CPUSet
	mask.Zero()
	for core, seen := 0, 0; core < len(allowed)*64; core++ {
		if !allowed.IsSet(core) {
			continue
		}
		if seen == target {
			mask.Set(core)
			break
		}
		seen++
	}

	return unix.SchedSetaffinity(0, &mask) // 0 = current thread
}
