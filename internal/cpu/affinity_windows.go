//go:build windows

package cpu

import (
	"math/bits"
	"syscall"
)

var (
	kernel32              = syscall.NewLazyDLL("kernel32.dll")
	setThreadAffinityMask = kernel32.NewProc("SetThreadAffinityMask")
	getCurrentThread      = kernel32.NewProc("GetCurrentThread")
)

// pinToCore pins the current OS thread to cpuID.
// Must be called after runtime.LockOSThread().
func pinToCore(cpuID int) error {
	handle, _, _ := getCurrentThread.Call()

	prevMask, _, err := setThreadAffinityMask.Call(handle, affinityMask(cpuID))
	if prevMask == 0 {
		return err
	}
	return nil
}

// affinityMask sets bit cpuID of a thread affinity mask. The mask covers one
// processor group (64 CPUs, 32 on 32-bit Windows), so higher ids wrap into it.
func affinityMask(cpuID int) uintptr {
	return uintptr(1) << uint(cpuID%bits.UintSize)
}
