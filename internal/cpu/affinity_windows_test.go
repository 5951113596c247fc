//go:build windows

package cpu

import (
	"math/bits"
	"testing"
)

func TestAffinityMask(t *testing.T) {
	tests := []struct {
		cpuID int
		want  uintptr
	}{
		{0, 1},
		{3, 1 << 3},
		{bits.UintSize - 1, uintptr(1) << (bits.UintSize - 1)},
		{bits.UintSize, 1},
		{2*bits.UintSize + 2, 1 << 2},
	}

	for _, tt := range tests {
		if got := affinityMask(tt.cpuID); got == 0 || got != tt.want {
			t.Errorf("affinityMask(%d) = %#x, want %#x", tt.cpuID, got, tt.want)
		}
	}
}
