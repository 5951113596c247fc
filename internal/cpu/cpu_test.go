package cpu

import (
	"errors"
	"sync"
	"testing"
)

func TestDedicate(t *testing.T) {
	t.Run("without pinning", func(t *testing.T) {
		var wg sync.WaitGroup
		var err error
		wg.Add(1)
		go func() {
			defer wg.Done()
			err = Dedicate(0, false)
		}()
		wg.Wait()

		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("with pinning wraps core index", func(t *testing.T) {
		var wg sync.WaitGroup
		var err error
		wg.Add(1)
		go func() {
			defer wg.Done()
			err = Dedicate(NumCPU()*3+1, true)
		}()
		wg.Wait()

		if err != nil && !errors.Is(err, ErrPinningUnsupported) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
