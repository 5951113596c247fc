package async_test

import (
	"errors"
	"fmt"
	"time"

	"github.com/utkarsh5026/asyncutil/async"
)

func ExampleCollectAll() {
	slow := async.Start(func() (string, error) {
		time.Sleep(20 * time.Millisecond)
		return "slow", nil
	})
	fast := async.Start(func() (string, error) {
		return "fast", nil
	})

	values, err := async.CollectAll([]*async.Future[string]{slow, fast})
	fmt.Println(values, err)
	// Output: [slow fast] <nil>
}

func ExampleCollectAll_failure() {
	boom := errors.New("boom")
	ops := []*async.Future[int]{
		async.Start(func() (int, error) { return 1, nil }),
		async.Start(func() (int, error) { return 0, boom }),
	}

	_, err := async.CollectAll(ops)
	fmt.Println(err, errors.Is(err, boom))
	// Output: boom true
}

func ExampleLauncher_Launch() {
	launcher := async.NewLauncher(async.WithPoolSize(4))

	done := make(chan struct{})
	launcher.Launch(func() {
		defer close(done)
		fmt.Println("working in the background")
	})

	<-done
	// Output: working in the background
}
