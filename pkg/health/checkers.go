package health

import (
	"context"
	"runtime"

	"github.com/go-faster/errors"
)

// GoroutineCountCheck fails when the process exceeds threshold goroutines,
// which usually signals a leak.
func GoroutineCountCheck(threshold int) CheckFunc {
	return func(context.Context) error {
		if count := runtime.NumGoroutine(); count > threshold {
			return errors.Errorf("too many goroutines: %d > %d", count, threshold)
		}
		return nil
	}
}
