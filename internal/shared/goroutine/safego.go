// Package goroutine launches background work that must never take the
// process down.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"servicedesk/internal/shared/logger"
)

// SafeGo runs fn on a new goroutine and logs, instead of propagating,
// any panic it raises.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprint(r),
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
}
