// Package crash restores the terminal before reporting a panic
package crash

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
)

var (
	mu    sync.Mutex
	reset func()
)

// SetReset registers the terminal restore hook run before a crash report
func SetReset(fn func()) {
	mu.Lock()
	defer mu.Unlock()
	reset = fn
}

// Handle is the unified panic handler: it restores the terminal, prints the stack trace and exits
func Handle(r any) {
	if r == nil {
		return
	}

	mu.Lock()
	fn := reset
	reset = nil
	mu.Unlock()
	if fn != nil {
		fn()
	}

	os.Stdout.Sync()
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mSIMON CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs fn in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword so the terminal is restored on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				Handle(r)
			}
		}()
		fn()
	}()
}
