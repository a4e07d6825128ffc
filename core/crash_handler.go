// Package core holds process-wide crash recovery shared by every goroutine the client starts
package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
)

var (
	crashMu   sync.Mutex
	finalizer func()
	crashOut  io.Writer = os.Stderr
	exit                = os.Exit
)

// SetFinalizer registers the terminal restore run before a crash report is printed
func SetFinalizer(fn func()) {
	crashMu.Lock()
	finalizer = fn
	crashMu.Unlock()
}

// HandleCrash restores the terminal, prints the panic with its stack and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	fn := finalizer
	finalizer = nil
	out := crashOut
	exitFn := exit
	crashMu.Unlock()

	if fn != nil {
		fn()
	}

	fmt.Fprintf(out, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(out, "Stack Trace:\r\n%s\r\n", debug.Stack())
	if f, ok := out.(*os.File); ok {
		_ = f.Sync()
	}

	exitFn(1)
}

// Go runs fn in a new goroutine with panic recovery
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
