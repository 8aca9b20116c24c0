package core

import "fmt"

// DebugWriter is a function type for writing driver diagnostics.
// Platforms route it to UART, USB CDC, or a host-side log.
type DebugWriter func(string)

// debugPrintln is the global debug print function. No-op by default.
var debugPrintln DebugWriter = func(string) {}

// SetDebugWriter sets the platform-specific debug output function.
func SetDebugWriter(w DebugWriter) {
	if w == nil {
		w = func(string) {}
	}
	debugPrintln = w
}

func debugf(format string, args ...any) {
	debugPrintln(fmt.Sprintf(format, args...))
}
