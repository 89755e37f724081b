package traitarrow

import (
	"log"
	"sync/atomic"

	"github.com/arrowtrait/traitarrow/event"
)

var debugPrintProgram atomic.Bool

// SetDebugPrintProgram toggles printing every event the outer Builder
// receives to os.Stderr via the standard log package (spec.md §5's one
// sanctioned global configuration flag, debug_print_program). It carries
// no other state and affects every Builder in the process.
func SetDebugPrintProgram(v bool) { debugPrintProgram.Store(v) }

// DebugPrintProgram reports the current debug_print_program setting.
func DebugPrintProgram() bool { return debugPrintProgram.Load() }

// loggingSink wraps a Sink so every event it accepts is optionally logged
// before being forwarded, the mechanism debug_print_program hangs off of.
type loggingSink struct{ inner event.Sink }

func (s loggingSink) Accept(e event.Event) error {
	if debugPrintProgram.Load() {
		log.Printf("traitarrow: %s", e.Tag)
	}
	return s.inner.Accept(e)
}
