package vm

import "fmt"

// FaultKind classifies runtime faults.
type FaultKind string

const (
	// FaultInvalidReference is an access through a NodeRef whose host
	// object has been freed. Recoverable per invocation.
	FaultInvalidReference FaultKind = "INVALID_REFERENCE"

	// FaultDivisionByZero is an i32 division or remainder by zero.
	// Recoverable per invocation.
	FaultDivisionByZero FaultKind = "DIVISION_BY_ZERO"

	// FaultStackOverflow is a call chain deeper than MaxCallDepth,
	// almost always runaway recursion. Recoverable per invocation.
	FaultStackOverflow FaultKind = "STACK_OVERFLOW"

	// FaultUndefined is a lookup the type checker should have rejected.
	// Seeing one means a compiled program was tampered with or a checker
	// bug slipped through.
	FaultUndefined FaultKind = "UNDEFINED"

	// FaultInternal is an evaluator invariant violation.
	FaultInternal FaultKind = "INTERNAL"
)

// Fault is a runtime failure raised during one invocation. Faults unwind
// the whole invocation and surface to the host as an error; they never
// crash the process.
type Fault struct {
	Kind     FaultKind
	Message  string
	Function string // script function being invoked, when known
}

func (f *Fault) Error() string {
	if f.Function != "" {
		return fmt.Sprintf("[%s] %s in '%s'", f.Kind, f.Message, f.Function)
	}
	return fmt.Sprintf("[%s] %s", f.Kind, f.Message)
}

// Recoverable reports whether the host may keep invoking the instance
// after this fault.
func (f *Fault) Recoverable() bool {
	switch f.Kind {
	case FaultInvalidReference, FaultDivisionByZero, FaultStackOverflow:
		return true
	}
	return false
}

func newFault(kind FaultKind, format string, args ...any) *Fault {
	return &Fault{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
