// Package diag defines the structured diagnostics emitted by the
// FerrisScript compiler pipeline. Every diagnostic carries a stable code
// drawn from the registry in registry.go, a severity, a message, and a
// 1-based source span, so tooling can render it without cross-referencing
// other diagnostics.
package diag

import "fmt"

// Severity classifies a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is a single reported problem.
type Diagnostic struct {
	Code     string
	Severity Severity
	Message  string
	Line     int
	Column   int
	Length   int
	Hint     string // optional corrective hint, e.g. "did you mean 'velocity'?"
}

// New builds a diagnostic for a registered code, formatting the code's
// message template with args. Severity comes from the registry.
func New(code string, line, column, length int, args ...any) Diagnostic {
	info, ok := registry[code]
	msg := code
	sev := SeverityError
	if ok {
		msg = fmt.Sprintf(info.Template, args...)
		sev = info.Severity
	}
	return Diagnostic{
		Code:     code,
		Severity: sev,
		Message:  msg,
		Line:     line,
		Column:   column,
		Length:   length,
	}
}

// WithHint returns a copy of d with the hint text attached.
func (d Diagnostic) WithHint(hint string) Diagnostic {
	d.Hint = hint
	return d
}

// String renders the diagnostic on one line without source context.
func (d Diagnostic) String() string {
	s := fmt.Sprintf("%s[%s]: %s at line %d, column %d", d.Severity, d.Code, d.Message, d.Line, d.Column)
	if d.Hint != "" {
		s += " (" + d.Hint + ")"
	}
	return s
}

// HasErrors reports whether any diagnostic in diags has error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
