package diag

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func TestNewFormatsRegisteredTemplate(t *testing.T) {
	d := New("E200", 3, 5, 8, "velocity")

	be.Equal(t, d.Code, "E200")
	be.Equal(t, d.Severity, SeverityError)
	be.Equal(t, d.Message, "undefined variable 'velocity'")
	be.Equal(t, d.Line, 3)
	be.Equal(t, d.Column, 5)
	be.Equal(t, d.Length, 8)
}

func TestNewWarningSeverityFromRegistry(t *testing.T) {
	d := New("W001", 1, 1, 1)
	be.Equal(t, d.Severity, SeverityWarning)
}

func TestWithHint(t *testing.T) {
	d := New("E200", 1, 1, 7, "velocty").WithHint("did you mean 'velocity'?")

	be.True(t, strings.Contains(d.String(), "did you mean 'velocity'?"))
	// the original is unchanged
	be.Equal(t, New("E200", 1, 1, 7, "velocty").Hint, "")
}

func TestHasErrors(t *testing.T) {
	be.True(t, !HasErrors(nil))
	be.True(t, !HasErrors([]Diagnostic{New("W001", 1, 1, 1)}))
	be.True(t, HasErrors([]Diagnostic{
		New("W001", 1, 1, 1),
		New("E100", 1, 1, 1, "fn"),
	}))
}

func TestContextPointerPlacement(t *testing.T) {
	source := "let a: i32 = 1;\nlet b: i32 = oops;\nlet c: i32 = 3;"
	out := Context(source, 2, 14, 4)

	be.True(t, strings.Contains(out, "> 2 | let b: i32 = oops;"))
	be.True(t, strings.Contains(out, "^~~~"))
	be.True(t, strings.Contains(out, "  1 | let a: i32 = 1;"))
	be.True(t, strings.Contains(out, "  3 | let c: i32 = 3;"))
}

func TestContextOutOfRange(t *testing.T) {
	be.Equal(t, Context("", 1, 1, 1), "")
	be.Equal(t, Context("one line", 5, 1, 1), "")
}

func TestRenderCombinesSummaryAndContext(t *testing.T) {
	source := "let x: f32 = oops;"
	d := New("E200", 1, 14, 4, "oops")
	out := Render(source, d)

	be.True(t, strings.Contains(out, "error[E200]"))
	be.True(t, strings.Contains(out, "> 1 | let x: f32 = oops;"))
}
