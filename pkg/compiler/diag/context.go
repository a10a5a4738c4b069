package diag

import (
	"fmt"
	"strings"
)

// Render formats a diagnostic with surrounding source context: two lines
// before and after the reported line, a "> NN |" marker on the line itself,
// and a pointer underlining the reported span.
//
// Example output:
//
//	error[E300]: mismatched types: expected i32, found f32 at line 4, column 13
//	    2 | let mut x: i32 = 0;
//	    3 |
//	  > 4 | fn frob() { x = 1.5; }
//	    |             ^~~
//	    5 | fn nop() {}
func Render(source string, d Diagnostic) string {
	var buf strings.Builder
	buf.WriteString(d.String())
	buf.WriteString("\n")
	buf.WriteString(Context(source, d.Line, d.Column, d.Length))
	return buf.String()
}

// Context generates the source excerpt around line with a pointer at
// column. Length controls how far the pointer extends; values below 1 are
// treated as 1.
func Context(source string, line, column, length int) string {
	if source == "" || line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}

	start := line - 3
	if start < 0 {
		start = 0
	}
	end := line + 2
	if end > len(lines) {
		end = len(lines)
	}

	numWidth := len(fmt.Sprintf("%d", end))

	var buf strings.Builder
	for i := start; i < end; i++ {
		num := i + 1
		if num == line {
			buf.WriteString(fmt.Sprintf("> %*d | %s\n", numWidth, num, lines[i]))
			indent := 2 + numWidth + 3
			if column < 1 {
				column = 1
			}
			if length < 1 {
				length = 1
			}
			buf.WriteString(strings.Repeat(" ", indent+column-1))
			buf.WriteString("^")
			buf.WriteString(strings.Repeat("~", length-1))
			buf.WriteString("\n")
		} else {
			buf.WriteString(fmt.Sprintf("  %*d | %s\n", numWidth, num, lines[i]))
		}
	}

	return buf.String()
}
