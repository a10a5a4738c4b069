// Package compiler is the front door of the FerrisScript pipeline. It
// chains lexing, parsing and semantic analysis into a single call and
// collects every diagnostic the phases produce.
package compiler

import (
	"sort"
	"strings"

	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/ast"
	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/checker"
	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/diag"
	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/lexer"
	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/meta"
	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/parser"
	"github.com/dev-parkins/FerrisScript-sub008/pkg/fileutil"
)

// Output is a successfully compiled script. Program is immutable after
// compilation and may be shared across any number of instances.
type Output struct {
	Program *ast.Program
	Meta    *meta.Interface
	Source  string
}

// Compile runs the full pipeline on source. On success the returned
// diagnostics contain at most warnings; when they contain any error the
// Output is nil.
//
// Lexical and syntax diagnostics stop the pipeline before semantic
// analysis: a program that did not parse cleanly is never type checked.
func Compile(source string) (*Output, []diag.Diagnostic) {
	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()

	diags := append([]diag.Diagnostic{}, l.Diagnostics()...)
	diags = append(diags, p.Diagnostics()...)
	sortDiags(diags)
	if len(diags) > 0 {
		return nil, diags
	}

	result, checkDiags := checker.Check(program)
	sortDiags(checkDiags)
	if diag.HasErrors(checkDiags) {
		return nil, checkDiags
	}

	return &Output{Program: result.Program, Meta: result.Meta, Source: source}, checkDiags
}

// CompileFile reads and compiles a script file through fsys. Read errors
// are I/O failures, reported separately from diagnostics.
func CompileFile(fsys fileutil.FileSystem, name string) (*Output, []diag.Diagnostic, error) {
	source, err := fileutil.ReadSource(fsys, name)
	if err != nil {
		return nil, nil, err
	}
	out, diags := Compile(source)
	return out, diags, nil
}

// FormatDiagnostics renders diags with source context, one block per
// diagnostic, for terminal output.
func FormatDiagnostics(source string, diags []diag.Diagnostic) string {
	var b strings.Builder
	for i, d := range diags {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(diag.Render(source, d))
	}
	return b.String()
}

func sortDiags(diags []diag.Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Line != diags[j].Line {
			return diags[i].Line < diags[j].Line
		}
		return diags[i].Column < diags[j].Column
	})
}
