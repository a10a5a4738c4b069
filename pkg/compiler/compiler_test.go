package compiler

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/nalgeon/be"

	"github.com/dev-parkins/FerrisScript-sub008/pkg/fileutil"
)

const movementScript = `
let mut dir: f32 = 1.0;

fn _process(delta: f32) {
    self.position.x += dir * 100.0 * delta;
    if self.position.x > 10.0 {
        dir = -1.0;
    }
}
`

func TestCompileClean(t *testing.T) {
	out, diags := Compile(movementScript)

	be.Equal(t, len(diags), 0)
	be.True(t, out != nil)
	be.Equal(t, len(out.Program.Functions), 1)
	be.Equal(t, out.Source, movementScript)
}

func TestCompileSyntaxErrorsStopBeforeChecking(t *testing.T) {
	// the undefined variable must not be reported: the program never
	// reaches semantic analysis
	out, diags := Compile(`
fn broken() {
    let x: i32 = ;
    undefined_everywhere = 1;
}
`)

	be.True(t, out == nil)
	be.True(t, len(diags) > 0)
	for _, d := range diags {
		be.True(t, d.Code < "E200")
	}
}

func TestCompileReportsMultipleSyntaxErrors(t *testing.T) {
	out, diags := Compile(`
fn one() {
    let a: i32 = 1
}

fn two() {
    let b: i32 = 2
}

fn three() {
    let c: i32 = 3
}
`)

	be.True(t, out == nil)
	be.True(t, len(diags) >= 3)
}

func TestCompileLexicalError(t *testing.T) {
	out, diags := Compile("let x: i32 = 1 # 2;")

	be.True(t, out == nil)
	be.True(t, len(diags) > 0)
	be.Equal(t, diags[0].Code, "E001")
}

func TestCompileWarningsDoNotBlock(t *testing.T) {
	out, diags := Compile(`
fn leftover() -> i32 {
    return 1;
    let unused: i32 = 2;
}
`)

	be.True(t, out != nil)
	be.Equal(t, len(diags), 1)
	be.Equal(t, diags[0].Code, "W001")
}

func TestCompileDiagnosticsSortedByPosition(t *testing.T) {
	_, diags := Compile(`
fn b() {
    if 1 { }
}

fn a() {
    missing();
}
`)

	for i := 1; i < len(diags); i++ {
		be.True(t, diags[i-1].Line <= diags[i].Line)
	}
}

func TestCompileFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "Movement.ferris")
	if err := os.WriteFile(path, []byte(movementScript), 0644); err != nil {
		t.Fatal(err)
	}

	fsys := fileutil.NewRealFS(tmpDir)

	out, diags, err := CompileFile(fsys, "movement.ferris")
	be.Err(t, err, nil)
	be.Equal(t, len(diags), 0)
	be.True(t, out != nil)

	_, _, err = CompileFile(fsys, "absent.ferris")
	be.True(t, err != nil)
}

func TestFormatDiagnostics(t *testing.T) {
	source := "let x: i32 = 1.5;"
	_, diags := Compile(source)
	be.True(t, len(diags) > 0)

	rendered := FormatDiagnostics(source, diags)
	be.True(t, strings.Contains(rendered, "E300"))
	be.True(t, strings.Contains(rendered, "let x: i32 = 1.5;"))
	be.True(t, strings.Contains(rendered, "^"))
}

func TestPropertyCompilationIsIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	sources := []string{
		movementScript,
		"let x: i32 = 1.5;",
		"fn broken( { }",
		"@export\nlet mut health: i32 = 100;",
		"fn f() { missing(); }",
	}

	properties := gopter.NewProperties(parameters)

	properties.Property("compiling the same source twice is identical", prop.ForAll(
		func(idx int) bool {
			source := sources[idx]
			out1, diags1 := Compile(source)
			out2, diags2 := Compile(source)

			if !reflect.DeepEqual(diags1, diags2) {
				return false
			}
			if (out1 == nil) != (out2 == nil) {
				return false
			}
			if out1 != nil && out1.Program.String() != out2.Program.String() {
				return false
			}
			return true
		},
		gen.IntRange(0, len(sources)-1),
	))

	properties.TestingRun(t)
}
