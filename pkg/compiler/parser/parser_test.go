package parser

import (
	"testing"

	"github.com/nalgeon/be"

	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/ast"
	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/diag"
	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/lexer"
)

func parse(t *testing.T, source string) (*ast.Program, []diag.Diagnostic) {
	t.Helper()
	p := New(lexer.New(source))
	program := p.ParseProgram()
	return program, p.Diagnostics()
}

func parseOK(t *testing.T, source string) *ast.Program {
	t.Helper()
	program, diags := parse(t, source)
	for _, d := range diags {
		t.Errorf("unexpected diagnostic: %s", d)
	}
	return program
}

func TestGlobalLet(t *testing.T) {
	program := parseOK(t, "let mut speed: f32 = 100.0;")

	be.Equal(t, len(program.Globals), 1)
	g := program.Globals[0]
	be.Equal(t, g.Name.Value, "speed")
	be.True(t, g.Mutable)
	be.Equal(t, g.TypeName, "f32")

	lit, ok := g.Value.(*ast.FloatLiteral)
	be.True(t, ok)
	be.Equal(t, lit.Value, float32(100.0))
}

func TestLetWithoutTypeAnnotation(t *testing.T) {
	program := parseOK(t, "let count = 0;")

	g := program.Globals[0]
	be.Equal(t, g.TypeName, "")
	be.True(t, !g.Mutable)

	lit, ok := g.Value.(*ast.IntegerLiteral)
	be.True(t, ok)
	be.Equal(t, lit.Value, int32(0))
}

func TestFunctionDecl(t *testing.T) {
	program := parseOK(t, `
fn damage(amount: i32, crit: bool) -> i32 {
    return amount * 2;
}
`)

	be.Equal(t, len(program.Functions), 1)
	fn := program.Functions[0]
	be.Equal(t, fn.Name.Value, "damage")
	be.Equal(t, len(fn.Params), 2)
	be.Equal(t, fn.Params[0].Name, "amount")
	be.Equal(t, fn.Params[0].TypeName, "i32")
	be.Equal(t, fn.Params[1].Name, "crit")
	be.Equal(t, fn.Params[1].TypeName, "bool")
	be.Equal(t, fn.ReturnTypeName, "i32")
	be.Equal(t, len(fn.Body.Statements), 1)
}

func TestSignalDecl(t *testing.T) {
	program := parseOK(t, "signal health_changed(old: i32, new_value: i32);")

	be.Equal(t, len(program.Signals), 1)
	sig := program.Signals[0]
	be.Equal(t, sig.Name.Value, "health_changed")
	be.Equal(t, len(sig.Params), 2)
}

func TestExportAnnotations(t *testing.T) {
	program := parseOK(t, `
@export
let mut health: i32 = 100;

@export_range(0.0, 1.0, 0.1)
let mut volume: f32 = 0.5;

@export_enum("Idle", "Walk", "Run")
let mut state: String = "Idle";

@export_file("*.png")
let mut texture: String = "";
`)

	be.Equal(t, len(program.Globals), 4)
	be.Equal(t, program.Globals[0].Export.Name, "export")
	be.Equal(t, len(program.Globals[0].Export.Args), 0)
	be.Equal(t, program.Globals[1].Export.Name, "export_range")
	be.Equal(t, len(program.Globals[1].Export.Args), 3)
	be.Equal(t, program.Globals[2].Export.Name, "export_enum")
	be.Equal(t, len(program.Globals[2].Export.Args), 3)
	be.Equal(t, program.Globals[3].Export.Name, "export_file")
	be.Equal(t, len(program.Globals[3].Export.Args), 1)
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"-a * b", "((-a) * b)"},
		{"!a == b", "((!a) == b)"},
		{"a + b - c", "((a + b) - c)"},
		{"a < b == c > d", "((a < b) == (c > d))"},
		{"a && b || c && d", "((a && b) || (c && d))"},
		{"a == b && c != d", "((a == b) && (c != d))"},
		{"a.b.c * 2", "(((a.b).c) * 2)"},
		{"-a.b", "(-(a.b))"},
		{"f(a, b + c)", "f(a, (b + c))"},
		{"1 <= 2 >= 3", "((1 <= 2) >= 3)"},
	}

	for _, tt := range tests {
		program := parseOK(t, "fn t() { v = "+tt.input+"; }")
		stmt := program.Functions[0].Body.Statements[0].(*ast.AssignStatement)
		be.Equal(t, stmt.Value.String(), tt.expected)
	}
}

func TestAssignmentTargets(t *testing.T) {
	program := parseOK(t, `
fn t() {
    x = 1;
    x += 2;
    x -= 3;
    x *= 4;
    x /= 5;
    self.position.x += 10.0;
    v.x = 0.0;
}
`)

	stmts := program.Functions[0].Body.Statements
	be.Equal(t, len(stmts), 7)

	ops := []string{"=", "+=", "-=", "*=", "/="}
	for i, op := range ops {
		assign := stmts[i].(*ast.AssignStatement)
		be.Equal(t, assign.Op, op)
		be.Equal(t, assign.Target.Root, "x")
	}

	selfAssign := stmts[5].(*ast.AssignStatement)
	be.True(t, selfAssign.Target.Self)
	be.Equal(t, len(selfAssign.Target.Fields), 2)
	be.Equal(t, selfAssign.Target.Fields[0], "position")
	be.Equal(t, selfAssign.Target.Fields[1], "x")

	fieldAssign := stmts[6].(*ast.AssignStatement)
	be.Equal(t, fieldAssign.Target.Root, "v")
	be.Equal(t, fieldAssign.Target.Fields[0], "x")
}

func TestInvalidAssignmentTarget(t *testing.T) {
	_, diags := parse(t, "fn t() { 1 + 2 = 3; }")

	be.True(t, len(diags) > 0)
	be.Equal(t, diags[0].Code, "E102")
}

func TestBareSelfIsNotAssignable(t *testing.T) {
	// fields of self are assignable, self itself is not
	_, diags := parse(t, "fn t() { self = self; }")

	be.True(t, len(diags) > 0)
	be.Equal(t, diags[0].Code, "E102")
}

func TestIfElseChain(t *testing.T) {
	program := parseOK(t, `
fn t() {
    if x > 0 {
        y = 1;
    } else if x < 0 {
        y = -1;
    } else {
        y = 0;
    }
}
`)

	stmt := program.Functions[0].Body.Statements[0].(*ast.IfStatement)
	be.True(t, stmt.Alternative != nil)

	nested := stmt.Alternative.Statements[0].(*ast.IfStatement)
	be.True(t, nested.Alternative != nil)
	be.Equal(t, len(nested.Alternative.Statements), 1)
}

func TestWhileLoop(t *testing.T) {
	program := parseOK(t, `
fn t() {
    while i < 10 {
        i += 1;
    }
}
`)

	stmt := program.Functions[0].Body.Statements[0].(*ast.WhileStatement)
	cond := stmt.Condition.(*ast.InfixExpression)
	be.Equal(t, cond.Operator, "<")
	be.Equal(t, len(stmt.Body.Statements), 1)
}

func TestBareReturn(t *testing.T) {
	program := parseOK(t, "fn t() { return; }")

	stmt := program.Functions[0].Body.Statements[0].(*ast.ReturnStatement)
	be.True(t, stmt.Value == nil)
}

func TestStructLiterals(t *testing.T) {
	program := parseOK(t, `
fn t() {
    let v: Vector2 = Vector2 { x: 1.0, y: 2.0 };
    let c: Color = Color { r: 1.0, g: 0.5, b: 0.0, a: 1.0 };
    let empty: Vector2 = Vector2 {};
}
`)

	stmts := program.Functions[0].Body.Statements

	v := stmts[0].(*ast.LetStatement).Value.(*ast.StructLiteral)
	be.Equal(t, v.TypeName, "Vector2")
	be.Equal(t, len(v.Fields), 2)
	be.Equal(t, v.Fields[0].Name, "x")
	be.Equal(t, v.Fields[1].Name, "y")

	c := stmts[1].(*ast.LetStatement).Value.(*ast.StructLiteral)
	be.Equal(t, len(c.Fields), 4)

	empty := stmts[2].(*ast.LetStatement).Value.(*ast.StructLiteral)
	be.Equal(t, len(empty.Fields), 0)
}

func TestStructLiteralOnlyForKnownTypes(t *testing.T) {
	// An arbitrary identifier before '{' must not start a struct literal,
	// or paren-less `if x { ... }` would be ambiguous.
	program := parseOK(t, "fn t() { if ready { go_time = true; } }")

	stmt := program.Functions[0].Body.Statements[0].(*ast.IfStatement)
	_, ok := stmt.Condition.(*ast.Identifier)
	be.True(t, ok)
}

func TestNestedStructLiteral(t *testing.T) {
	program := parseOK(t, `
let r: Rect2 = Rect2 { position: Vector2 { x: 0.0, y: 0.0 }, size: Vector2 { x: 32.0, y: 32.0 } };
`)

	lit := program.Globals[0].Value.(*ast.StructLiteral)
	be.Equal(t, lit.TypeName, "Rect2")
	be.Equal(t, len(lit.Fields), 2)

	pos := lit.Fields[0].Value.(*ast.StructLiteral)
	be.Equal(t, pos.TypeName, "Vector2")
}

func TestCallExpressions(t *testing.T) {
	program := parseOK(t, `
fn t() {
    print("hello");
    let v: f32 = clamp(x, 0.0, 1.0);
    emit_signal("health_changed", old, new_value);
}
`)

	stmts := program.Functions[0].Body.Statements

	call := stmts[0].(*ast.ExpressionStatement).Expression.(*ast.CallExpression)
	be.Equal(t, call.Function.Value, "print")
	be.Equal(t, len(call.Arguments), 1)

	clampCall := stmts[1].(*ast.LetStatement).Value.(*ast.CallExpression)
	be.Equal(t, len(clampCall.Arguments), 3)
}

func TestFieldAccessChain(t *testing.T) {
	program := parseOK(t, "fn t() { let x: f32 = self.position.x; }")

	access := program.Functions[0].Body.Statements[0].(*ast.LetStatement).Value.(*ast.FieldAccess)
	be.Equal(t, access.Field, "x")

	inner := access.Base.(*ast.FieldAccess)
	be.Equal(t, inner.Field, "position")

	_, ok := inner.Base.(*ast.SelfExpression)
	be.True(t, ok)
}

func TestIntegerOverflowLiteral(t *testing.T) {
	_, diags := parse(t, "let x: i32 = 99999999999;")

	be.True(t, len(diags) > 0)
	be.Equal(t, diags[0].Code, "E105")
}

func TestRecoveryReportsMultipleErrors(t *testing.T) {
	_, diags := parse(t, `
fn first() {
    let = 5;
    let ok: i32 = 1;
}

fn second() {
    x = ;
}
`)

	// Both functions report their own error and parsing still reaches EOF.
	be.True(t, len(diags) >= 2)
}

func TestRecoveryKeepsLaterDeclarations(t *testing.T) {
	program, diags := parse(t, `
let broken 42;

fn intact() {
    return;
}
`)

	be.True(t, len(diags) > 0)
	be.Equal(t, len(program.Functions), 1)
	be.Equal(t, program.Functions[0].Name.Value, "intact")
}

func TestAnnotationInsideFunctionRejected(t *testing.T) {
	_, diags := parse(t, `
fn t() {
    @export
    let x: i32 = 1;
}
`)

	be.True(t, len(diags) > 0)
	be.Equal(t, diags[0].Code, "E702")
}

func TestExpectedTokenDiagnosticPosition(t *testing.T) {
	_, diags := parse(t, "fn t( { }")

	be.True(t, len(diags) > 0)
	be.Equal(t, diags[0].Code, "E101")
	be.Equal(t, diags[0].Line, 1)
}

func TestUnexpectedTopLevelToken(t *testing.T) {
	_, diags := parse(t, "42;")

	be.True(t, len(diags) > 0)
	be.Equal(t, diags[0].Code, "E100")
}
