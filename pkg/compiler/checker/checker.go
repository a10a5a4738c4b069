// Package checker performs semantic analysis over a parsed program: name
// binding, type checking with I32 to F32 coercion, lifecycle signature
// validation, signal validation, and export annotation validation. It also
// extracts the script's property and signal metadata for the host.
//
// A diagnostic never aborts the pass. The checker records it and keeps
// going so one compile reports as many independent problems as possible.
package checker

import (
	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/ast"
	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/diag"
	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/meta"
	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/token"
	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/types"
)

// Result is the outcome of a successful (or partially successful) check.
// Meta is complete only when no error diagnostics were produced.
type Result struct {
	Program *ast.Program
	Meta    *meta.Interface
}

// lifecycleSig is the required shape of a recognized lifecycle function.
type lifecycleSig struct {
	Kind    ast.LifecycleKind
	Params  []types.Type
	Display string
}

var lifecycles = map[string]lifecycleSig{
	"_ready":           {ast.LifecycleReady, nil, "fn _ready()"},
	"_process":         {ast.LifecycleProcess, []types.Type{types.F32}, "fn _process(delta: f32)"},
	"_physics_process": {ast.LifecyclePhysicsProcess, []types.Type{types.F32}, "fn _physics_process(delta: f32)"},
	"_input":           {ast.LifecycleInput, []types.Type{types.InputEvent}, "fn _input(event: InputEvent)"},
	"_enter_tree":      {ast.LifecycleEnterTree, nil, "fn _enter_tree()"},
	"_exit_tree":       {ast.LifecycleExitTree, nil, "fn _exit_tree()"},
}

type symbol struct {
	typ     types.Type
	mutable bool
}

// Checker holds the state of one semantic pass.
type Checker struct {
	program *ast.Program
	diags   []diag.Diagnostic

	// scopes[0] holds globals; inner scopes stack on top.
	scopes []map[string]*symbol

	functions map[string]*ast.FunctionDecl
	signals   map[string]*ast.SignalDecl

	// globalOrder maps each global name to its declaration index, for the
	// forward-reference check during initializer seeding.
	globalOrder map[string]int

	// seededGlobals counts how many globals are visible to the
	// initializer currently being checked. -1 disables the check.
	seededGlobals int

	// inFunction gates 'self'.
	inFunction bool

	// returnType of the function body being checked.
	returnType types.Type

	metadata meta.Interface
}

// Check runs semantic analysis on program. The returned Result carries the
// same program with resolved types stamped onto declarations, plus the
// extracted metadata. Diagnostics may include warnings; use
// diag.HasErrors to decide whether the program is runnable.
func Check(program *ast.Program) (*Result, []diag.Diagnostic) {
	c := &Checker{
		program:       program,
		scopes:        []map[string]*symbol{{}},
		functions:     make(map[string]*ast.FunctionDecl),
		signals:       make(map[string]*ast.SignalDecl),
		globalOrder:   make(map[string]int),
		seededGlobals: -1,
	}

	c.collectSignatures()
	c.checkGlobals()
	c.checkFunctions()

	return &Result{Program: program, Meta: &c.metadata}, c.diags
}

// collectSignatures is the pre-pass: it resolves every function and signal
// signature before any body is checked, so forward references between
// functions work.
func (c *Checker) collectSignatures() {
	for i, g := range c.program.Globals {
		c.globalOrder[g.Name.Value] = i
	}

	for _, fn := range c.program.Functions {
		if _, exists := c.functions[fn.Name.Value]; exists {
			c.report(diag.New("E205", fn.Name.Token.Line, fn.Name.Token.Column, len(fn.Name.Value), fn.Name.Value))
			continue
		}
		c.functions[fn.Name.Value] = fn

		for _, p := range fn.Params {
			p.Type = c.resolveTypeName(p.TypeName, p.Token)
		}
		fn.ReturnType = types.Void
		if fn.ReturnTypeName != "" {
			fn.ReturnType = c.resolveTypeName(fn.ReturnTypeName, fn.Token)
		}

		c.checkLifecycle(fn)
	}

	for _, sig := range c.program.Signals {
		if _, exists := c.signals[sig.Name.Value]; exists {
			c.report(diag.New("E206", sig.Name.Token.Line, sig.Name.Token.Column, len(sig.Name.Value), sig.Name.Value))
			continue
		}
		c.signals[sig.Name.Value] = sig

		params := make([]meta.Param, 0, len(sig.Params))
		for _, p := range sig.Params {
			p.Type = c.resolveTypeName(p.TypeName, p.Token)
			params = append(params, meta.Param{Name: p.Name, Type: p.Type})
		}
		c.metadata.Signals = append(c.metadata.Signals, meta.Signal{
			Name:   sig.Name.Value,
			Params: params,
		})
	}
}

// checkLifecycle validates a recognized lifecycle name against its required
// signature and tags the declaration.
func (c *Checker) checkLifecycle(fn *ast.FunctionDecl) {
	sig, ok := lifecycles[fn.Name.Value]
	if !ok {
		return
	}

	match := fn.ReturnType == types.Void && len(fn.Params) == len(sig.Params)
	if match {
		for i, want := range sig.Params {
			if fn.Params[i].Type != want {
				match = false
				break
			}
		}
	}

	if !match {
		c.report(diag.New("E600", fn.Name.Token.Line, fn.Name.Token.Column, len(fn.Name.Value), fn.Name.Value, sig.Display))
		return
	}
	fn.Lifecycle = sig.Kind
}

// checkGlobals checks global let declarations in order. Each initializer
// sees only the globals declared before it.
func (c *Checker) checkGlobals() {
	for i, g := range c.program.Globals {
		c.seededGlobals = i
		c.checkLet(g, true)
		if g.Export != nil {
			c.checkExport(g)
		}
	}
	c.seededGlobals = -1
}

func (c *Checker) checkFunctions() {
	for _, fn := range c.program.Functions {
		c.inFunction = true
		c.returnType = fn.ReturnType

		c.pushScope()
		for _, p := range fn.Params {
			if !c.declare(p.Name, &symbol{typ: p.Type, mutable: true}) {
				c.report(diag.New("E202", p.Token.Line, p.Token.Column, len(p.Name), p.Name))
			}
		}
		c.checkBlock(fn.Body)
		c.popScope()

		c.inFunction = false
	}
}

// checkLet handles both global and local declarations: it checks the
// initializer, resolves or infers the binding type, and declares the
// symbol. The resolved type is stamped onto the statement for the
// evaluator.
func (c *Checker) checkLet(stmt *ast.LetStatement, global bool) {
	valueType := c.checkExpression(stmt.Value)

	declared := types.Unknown
	if stmt.TypeName != "" {
		declared = c.resolveTypeName(stmt.TypeName, stmt.Token)
	}

	resolved := valueType
	if declared != types.Unknown {
		resolved = declared
		if valueType != types.Unknown && !types.AssignableTo(valueType, declared) {
			tok := exprToken(stmt.Value)
			c.report(diag.New("E300", tok.Line, tok.Column, len(tok.Literal), declared, valueType))
		}
	}
	stmt.ResolvedType = resolved

	if !c.declare(stmt.Name.Value, &symbol{typ: resolved, mutable: stmt.Mutable}) {
		c.report(diag.New("E202", stmt.Name.Token.Line, stmt.Name.Token.Column, len(stmt.Name.Value), stmt.Name.Value))
	}
	_ = global
}

func (c *Checker) checkBlock(block *ast.BlockStatement) {
	c.pushScope()
	returned := false
	for _, stmt := range block.Statements {
		if returned {
			tok := stmtToken(stmt)
			c.report(diag.New("W001", tok.Line, tok.Column, len(tok.Literal)))
			returned = false
		}
		c.checkStatement(stmt)
		if _, ok := stmt.(*ast.ReturnStatement); ok {
			returned = true
		}
	}
	c.popScope()
}

func (c *Checker) checkStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		c.checkLet(s, false)
	case *ast.AssignStatement:
		c.checkAssign(s)
	case *ast.IfStatement:
		c.checkCondition(s.Condition, "if")
		c.checkBlock(s.Consequence)
		if s.Alternative != nil {
			c.checkBlock(s.Alternative)
		}
	case *ast.WhileStatement:
		c.checkCondition(s.Condition, "while")
		c.checkBlock(s.Body)
	case *ast.ReturnStatement:
		c.checkReturn(s)
	case *ast.ExpressionStatement:
		c.checkExpression(s.Expression)
	}
}

func (c *Checker) checkCondition(cond ast.Expression, construct string) {
	t := c.checkExpression(cond)
	if t != types.Unknown && t != types.Bool {
		tok := exprToken(cond)
		c.report(diag.New("E303", tok.Line, tok.Column, len(tok.Literal), construct, t))
	}
}

func (c *Checker) checkReturn(stmt *ast.ReturnStatement) {
	found := types.Void
	if stmt.Value != nil {
		found = c.checkExpression(stmt.Value)
	}
	if found == types.Unknown || c.returnType == types.Unknown {
		return
	}
	if !types.AssignableTo(found, c.returnType) {
		c.report(diag.New("E304", stmt.Token.Line, stmt.Token.Column, len(stmt.Token.Literal), c.returnType, found))
	}
}

// checkAssign resolves the target path, enforces mutability at the root
// binding, and checks the operator and value types. Compound operators
// behave as target = target op value.
func (c *Checker) checkAssign(stmt *ast.AssignStatement) {
	target := stmt.Target
	valueType := c.checkExpression(stmt.Value)

	var rootType types.Type
	if target.Self {
		if !c.inFunction {
			c.report(diag.New("E207", target.Token.Line, target.Token.Column, len(target.Token.Literal)))
			return
		}
		rootType = types.Node
	} else {
		sym := c.resolve(target.Root)
		if sym == nil {
			d := diag.New("E200", target.Token.Line, target.Token.Column, len(target.Root), target.Root)
			if hint := suggest(target.Root, c.visibleNames()); hint != "" {
				d = d.WithHint(hint)
			}
			c.report(d)
			return
		}
		if !sym.mutable {
			c.report(diag.New("E201", target.Token.Line, target.Token.Column, len(target.Root), target.Root))
		}
		rootType = sym.typ
	}

	targetType := rootType
	for _, field := range target.Fields {
		if targetType == types.Unknown {
			return
		}
		if !types.HasFields(targetType) {
			c.report(diag.New("E400", target.Token.Line, target.Token.Column, len(target.Root), targetType))
			return
		}
		ft, ok := types.FieldType(targetType, field)
		if !ok {
			c.report(diag.New("E401", target.Token.Line, target.Token.Column, len(field), targetType, field))
			return
		}
		targetType = ft
	}

	if targetType == types.Unknown || valueType == types.Unknown {
		return
	}

	if stmt.Op == "=" {
		if !types.AssignableTo(valueType, targetType) {
			tok := exprToken(stmt.Value)
			c.report(diag.New("E300", tok.Line, tok.Column, len(tok.Literal), targetType, valueType))
		}
		return
	}

	// Compound assignment: the operator must be defined for the pair and
	// its result must flow back into the target.
	op := string(stmt.Op[0])
	result, ok := infixResult(op, targetType, valueType)
	if !ok {
		c.report(diag.New("E301", stmt.Token.Line, stmt.Token.Column, len(stmt.Op), stmt.Op, targetType, valueType))
		return
	}
	if !types.AssignableTo(result, targetType) {
		tok := exprToken(stmt.Value)
		c.report(diag.New("E300", tok.Line, tok.Column, len(tok.Literal), targetType, result))
	}
}

// checkExpression computes the type of expr, reporting diagnostics along
// the way. Unknown is returned after an error to suppress cascading
// reports from the same subtree.
func (c *Checker) checkExpression(expr ast.Expression) types.Type {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return types.I32
	case *ast.FloatLiteral:
		return types.F32
	case *ast.BooleanLiteral:
		return types.Bool
	case *ast.StringLiteral:
		return types.String
	case *ast.Identifier:
		return c.checkIdentifier(e)
	case *ast.SelfExpression:
		if !c.inFunction {
			c.report(diag.New("E207", e.Token.Line, e.Token.Column, len(e.Token.Literal)))
			return types.Unknown
		}
		return types.Node
	case *ast.PrefixExpression:
		return c.checkPrefix(e)
	case *ast.InfixExpression:
		return c.checkInfix(e)
	case *ast.FieldAccess:
		return c.checkFieldAccess(e)
	case *ast.CallExpression:
		return c.checkCall(e)
	case *ast.StructLiteral:
		return c.checkStructLiteral(e)
	}
	return types.Unknown
}

func (c *Checker) checkIdentifier(e *ast.Identifier) types.Type {
	sym := c.resolve(e.Value)
	if sym == nil {
		// Global initializers run in declaration order, so an
		// initializer may only read globals declared above it.
		if c.seededGlobals >= 0 {
			if idx, isGlobal := c.globalOrder[e.Value]; isGlobal && idx >= c.seededGlobals {
				c.report(diag.New("E204", e.Token.Line, e.Token.Column, len(e.Value), e.Value))
				return types.Unknown
			}
		}
		d := diag.New("E200", e.Token.Line, e.Token.Column, len(e.Value), e.Value)
		if hint := suggest(e.Value, c.visibleNames()); hint != "" {
			d = d.WithHint(hint)
		}
		c.report(d)
		return types.Unknown
	}
	return sym.typ
}

func (c *Checker) checkPrefix(e *ast.PrefixExpression) types.Type {
	right := c.checkExpression(e.Right)
	if right == types.Unknown {
		return types.Unknown
	}

	switch e.Operator {
	case "!":
		if right == types.Bool {
			return types.Bool
		}
	case "-":
		if types.Numeric(right) {
			return right
		}
	}
	c.report(diag.New("E302", e.Token.Line, e.Token.Column, len(e.Operator), e.Operator, right))
	return types.Unknown
}

func (c *Checker) checkInfix(e *ast.InfixExpression) types.Type {
	left := c.checkExpression(e.Left)
	right := c.checkExpression(e.Right)
	if left == types.Unknown || right == types.Unknown {
		return types.Unknown
	}

	result, ok := infixResult(e.Operator, left, right)
	if !ok {
		c.report(diag.New("E301", e.Token.Line, e.Token.Column, len(e.Operator), e.Operator, left, right))
		return types.Unknown
	}
	return result
}

// infixResult applies the binary operator typing rules: arithmetic over
// numerics (mixed operands widen to f32, '+' also concatenates strings),
// ordering over numerics, equality over equal or numeric-compatible
// scalars, and boolean connectives over bools.
func infixResult(op string, left, right types.Type) (types.Type, bool) {
	bothNumeric := types.Numeric(left) && types.Numeric(right)

	switch op {
	case "+":
		if left == types.String && right == types.String {
			return types.String, true
		}
		fallthrough
	case "-", "*", "/":
		if bothNumeric {
			if left == types.F32 || right == types.F32 {
				return types.F32, true
			}
			return types.I32, true
		}
	case "<", ">", "<=", ">=":
		if bothNumeric {
			return types.Bool, true
		}
	case "==", "!=":
		if left == right && left != types.Void {
			return types.Bool, true
		}
		if bothNumeric {
			return types.Bool, true
		}
	case "&&", "||":
		if left == types.Bool && right == types.Bool {
			return types.Bool, true
		}
	}
	return types.Unknown, false
}

func (c *Checker) checkFieldAccess(e *ast.FieldAccess) types.Type {
	base := c.checkExpression(e.Base)
	if base == types.Unknown {
		return types.Unknown
	}

	if !types.HasFields(base) {
		c.report(diag.New("E400", e.Token.Line, e.Token.Column, len(e.Field), base))
		return types.Unknown
	}
	ft, ok := types.FieldType(base, e.Field)
	if !ok {
		c.report(diag.New("E401", e.Token.Line, e.Token.Column, len(e.Field), base, e.Field))
		return types.Unknown
	}
	return ft
}

func (c *Checker) checkCall(e *ast.CallExpression) types.Type {
	name := e.Function.Value

	switch name {
	case "print":
		return c.checkPrint(e)
	case "emit_signal":
		return c.checkEmitSignal(e)
	}

	if fn, ok := c.functions[name]; ok {
		// a function body may read globals declared later, so letting
		// global initializers call it would bypass the seeding order
		if c.seededGlobals >= 0 {
			c.report(diag.New("E209", e.Function.Token.Line, e.Function.Token.Column, len(name), name))
		}
		return c.checkArgs(e, name, paramTypes(fn.Params), fn.ReturnType)
	}
	if sig, ok := builtins[name]; ok {
		return c.checkArgs(e, name, sig.Params, sig.Return)
	}

	d := diag.New("E203", e.Function.Token.Line, e.Function.Token.Column, len(name), name)
	candidates := builtinNames()
	for fn := range c.functions {
		candidates = append(candidates, fn)
	}
	if hint := suggest(name, candidates); hint != "" {
		d = d.WithHint(hint)
	}
	c.report(d)
	return types.Unknown
}

func (c *Checker) checkPrint(e *ast.CallExpression) types.Type {
	if len(e.Arguments) != 1 {
		c.report(diag.New("E305", e.Function.Token.Line, e.Function.Token.Column, len("print"), "print", 1, len(e.Arguments)))
		return types.Void
	}
	t := c.checkExpression(e.Arguments[0])
	if t == types.Void {
		c.report(diag.New("E306", e.Function.Token.Line, e.Function.Token.Column, len("print"), 1, "print", "a printable value", t))
	}
	return types.Void
}

func (c *Checker) checkEmitSignal(e *ast.CallExpression) types.Type {
	tok := e.Function.Token
	if len(e.Arguments) == 0 {
		c.report(diag.New("E305", tok.Line, tok.Column, len("emit_signal"), "emit_signal", 1, 0))
		return types.Void
	}

	nameLit, ok := e.Arguments[0].(*ast.StringLiteral)
	if !ok {
		argTok := exprToken(e.Arguments[0])
		c.checkExpression(e.Arguments[0])
		c.report(diag.New("E306", argTok.Line, argTok.Column, len(argTok.Literal), 1, "emit_signal", "a signal name literal", "an expression"))
		return types.Void
	}

	sig, declared := c.signals[nameLit.Value]
	if !declared {
		d := diag.New("E500", nameLit.Token.Line, nameLit.Token.Column, len(nameLit.Value)+2, nameLit.Value)
		var names []string
		for s := range c.signals {
			names = append(names, s)
		}
		if hint := suggest(nameLit.Value, names); hint != "" {
			d = d.WithHint(hint)
		}
		c.report(d)
		return types.Void
	}

	args := e.Arguments[1:]
	if len(args) != len(sig.Params) {
		c.report(diag.New("E501", tok.Line, tok.Column, len("emit_signal"), sig.Name.Value, len(sig.Params), len(args)))
		return types.Void
	}
	for i, arg := range args {
		at := c.checkExpression(arg)
		want := sig.Params[i].Type
		if at == types.Unknown || want == types.Unknown {
			continue
		}
		if !types.AssignableTo(at, want) {
			argTok := exprToken(arg)
			c.report(diag.New("E502", argTok.Line, argTok.Column, len(argTok.Literal), i+1, sig.Name.Value, want, at))
		}
	}
	return types.Void
}

func (c *Checker) checkArgs(e *ast.CallExpression, name string, params []types.Type, ret types.Type) types.Type {
	if len(e.Arguments) != len(params) {
		c.report(diag.New("E305", e.Function.Token.Line, e.Function.Token.Column, len(name), name, len(params), len(e.Arguments)))
		for _, arg := range e.Arguments {
			c.checkExpression(arg)
		}
		return ret
	}

	for i, arg := range e.Arguments {
		at := c.checkExpression(arg)
		if at == types.Unknown || params[i] == types.Unknown {
			continue
		}
		if !types.AssignableTo(at, params[i]) {
			argTok := exprToken(arg)
			c.report(diag.New("E306", argTok.Line, argTok.Column, len(argTok.Literal), i+1, name, params[i], at))
		}
	}
	return ret
}

func (c *Checker) checkStructLiteral(e *ast.StructLiteral) types.Type {
	t, ok := types.FromName(e.TypeName)
	if !ok {
		c.report(diag.New("E208", e.Token.Line, e.Token.Column, len(e.TypeName), e.TypeName))
		return types.Unknown
	}
	if !types.Constructible(t) {
		c.report(diag.New("E402", e.Token.Line, e.Token.Column, len(e.TypeName), t))
		return types.Unknown
	}

	declared, _ := types.Fields(t)
	seen := make(map[string]bool)

	for _, field := range e.Fields {
		if seen[field.Name] {
			c.report(diag.New("E404", field.Token.Line, field.Token.Column, len(field.Name), field.Name, t))
			continue
		}
		seen[field.Name] = true

		ft, known := types.FieldType(t, field.Name)
		if !known {
			c.report(diag.New("E405", field.Token.Line, field.Token.Column, len(field.Name), field.Name, t))
			c.checkExpression(field.Value)
			continue
		}

		vt := c.checkExpression(field.Value)
		if vt != types.Unknown && !types.AssignableTo(vt, ft) {
			tok := exprToken(field.Value)
			c.report(diag.New("E300", tok.Line, tok.Column, len(tok.Literal), ft, vt))
		}
	}

	for _, field := range declared {
		if !seen[field.Name] {
			c.report(diag.New("E403", e.Token.Line, e.Token.Column, len(e.TypeName), field.Name, t))
		}
	}

	return t
}

// checkExport validates an export annotation against the global it
// decorates and appends the property metadata row.
func (c *Checker) checkExport(g *ast.LetStatement) {
	ex := g.Export
	t := g.ResolvedType

	if t != types.Unknown && !types.Exportable(t) {
		c.report(diag.New("E700", ex.Token.Line, ex.Token.Column, len(ex.Name)+1, t))
		return
	}

	prop := meta.Property{Name: g.Name.Value, Type: t, Default: literalDefault(g.Value)}

	switch ex.Name {
	case "export":
		// no hint

	case "export_range":
		if t != types.I32 && t != types.F32 {
			c.report(diag.New("E701", ex.Token.Line, ex.Token.Column, len(ex.Name)+1, "range", t))
			return
		}
		if len(ex.Args) < 2 || len(ex.Args) > 3 {
			c.report(diag.New("E703", ex.Token.Line, ex.Token.Column, len(ex.Name)+1, "@export_range", "expected (min, max) or (min, max, step)"))
			return
		}
		bounds := make([]float64, 0, 3)
		for _, arg := range ex.Args {
			v, ok := numericArg(arg)
			if !ok {
				c.report(diag.New("E703", ex.Token.Line, ex.Token.Column, len(ex.Name)+1, "@export_range", "bounds must be numeric literals"))
				return
			}
			bounds = append(bounds, v)
		}
		prop.Hint = meta.Hint{Kind: meta.HintRange, Min: bounds[0], Max: bounds[1]}
		if len(bounds) == 3 {
			prop.Hint.Step = bounds[2]
		} else if t == types.I32 {
			prop.Hint.Step = 1
		}

	case "export_enum":
		if t != types.I32 && t != types.String {
			c.report(diag.New("E701", ex.Token.Line, ex.Token.Column, len(ex.Name)+1, "enum", t))
			return
		}
		if len(ex.Args) == 0 {
			c.report(diag.New("E703", ex.Token.Line, ex.Token.Column, len(ex.Name)+1, "@export_enum", "expected at least one value name"))
			return
		}
		values := make([]string, 0, len(ex.Args))
		for _, arg := range ex.Args {
			lit, ok := arg.(*ast.StringLiteral)
			if !ok {
				c.report(diag.New("E703", ex.Token.Line, ex.Token.Column, len(ex.Name)+1, "@export_enum", "values must be string literals"))
				return
			}
			values = append(values, lit.Value)
		}
		prop.Hint = meta.Hint{Kind: meta.HintEnum, Values: values}

	case "export_file":
		if t != types.String {
			c.report(diag.New("E701", ex.Token.Line, ex.Token.Column, len(ex.Name)+1, "file", t))
			return
		}
		if len(ex.Args) != 1 {
			c.report(diag.New("E703", ex.Token.Line, ex.Token.Column, len(ex.Name)+1, "@export_file", "expected a single filter string"))
			return
		}
		lit, ok := ex.Args[0].(*ast.StringLiteral)
		if !ok {
			c.report(diag.New("E703", ex.Token.Line, ex.Token.Column, len(ex.Name)+1, "@export_file", "filter must be a string literal"))
			return
		}
		prop.Hint = meta.Hint{Kind: meta.HintFile, Filter: lit.Value}
	}

	c.metadata.Properties = append(c.metadata.Properties, prop)
}

// literalDefault extracts a plain literal initializer for the inspector,
// or nil when the default needs evaluation.
func literalDefault(expr ast.Expression) any {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return e.Value
	case *ast.FloatLiteral:
		return e.Value
	case *ast.BooleanLiteral:
		return e.Value
	case *ast.StringLiteral:
		return e.Value
	case *ast.PrefixExpression:
		if e.Operator == "-" {
			switch inner := e.Right.(type) {
			case *ast.IntegerLiteral:
				return -inner.Value
			case *ast.FloatLiteral:
				return -inner.Value
			}
		}
	}
	return nil
}

func numericArg(expr ast.Expression) (float64, bool) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return float64(e.Value), true
	case *ast.FloatLiteral:
		return float64(e.Value), true
	case *ast.PrefixExpression:
		if e.Operator == "-" {
			if v, ok := numericArg(e.Right); ok {
				return -v, true
			}
		}
	}
	return 0, false
}

func paramTypes(params []*ast.Param) []types.Type {
	ts := make([]types.Type, len(params))
	for i, p := range params {
		ts[i] = p.Type
	}
	return ts
}

// Scope management.

func (c *Checker) pushScope() {
	c.scopes = append(c.scopes, map[string]*symbol{})
}

func (c *Checker) popScope() {
	c.scopes = c.scopes[:len(c.scopes)-1]
}

// declare binds name in the innermost scope. It fails only on a duplicate
// within the same scope; shadowing an outer binding is allowed.
func (c *Checker) declare(name string, sym *symbol) bool {
	scope := c.scopes[len(c.scopes)-1]
	if _, exists := scope[name]; exists {
		return false
	}
	scope[name] = sym
	return true
}

func (c *Checker) resolve(name string) *symbol {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if sym, ok := c.scopes[i][name]; ok {
			return sym
		}
	}
	return nil
}

func (c *Checker) visibleNames() []string {
	var names []string
	for _, scope := range c.scopes {
		for name := range scope {
			names = append(names, name)
		}
	}
	return names
}

func (c *Checker) resolveTypeName(name string, tok token.Token) types.Type {
	t, ok := types.FromName(name)
	if !ok {
		c.report(diag.New("E208", tok.Line, tok.Column, len(name), name))
		return types.Unknown
	}
	return t
}

func (c *Checker) report(d diag.Diagnostic) {
	c.diags = append(c.diags, d)
}

func exprToken(expr ast.Expression) token.Token {
	switch e := expr.(type) {
	case *ast.Identifier:
		return e.Token
	case *ast.SelfExpression:
		return e.Token
	case *ast.IntegerLiteral:
		return e.Token
	case *ast.FloatLiteral:
		return e.Token
	case *ast.BooleanLiteral:
		return e.Token
	case *ast.StringLiteral:
		return e.Token
	case *ast.PrefixExpression:
		return e.Token
	case *ast.InfixExpression:
		return e.Token
	case *ast.FieldAccess:
		return e.Token
	case *ast.CallExpression:
		return e.Function.Token
	case *ast.StructLiteral:
		return e.Token
	}
	return token.Token{}
}

func stmtToken(stmt ast.Statement) token.Token {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		return s.Token
	case *ast.AssignStatement:
		return s.Target.Token
	case *ast.IfStatement:
		return s.Token
	case *ast.WhileStatement:
		return s.Token
	case *ast.ReturnStatement:
		return s.Token
	case *ast.ExpressionStatement:
		return s.Token
	}
	return token.Token{}
}
