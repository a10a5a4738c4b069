package vm

import (
	"fmt"
	"math"

	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/ast"
	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/types"
)

// control carries statement-level flow out of nested blocks. Only return
// unwinds; the language has no break or continue.
type control struct {
	returned bool
	value    Value
}

func (in *Instance) evalBlock(scope *Scope, block *ast.BlockStatement) (control, *Fault) {
	inner := NewScope(scope)
	for _, stmt := range block.Statements {
		ctrl, fault := in.evalStatement(inner, stmt)
		if fault != nil {
			return control{}, fault
		}
		if ctrl.returned {
			return ctrl, nil
		}
	}
	return control{}, nil
}

func (in *Instance) evalStatement(scope *Scope, stmt ast.Statement) (control, *Fault) {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		value, fault := in.evalExpression(scope, s.Value)
		if fault != nil {
			return control{}, fault
		}
		scope.Declare(s.Name.Value, Coerce(value, s.ResolvedType))
		return control{}, nil

	case *ast.AssignStatement:
		return control{}, in.evalAssign(scope, s)

	case *ast.IfStatement:
		cond, fault := in.evalCondition(scope, s.Condition)
		if fault != nil {
			return control{}, fault
		}
		if cond {
			return in.evalBlock(scope, s.Consequence)
		}
		if s.Alternative != nil {
			return in.evalBlock(scope, s.Alternative)
		}
		return control{}, nil

	case *ast.WhileStatement:
		for {
			cond, fault := in.evalCondition(scope, s.Condition)
			if fault != nil {
				return control{}, fault
			}
			if !cond {
				return control{}, nil
			}
			ctrl, fault := in.evalBlock(scope, s.Body)
			if fault != nil {
				return control{}, fault
			}
			if ctrl.returned {
				return ctrl, nil
			}
		}

	case *ast.ReturnStatement:
		if s.Value == nil {
			return control{returned: true, value: Void{}}, nil
		}
		value, fault := in.evalExpression(scope, s.Value)
		if fault != nil {
			return control{}, fault
		}
		return control{returned: true, value: value}, nil

	case *ast.ExpressionStatement:
		_, fault := in.evalExpression(scope, s.Expression)
		return control{}, fault
	}

	return control{}, newFault(FaultInternal, "unhandled statement %T", stmt)
}

func (in *Instance) evalCondition(scope *Scope, expr ast.Expression) (bool, *Fault) {
	value, fault := in.evalExpression(scope, expr)
	if fault != nil {
		return false, fault
	}
	b, ok := asBool(value)
	if !ok {
		return false, newFault(FaultInternal, "condition evaluated to %s, not bool", value.Type())
	}
	return b, nil
}

// evalAssign applies `target op value`. Structured values are copied on
// read and written back whole, so a path like self.position.x is a
// read-modify-write of the position vector, never an aliased in-place
// mutation.
func (in *Instance) evalAssign(scope *Scope, stmt *ast.AssignStatement) *Fault {
	value, fault := in.evalExpression(scope, stmt.Value)
	if fault != nil {
		return fault
	}

	read, write, fault := in.resolveTarget(scope, stmt.Target)
	if fault != nil {
		return fault
	}

	current, fault := read()
	if fault != nil {
		return fault
	}

	var next Value
	if stmt.Op == "=" {
		next = Coerce(value, current.Type())
	} else {
		op := string(stmt.Op[0])
		next, fault = applyBinary(op, current, value)
		if fault != nil {
			return fault
		}
		next = Coerce(next, current.Type())
	}

	return write(next)
}

// resolveTarget turns an assignment path into a read/write pair over its
// final segment.
func (in *Instance) resolveTarget(scope *Scope, target *ast.TargetPath) (func() (Value, *Fault), func(Value) *Fault, *Fault) {
	if target.Self {
		return in.resolveSelfTarget(target)
	}

	root := target.Root
	fields := target.Fields

	read := func() (Value, *Fault) {
		value, ok := scope.Get(root)
		if !ok {
			return nil, newFault(FaultUndefined, "undefined variable '%s'", root)
		}
		return readPath(value, fields)
	}

	write := func(next Value) *Fault {
		rootValue, ok := scope.Get(root)
		if !ok {
			return newFault(FaultUndefined, "undefined variable '%s'", root)
		}
		updated, fault := writePath(rootValue, fields, next)
		if fault != nil {
			return fault
		}
		if !scope.Set(root, updated) {
			return newFault(FaultUndefined, "undefined variable '%s'", root)
		}
		return nil
	}

	return read, write, nil
}

// resolveSelfTarget handles paths rooted at the host node. The first
// segment addresses a node built-in field; anything deeper is
// read-modify-write of that field's structured value.
func (in *Instance) resolveSelfTarget(target *ast.TargetPath) (func() (Value, *Fault), func(Value) *Fault, *Fault) {
	if len(target.Fields) == 0 {
		return nil, nil, newFault(FaultInternal, "assignment to bare 'self'")
	}
	nodeField := target.Fields[0]
	rest := target.Fields[1:]

	read := func() (Value, *Fault) {
		base, fault := in.nodeField(nodeField)
		if fault != nil {
			return nil, fault
		}
		return readPath(base, rest)
	}

	write := func(next Value) *Fault {
		base, fault := in.nodeField(nodeField)
		if fault != nil {
			return fault
		}
		updated, fault := writePath(base, rest, next)
		if fault != nil {
			return fault
		}
		return in.setNodeField(nodeField, updated)
	}

	return read, write, nil
}

func readPath(value Value, fields []string) (Value, *Fault) {
	for _, name := range fields {
		next, ok := getField(value, name)
		if !ok {
			return nil, newFault(FaultInternal, "no field '%s' on %s", name, value.Type())
		}
		value = next
	}
	return value, nil
}

// writePath rebuilds the structured value along fields with the leaf
// replaced by next, returning the updated root.
func writePath(value Value, fields []string, next Value) (Value, *Fault) {
	if len(fields) == 0 {
		return next, nil
	}

	name := fields[0]
	child, ok := getField(value, name)
	if !ok {
		return nil, newFault(FaultInternal, "no field '%s' on %s", name, value.Type())
	}

	updatedChild, fault := writePath(child, fields[1:], next)
	if fault != nil {
		return nil, fault
	}

	updated, ok := setField(value, name, updatedChild)
	if !ok {
		return nil, newFault(FaultInternal, "cannot set field '%s' on %s", name, value.Type())
	}
	return updated, nil
}

func (in *Instance) evalExpression(scope *Scope, expr ast.Expression) (Value, *Fault) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return Int{e.Value}, nil
	case *ast.FloatLiteral:
		return Float{e.Value}, nil
	case *ast.BooleanLiteral:
		return Bool{e.Value}, nil
	case *ast.StringLiteral:
		return Str{e.Value}, nil

	case *ast.Identifier:
		value, ok := scope.Get(e.Value)
		if !ok {
			return nil, newFault(FaultUndefined, "undefined variable '%s'", e.Value)
		}
		return value, nil

	case *ast.SelfExpression:
		return NodeRef{in.node}, nil

	case *ast.PrefixExpression:
		return in.evalPrefix(scope, e)

	case *ast.InfixExpression:
		return in.evalInfix(scope, e)

	case *ast.FieldAccess:
		return in.evalFieldAccess(scope, e)

	case *ast.CallExpression:
		return in.evalCall(scope, e)

	case *ast.StructLiteral:
		return in.evalStructLiteral(scope, e)
	}

	return nil, newFault(FaultInternal, "unhandled expression %T", expr)
}

func (in *Instance) evalPrefix(scope *Scope, e *ast.PrefixExpression) (Value, *Fault) {
	right, fault := in.evalExpression(scope, e.Right)
	if fault != nil {
		return nil, fault
	}

	switch e.Operator {
	case "!":
		if b, ok := right.(Bool); ok {
			return Bool{!b.V}, nil
		}
	case "-":
		switch n := right.(type) {
		case Int:
			return Int{-n.V}, nil
		case Float:
			return Float{-n.V}, nil
		}
	}
	return nil, newFault(FaultInternal, "operator '%s' on %s", e.Operator, right.Type())
}

func (in *Instance) evalInfix(scope *Scope, e *ast.InfixExpression) (Value, *Fault) {
	left, fault := in.evalExpression(scope, e.Left)
	if fault != nil {
		return nil, fault
	}

	// Short-circuit: the right operand must not run when the left already
	// decides the result.
	switch e.Operator {
	case "&&":
		if b, ok := asBool(left); ok && !b {
			return Bool{false}, nil
		}
	case "||":
		if b, ok := asBool(left); ok && b {
			return Bool{true}, nil
		}
	}

	right, fault := in.evalExpression(scope, e.Right)
	if fault != nil {
		return nil, fault
	}

	return applyBinary(e.Operator, left, right)
}

// applyBinary implements the binary operator table over runtime values.
// Mixed int/float operands compute in f32.
func applyBinary(op string, left, right Value) (Value, *Fault) {
	switch op {
	case "&&", "||":
		lb, lok := asBool(left)
		rb, rok := asBool(right)
		if lok && rok {
			if op == "&&" {
				return Bool{lb && rb}, nil
			}
			return Bool{lb || rb}, nil
		}

	case "+":
		if ls, ok := left.(Str); ok {
			if rs, ok := right.(Str); ok {
				return Str{ls.V + rs.V}, nil
			}
		}
	}

	li, lInt := left.(Int)
	ri, rInt := right.(Int)
	if lInt && rInt {
		return applyIntBinary(op, li.V, ri.V)
	}

	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if lok && rok {
		return applyFloatBinary(op, lf, rf)
	}

	// Same-type equality for the remaining value kinds.
	switch op {
	case "==":
		return Bool{valueEqual(left, right)}, nil
	case "!=":
		return Bool{!valueEqual(left, right)}, nil
	}

	return nil, newFault(FaultInternal, "operator '%s' on %s and %s", op, left.Type(), right.Type())
}

func applyIntBinary(op string, l, r int32) (Value, *Fault) {
	switch op {
	case "+":
		return Int{l + r}, nil
	case "-":
		return Int{l - r}, nil
	case "*":
		return Int{l * r}, nil
	case "/":
		if r == 0 {
			return nil, newFault(FaultDivisionByZero, "division by zero")
		}
		return Int{l / r}, nil
	case "<":
		return Bool{l < r}, nil
	case ">":
		return Bool{l > r}, nil
	case "<=":
		return Bool{l <= r}, nil
	case ">=":
		return Bool{l >= r}, nil
	case "==":
		return Bool{l == r}, nil
	case "!=":
		return Bool{l != r}, nil
	}
	return nil, newFault(FaultInternal, "operator '%s' on i32", op)
}

func applyFloatBinary(op string, l, r float32) (Value, *Fault) {
	switch op {
	case "+":
		return Float{l + r}, nil
	case "-":
		return Float{l - r}, nil
	case "*":
		return Float{l * r}, nil
	case "/":
		// IEEE semantics: f32 division by zero yields an infinity.
		return Float{l / r}, nil
	case "<":
		return Bool{l < r}, nil
	case ">":
		return Bool{l > r}, nil
	case "<=":
		return Bool{l <= r}, nil
	case ">=":
		return Bool{l >= r}, nil
	case "==":
		return Bool{l == r}, nil
	case "!=":
		return Bool{l != r}, nil
	}
	return nil, newFault(FaultInternal, "operator '%s' on f32", op)
}

func valueEqual(left, right Value) bool {
	switch l := left.(type) {
	case Bool:
		r, ok := right.(Bool)
		return ok && l.V == r.V
	case Str:
		r, ok := right.(Str)
		return ok && l.V == r.V
	case Vector2:
		r, ok := right.(Vector2)
		return ok && l == r
	case Color:
		r, ok := right.(Color)
		return ok && l == r
	case Rect2:
		r, ok := right.(Rect2)
		return ok && l == r
	case Transform2D:
		r, ok := right.(Transform2D)
		return ok && l == r
	case NodeRef:
		r, ok := right.(NodeRef)
		return ok && l.Node == r.Node
	case Void:
		_, ok := right.(Void)
		return ok
	}
	return false
}

func (in *Instance) evalFieldAccess(scope *Scope, e *ast.FieldAccess) (Value, *Fault) {
	base, fault := in.evalExpression(scope, e.Base)
	if fault != nil {
		return nil, fault
	}

	if ref, ok := base.(NodeRef); ok {
		return nodeFieldOf(ref, e.Field)
	}

	value, ok := getField(base, e.Field)
	if !ok {
		return nil, newFault(FaultInternal, "no field '%s' on %s", e.Field, base.Type())
	}
	return value, nil
}

func (in *Instance) evalStructLiteral(scope *Scope, e *ast.StructLiteral) (Value, *Fault) {
	t, _ := types.FromName(e.TypeName)
	value := ZeroValue(t)

	for _, field := range e.Fields {
		fv, fault := in.evalExpression(scope, field.Value)
		if fault != nil {
			return nil, fault
		}
		ft, _ := types.FieldType(t, field.Name)
		updated, ok := setField(value, field.Name, Coerce(fv, ft))
		if !ok {
			return nil, newFault(FaultInternal, "cannot set field '%s' on %s", field.Name, t)
		}
		value = updated
	}
	return value, nil
}

func (in *Instance) evalCall(scope *Scope, e *ast.CallExpression) (Value, *Fault) {
	name := e.Function.Value

	args := make([]Value, len(e.Arguments))
	for i, arg := range e.Arguments {
		value, fault := in.evalExpression(scope, arg)
		if fault != nil {
			return nil, fault
		}
		args[i] = value
	}

	switch name {
	case "print":
		fmt.Fprintln(in.out, args[0].String())
		return Void{}, nil

	case "emit_signal":
		signal, ok := args[0].(Str)
		if !ok {
			return nil, newFault(FaultInternal, "emit_signal name is %s, not String", args[0].Type())
		}
		payload := args[1:]
		// the host sees declared parameter types, so i32 arguments to
		// f32 parameters widen before delivery
		if decl := in.meta.Signal(signal.V); decl != nil && len(decl.Params) == len(payload) {
			for i, p := range decl.Params {
				payload[i] = Coerce(payload[i], p.Type)
			}
		}
		in.emit(signal.V, payload)
		return Void{}, nil
	}

	if fn := in.program.Function(name); fn != nil {
		return in.invokeFunction(fn, args)
	}

	return evalBuiltin(name, args)
}

// nodeField reads a built-in field of the bound host node.
func (in *Instance) nodeField(name string) (Value, *Fault) {
	return nodeFieldOf(NodeRef{in.node}, name)
}

func (in *Instance) setNodeField(name string, value Value) *Fault {
	if in.node == nil || !in.node.Alive() {
		return newFault(FaultInvalidReference, "node reference is no longer valid")
	}
	if err := in.node.SetField(name, value); err != nil {
		return newFault(FaultInvalidReference, "node field '%s': %v", name, err)
	}
	return nil
}

func nodeFieldOf(ref NodeRef, name string) (Value, *Fault) {
	if ref.Node == nil || !ref.Node.Alive() {
		return nil, newFault(FaultInvalidReference, "node reference is no longer valid")
	}
	value, err := ref.Node.Field(name)
	if err != nil {
		return nil, newFault(FaultInvalidReference, "node field '%s': %v", name, err)
	}
	return value, nil
}

// evalBuiltin implements the f32 math built-ins. Arguments arrive already
// checked for arity and type; integer arguments widen here.
func evalBuiltin(name string, args []Value) (Value, *Fault) {
	f := make([]float32, len(args))
	for i, a := range args {
		v, ok := asFloat(a)
		if !ok {
			return nil, newFault(FaultInternal, "builtin '%s' argument %d is %s", name, i+1, a.Type())
		}
		f[i] = v
	}

	switch name {
	case "abs":
		return Float{float32(math.Abs(float64(f[0])))}, nil
	case "sqrt":
		return Float{float32(math.Sqrt(float64(f[0])))}, nil
	case "floor":
		return Float{float32(math.Floor(float64(f[0])))}, nil
	case "min":
		return Float{float32(math.Min(float64(f[0]), float64(f[1])))}, nil
	case "max":
		return Float{float32(math.Max(float64(f[0]), float64(f[1])))}, nil
	case "clamp":
		return Float{clampFloat(f[0], f[1], f[2])}, nil
	case "lerp":
		return Float{f[0] + (f[1]-f[0])*f[2]}, nil
	}
	return nil, newFault(FaultUndefined, "undefined function '%s'", name)
}

func clampFloat(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
