package vm

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler"
	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/ast"
	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/meta"
)

// Instance binds one compiled script to one host object. It owns its
// global environment exclusively; the compiled program it points at is
// immutable and may be shared across any number of instances.
//
// Instances are single-threaded: the host invokes functions from its own
// update loop and each call runs to completion before the next.
type Instance struct {
	program *ast.Program
	meta    *meta.Interface
	source  string

	globals *Scope
	node    HostNode
	sink    SignalSink
	out     io.Writer
	log     *slog.Logger

	depth int
}

// MaxCallDepth bounds script call nesting so runaway recursion faults
// instead of exhausting the Go stack.
const MaxCallDepth = 512

// Option configures an Instance.
type Option func(*Instance)

// WithLogger sets the structured logger used for runtime diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(in *Instance) { in.log = log }
}

// WithOutput directs print output. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(in *Instance) { in.out = w }
}

// WithNode binds the host object scripts reach through 'self'.
func WithNode(node HostNode) Option {
	return func(in *Instance) { in.node = node }
}

// WithSignalSink routes emit_signal calls to the host.
func WithSignalSink(sink SignalSink) Option {
	return func(in *Instance) { in.sink = sink }
}

// NewInstance constructs an instance of a compiled script. Global
// initializers run once, in declaration order, each seeing only the
// globals seeded before it. A fault during seeding (such as an integer
// division by zero in an initializer) fails construction.
func NewInstance(out *compiler.Output, opts ...Option) (*Instance, error) {
	in := &Instance{
		program: out.Program,
		meta:    out.Meta,
		source:  out.Source,
		globals: NewScope(nil),
		out:     os.Stdout,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(in)
	}

	for _, g := range in.program.Globals {
		value, fault := in.evalExpression(in.globals, g.Value)
		if fault != nil {
			return nil, fmt.Errorf("initializing global '%s': %w", g.Name.Value, fault)
		}
		in.globals.Declare(g.Name.Value, Coerce(value, g.ResolvedType))
	}

	return in, nil
}

// Meta returns the script's property and signal metadata.
func (in *Instance) Meta() *meta.Interface {
	return in.meta
}

// Node returns the bound host object, or nil.
func (in *Instance) Node() HostNode {
	return in.node
}

// Invoke runs the named script function with the given arguments. The
// returned error, when non-nil, is always a *Fault; recoverable faults
// leave the instance usable for further invocations.
func (in *Instance) Invoke(name string, args ...Value) (Value, error) {
	fn := in.program.Function(name)
	if fn == nil {
		return nil, &Fault{Kind: FaultUndefined, Message: fmt.Sprintf("undefined function '%s'", name), Function: name}
	}
	return in.invoke(fn, args)
}

// HasLifecycle reports whether the script declares the given lifecycle
// callback.
func (in *Instance) HasLifecycle(kind ast.LifecycleKind) bool {
	return in.program.Lifecycle(kind) != nil
}

// InvokeLifecycle runs a lifecycle callback if the script declares it.
// Scripts that omit a callback are simply skipped.
func (in *Instance) InvokeLifecycle(kind ast.LifecycleKind, args ...Value) error {
	fn := in.program.Lifecycle(kind)
	if fn == nil {
		return nil
	}
	_, err := in.invoke(fn, args)
	return err
}

func (in *Instance) invoke(fn *ast.FunctionDecl, args []Value) (Value, error) {
	if len(args) != len(fn.Params) {
		return nil, &Fault{
			Kind:     FaultInternal,
			Message:  fmt.Sprintf("'%s' expects %d argument(s), got %d", fn.Name.Value, len(fn.Params), len(args)),
			Function: fn.Name.Value,
		}
	}

	scope := NewScope(in.globals)
	for i, p := range fn.Params {
		scope.Declare(p.Name, Coerce(args[i], p.Type))
	}

	// re-entrant hosts (a SignalSink invoking back into the instance)
	// nest inside the current call, they do not restart the count
	in.depth++
	defer func() { in.depth-- }()

	ctrl, fault := in.evalBlock(scope, fn.Body)
	if fault != nil {
		fault.Function = fn.Name.Value
		in.log.Debug("invocation faulted",
			"function", fn.Name.Value,
			"kind", string(fault.Kind),
			"recoverable", fault.Recoverable())
		return nil, fault
	}

	if ctrl.returned {
		return ctrl.value, nil
	}
	return Void{}, nil
}

// invokeFunction recurses into a user-defined function during evaluation.
func (in *Instance) invokeFunction(fn *ast.FunctionDecl, args []Value) (Value, *Fault) {
	if in.depth >= MaxCallDepth {
		return nil, newFault(FaultStackOverflow, "call depth exceeds %d in '%s'", MaxCallDepth, fn.Name.Value)
	}
	in.depth++
	defer func() { in.depth-- }()

	scope := NewScope(in.globals)
	for i, p := range fn.Params {
		scope.Declare(p.Name, Coerce(args[i], p.Type))
	}

	ctrl, fault := in.evalBlock(scope, fn.Body)
	if fault != nil {
		return nil, fault
	}
	if ctrl.returned {
		return ctrl.value, nil
	}
	return Void{}, nil
}

func (in *Instance) emit(name string, args []Value) {
	if in.sink == nil {
		in.log.Debug("signal emitted with no sink", "signal", name)
		return
	}
	in.sink.EmitSignal(name, args)
}

// PropertyError reports a rejected property access.
type PropertyError struct {
	Name   string
	Reason string
}

func (e *PropertyError) Error() string {
	return fmt.Sprintf("property '%s': %s", e.Name, e.Reason)
}

// GetProperty reads the current value of an exported property.
func (in *Instance) GetProperty(name string) (Value, error) {
	prop := in.meta.Property(name)
	if prop == nil {
		return nil, &PropertyError{Name: name, Reason: "not an exported property"}
	}
	value, ok := in.globals.Get(name)
	if !ok {
		return nil, &PropertyError{Name: name, Reason: "no backing variable"}
	}
	return value, nil
}

// SetProperty writes an exported property. The value must match the
// property's declared type (i32 widens to f32); a Range hint clamps
// numeric values into its bounds instead of rejecting them.
func (in *Instance) SetProperty(name string, value Value) error {
	prop := in.meta.Property(name)
	if prop == nil {
		return &PropertyError{Name: name, Reason: "not an exported property"}
	}

	value = Coerce(value, prop.Type)
	if value.Type() != prop.Type {
		return &PropertyError{
			Name:   name,
			Reason: fmt.Sprintf("expected %s, got %s", prop.Type, value.Type()),
		}
	}

	if prop.Hint.Kind == meta.HintRange {
		value = clampToRange(value, prop.Hint)
	}

	if !in.globals.Set(name, value) {
		return &PropertyError{Name: name, Reason: "no backing variable"}
	}
	return nil
}

// clampToRange pulls a numeric value into the hint's [Min, Max] bounds.
func clampToRange(value Value, hint meta.Hint) Value {
	switch n := value.(type) {
	case Int:
		v := n.V
		if v < int32(hint.Min) {
			v = int32(hint.Min)
		}
		if v > int32(hint.Max) {
			v = int32(hint.Max)
		}
		return Int{v}
	case Float:
		return Float{clampFloat(n.V, float32(hint.Min), float32(hint.Max))}
	}
	return value
}

// Rebuild constructs a fresh instance from a newly compiled program,
// carrying over this instance's bindings and the values of exported
// properties whose name and type survive the reload. Values for removed
// or retyped properties are dropped, never coerced. The receiver is left
// untouched; hot reload is a swap, not a patch.
func (in *Instance) Rebuild(out *compiler.Output, opts ...Option) (*Instance, error) {
	base := []Option{
		WithLogger(in.log),
		WithOutput(in.out),
		WithNode(in.node),
		WithSignalSink(in.sink),
	}
	next, err := NewInstance(out, append(base, opts...)...)
	if err != nil {
		return nil, err
	}

	for _, old := range in.meta.Properties {
		current, ok := in.globals.Get(old.Name)
		if !ok {
			continue
		}
		replacement := next.meta.Property(old.Name)
		if replacement == nil || replacement.Type != old.Type {
			continue
		}
		if err := next.SetProperty(old.Name, current); err != nil {
			next.log.Warn("dropping property value on reload",
				"property", old.Name, "error", err)
		}
	}

	return next, nil
}
