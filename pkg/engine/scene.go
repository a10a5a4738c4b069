package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler"
	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/ast"
	"github.com/dev-parkins/FerrisScript-sub008/pkg/vm"
)

// SignalHandler receives script signal emissions along with the node that
// raised them.
type SignalHandler func(node *Node, signal string, args []vm.Value)

// Scene owns a set of nodes with attached script instances and fans the
// host's update loop out to their lifecycle callbacks.
//
// Callback order on attach follows the engine convention: _enter_tree
// first, then _ready. Detach runs _exit_tree and then frees the node, so
// stale references fault recoverably afterwards.
type Scene struct {
	log     *slog.Logger
	out     io.Writer
	signals SignalHandler

	entries []*entry
}

type entry struct {
	node *Node
	inst *vm.Instance
}

// SceneOption configures a Scene.
type SceneOption func(*Scene)

// WithLogger sets the scene's structured logger.
func WithLogger(log *slog.Logger) SceneOption {
	return func(s *Scene) { s.log = log }
}

// WithScriptOutput directs all scripts' print output.
func WithScriptOutput(w io.Writer) SceneOption {
	return func(s *Scene) { s.out = w }
}

// WithSignalHandler routes signal emissions from every attached script.
func WithSignalHandler(h SignalHandler) SceneOption {
	return func(s *Scene) { s.signals = h }
}

// NewScene creates an empty scene.
func NewScene(opts ...SceneOption) *Scene {
	s := &Scene{
		log: slog.Default(),
		out: os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Attach creates a node, instantiates the compiled script against it, and
// runs the entry callbacks. The node is live in the scene when Attach
// returns, even if an entry callback faulted; the fault is returned so
// the host can decide whether to detach.
func (s *Scene) Attach(name string, out *compiler.Output) (*Node, error) {
	node := NewNode(name)

	inst, err := vm.NewInstance(out,
		vm.WithLogger(s.log),
		vm.WithOutput(s.out),
		vm.WithNode(node),
		vm.WithSignalSink(vm.SignalSinkFunc(func(signal string, args []vm.Value) {
			s.emit(node, signal, args)
		})),
	)
	if err != nil {
		return nil, fmt.Errorf("attaching script to %q: %w", name, err)
	}

	s.entries = append(s.entries, &entry{node: node, inst: inst})
	s.log.Debug("node attached", "node", name)

	if err := inst.InvokeLifecycle(ast.LifecycleEnterTree); err != nil {
		return node, err
	}
	return node, inst.InvokeLifecycle(ast.LifecycleReady)
}

// Detach runs _exit_tree, frees the node, and removes it from the scene.
func (s *Scene) Detach(node *Node) error {
	for i, e := range s.entries {
		if e.node != node {
			continue
		}
		err := e.inst.InvokeLifecycle(ast.LifecycleExitTree)
		node.free()
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
		s.log.Debug("node detached", "node", node.Name())
		return err
	}
	return fmt.Errorf("node %q is not attached", node.Name())
}

// Update runs _process(delta) on every attached instance. Recoverable
// faults are logged and skipped so one broken script does not stall the
// scene; anything unrecoverable is returned.
func (s *Scene) Update(delta float32) error {
	return s.each(func(e *entry) error {
		return e.inst.InvokeLifecycle(ast.LifecycleProcess, vm.Float{V: delta})
	})
}

// PhysicsUpdate runs _physics_process(delta) on every attached instance.
func (s *Scene) PhysicsUpdate(delta float32) error {
	return s.each(func(e *entry) error {
		return e.inst.InvokeLifecycle(ast.LifecyclePhysicsProcess, vm.Float{V: delta})
	})
}

// Input delivers an input event to every attached instance's _input.
// The event travels as an opaque node reference.
func (s *Scene) Input(event vm.HostNode) error {
	return s.each(func(e *entry) error {
		return e.inst.InvokeLifecycle(ast.LifecycleInput, vm.NodeRef{Node: event})
	})
}

func (s *Scene) each(invoke func(*entry) error) error {
	var fatal []error
	for _, e := range s.entries {
		err := invoke(e)
		if err == nil {
			continue
		}
		var fault *vm.Fault
		if errors.As(err, &fault) && fault.Recoverable() {
			s.log.Warn("script fault", "node", e.node.Name(), "error", err)
			continue
		}
		fatal = append(fatal, fmt.Errorf("node %q: %w", e.node.Name(), err))
	}
	return errors.Join(fatal...)
}

// ReplaceScript hot-reloads the script attached to node. The new program
// is instantiated fresh; exported property values carry over where name
// and type still match. On error the old instance stays in place.
func (s *Scene) ReplaceScript(node *Node, out *compiler.Output) error {
	for _, e := range s.entries {
		if e.node != node {
			continue
		}
		next, err := e.inst.Rebuild(out)
		if err != nil {
			return fmt.Errorf("reloading script on %q: %w", node.Name(), err)
		}
		e.inst = next
		s.log.Info("script reloaded", "node", node.Name())
		return nil
	}
	return fmt.Errorf("node %q is not attached", node.Name())
}

// Instance returns the script instance attached to node, or nil.
func (s *Scene) Instance(node *Node) *vm.Instance {
	for _, e := range s.entries {
		if e.node == node {
			return e.inst
		}
	}
	return nil
}

// NodeByName returns the first attached node with the given name, or nil.
func (s *Scene) NodeByName(name string) *Node {
	for _, e := range s.entries {
		if e.node.Name() == name {
			return e.node
		}
	}
	return nil
}

// Nodes returns the attached nodes in attach order.
func (s *Scene) Nodes() []*Node {
	nodes := make([]*Node, len(s.entries))
	for i, e := range s.entries {
		nodes[i] = e.node
	}
	return nodes
}

// Len returns the number of attached nodes.
func (s *Scene) Len() int {
	return len(s.entries)
}

func (s *Scene) emit(node *Node, signal string, args []vm.Value) {
	if s.signals == nil {
		s.log.Debug("signal emitted", "node", node.Name(), "signal", signal)
		return
	}
	s.signals(node, signal, args)
}
