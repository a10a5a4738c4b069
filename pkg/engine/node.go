// Package engine hosts FerrisScript instances in a scene of nodes and
// drives their lifecycle callbacks from the host's update loop. It is
// renderer-agnostic: drawing, input devices and windowing live with the
// embedding application.
package engine

import (
	"fmt"

	"github.com/dev-parkins/FerrisScript-sub008/pkg/vm"
)

// Node is a host object a script can be attached to. Scripts reach it
// through 'self' and see its built-in fields (position, rotation, scale,
// visible).
type Node struct {
	name  string
	alive bool

	position vm.Vector2
	rotation float32
	scale    vm.Vector2
	visible  bool
}

// NewNode creates a live node with identity transform defaults.
func NewNode(name string) *Node {
	return &Node{
		name:    name,
		alive:   true,
		scale:   vm.Vector2{X: 1, Y: 1},
		visible: true,
	}
}

// Name returns the node's name.
func (n *Node) Name() string { return n.name }

// Alive reports whether the node is still part of a scene. Detaching a
// node marks it dead; script references held past that point fault
// instead of touching freed state.
func (n *Node) Alive() bool { return n.alive }

// Field implements vm.HostNode.
func (n *Node) Field(name string) (vm.Value, error) {
	switch name {
	case "position":
		return n.position, nil
	case "rotation":
		return vm.Float{V: n.rotation}, nil
	case "scale":
		return n.scale, nil
	case "visible":
		return vm.Bool{V: n.visible}, nil
	}
	return nil, fmt.Errorf("node has no field %q", name)
}

// SetField implements vm.HostNode.
func (n *Node) SetField(name string, value vm.Value) error {
	switch name {
	case "position":
		if v, ok := value.(vm.Vector2); ok {
			n.position = v
			return nil
		}
	case "rotation":
		if v, ok := value.(vm.Float); ok {
			n.rotation = v.V
			return nil
		}
		if v, ok := value.(vm.Int); ok {
			n.rotation = float32(v.V)
			return nil
		}
	case "scale":
		if v, ok := value.(vm.Vector2); ok {
			n.scale = v
			return nil
		}
	case "visible":
		if v, ok := value.(vm.Bool); ok {
			n.visible = v.V
			return nil
		}
	default:
		return fmt.Errorf("node has no field %q", name)
	}
	return fmt.Errorf("wrong type %s for node field %q", value.Type(), name)
}

// Position returns the node's position for the host side.
func (n *Node) Position() vm.Vector2 { return n.position }

// SetPosition moves the node from the host side.
func (n *Node) SetPosition(p vm.Vector2) { n.position = p }

// Rotation returns the node's rotation in radians.
func (n *Node) Rotation() float32 { return n.rotation }

// Scale returns the node's scale.
func (n *Node) Scale() vm.Vector2 { return n.scale }

// Visible reports whether the node should be drawn.
func (n *Node) Visible() bool { return n.visible }

func (n *Node) free() { n.alive = false }
