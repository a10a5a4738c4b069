// Package vm is the FerrisScript runtime: a tree-walking evaluator over
// type-checked programs, plus the Instance type that binds one compiled
// script to one host object.
package vm

import (
	"fmt"
	"strconv"

	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/types"
)

// Value is a FerrisScript runtime value. Structured values (Vector2 and
// friends) have value semantics: copying a Value copies the whole thing,
// and field writes go through read-modify-write of the enclosing value.
type Value interface {
	// Type returns the static type this value inhabits.
	Type() types.Type
	// String renders the value the way print displays it.
	String() string
}

// Int is an i32 value.
type Int struct{ V int32 }

// Float is an f32 value.
type Float struct{ V float32 }

// Bool is a bool value.
type Bool struct{ V bool }

// Str is a String value.
type Str struct{ V string }

// Vector2 is a 2D vector of f32 components.
type Vector2 struct {
	X float32
	Y float32
}

// Color is an RGBA color with f32 channels.
type Color struct {
	R float32
	G float32
	B float32
	A float32
}

// Rect2 is a position/size pair of Vector2s.
type Rect2 struct {
	Position Vector2
	Size     Vector2
}

// Transform2D is a position, rotation and scale.
type Transform2D struct {
	Position Vector2
	Rotation float32
	Scale    Vector2
}

// NodeRef is an opaque handle to a host object. The evaluator checks
// liveness through the HostNode interface before every dereference.
type NodeRef struct{ Node HostNode }

// Void is the absence of a value.
type Void struct{}

func (v Int) Type() types.Type         { return types.I32 }
func (v Float) Type() types.Type       { return types.F32 }
func (v Bool) Type() types.Type        { return types.Bool }
func (v Str) Type() types.Type         { return types.String }
func (v Vector2) Type() types.Type     { return types.Vector2 }
func (v Color) Type() types.Type       { return types.Color }
func (v Rect2) Type() types.Type       { return types.Rect2 }
func (v Transform2D) Type() types.Type { return types.Transform2D }
func (v NodeRef) Type() types.Type     { return types.Node }
func (v Void) Type() types.Type        { return types.Void }

func (v Int) String() string  { return strconv.FormatInt(int64(v.V), 10) }
func (v Bool) String() string { return strconv.FormatBool(v.V) }
func (v Str) String() string  { return v.V }

func (v Float) String() string {
	return strconv.FormatFloat(float64(v.V), 'g', -1, 32)
}

func (v Vector2) String() string {
	return fmt.Sprintf("(%s, %s)", Float{v.X}, Float{v.Y})
}

func (v Color) String() string {
	return fmt.Sprintf("(%s, %s, %s, %s)", Float{v.R}, Float{v.G}, Float{v.B}, Float{v.A})
}

func (v Rect2) String() string {
	return fmt.Sprintf("[P: %s, S: %s]", v.Position, v.Size)
}

func (v Transform2D) String() string {
	return fmt.Sprintf("[P: %s, R: %s, S: %s]", v.Position, Float{v.Rotation}, v.Scale)
}

func (v NodeRef) String() string {
	if v.Node == nil {
		return "Node(nil)"
	}
	return "Node(" + v.Node.Name() + ")"
}

func (v Void) String() string { return "void" }

// ZeroValue returns the zero value of a FerrisScript type: 0, 0.0, false,
// "", or a structured value with all components zeroed. Node zero is a nil
// reference.
func ZeroValue(t types.Type) Value {
	switch t {
	case types.I32:
		return Int{}
	case types.F32:
		return Float{}
	case types.Bool:
		return Bool{}
	case types.String:
		return Str{}
	case types.Vector2:
		return Vector2{}
	case types.Color:
		return Color{}
	case types.Rect2:
		return Rect2{}
	case types.Transform2D:
		return Transform2D{}
	case types.Node, types.InputEvent:
		return NodeRef{}
	}
	return Void{}
}

// Coerce widens v to the target type where the language allows it, which
// is only i32 to f32. Any other mismatch returns v unchanged; the type
// checker guarantees those never reach the evaluator.
func Coerce(v Value, target types.Type) Value {
	if target == types.F32 {
		if iv, ok := v.(Int); ok {
			return Float{float32(iv.V)}
		}
	}
	return v
}

// asBool unwraps a Bool value.
func asBool(v Value) (bool, bool) {
	b, ok := v.(Bool)
	return b.V, ok
}

// asFloat widens an Int or Float to float32.
func asFloat(v Value) (float32, bool) {
	switch n := v.(type) {
	case Float:
		return n.V, true
	case Int:
		return float32(n.V), true
	}
	return 0, false
}

// getField reads one field of a structured value.
func getField(v Value, name string) (Value, bool) {
	switch s := v.(type) {
	case Vector2:
		switch name {
		case "x":
			return Float{s.X}, true
		case "y":
			return Float{s.Y}, true
		}
	case Color:
		switch name {
		case "r":
			return Float{s.R}, true
		case "g":
			return Float{s.G}, true
		case "b":
			return Float{s.B}, true
		case "a":
			return Float{s.A}, true
		}
	case Rect2:
		switch name {
		case "position":
			return s.Position, true
		case "size":
			return s.Size, true
		}
	case Transform2D:
		switch name {
		case "position":
			return s.Position, true
		case "rotation":
			return Float{s.Rotation}, true
		case "scale":
			return s.Scale, true
		}
	}
	return nil, false
}

// setField returns a copy of v with one field replaced. Value semantics:
// the original is untouched.
func setField(v Value, name string, fv Value) (Value, bool) {
	switch s := v.(type) {
	case Vector2:
		f, ok := asFloat(fv)
		if !ok {
			return nil, false
		}
		switch name {
		case "x":
			s.X = f
			return s, true
		case "y":
			s.Y = f
			return s, true
		}
	case Color:
		f, ok := asFloat(fv)
		if !ok {
			return nil, false
		}
		switch name {
		case "r":
			s.R = f
			return s, true
		case "g":
			s.G = f
			return s, true
		case "b":
			s.B = f
			return s, true
		case "a":
			s.A = f
			return s, true
		}
	case Rect2:
		switch name {
		case "position":
			if vec, ok := fv.(Vector2); ok {
				s.Position = vec
				return s, true
			}
		case "size":
			if vec, ok := fv.(Vector2); ok {
				s.Size = vec
				return s, true
			}
		}
	case Transform2D:
		switch name {
		case "position":
			if vec, ok := fv.(Vector2); ok {
				s.Position = vec
				return s, true
			}
		case "rotation":
			if f, ok := asFloat(fv); ok {
				s.Rotation = f
				return s, true
			}
		case "scale":
			if vec, ok := fv.(Vector2); ok {
				s.Scale = vec
				return s, true
			}
		}
	}
	return nil, false
}
