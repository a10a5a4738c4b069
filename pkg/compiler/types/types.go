// Package types defines the closed type set of FerrisScript and the rules
// that relate types to each other: the field tables of the structured Godot
// types, the implicit i32 to f32 widening rule, struct-literal
// constructibility, and export eligibility.
package types

// Type is one member of the closed FerrisScript type set. Unknown is an
// internal checker sentinel and never appears in a finished program.
type Type int

const (
	Unknown Type = iota
	Void
	I32
	F32
	Bool
	String
	Vector2
	Color
	Rect2
	Transform2D
	Node
	InputEvent
)

var names = map[Type]string{
	Unknown:     "<unknown>",
	Void:        "void",
	I32:         "i32",
	F32:         "f32",
	Bool:        "bool",
	String:      "String",
	Vector2:     "Vector2",
	Color:       "Color",
	Rect2:       "Rect2",
	Transform2D: "Transform2D",
	Node:        "Node",
	InputEvent:  "InputEvent",
}

func (t Type) String() string {
	if n, ok := names[t]; ok {
		return n
	}
	return "<unknown>"
}

// FromName resolves a source-level type name.
func FromName(name string) (Type, bool) {
	switch name {
	case "i32":
		return I32, true
	case "f32":
		return F32, true
	case "bool":
		return Bool, true
	case "String":
		return String, true
	case "Vector2":
		return Vector2, true
	case "Color":
		return Color, true
	case "Rect2":
		return Rect2, true
	case "Transform2D":
		return Transform2D, true
	case "Node":
		return Node, true
	case "InputEvent":
		return InputEvent, true
	}
	return Unknown, false
}

// Field is one named field of a structured type.
type Field struct {
	Name string
	Type Type
}

// Field tables for the structured types. Order matters: struct literals and
// inspector rows present fields in this order.
var fields = map[Type][]Field{
	Vector2: {{"x", F32}, {"y", F32}},
	Color:   {{"r", F32}, {"g", F32}, {"b", F32}, {"a", F32}},
	Rect2:   {{"position", Vector2}, {"size", Vector2}},
	Transform2D: {
		{"position", Vector2},
		{"rotation", F32},
		{"scale", Vector2},
	},
	Node: {
		{"position", Vector2},
		{"rotation", F32},
		{"scale", Vector2},
		{"visible", Bool},
	},
}

// Fields returns the field table of t, if t has one.
func Fields(t Type) ([]Field, bool) {
	f, ok := fields[t]
	return f, ok
}

// FieldType returns the type of the named field of t.
func FieldType(t Type, name string) (Type, bool) {
	for _, f := range fields[t] {
		if f.Name == name {
			return f.Type, true
		}
	}
	return Unknown, false
}

// HasFields reports whether t supports field access.
func HasFields(t Type) bool {
	_, ok := fields[t]
	return ok
}

// Constructible reports whether t can be built with a struct literal.
// Node is excluded: nodes come from the host, never from script literals.
func Constructible(t Type) bool {
	switch t {
	case Vector2, Color, Rect2, Transform2D:
		return true
	}
	return false
}

// Exportable reports whether a global of type t may carry an export
// annotation.
func Exportable(t Type) bool {
	switch t {
	case I32, F32, Bool, String, Vector2, Color, Rect2, Transform2D:
		return true
	}
	return false
}

// Numeric reports whether t is i32 or f32.
func Numeric(t Type) bool {
	return t == I32 || t == F32
}

// AssignableTo reports whether a value of type from may be assigned to a
// target of type to. The only implicit conversion is the i32 to f32
// widening; narrowing f32 to i32 is never allowed, and the non-numeric
// types only assign to themselves.
func AssignableTo(from, to Type) bool {
	if from == to {
		return true
	}
	return from == I32 && to == F32
}
