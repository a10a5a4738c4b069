// Package meta describes the editor-facing surface of a compiled script:
// exported properties with their hints, and declared signals. The host
// inspects this metadata without running any script code.
package meta

import (
	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/types"
)

// HintKind discriminates the export hint attached to a property.
type HintKind int

const (
	HintNone HintKind = iota
	HintRange
	HintEnum
	HintFile
)

func (k HintKind) String() string {
	switch k {
	case HintRange:
		return "range"
	case HintEnum:
		return "enum"
	case HintFile:
		return "file"
	default:
		return "none"
	}
}

// Hint carries the arguments of an export annotation. Only the fields
// matching Kind are meaningful.
type Hint struct {
	Kind HintKind

	// Range
	Min  float64
	Max  float64
	Step float64

	// Enum
	Values []string

	// File
	Filter string
}

// Property describes one exported global variable, in declaration order.
type Property struct {
	Name string
	Type types.Type
	Hint Hint

	// Default carries the declared initializer when it is a plain
	// literal (int32, float32, bool or string), or nil when the
	// initializer needs evaluation.
	Default any
}

// Param is one declared signal parameter.
type Param struct {
	Name string
	Type types.Type
}

// Signal describes one declared signal, in declaration order.
type Signal struct {
	Name   string
	Params []Param
}

// Interface is the complete metadata surface of a compiled script.
type Interface struct {
	Properties []Property
	Signals    []Signal
}

// Property returns the exported property with the given name, or nil.
func (i *Interface) Property(name string) *Property {
	for idx := range i.Properties {
		if i.Properties[idx].Name == name {
			return &i.Properties[idx]
		}
	}
	return nil
}

// Signal returns the declared signal with the given name, or nil.
func (i *Interface) Signal(name string) *Signal {
	for idx := range i.Signals {
		if i.Signals[idx].Name == name {
			return &i.Signals[idx]
		}
	}
	return nil
}
