package vm

// HostNode is the surface a host object exposes to scripts through 'self'
// and NodeRef values. Field reads and writes use FerrisScript's Node field
// set (position, rotation, scale, visible).
//
// The evaluator calls Alive before every access; a false answer turns the
// access into an InvalidReference fault instead of a crash, which is how
// freed host objects are surfaced to scripts.
type HostNode interface {
	// Name identifies the node for logging and print output.
	Name() string
	// Alive reports whether the underlying host object still exists.
	Alive() bool
	// Field reads one built-in node field.
	Field(name string) (Value, error)
	// SetField writes one built-in node field.
	SetField(name string, value Value) error
}

// SignalSink receives signal emissions from a script. The runtime does no
// subscriber dispatch of its own; routing an emission to listeners is the
// host's concern.
type SignalSink interface {
	EmitSignal(name string, args []Value)
}

// SignalSinkFunc adapts a function to the SignalSink interface.
type SignalSinkFunc func(name string, args []Value)

func (f SignalSinkFunc) EmitSignal(name string, args []Value) { f(name, args) }
