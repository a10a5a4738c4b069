package vm

// Scope is one lexical environment frame. Lookups walk outward through
// parents; the outermost scope holds the instance's globals. No locking:
// an instance is single-threaded by contract.
type Scope struct {
	variables map[string]Value
	parent    *Scope
}

// NewScope creates a scope chained to parent. A nil parent makes a global
// scope.
func NewScope(parent *Scope) *Scope {
	return &Scope{
		variables: make(map[string]Value),
		parent:    parent,
	}
}

// Parent returns the enclosing scope, or nil for the global scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Get retrieves a variable by name, searching this scope first and then
// the parents.
func (s *Scope) Get(name string) (Value, bool) {
	if value, ok := s.variables[name]; ok {
		return value, true
	}
	if s.parent != nil {
		return s.parent.Get(name)
	}
	return nil, false
}

// Declare binds name in this scope, shadowing any outer binding.
func (s *Scope) Declare(name string, value Value) {
	s.variables[name] = value
}

// Set updates the nearest existing binding of name. It reports false when
// no scope in the chain declares the name.
func (s *Scope) Set(name string, value Value) bool {
	if _, ok := s.variables[name]; ok {
		s.variables[name] = value
		return true
	}
	if s.parent != nil {
		return s.parent.Set(name, value)
	}
	return false
}
