package route

// Params holds route parameter values keyed by parameter name.
type Params map[string]string

// Clone returns a copy of the params, or nil for nil params.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Equal returns true if both param sets contain the same keys and values.
// Nil and empty params compare equal.
func (p Params) Equal(other Params) bool {
	if len(p) != len(other) {
		return false
	}
	for k, v := range p {
		ov, ok := other[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// State is a snapshot of a router position: a route name, the parameter
// values bound to it, and the path the router resolved it from.
//
// States are owned by the router. The bridge treats every State as immutable
// once observed and never holds one beyond the last-value caches documented
// on the driver streams. Identity is structural (name + params), never by
// pointer.
type State struct {
	// Name is the dot-segmented route identifier.
	Name Name

	// Params are the parameter values bound during matching.
	Params Params

	// Path is the concrete path the state was built or matched from.
	Path string
}

// Equal compares two states structurally by name and params.
// Two nil states are equal; a nil state never equals a non-nil one.
func (s *State) Equal(other *State) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.Name == other.Name && s.Params.Equal(other.Params)
}

// Clone returns a deep copy of the state, or nil for a nil state.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	return &State{Name: s.Name, Params: s.Params.Clone(), Path: s.Path}
}
