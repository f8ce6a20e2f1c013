package route

// Intersection is the deepest route node common to two states' ancestries.
// A zero Node means the states share no ancestor: the whole tree changed,
// and every node is considered affected.
type Intersection struct {
	// Node is the deepest common ancestor, or "" when there is none.
	Node Name
}

// IsTopLevel returns true if the intersection denotes a full top-level
// change (no common ancestor).
func (i Intersection) IsTopLevel() bool {
	return i.Node == ""
}

// Affects returns true if a transition with this intersection touches the
// subtree rooted at node. That is the case when the intersection is
// top-level, equals node, or is an ancestor of node.
func (i Intersection) Affects(node Name) bool {
	if i.IsTopLevel() {
		return true
	}
	return node.HasPrefix(i.Node)
}

// IntersectFunc computes the intersection of two states. The bridge consumes
// the function as a black box; Intersect below is the default.
type IntersectFunc func(to, from *State) Intersection

// Intersect returns the deepest common ancestor of two states.
//
// Segments are compared from the root down; a segment is only common when
// its name matches and every parameter used at or above it is unchanged.
// A parameter change therefore invalidates the node it is bound to and
// everything below it, which is what re-render consumers expect.
func Intersect(to, from *State) Intersection {
	if to == nil || from == nil {
		return Intersection{}
	}
	if !to.Params.Equal(from.Params) && to.Name == from.Name {
		// Same node, different params: the node itself changed.
		return Intersection{Node: to.Name.Parent()}
	}

	toSegs := to.Name.Segments()
	fromSegs := from.Name.Segments()

	var common Name
	for i := 0; i < len(toSegs) && i < len(fromSegs); i++ {
		if toSegs[i] != fromSegs[i] {
			break
		}
		common = common.Child(toSegs[i])
	}
	return Intersection{Node: common}
}
