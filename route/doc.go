// Package route defines hierarchical route identity for the bridge.
//
// Routes are named with dot notation, mirroring the router's state tree:
//
//	users                  - top-level node
//	users.detail           - child node
//	admin.settings.theme   - deeply nested node
//
// A route name encodes its own ancestry, so subtree questions ("is this node
// inside the changed region?") reduce to segment-aware prefix checks.
//
// State is the immutable snapshot the router reports for its current
// position. Intersection captures the deepest node two states have in
// common, which consumers use to decide whether a transition touched the
// subtree they care about.
package route
