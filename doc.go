// Package routewire bridges a callback-driven hierarchical router with
// stream-based consumers.
//
// The router reports its lifecycle imperatively: it started, it stopped, a
// transition began, committed, failed, or was cancelled. The bridge turns
// those notifications into typed streams, derives "current route" and
// "affected subtree" values from them, and accepts a stream of navigation
// commands that it validates and dispatches back into the router.
//
//	notifications -> Source -> demux -> {starts, stops, transition streams,
//	                                     route, transitionRoute, lastError,
//	                                     RouteNode(name)}
//	commands      -> Sink   -> router methods -> ...more notifications
//
// The bridge implements no routing: URL matching, the state tree, and the
// intersection algorithm belong to the router and its helpers. It holds a
// non-owning router reference, adds no buffering, and owns no goroutine;
// every emission runs synchronously on the router's call stack.
//
// Typical use:
//
//	b, err := routewire.New(rtr)
//	if err != nil { ... }
//	commands := stream.New[any]()
//	d, err := b.Drive(commands)
//	if err != nil { ... }
//	defer d.Close()
//
//	d.Route().Subscribe(func(s *route.State) { render(s) })
//	commands.Emit([]any{"navigate", "users.detail", map[string]string{"id": "42"}})
package routewire
