// Package lifecycle unifies a router's callback-driven notifications into a
// single ordered event model.
//
// A router reports six things: it started, it stopped, and a transition
// attempt began, committed, failed, or was cancelled. Event carries any of
// them in tagged-union form; Source registers a Hook with the router and
// forwards each notification as one Event, synchronously, on the router's
// own call stack.
package lifecycle
