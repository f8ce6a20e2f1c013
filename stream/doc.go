// Package stream provides the minimal synchronous push streams the bridge
// is built on.
//
// There are two shapes:
//
//   - Stream[T]: a multicast event stream. Emit delivers the value to every
//     active subscriber on the emitter's call stack, in subscription order.
//     Late subscribers see nothing from the past.
//   - Value[T]: a last-value cache plus broadcast. Set stores the value and
//     broadcasts it; Subscribe replays the current value (when one exists)
//     before delivering future ones, so late subscribers are never left
//     without a reading.
//
// Nothing here owns a goroutine. Delivery is synchronous and re-entrant:
// handlers run on whichever stack called Emit or Set, and may subscribe or
// cancel during delivery. Subscriber lists are snapshotted before each
// delivery, so re-entrant mutation affects later emissions only.
package stream
