// Package event provides the in-process publish/subscribe bus for session
// lifecycle notifications. Dispatch is synchronous: Publish invokes every
// matching listener before returning, isolating panics so that one faulty
// observer cannot break the publishing operation.
//
// Listeners run on the publishing goroutine while the lifecycle controller
// may still hold its own lock, so they must not call back into mutating
// controller operations. Observe, record, and hand off to another goroutine
// if further work is needed.
package event
