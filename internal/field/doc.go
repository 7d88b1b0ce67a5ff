// Package field implements the falling-logo particle field.
//
// A field owns a fixed, ordered set of particles. Each frame every particle
// falls by its own speed, respawns above the viewport once it passes the
// bottom edge, and is flagged as highlighted when the pointer is close to
// its center:
//
//   - [Spawn]: initial randomized layout for a list of logos
//   - [Advance]: pure frame step, state in and state out
//   - [Field]: stateful wrapper that samples the latest pointer and keeps
//     the current snapshot for presentation layers
//
// # Example
//
//	f := field.New(logos, field.Viewport{Width: 800, Height: 600}, field.DefaultConfig(), rng)
//	f.SetPointer(mx, my)
//	snapshot := f.Step(field.Viewport{Width: 800, Height: 600})
//
// # Thread Safety
//
// [Field.SetPointer] may be called from any goroutine at any rate; the
// pointer is stored as a single (x, y) pair so a frame never observes a torn
// update. Step, Reset and Snapshot are serialized internally.
package field
