// Package quantity defines the named scalar containers shared by every
// part of the engine.
//
//   - [Store]: mutable name → value mapping used for states, parameters,
//     and module bindings
//   - [Frame]: name → equal-length column mapping used for driver tables
//     and results
//
// Module binding relies on Store's map semantics: a module holding a
// Store observes every later mutation of it, which is how a dynamical
// system feeds fresh state and driver values to its modules each step.
package quantity
