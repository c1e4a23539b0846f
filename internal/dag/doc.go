// Package dag is a small directed acyclic graph used to order mods by their
// dependencies. Edges point from a dependency to its dependent. Every
// operation that returns several nodes returns them in a deterministic
// order so that load orders are reproducible.
package dag
