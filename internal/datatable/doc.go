// Package datatable provides the DataTable: the catalog that owns every
// converted prototype of one load session, keyed by (kind, name).
//
// # Purpose
//
// The table is built empty when a session starts, filled while mods load in
// their fixed order, then frozen. Inserting an existing key replaces the
// stored prototype and hands the displaced one back to the caller so that
// overrides can be reported. Names are unique within a kind only, so the same
// name may exist under several kinds at once.
//
// # Override Policy
//
// An optional OverridePolicy decides, per kind and load phase, whether a
// second insert may replace the first. A refused replacement fails with
// *OverrideNotAllowedError and leaves the stored prototype untouched.
//
// # Concurrency Model
//
// Before Freeze, mutations and reads are serialized by a sync.RWMutex. Freeze
// flips an atomic flag after which Insert fails with ErrTableFrozen and reads
// skip the lock entirely, so a frozen table can be shared by any number of
// readers without contention.
//
// # Ordering
//
// Kinds are listed in the order they were first inserted and names within a
// kind in the order they were first inserted. Replacing a prototype keeps
// its original position, which keeps listings deterministic across runs.
package datatable
