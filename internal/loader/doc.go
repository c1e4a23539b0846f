// Package loader runs the data stage: every load phase, every mod in load
// order, one script at a time.
//
// For each mod and phase the loader executes the mod's script against the
// shared raw table, merges the script's definitions into that table,
// converts them into typed prototypes and inserts the results into the
// DataTable. A mod whose script fails is marked failed and skipped for the
// remaining phases; prototypes it committed earlier stay in the table. Once
// every phase has run the table is frozen and its references validated.
//
// Loading never stops at the first bad prototype. Every problem lands in
// the Report so that one run surfaces all of them.
package loader
