// internal/value/doc.go

/*
Package value defines the dynamically typed tree that mod scripts produce.

A Value is a tagged union of nil, boolean, integer, float, string and
table. A Table is an ordered sequence of key/value pairs where a key is
either a string or an integer. Tables are used both as records (string
keys) and as arrays (integer keys 1..n), exactly as a script sees them.

The tree is read-only once a script has produced it. Helpers on Table
answer the questions the conversion engine asks: field lookup, sequence
detection and duplicate key detection.
*/
package value
