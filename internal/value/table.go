// internal/value/table.go
package value

import "strconv"

// Key is a table key: either a string or an integer.
type Key struct {
	s     string
	i     int64
	isInt bool
}

// StringKey creates a string key.
func StringKey(s string) Key { return Key{s: s} }

// IntKey creates an integer key.
func IntKey(i int64) Key { return Key{i: i, isInt: true} }

// IsInt reports whether k is an integer key.
func (k Key) IsInt() bool { return k.isInt }

// Str returns the string form of a string key.
func (k Key) Str() (string, bool) { return k.s, !k.isInt }

// Int returns the integer form of an integer key.
func (k Key) Int() (int64, bool) { return k.i, k.isInt }

func (k Key) String() string {
	if k.isInt {
		return strconv.FormatInt(k.i, 10)
	}
	return k.s
}

// Entry is a single key/value pair of a table.
type Entry struct {
	Key   Key
	Value Value
}

// Table is an ordered sequence of key/value pairs. Pairs keep the order in
// which they were added and a key may appear more than once; consumers that
// require unique keys check with FirstDuplicate.
type Table struct {
	entries []Entry
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{}
}

// Sequence builds an array-like table from the given values, keyed 1..n.
func Sequence(values ...Value) *Table {
	t := &Table{entries: make([]Entry, 0, len(values))}
	for _, v := range values {
		t.Append(v)
	}
	return t
}

// Set appends a pair. An existing pair with the same key is kept.
func (t *Table) Set(k Key, v Value) *Table {
	t.entries = append(t.entries, Entry{Key: k, Value: v})
	return t
}

// SetField appends a string-keyed pair.
func (t *Table) SetField(name string, v Value) *Table {
	return t.Set(StringKey(name), v)
}

// Append adds v under the next integer key, len+1.
func (t *Table) Append(v Value) *Table {
	return t.Set(IntKey(int64(len(t.entries)+1)), v)
}

// Put replaces the value of the first pair with key k, or appends a new
// pair if k is absent. This mirrors plain assignment in a script.
func (t *Table) Put(k Key, v Value) *Table {
	for i := range t.entries {
		if t.entries[i].Key == k {
			t.entries[i].Value = v
			return t
		}
	}
	return t.Set(k, v)
}

// Delete removes every pair with key k and reports whether any existed.
func (t *Table) Delete(k Key) bool {
	kept := t.entries[:0]
	for _, e := range t.entries {
		if e.Key != k {
			kept = append(kept, e)
		}
	}
	removed := len(kept) != len(t.entries)
	clear(t.entries[len(kept):])
	t.entries = kept
	return removed
}

// Get returns the value of the first pair with key k.
func (t *Table) Get(k Key) (Value, bool) {
	if t == nil {
		return Nil(), false
	}
	for _, e := range t.entries {
		if e.Key == k {
			return e.Value, true
		}
	}
	return Nil(), false
}

// Field returns the value stored under a string key.
func (t *Table) Field(name string) (Value, bool) {
	return t.Get(StringKey(name))
}

// Len returns the number of pairs.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries returns the pairs in insertion order. The slice must not be modified.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	return t.entries
}

// IsSequence reports whether the table is array-like: its keys are exactly
// the integers 1..n in order. The empty table is a sequence.
func (t *Table) IsSequence() bool {
	for i, e := range t.Entries() {
		n, ok := e.Key.Int()
		if !ok || n != int64(i+1) {
			return false
		}
	}
	return true
}

// Values returns the values of an array-like table in order.
func (t *Table) Values() []Value {
	out := make([]Value, 0, t.Len())
	for _, e := range t.Entries() {
		out = append(out, e.Value)
	}
	return out
}

// FirstDuplicate returns the first key that occurs more than once.
func (t *Table) FirstDuplicate() (Key, bool) {
	seen := make(map[Key]struct{}, t.Len())
	for _, e := range t.Entries() {
		if _, ok := seen[e.Key]; ok {
			return e.Key, true
		}
		seen[e.Key] = struct{}{}
	}
	return Key{}, false
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := &Table{entries: make([]Entry, len(t.entries))}
	for i, e := range t.entries {
		if sub, ok := e.Value.AsTable(); ok {
			e.Value = TableOf(sub.Clone())
		}
		out.entries[i] = e
	}
	return out
}
