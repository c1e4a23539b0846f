// internal/value/decoder.go
package value

import "fmt"

// Decoder is implemented by Go types that read themselves from a Value
// instead of being decoded field by field, e.g. energy strings like "150kW".
// DecodeValue is called on a pointer to a zero value.
type Decoder interface {
	DecodeValue(v Value) error
}

// MismatchError reports a value whose shape does not fit the expected one.
type MismatchError struct {
	Expected string
	Actual   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Expected, e.Actual)
}

// Mismatch builds a MismatchError for v.
func Mismatch(expected string, got Value) error {
	return &MismatchError{Expected: expected, Actual: got.Describe()}
}
