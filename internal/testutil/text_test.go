package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnindent(t *testing.T) {
	got := Unindent(`
		prototype "item" "a" {
		  stack_size = 1
		}
	`)
	assert.Equal(t, "prototype \"item\" \"a\" {\n  stack_size = 1\n}\n", got)
	assert.Equal(t, "", Unindent("\n"))
	assert.Equal(t, "x\n", Unindent("x"))
}
