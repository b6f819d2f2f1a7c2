// ABOUTME: Tests for the tolerant argument accessors.

package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringArg(t *testing.T) {
	args := map[string]any{"name": "widget", "count": 3}

	assert.Equal(t, "widget", stringArg(args, "name"))
	assert.Equal(t, "", stringArg(args, "count"))
	assert.Equal(t, "", stringArg(args, "missing"))
}

func TestIntArg(t *testing.T) {
	// JSON decoding hands us float64, direct construction may use int.
	args := map[string]any{"a": float64(42), "b": 7, "c": "12"}

	assert.Equal(t, 42, intArg(args, "a"))
	assert.Equal(t, 7, intArg(args, "b"))
	assert.Equal(t, 0, intArg(args, "c"))
	assert.Equal(t, 0, intArg(args, "missing"))
}

func TestBoolArg(t *testing.T) {
	args := map[string]any{"yes": true, "no": false, "other": "true"}

	v, ok := boolArg(args, "yes")
	assert.True(t, v)
	assert.True(t, ok)

	v, ok = boolArg(args, "no")
	assert.False(t, v)
	assert.True(t, ok)

	_, ok = boolArg(args, "other")
	assert.False(t, ok)

	_, ok = boolArg(args, "missing")
	assert.False(t, ok)
}

func TestStringListArg(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want []string
	}{
		{"array", map[string]any{"v": []any{"a", "b"}}, []string{"a", "b"}},
		{"array skips non-strings", map[string]any{"v": []any{"a", 1, "", "b"}}, []string{"a", "b"}},
		{"csv", map[string]any{"v": "a,b"}, []string{"a", "b"}},
		{"csv trims whitespace", map[string]any{"v": " a , b "}, []string{"a", "b"}},
		{"csv drops empties", map[string]any{"v": "a,,b,"}, []string{"a", "b"}},
		{"empty string", map[string]any{"v": ""}, nil},
		{"empty array", map[string]any{"v": []any{}}, nil},
		{"missing", map[string]any{}, nil},
		{"wrong type", map[string]any{"v": 5}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stringListArg(tt.args, "v"))
		})
	}
}
