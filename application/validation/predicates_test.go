package validation

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsOneOf(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"decoded one", float64(1), true},
		{"decoded zero", float64(0), true},
		{"int one", 1, true},
		{"json number", json.Number("0"), true},
		{"true", true, true},
		{"false", false, true},
		{"two", float64(2), false},
		{"string one", "1", false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOneOf(tt.value, ActiveFlagValues...))
		})
	}
}

func TestIsOneOfObjects(t *testing.T) {
	user := map[string]any{"id": float64(1)}

	assert.NotPanics(t, func() {
		assert.True(t, IsOneOf(map[string]any{"id": float64(1)}, user))
		assert.False(t, IsOneOf(map[string]any{"id": float64(2)}, user))
		assert.True(t, IsOneOf([]any{"a"}, []any{"a"}, true))
		assert.False(t, IsOneOf(user, 1, "1"))
	})
}

func TestIsAfter(t *testing.T) {
	ref := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, IsAfter(ref.Add(time.Second), ref))
	assert.False(t, IsAfter(ref, ref))
	assert.False(t, IsAfter(ref.Add(-time.Second), ref))
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, s := range []string{
		"2024-01-01T00:00:00.000000Z",
		"2024-01-01T00:00:00Z",
		"2024-01-01T00:00:00.000000",
		"2024-01-01 00:00:00",
		"2024-01-01",
		" 2024-01-01 ",
	} {
		got, err := ParseTimestamp(s)
		require.NoError(t, err, s)
		assert.True(t, want.Equal(got), s)
	}

	offset, err := ParseTimestamp("2024-01-01T02:00:00+02:00")
	require.NoError(t, err)
	assert.True(t, want.Equal(offset))

	_, err = ParseTimestamp("01/02/2024")
	assert.Error(t, err)
}
