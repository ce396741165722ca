package fakevalues

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Structured(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"bare array", `["Alice","Bob","Carol"]`, []string{"Alice", "Bob", "Carol"}},
		{"whitespace", "  \n [\"Alice\", \"Bob\", \"Carol\"]  \n", []string{"Alice", "Bob", "Carol"}},
		{"code fence", "```json\n[\"Alice\",\n \"Bob\",\n \"Carol\"]\n```", []string{"Alice", "Bob", "Carol"}},
		{"bare fence", "```\n[\"Alice\",\"Bob\",\"Carol\"]\n```", []string{"Alice", "Bob", "Carol"}},
		{"values object", `{"values": ["Rock", "Jazz"]}`, []string{"Rock", "Jazz"}},
		{"single array field", `{"genres": ["Rock", "Jazz"]}`, []string{"Rock", "Jazz"}},
		{"wrapped in prose", `Here are some names: ["Ann", "Ben"] Enjoy!`, []string{"Ann", "Ben"}},
		{"numbers", `[1, 2.5, true]`, []string{"1", "2.5", "true"}},
		{"blank items dropped", `["Ann", "  ", null, "Ben "]`, []string{"Ann", "Ben"}},
		{"duplicates kept", `["Ann", "Ann"]`, []string{"Ann", "Ann"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, StrategyStructured, got.Strategy)
			assert.Equal(t, tt.want, got.Values)
		})
	}
}

func TestNormalize_EmptyArray(t *testing.T) {
	for _, raw := range []string{"[]", `{"values": []}`, "```json\n[]\n```"} {
		got, err := Normalize(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, StrategyStructured, got.Strategy)
		assert.Empty(t, got.Values)
	}
}

func TestNormalize_Heuristic(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"ordinal", "1. Bossa Nova Baby", []string{"Bossa Nova Baby"}},
		{"no ordinal", "Bossa Nova Baby", []string{"Bossa Nova Baby"}},
		{"numbered lines", "1. Alice\n2. Bob\n10. Carol", []string{"Alice", "Bob", "Carol"}},
		{"bullets", "- Alice\n* Bob", []string{"Alice", "Bob"}},
		{"quoted lines", "\"Alice\",\n'Bob'", []string{"Alice", "Bob"}},
		{"comma separated", "Alice, Bob, Carol", []string{"Alice", "Bob", "Carol"}},
		{"header line skipped", "Here are the names:\n1. Alice\n2. Bob", []string{"Alice", "Bob"}},
		{"decimal kept", "3.5 stars\n4.0 stars", []string{"3.5 stars", "4.0 stars"}},
		{"truncated array", `["Alice", "Bob", "Car`, []string{"Alice", "Bob", "Car"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, StrategyHeuristic, got.Strategy)
			assert.Equal(t, tt.want, got.Values)
		})
	}
}

func TestNormalize_Unparsable(t *testing.T) {
	for _, raw := range []string{"", "   \n ", "```\n```", ",,,", "Names:"} {
		_, err := Normalize(raw)
		require.Error(t, err, "raw %q", raw)
		assert.True(t, errors.Is(err, ErrBackendUnparsable), "raw %q: %v", raw, err)

		var unparsable *UnparsableError
		require.True(t, errors.As(err, &unparsable))
		assert.Equal(t, raw, unparsable.Raw)
	}
}

func TestStrategy_String(t *testing.T) {
	assert.Equal(t, "structured", StrategyStructured.String())
	assert.Equal(t, "heuristic", StrategyHeuristic.String())
	assert.Equal(t, "unknown", Strategy(0).String())
}
