package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseState(t *testing.T) {
	t.Run("Pairs And Bare Keys", func(t *testing.T) {
		s, err := ParseState(StartLabel, "Money=10, Rested ,Debt=-2.5")
		require.NoError(t, err)
		assert.Equal(t, "START", s.Name())
		assert.Equal(t, map[string]float64{"Money": 10, "Rested": 1, "Debt": -2.5}, s.Values())
	})

	t.Run("JSON Object", func(t *testing.T) {
		s, err := ParseState(GoalLabel, `{"Fed": 1}`)
		require.NoError(t, err)
		assert.Equal(t, "END", s.Name())
		assert.Equal(t, map[string]float64{"Fed": 1}, s.Values())
	})

	t.Run("JSON Keeps Its Own Name", func(t *testing.T) {
		s, err := ParseState(GoalLabel, `{"Fed": 1, "_stateName": "dinner"}`)
		require.NoError(t, err)
		assert.Equal(t, "dinner", s.Name())
	})

	t.Run("Empty", func(t *testing.T) {
		s, err := ParseState(StartLabel, "  ")
		require.NoError(t, err)
		assert.Equal(t, 0, s.Len())
	})

	t.Run("Rejects", func(t *testing.T) {
		for _, raw := range []string{"Money=lots", "=1", `{"Fed": "yes"}`, `{broken`} {
			_, err := ParseState(StartLabel, raw)
			assert.Error(t, err, raw)
		}
	})
}
