package sdg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll(t *testing.T) {
	goals := All()

	require.Len(t, goals, 17)
	assert.Equal(t, Goal{Number: 1, ID: "SDG1", Name: "No Poverty"}, goals[0])
	assert.Equal(t, Goal{Number: 17, ID: "SDG17", Name: "Partnerships for the Goals"}, goals[16])

	// Callers may not mutate the table
	goals[0].Name = "changed"
	assert.Equal(t, "No Poverty", All()[0].Name)
}

func TestLookup(t *testing.T) {
	tests := []struct {
		input  string
		number int
		ok     bool
	}{
		{"SDG1", 1, true},
		{"sdg13", 13, true},
		{"SDG 4", 4, true},
		{"17", 17, true},
		{"Climate Action", 13, true},
		{"  life below water ", 14, true},
		{"Industry, Innovation and Infrastructure", 9, true},
		{"SDG0", 0, false},
		{"SDG18", 0, false},
		{"Ocean Cleanup", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			goal, ok := Lookup(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.number, goal.Number)
			assert.Equal(t, tt.ok, IsKnown(tt.input))
		})
	}
}

func TestResolve(t *testing.T) {
	goals, err := Resolve([]string{"SDG1", "Climate Action"})
	require.NoError(t, err)
	assert.Equal(t, []string{"No Poverty", "Climate Action"}, Names(goals))
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		message string
	}{
		{"empty", nil, "at least one"},
		{"too many", []string{"SDG1", "SDG2", "SDG3"}, "at most 2"},
		{"unknown", []string{"SDG99"}, "unknown goal"},
		{"duplicate by alias", []string{"SDG13", "Climate Action"}, "more than once"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goals, err := Resolve(tt.input)
			assert.Nil(t, goals)

			var selErr *SelectionError
			require.ErrorAs(t, err, &selErr)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
