package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Sirius", want: "sirius"},
		{in: "  OMEGA   centauri ", want: "omega centauri"},
		{in: "Andromeda Galaxy", want: "m31"},
		{in: "pleiades", want: "m45"},
		{in: "M42", want: "m42"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			e, ok := Lookup(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.want, e.Name)
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := Lookup("not-a-star")
	assert.False(t, ok)
}

func TestEntries_Valid(t *testing.T) {
	names := Names()
	assert.IsIncreasing(t, names)

	for _, name := range names {
		e, ok := Lookup(name)
		require.True(t, ok, name)
		assert.GreaterOrEqual(t, e.RA, 0.0, name)
		assert.Less(t, e.RA, 360.0, name)
		assert.GreaterOrEqual(t, e.Dec, -90.0, name)
		assert.LessOrEqual(t, e.Dec, 90.0, name)
	}
}

func TestAliasesResolve(t *testing.T) {
	for alias, canonical := range aliases {
		_, ok := byName[canonical]
		assert.True(t, ok, "alias %q points at unknown %q", alias, canonical)
	}
}
