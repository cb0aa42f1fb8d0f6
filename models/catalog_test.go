package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestByID(t *testing.T) {
	test, ok := TestByID("total-testosterone")
	require.True(t, ok)
	assert.Equal(t, "Total Testosterone", test.Name)
	assert.Greater(t, test.Price, 0.0)

	_, ok = TestByID("no-such-test")
	assert.False(t, ok)
}

func TestCatalogIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, test := range Catalog {
		assert.False(t, seen[test.ID], "duplicate catalog ID %q", test.ID)
		seen[test.ID] = true
	}
}
