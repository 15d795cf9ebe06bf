package pathweight_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitquery/transitqueryd/pathweight"
)

// compile-time proof PathItem satisfies the Weight contract.
var _ pathweight.Weight[pathweight.PathItem] = pathweight.PathItem{}

func TestAddDropsProvenance(t *testing.T) {
	sum := pathweight.Wait("A", 3).Add(pathweight.Drive("7", 4.5, 2))

	require.Equal(t, pathweight.KindSum, sum.Kind)
	assert.Equal(t, 7.5, sum.Time)
	assert.Empty(t, sum.StopName)
	assert.Empty(t, sum.BusName)
}

func TestLessOrdersByTimeOnly(t *testing.T) {
	cheap := pathweight.Wait("A", 1)
	expensive := pathweight.Drive("7", 2, 5)

	assert.True(t, cheap.Less(expensive))
	assert.False(t, expensive.Less(cheap))
}

func TestZeroIsAdditiveIdentity(t *testing.T) {
	w := pathweight.Drive("7", 4, 1)

	assert.Equal(t, w.Time, w.Add(pathweight.Zero).Time)
	assert.Equal(t, w.Time, pathweight.Zero.Add(w).Time)
}
