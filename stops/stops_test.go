package stops_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitquery/transitqueryd/geo"
	"github.com/transitquery/transitqueryd/stops"
)

func TestVertexAssignmentInvariant(t *testing.T) {
	r := stops.NewRegistry()

	a, err := r.AddStop("A", geo.FromDegrees(0, 0))
	require.NoError(t, err)
	b, err := r.AddStop("B", geo.FromDegrees(0, 1))
	require.NoError(t, err)
	c, err := r.AddStop("C", geo.FromDegrees(0, 2))
	require.NoError(t, err)

	assert.Equal(t, stops.VertexID(0), a.MainVertex)
	assert.Equal(t, stops.VertexID(1), a.WaitVertex)
	assert.Equal(t, stops.VertexID(2), b.MainVertex)
	assert.Equal(t, stops.VertexID(3), b.WaitVertex)
	assert.Equal(t, stops.VertexID(4), c.MainVertex)
	assert.Equal(t, stops.VertexID(5), c.WaitVertex)
}

func TestAddStopDuplicateRejected(t *testing.T) {
	r := stops.NewRegistry()
	_, err := r.AddStop("A", geo.FromDegrees(0, 0))
	require.NoError(t, err)

	_, err = r.AddStop("A", geo.FromDegrees(1, 1))
	assert.ErrorIs(t, err, stops.ErrDuplicateStop)
}

func TestDistanceFallsBackToReverseDirection(t *testing.T) {
	r := stops.NewRegistry()
	_, err := r.AddStop("A", geo.FromDegrees(0, 0))
	require.NoError(t, err)
	_, err = r.AddStop("B", geo.FromDegrees(0, 1))
	require.NoError(t, err)

	require.NoError(t, r.AddDistance("A", "B", 100))

	d, ok := r.Distance("A", "B")
	require.True(t, ok)
	assert.Equal(t, 100.0, d)

	// B->A not declared separately: falls back to A's declaration.
	d, ok = r.Distance("B", "A")
	require.True(t, ok)
	assert.Equal(t, 100.0, d)
}

func TestDistanceAsymmetricWhenBothDeclared(t *testing.T) {
	r := stops.NewRegistry()
	_, _ = r.AddStop("A", geo.FromDegrees(0, 0))
	_, _ = r.AddStop("B", geo.FromDegrees(0, 1))

	require.NoError(t, r.AddDistance("A", "B", 100))
	require.NoError(t, r.AddDistance("B", "A", 250))

	d, _ := r.Distance("A", "B")
	assert.Equal(t, 100.0, d)
	d, _ = r.Distance("B", "A")
	assert.Equal(t, 250.0, d)
}

func TestDistanceUnknown(t *testing.T) {
	r := stops.NewRegistry()
	_, _ = r.AddStop("A", geo.FromDegrees(0, 0))
	_, _ = r.AddStop("B", geo.FromDegrees(0, 1))

	_, ok := r.Distance("A", "B")
	assert.False(t, ok)
}

func TestAttachBusSortedAndDeduped(t *testing.T) {
	r := stops.NewRegistry()
	_, _ = r.AddStop("A", geo.FromDegrees(0, 0))

	require.NoError(t, r.AttachBus("A", "7"))
	require.NoError(t, r.AttachBus("A", "256"))
	require.NoError(t, r.AttachBus("A", "7"))

	s, ok := r.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, []string{"256", "7"}, s.BusNames())
}

func TestLookupUnknown(t *testing.T) {
	r := stops.NewRegistry()
	_, ok := r.Lookup("ghost")
	assert.False(t, ok)
}
