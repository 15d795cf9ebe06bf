package router_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitquery/transitqueryd/buses"
	"github.com/transitquery/transitqueryd/geo"
	"github.com/transitquery/transitqueryd/pathweight"
	"github.com/transitquery/transitqueryd/router"
	"github.com/transitquery/transitqueryd/stops"
	"github.com/transitquery/transitqueryd/transfergraph"
)

func buildTwoStopOneBus(t *testing.T) (*stops.Registry, *buses.Registry) {
	t.Helper()
	stopReg := stops.NewRegistry()
	a, err := stopReg.AddStop("A", geo.FromDegrees(0, 0))
	require.NoError(t, err)
	b, err := stopReg.AddStop("B", geo.FromDegrees(0, 1))
	require.NoError(t, err)
	require.NoError(t, stopReg.AddDistance("A", "B", 6000))
	require.NoError(t, stopReg.AddDistance("B", "A", 6000))

	busReg := buses.NewRegistry()
	busReg.AddBus("1", []*stops.Stop{a, b}, true, stopReg.Distance)

	return stopReg, busReg
}

// Scenario 3 from spec.md §8.
func TestRouteBetweenStopsOnSameBus(t *testing.T) {
	stopReg, busReg := buildTwoStopOneBus(t)
	graph := transfergraph.Build(stopReg, busReg, transfergraph.WithWaitTimeMinutes(2), transfergraph.WithVelocityKMH(60))
	r := router.New(graph, pathweight.Zero)

	a, _ := stopReg.Lookup("A")
	b, _ := stopReg.Lookup("B")

	info, ok := r.BuildRoute(transfergraph.VertexID(a.WaitVertex), transfergraph.VertexID(b.WaitVertex))
	require.True(t, ok)
	assert.Equal(t, 2, info.EdgeCount)
	// wait (2 min) + drive (6000m / 1000 m/min = 6 min)
	assert.InDelta(t, 8.0, info.Weight.Time, 1e-9)

	var edges []pathweight.PathItem
	for i := 0; i < info.EdgeCount; i++ {
		edges = append(edges, graph.Edge(r.Edge(info.ID, i)).Weight)
	}
	require.Len(t, edges, 2)
	assert.Equal(t, pathweight.KindWait, edges[0].Kind)
	assert.Equal(t, pathweight.KindDrive, edges[1].Kind)
	assert.Equal(t, 1, edges[1].SpanCount)
}

// Scenario 4 from spec.md §8.
func TestRouteFromStopToItself(t *testing.T) {
	stopReg, busReg := buildTwoStopOneBus(t)
	graph := transfergraph.Build(stopReg, busReg, transfergraph.WithWaitTimeMinutes(2), transfergraph.WithVelocityKMH(60))
	r := router.New(graph, pathweight.Zero)

	a, _ := stopReg.Lookup("A")

	info, ok := r.BuildRoute(transfergraph.VertexID(a.WaitVertex), transfergraph.VertexID(a.WaitVertex))
	require.True(t, ok)
	assert.Equal(t, 0, info.EdgeCount)
	assert.Equal(t, 0.0, info.Weight.Time)
}

// Scenario 5 from spec.md §8.
func TestRouteBetweenDisconnectedStopsIsUnreachable(t *testing.T) {
	stopReg := stops.NewRegistry()
	a, _ := stopReg.AddStop("A", geo.FromDegrees(0, 0))
	b, _ := stopReg.AddStop("B", geo.FromDegrees(0, 1))
	busReg := buses.NewRegistry() // no bus connects them

	graph := transfergraph.Build(stopReg, busReg, transfergraph.WithWaitTimeMinutes(2), transfergraph.WithVelocityKMH(60))
	r := router.New(graph, pathweight.Zero)

	_, ok := r.BuildRoute(transfergraph.VertexID(a.WaitVertex), transfergraph.VertexID(b.WaitVertex))
	assert.False(t, ok)
}

func TestRouteConsistencyAcrossRebuilds(t *testing.T) {
	stopReg, busReg := buildTwoStopOneBus(t)
	graph1 := transfergraph.Build(stopReg, busReg, transfergraph.WithWaitTimeMinutes(2), transfergraph.WithVelocityKMH(60))
	graph2 := transfergraph.Build(stopReg, busReg, transfergraph.WithWaitTimeMinutes(2), transfergraph.WithVelocityKMH(60))

	a, _ := stopReg.Lookup("A")
	b, _ := stopReg.Lookup("B")

	r1 := router.New(graph1, pathweight.Zero)
	r2 := router.New(graph2, pathweight.Zero)

	info1, ok1 := r1.BuildRoute(transfergraph.VertexID(a.WaitVertex), transfergraph.VertexID(b.WaitVertex))
	info2, ok2 := r2.BuildRoute(transfergraph.VertexID(a.WaitVertex), transfergraph.VertexID(b.WaitVertex))

	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, info1.Weight.Time, info2.Weight.Time)
	assert.Equal(t, info1.EdgeCount, info2.EdgeCount)
}

func TestReleaseDropsCache(t *testing.T) {
	stopReg, busReg := buildTwoStopOneBus(t)
	graph := transfergraph.Build(stopReg, busReg, transfergraph.WithWaitTimeMinutes(2), transfergraph.WithVelocityKMH(60))
	r := router.New(graph, pathweight.Zero)

	a, _ := stopReg.Lookup("A")
	b, _ := stopReg.Lookup("B")

	info, ok := r.BuildRoute(transfergraph.VertexID(a.WaitVertex), transfergraph.VertexID(b.WaitVertex))
	require.True(t, ok)

	r.Release(info.ID)
	assert.Panics(t, func() { r.Edge(info.ID, 0) })
}
