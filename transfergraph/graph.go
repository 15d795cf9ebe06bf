// Package transfergraph lowers a stop/bus network into a directed weighted
// multigraph using a two-vertex-per-stop representation: every stop
// contributes a wait vertex and a main vertex, a Wait edge prices boarding,
// and Drive edges price riding a particular bus across one or more spans.
//
// The graph representation itself — an edge slice plus one incidence list
// per vertex, each edge addressed by a stable EdgeID — gives a router doing
// path reconstruction a stable handle to hand back to its caller, which a
// plain adjacency map keyed by endpoint pair would not.
package transfergraph

import "github.com/transitquery/transitqueryd/pathweight"

// Weight re-exports pathweight.Weight so callers that only need the graph
// layer (package router, in particular) do not have to import pathweight
// directly just to spell the type parameter constraint.
type Weight[Self any] = pathweight.Weight[Self]

// VertexID addresses one vertex of the transfer graph: either a stop's
// WaitVertex or its MainVertex (see package stops).
type VertexID int

// EdgeID addresses one edge, stable for the lifetime of the Graph. Routers
// hand these back to callers for path reconstruction (package router).
type EdgeID int

// Edge is one directed, weighted arc of the transfer graph.
type Edge[W pathweight.Weight[W]] struct {
	From, To VertexID
	Weight   W
}

// Graph is a directed weighted multigraph over vertex ids 0..VertexCount-1,
// parameterized over the weight type W. Parallel edges between the same
// pair of vertices are permitted by design: the router chooses the
// cheapest at relaxation time, so no dedup is done here.
//
// Graph is built once (see Build) and is read-only afterward; it carries
// no lock, since queries never run concurrently with the build phase.
type Graph[W pathweight.Weight[W]] struct {
	edges     []Edge[W]
	incidence [][]EdgeID
}

// New allocates an empty Graph over vertexCount vertices.
//
// Complexity: O(vertexCount).
func New[W pathweight.Weight[W]](vertexCount int) *Graph[W] {
	return &Graph[W]{incidence: make([][]EdgeID, vertexCount)}
}

// AddEdge appends edge and returns its stable id.
//
// Complexity: O(1) amortized.
func (g *Graph[W]) AddEdge(edge Edge[W]) EdgeID {
	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, edge)
	g.incidence[edge.From] = append(g.incidence[edge.From], id)

	return id
}

// VertexCount returns the number of vertices the Graph was built with.
func (g *Graph[W]) VertexCount() int {
	return len(g.incidence)
}

// EdgeCount returns the number of edges added so far.
func (g *Graph[W]) EdgeCount() int {
	return len(g.edges)
}

// Edge returns the edge registered under id.
//
// Complexity: O(1). Panics on an out-of-range id — an internal
// inconsistency, not a recoverable user error.
func (g *Graph[W]) Edge(id EdgeID) Edge[W] {
	return g.edges[id]
}

// IncidentEdges returns the ids of edges leaving vertex, in insertion
// order.
//
// Complexity: O(1) to obtain the slice header.
func (g *Graph[W]) IncidentEdges(vertex VertexID) []EdgeID {
	return g.incidence[vertex]
}
