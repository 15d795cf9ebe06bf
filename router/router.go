// Package router implements the all-pairs shortest-path engine: a
// Floyd–Warshall relaxation over a generic additive-ordered weight
// (pathweight.Weight[W]), plus on-demand, cached path reconstruction.
package router

import "github.com/transitquery/transitqueryd/transfergraph"

// RouteID identifies one cached, fully-expanded route. Monotonically
// increasing, issued by BuildRoute.
type RouteID uint64

// RouteInfo is the result of a successful BuildRoute: the route's total
// weight, its edge count, and the id under which its expanded edge
// sequence is cached (see Router.Edge).
type RouteInfo[W transfergraph.Weight[W]] struct {
	ID        RouteID
	Weight    W
	EdgeCount int
}

// entry is one cell of the router's N×N table: the best known weight from
// i to j found so far, and the id of the edge that produced the most
// recent improvement on the j side — not a classical predecessor, see
// BuildRoute.
type entry[W transfergraph.Weight[W]] struct {
	weight   W
	prevEdge transfergraph.EdgeID
	hasPrev  bool
	set      bool
}

// Router holds the all-pairs shortest-path table for one Graph[W], built
// once and queried many times. It owns the table and the route-id cache;
// it borrows the graph for its entire lifetime (the graph must outlive the
// Router).
type Router[W transfergraph.Weight[W]] struct {
	graph *transfergraph.Graph[W]
	table [][]entry[W]

	nextRouteID RouteID
	cache       map[RouteID][]transfergraph.EdgeID
}

// New builds a Router over graph. zero must be the additive identity of W
// (pathweight.Zero, for the module's one instantiation) — Go generics have
// no way to synthesize "the zero of an interface-constrained type
// parameter" without a witness value, so the caller supplies one.
//
// Complexity: O(V³) time, O(V²) space, where V = graph.VertexCount().
func New[W transfergraph.Weight[W]](graph *transfergraph.Graph[W], zero W) *Router[W] {
	n := graph.VertexCount()
	r := &Router[W]{
		graph: graph,
		table: make([][]entry[W], n),
		cache: make(map[RouteID][]transfergraph.EdgeID),
	}
	for i := range r.table {
		r.table[i] = make([]entry[W], n)
	}

	r.initialize(graph, zero)
	for k := 0; k < n; k++ {
		r.relaxThrough(k)
	}

	return r
}

// initialize seeds the diagonal with the additive identity (a vertex
// reaches itself at zero cost, via no edge) and every directly-connected
// pair with its cheapest direct edge.
func (r *Router[W]) initialize(graph *transfergraph.Graph[W], zero W) {
	n := len(r.table)
	for v := 0; v < n; v++ {
		r.table[v][v] = entry[W]{weight: zero, set: true}
	}

	for u := 0; u < n; u++ {
		for _, edgeID := range graph.IncidentEdges(transfergraph.VertexID(u)) {
			edge := graph.Edge(edgeID)
			w := int(edge.To)
			cell := r.table[u][w]
			if !cell.set || edge.Weight.Less(cell.weight) {
				r.table[u][w] = entry[W]{weight: edge.Weight, prevEdge: edgeID, hasPrev: true, set: true}
			}
		}
	}
}

// relaxThrough runs one Floyd–Warshall pivot step for intermediate vertex
// through: for every (i, j), try improving i->j via i->through->j.
//
// Loop order is fixed (outer k from New, then i, then j here) so relaxation
// is deterministic across runs over the same graph.
func (r *Router[W]) relaxThrough(through int) {
	n := len(r.table)
	for i := 0; i < n; i++ {
		left := r.table[i][through]
		if !left.set {
			continue
		}
		for j := 0; j < n; j++ {
			right := r.table[through][j]
			if !right.set {
				continue
			}

			candidate := left.weight.Add(right.weight)
			cell := r.table[i][j]
			if cell.set && !candidate.Less(cell.weight) {
				continue
			}

			// prev_edge carried forward is not a classical predecessor: it
			// is whichever edge most recently improved the *right-hand*
			// side of the relaxation, falling back to the left side only
			// when the right side has none (i.e. through == j).
			prevEdge := right.prevEdge
			hasPrev := right.hasPrev
			if !hasPrev {
				prevEdge = left.prevEdge
				hasPrev = left.hasPrev
			}

			r.table[i][j] = entry[W]{weight: candidate, prevEdge: prevEdge, hasPrev: hasPrev, set: true}
		}
	}
}

// BuildRoute returns the shortest-path summary from `from` to `to`, or
// false if no entry exists in the table (to is unreachable from from).
//
// Both endpoints must be stop wait-vertices: boarding requires first
// entering a wait vertex, so any route not framed this way answers a
// question the network model does not ask.
//
// Zero-length paths (from == to) succeed with EdgeCount 0. The edge
// sequence behind the returned RouteID is cached for later retrieval via
// Edge; callers that are done with a route should call Release.
//
// Complexity: O(path length) to reconstruct, O(1) amortized to cache.
func (r *Router[W]) BuildRoute(from, to transfergraph.VertexID) (RouteInfo[W], bool) {
	cell := r.table[from][to]
	if !cell.set {
		return RouteInfo[W]{}, false
	}

	var edges []transfergraph.EdgeID
	current := to
	hasPrev := cell.hasPrev
	prevEdge := cell.prevEdge
	for hasPrev {
		edges = append(edges, prevEdge)
		current = r.graph.Edge(prevEdge).From
		next := r.table[from][current]
		hasPrev = next.hasPrev
		prevEdge = next.prevEdge
	}
	reverseEdgeIDs(edges)

	id := r.nextRouteID
	r.nextRouteID++
	r.cache[id] = edges

	return RouteInfo[W]{ID: id, Weight: cell.weight, EdgeCount: len(edges)}, true
}

// Edge returns the edge at position idx (0-based, source-to-destination
// order) of the route cached under id.
//
// Complexity: O(1). Panics if id was never returned by BuildRoute, or was
// already Released — an internal inconsistency, not a recoverable error.
func (r *Router[W]) Edge(id RouteID, idx int) transfergraph.EdgeID {
	return r.cache[id][idx]
}

// Release drops the cached edge sequence for id. A no-op if id is unknown.
func (r *Router[W]) Release(id RouteID) {
	delete(r.cache, id)
}

func reverseEdgeIDs(s []transfergraph.EdgeID) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
