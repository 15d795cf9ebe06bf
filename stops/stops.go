// Package stops implements the stop registry: named points with geographic
// coordinates, pairwise road distances, a reverse index of serving buses,
// and the two transfer-graph vertex ids every stop owns.
package stops

import (
	"errors"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/transitquery/transitqueryd/geo"
)

// VertexID identifies one of the two transfer-graph vertices a Stop owns.
type VertexID int

// Sentinel errors returned by Registry operations.
var (
	// ErrNotFound indicates a query named a stop absent from the registry.
	ErrNotFound = errors.New("stops: stop not found")
	// ErrDuplicateStop indicates AddStop was called twice for the same name.
	// Registry rejects this rather than silently corrupting vertex-id
	// bookkeeping.
	ErrDuplicateStop = errors.New("stops: duplicate stop name")
)

// Stop is a named point: coordinates, a road-distance map keyed by
// neighbor name, the set of buses serving it, and its two graph vertex ids.
//
// Invariant: MainVertex = 2k, WaitVertex = 2k+1, where k is this stop's
// 0-based insertion order into the owning Registry.
type Stop struct {
	Name       string
	Point      geo.Point
	MainVertex VertexID
	WaitVertex VertexID

	distances map[string]float64
	buses     map[string]struct{}
}

// distanceTo returns the declared distance from this stop directly to
// neighbor, if any was declared starting from this stop. Registry.Distance
// is the public entry point that also checks the reverse direction.
func (s *Stop) distanceTo(neighbor string) (float64, bool) {
	d, ok := s.distances[neighbor]
	return d, ok
}

// BusNames returns the names of buses serving this stop, sorted
// lexicographically ascending — the order the Stop query response requires.
func (s *Stop) BusNames() []string {
	names := maps.Keys(s.buses)
	slices.Sort(names)

	return names
}

// Registry owns every Stop for the lifetime of the build phase and is
// read-only thereafter. It is not safe for concurrent mutation: queries
// never run concurrently with the build phase, so a lock here would only
// guard against a race that can never happen.
type Registry struct {
	byName map[string]*Stop
	order  []string
}

// NewRegistry returns an empty stop registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Stop)}
}

// AddStop inserts a new stop, assigning its vertex ids from the current
// registry size. Returns ErrDuplicateStop if name is already registered.
//
// Complexity: O(1).
func (r *Registry) AddStop(name string, point geo.Point) (*Stop, error) {
	if _, exists := r.byName[name]; exists {
		return nil, ErrDuplicateStop
	}

	k := len(r.order)
	s := &Stop{
		Name:       name,
		Point:      point,
		MainVertex: VertexID(2 * k),
		WaitVertex: VertexID(2*k + 1),
		distances:  make(map[string]float64),
		buses:      make(map[string]struct{}),
	}
	r.byName[name] = s
	r.order = append(r.order, name)

	return s, nil
}

// AddDistance declares a one-directional road distance from `from` to `to`.
// A distance declared from A to B implies a distance from B to A only if
// B→A is never separately declared (see Distance).
//
// Complexity: O(1). Returns ErrNotFound if `from` is not a registered stop.
func (r *Registry) AddDistance(from, to string, meters float64) error {
	s, ok := r.byName[from]
	if !ok {
		return ErrNotFound
	}
	s.distances[to] = meters

	return nil
}

// Distance resolves the road distance between a and b: a's declared
// distance to b if present, else b's declared distance to a, else unknown.
//
// Complexity: O(1).
func (r *Registry) Distance(a, b string) (float64, bool) {
	if sa, ok := r.byName[a]; ok {
		if d, ok := sa.distanceTo(b); ok {
			return d, true
		}
	}
	if sb, ok := r.byName[b]; ok {
		if d, ok := sb.distanceTo(a); ok {
			return d, true
		}
	}

	return 0, false
}

// AttachBus records that bus serves stop. Idempotent: attaching the same
// bus twice leaves the stop's bus set unchanged (it is a set).
//
// Complexity: O(1). Returns ErrNotFound if stop is not registered.
func (r *Registry) AttachBus(stopName, busName string) error {
	s, ok := r.byName[stopName]
	if !ok {
		return ErrNotFound
	}
	s.buses[busName] = struct{}{}

	return nil
}

// Lookup returns the stop registered under name, if any.
//
// Complexity: O(1).
func (r *Registry) Lookup(name string) (*Stop, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// Count returns the number of registered stops.
func (r *Registry) Count() int {
	return len(r.order)
}

// Names returns every registered stop name, sorted lexicographically
// ascending — the order stop-label rendering and GeoJSON export iterate in.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	slices.Sort(out)

	return out
}
