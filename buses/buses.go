// Package buses implements the bus (route) registry: named routes over an
// ordered sequence of stops, plus their memoized derived quantities
// (real/global length, curvature, stop counts).
package buses

import (
	"errors"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/transitquery/transitqueryd/geo"
	"github.com/transitquery/transitqueryd/stops"
)

// ErrNotFound indicates a query named a bus absent from the registry.
var ErrNotFound = errors.New("buses: bus not found")

// Bus is a named route: an is-looped flag and the ordered sequence of
// stops it was declared over. Derived quantities are memoized lazily; see
// RealLength, GlobalLength, Curvature, StopCount, UniqueStopCount.
type Bus struct {
	Name     string
	IsLooped bool
	Stops    []*stops.Stop

	distance func(a, b string) (float64, bool)

	realLengthSet bool
	realLength    float64

	globalLengthSet bool
	globalLength    float64

	uniqueSet   bool
	uniqueCount int
}

// RealLength sums road distance along the bus's full traversal: forward
// across the declared sequence, plus — for linear buses only — the same
// sum computed again across the reversed sequence (a round trip over the
// stated road distances). A pair with no declared distance contributes 0
// rather than an error.
//
// Memoized: computed once, on first call.
func (b *Bus) RealLength() float64 {
	if b.realLengthSet {
		return b.realLength
	}

	total := sumPairwise(b.Stops, b.distance)
	if !b.IsLooped {
		total += sumPairwise(reversed(b.Stops), b.distance)
	}

	b.realLength = total
	b.realLengthSet = true

	return b.realLength
}

// GlobalLength sums great-circle distance along the same traversal as
// RealLength. Great-circle distance is symmetric, so for linear buses this
// is equivalent to (and implemented as) doubling the forward sum.
//
// Memoized: computed once, on first call.
func (b *Bus) GlobalLength() float64 {
	if b.globalLengthSet {
		return b.globalLength
	}

	total := sumPairwiseGreatCircle(b.Stops)
	if !b.IsLooped {
		total *= 2
	}

	b.globalLength = total
	b.globalLengthSet = true

	return b.globalLength
}

// Curvature is RealLength/GlobalLength: how much the road network detours
// from the geodesic. >= 1 whenever every pairwise road distance along the
// traversal exists (triangle inequality against the great circle).
func (b *Bus) Curvature() float64 {
	return b.RealLength() / b.GlobalLength()
}

// StopCount is len(Stops) for a looped bus (it traverses its declared
// sequence once), or 2*len(Stops)-1 for a linear bus (forward then back,
// the shared endpoint counted once).
func (b *Bus) StopCount() int {
	if b.IsLooped {
		return len(b.Stops)
	}

	return 2*len(b.Stops) - 1
}

// UniqueStopCount is the number of distinct stop names in the declared
// sequence; <= len(Stops), with equality iff every listed name differs.
//
// Memoized: computed once, on first call.
func (b *Bus) UniqueStopCount() int {
	if b.uniqueSet {
		return b.uniqueCount
	}

	seen := make(map[string]struct{}, len(b.Stops))
	for _, s := range b.Stops {
		seen[s.Name] = struct{}{}
	}
	b.uniqueCount = len(seen)
	b.uniqueSet = true

	return b.uniqueCount
}

func sumPairwise(seq []*stops.Stop, distance func(a, b string) (float64, bool)) float64 {
	var total float64
	for i := 1; i < len(seq); i++ {
		if d, ok := distance(seq[i-1].Name, seq[i].Name); ok {
			total += d
		}
		// Unknown pair: contributes 0, not an error.
	}

	return total
}

func sumPairwiseGreatCircle(seq []*stops.Stop) float64 {
	var total float64
	for i := 1; i < len(seq); i++ {
		total += geo.GreatCircle(seq[i-1].Point, seq[i].Point)
	}

	return total
}

func reversed(seq []*stops.Stop) []*stops.Stop {
	out := make([]*stops.Stop, len(seq))
	for i, s := range seq {
		out[len(seq)-1-i] = s
	}

	return out
}

// Registry owns every Bus for the lifetime of the build phase and is
// read-only thereafter, same lifecycle contract as stops.Registry.
type Registry struct {
	byName map[string]*Bus
	order  []string
}

// NewRegistry returns an empty bus registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Bus)}
}

// AddBus registers a new bus over the given stop sequence. distance is the
// pairwise road-distance lookup (normally stopReg.Distance) the bus uses to
// compute RealLength lazily; it is captured, not copied, so later
// AddDistance calls on the stop registry are still visible.
func (r *Registry) AddBus(name string, seq []*stops.Stop, isLooped bool, distance func(a, b string) (float64, bool)) *Bus {
	b := &Bus{Name: name, IsLooped: isLooped, Stops: seq, distance: distance}
	r.byName[name] = b
	r.order = append(r.order, name)

	return b
}

// Lookup returns the bus registered under name, if any.
func (r *Registry) Lookup(name string) (*Bus, bool) {
	b, ok := r.byName[name]
	return b, ok
}

// Names returns every registered bus name, sorted lexicographically
// ascending — the order palette cycling and map rendering iterate in.
func (r *Registry) Names() []string {
	names := maps.Keys(r.byName)
	slices.Sort(names)

	return names
}

// All returns every registered bus, in lexicographic name order.
func (r *Registry) All() []*Bus {
	names := r.Names()
	out := make([]*Bus, len(names))
	for i, n := range names {
		out[i] = r.byName[n]
	}

	return out
}
