package transfergraph

import (
	"github.com/transitquery/transitqueryd/buses"
	"github.com/transitquery/transitqueryd/pathweight"
	"github.com/transitquery/transitqueryd/stops"
)

// kmhToMetersPerMinute converts km/h to m/min (×1000/60), so velocity and
// boarding delay share a common minute unit once resolved into a config.
const kmhToMetersPerMinute = 1000.0 / 60.0

// config is the resolved result of applying every Option: each Option
// mutates a config value, Build applies them all before adding any edge,
// and edge construction reads only the resolved config.
type config struct {
	waitTime   float64
	metersPerMin float64
}

// Option configures Build. The zero config (no options) has wait time 0
// and velocity 0, which would divide by zero — callers must supply both
// WithWaitTimeMinutes and WithVelocityKMH.
type Option func(*config)

// WithWaitTimeMinutes sets the fixed per-stop boarding delay.
func WithWaitTimeMinutes(minutes float64) Option {
	return func(c *config) { c.waitTime = minutes }
}

// WithVelocityKMH sets the average bus velocity, given in km/h as the input
// document does; Build converts it once to meters/minute.
func WithVelocityKMH(kmh float64) Option {
	return func(c *config) { c.metersPerMin = kmh * kmhToMetersPerMinute }
}

// distanceOrZero resolves a pairwise road distance, treating an unknown
// pair as 0 rather than an error, so an incompletely-declared network still
// builds a usable (if optimistic) graph.
func distanceOrZero(stopReg *stops.Registry, a, b string) float64 {
	d, _ := stopReg.Distance(a, b)

	return d
}

// Build lowers stopReg and busReg into a transfer Graph[pathweight.PathItem]:
// one Wait edge per stop (wait vertex -> main vertex), and one Drive edge
// per ordered pair of stops reachable along a bus without changing
// vehicles, in both directions for linear buses.
//
// Complexity: O(S) for boarding edges (S stops) plus O(Σ n_b²) for travel
// edges, where n_b is the stop count of bus b (each ordered pair within a
// bus's sequence contributes one edge, doubled for linear buses).
func Build(stopReg *stops.Registry, busReg *buses.Registry, opts ...Option) *Graph[pathweight.PathItem] {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	g := New[pathweight.PathItem](stopReg.Count() * 2)

	for _, name := range stopReg.Names() {
		s, _ := stopReg.Lookup(name)
		g.AddEdge(Edge[pathweight.PathItem]{
			From:   VertexID(s.WaitVertex),
			To:     VertexID(s.MainVertex),
			Weight: pathweight.Wait(s.Name, cfg.waitTime),
		})
	}

	for _, bus := range busReg.All() {
		addDriveEdges(g, stopReg, bus, bus.Stops, cfg.metersPerMin)
		if !bus.IsLooped {
			addDriveEdges(g, stopReg, bus, reversedStops(bus.Stops), cfg.metersPerMin)
		}
	}

	return g
}

// addDriveEdges adds, for every ordered pair (i<j) within seq, a Drive edge
// from seq[i]'s main vertex to seq[j]'s wait vertex, accumulating travel
// time span-by-span so each of the O(n²) pairs costs O(1) amortized instead
// of O(n).
func addDriveEdges(g *Graph[pathweight.PathItem], stopReg *stops.Registry, bus *buses.Bus, seq []*stops.Stop, metersPerMin float64) {
	for i := range seq {
		var elapsed float64
		var spans int
		for j := i + 1; j < len(seq); j++ {
			d := distanceOrZero(stopReg, seq[j-1].Name, seq[j].Name)
			elapsed += d / metersPerMin
			spans++

			g.AddEdge(Edge[pathweight.PathItem]{
				From:   VertexID(seq[i].MainVertex),
				To:     VertexID(seq[j].WaitVertex),
				Weight: pathweight.Drive(bus.Name, elapsed, spans),
			})
		}
	}
}

func reversedStops(seq []*stops.Stop) []*stops.Stop {
	out := make([]*stops.Stop, len(seq))
	for i, s := range seq {
		out[len(seq)-1-i] = s
	}

	return out
}
