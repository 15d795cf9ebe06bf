// Package geoexport dumps a stop/bus network as a GeoJSON FeatureCollection
// — stops as Point features, bus routes as LineString features — for
// inspecting a network in any off-the-shelf map viewer, as an alternative
// to the bespoke SVG map the query engine serves for "Map" requests.
package geoexport

import (
	"github.com/paulmach/go.geojson"

	"github.com/transitquery/transitqueryd/buses"
	"github.com/transitquery/transitqueryd/stops"
)

// Export builds one FeatureCollection: one Point feature per stop (tagged
// with its name), then one LineString feature per bus (tagged with its
// name and is_roundtrip flag), in the same name-sorted order the rest of
// the module uses for deterministic output.
func Export(stopReg *stops.Registry, busReg *buses.Registry) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, name := range stopReg.Names() {
		s, _ := stopReg.Lookup(name)
		lat, lon := s.Point.ToDegrees()
		feature := geojson.NewPointFeature([]float64{lon, lat})
		feature.SetProperty("name", s.Name)
		fc.AddFeature(feature)
	}

	for _, bus := range busReg.All() {
		coords := make([][]float64, len(bus.Stops))
		for i, s := range bus.Stops {
			lat, lon := s.Point.ToDegrees()
			coords[i] = []float64{lon, lat}
		}
		feature := geojson.NewLineStringFeature(coords)
		feature.SetProperty("name", bus.Name)
		feature.SetProperty("is_roundtrip", bus.IsLooped)
		fc.AddFeature(feature)
	}

	return fc
}
