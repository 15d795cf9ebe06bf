package geoexport_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitquery/transitqueryd/buses"
	"github.com/transitquery/transitqueryd/geo"
	"github.com/transitquery/transitqueryd/geoexport"
	"github.com/transitquery/transitqueryd/stops"
)

func TestExportProducesOnePointFeaturePerStopAndOneLineStringPerBus(t *testing.T) {
	stopReg := stops.NewRegistry()
	a, err := stopReg.AddStop("A", geo.FromDegrees(55.6, 37.2))
	require.NoError(t, err)
	b, err := stopReg.AddStop("B", geo.FromDegrees(55.5, 37.3))
	require.NoError(t, err)

	busReg := buses.NewRegistry()
	busReg.AddBus("1", []*stops.Stop{a, b}, true, stopReg.Distance)

	fc := geoexport.Export(stopReg, busReg)

	var points, lineStrings int
	for _, f := range fc.Features {
		switch f.Geometry.Type {
		case "Point":
			points++
		case "LineString":
			lineStrings++
		}
	}

	assert.Equal(t, 2, points)
	assert.Equal(t, 1, lineStrings)
}
