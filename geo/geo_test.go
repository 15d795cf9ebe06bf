package geo_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/transitquery/transitqueryd/geo"
)

func TestGreatCircleSymmetric(t *testing.T) {
	a := geo.FromDegrees(55.611087, 37.20829)
	b := geo.FromDegrees(55.595884, 37.209755)

	assert.InDelta(t, geo.GreatCircle(a, b), geo.GreatCircle(b, a), 1e-9)
}

func TestGreatCircleZeroForIdenticalPoints(t *testing.T) {
	a := geo.FromDegrees(10, 20)

	d := geo.GreatCircle(a, a)
	assert.True(t, math.IsNaN(d) || math.Abs(d) < 1e-6, "expected ~0 distance, got %v", d)
}

func TestFromDegreesConvertsToRadians(t *testing.T) {
	p := geo.FromDegrees(180, 90)

	assert.InDelta(t, math.Pi, p.LatRad, 1e-12)
	assert.InDelta(t, math.Pi/2, p.LonRad, 1e-12)
}

func TestToDegreesRoundTripsFromDegrees(t *testing.T) {
	p := geo.FromDegrees(55.611087, 37.20829)

	lat, lon := p.ToDegrees()
	assert.InDelta(t, 55.611087, lat, 1e-9)
	assert.InDelta(t, 37.20829, lon, 1e-9)
}
