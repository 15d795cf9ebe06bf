package projection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/transitquery/transitqueryd/geo"
	"github.com/transitquery/transitqueryd/projection"
)

func TestFitSquareSpanProjectsToOppositeCorners(t *testing.T) {
	points := []geo.Point{
		geo.FromDegrees(0, 0),
		geo.FromDegrees(1, 1),
	}
	canvas := projection.Fit(projection.Settings{Width: 100, Height: 100, Padding: 0}, points)

	x0, y0 := canvas.Project(points[0])
	x1, y1 := canvas.Project(points[1])
	assert.InDelta(t, 0, x0, 1e-6)
	assert.InDelta(t, 100, y0, 1e-6)
	assert.InDelta(t, 100, x1, 1e-6)
	assert.InDelta(t, 0, y1, 1e-6)
}

func TestFitSingleDistinctLongitudeUsesHeight(t *testing.T) {
	points := []geo.Point{
		geo.FromDegrees(0, 3),
		geo.FromDegrees(10, 3),
	}
	canvas := projection.Fit(projection.Settings{Width: 200, Height: 400, Padding: 10}, points)

	x0, _ := canvas.Project(points[0])
	x1, _ := canvas.Project(points[1])
	assert.Equal(t, x0, x1)
}

func TestFitSingleDistinctLatitudeUsesWidth(t *testing.T) {
	points := []geo.Point{
		geo.FromDegrees(7, 0),
		geo.FromDegrees(7, 10),
	}
	canvas := projection.Fit(projection.Settings{Width: 200, Height: 400, Padding: 10}, points)

	_, y0 := canvas.Project(points[0])
	_, y1 := canvas.Project(points[1])
	assert.Equal(t, y0, y1)
}

func TestFitAllPointsIdenticalCollapsesToPaddingCorner(t *testing.T) {
	points := []geo.Point{
		geo.FromDegrees(5, 5),
		geo.FromDegrees(5, 5),
	}
	canvas := projection.Fit(projection.Settings{Width: 200, Height: 400, Padding: 10}, points)

	x, y := canvas.Project(points[0])
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 10.0, y)
}

func TestFitOnEmptyPointsReturnsZeroZoomCanvas(t *testing.T) {
	canvas := projection.Fit(projection.Settings{Width: 200, Height: 400, Padding: 10}, nil)

	x, y := canvas.Project(geo.FromDegrees(0, 0))
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 10.0, y)
}
