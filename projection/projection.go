// Package projection maps a set of geographic points onto a flat canvas of
// fixed width and height, preserving relative distances along whichever axis
// is tighter, and inverting latitude so north renders upward on an SVG
// surface whose y axis grows downward.
//
// Fit handles every degenerate input without dividing by zero: a single
// distinct latitude, a single distinct longitude, a single point, or no
// points at all each collapse to a well-defined (if visually trivial)
// canvas.
package projection

import "github.com/transitquery/transitqueryd/geo"

// Settings controls canvas size and the margin left empty around the
// projected content, mirroring render_settings' width/height/padding.
type Settings struct {
	Width   float64
	Height  float64
	Padding float64
}

// Canvas is a fitted projection ready to convert geo.Point values into SVG
// coordinates. It is built once per map render from the full set of points
// that will appear on it, then reused for every stop and every bus polyline.
type Canvas struct {
	settings   Settings
	minLatRad  float64
	maxLatRad  float64
	minLonRad  float64
	zoom       float64
}

// Fit computes the scale factor that makes every point in points land inside
// [padding, width-padding] x [padding, height-padding], choosing the tighter
// of the two axes so the projection never distorts relative distance.
//
// An empty points returns a zero-zoom Canvas matching the all-degenerate
// case below: nothing to project, but still a well-formed Canvas a caller
// can use to render an empty, correctly-sized frame.
func Fit(settings Settings, points []geo.Point) Canvas {
	if len(points) == 0 {
		return Canvas{settings: settings}
	}

	minLat, maxLat := points[0].LatRad, points[0].LatRad
	minLon, maxLon := points[0].LonRad, points[0].LonRad
	for _, p := range points[1:] {
		if p.LatRad < minLat {
			minLat = p.LatRad
		}
		if p.LatRad > maxLat {
			maxLat = p.LatRad
		}
		if p.LonRad < minLon {
			minLon = p.LonRad
		}
		if p.LonRad > maxLon {
			maxLon = p.LonRad
		}
	}

	latSpan := maxLat - minLat
	lonSpan := maxLon - minLon
	innerHeight := settings.Height - 2*settings.Padding
	innerWidth := settings.Width - 2*settings.Padding

	var zoom float64
	switch {
	case latSpan == 0 && lonSpan == 0:
		zoom = 0
	case lonSpan == 0:
		zoom = innerHeight / latSpan
	case latSpan == 0:
		zoom = innerWidth / lonSpan
	default:
		heightCoef := innerHeight / latSpan
		widthCoef := innerWidth / lonSpan
		zoom = heightCoef
		if widthCoef < zoom {
			zoom = widthCoef
		}
	}

	return Canvas{
		settings:  settings,
		minLatRad: minLat,
		maxLatRad: maxLat,
		minLonRad: minLon,
		zoom:      zoom,
	}
}

// Project converts a geographic point into canvas coordinates (x right,
// y down), inverting latitude so the northernmost point renders nearest
// y=padding.
func (c Canvas) Project(p geo.Point) (x, y float64) {
	x = (p.LonRad-c.minLonRad)*c.zoom + c.settings.Padding
	y = (c.maxLatRad-p.LatRad)*c.zoom + c.settings.Padding

	return x, y
}
