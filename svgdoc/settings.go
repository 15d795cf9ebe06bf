package svgdoc

import "github.com/mozillazg/go-unidecode"

// Layer names one stage of map rendering. The map is drawn by running
// exactly the configured stages, in the given order, once each.
type Layer string

const (
	LayerBusLines  Layer = "bus_lines"
	LayerBusLabels Layer = "bus_labels"
	LayerStopPoints Layer = "stop_points"
	LayerStopLabels Layer = "stop_labels"
)

// RenderSettings is the full set of knobs an SVG map render accepts: canvas
// width/height/padding, line width, label font sizes/offsets, underlayer
// color and width, stop radius, the bus color palette, and render order.
type RenderSettings struct {
	Width            float64
	Height           float64
	Padding          float64
	LineWidth        float64
	StopRadius       float64
	BusLabelFontSize int
	BusLabelOffsetX  float64
	BusLabelOffsetY  float64
	StopLabelFontSize int
	StopLabelOffsetX float64
	StopLabelOffsetY float64
	UnderlayerColor  Color
	UnderlayerWidth  float64
	Palette          Palette
	RenderOrder      []Layer

	// ASCIILabels transliterates every stop and bus label to its nearest
	// ASCII equivalent before rendering, for SVG viewers with incomplete
	// Unicode font coverage. Off by default.
	ASCIILabels bool
}

// Label applies the ASCIILabels transliteration, when enabled, to one stop
// or bus name before it is written into a Text figure.
func (s RenderSettings) Label(name string) string {
	if !s.ASCIILabels {
		return name
	}

	return unidecode.Unidecode(name)
}
