package svgdoc_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitquery/transitqueryd/svgdoc"
)

func TestColorStringVariants(t *testing.T) {
	assert.Equal(t, "none", svgdoc.None.String())
	assert.Equal(t, "red", svgdoc.Named("red").String())
	assert.Equal(t, "rgb(1,2,3)", svgdoc.FromRGB(1, 2, 3).String())
	assert.Equal(t, "rgba(1,2,3,0.5)", svgdoc.FromRGBA(1, 2, 3, 0.5).String())
}

func TestPaletteCyclesByIndex(t *testing.T) {
	p := svgdoc.NewPalette([]svgdoc.Color{svgdoc.Named("red"), svgdoc.Named("blue")})
	assert.Equal(t, "red", p.At(0).String())
	assert.Equal(t, "blue", p.At(1).String())
	assert.Equal(t, "red", p.At(2).String())
}

func TestEmptyPaletteYieldsNone(t *testing.T) {
	p := svgdoc.NewPalette(nil)
	assert.Equal(t, "none", p.At(0).String())
}

func TestCircleRendersExpectedAttributes(t *testing.T) {
	c := svgdoc.NewCircle().SetCenter(svgdoc.Point{X: 1, Y: 2}).SetRadius(5).SetFillColor(svgdoc.Named("red"))

	var sb strings.Builder
	_, err := c.WriteTo(&sb)
	require.NoError(t, err)

	out := sb.String()
	assert.True(t, strings.HasPrefix(out, "<circle "))
	assert.Contains(t, out, `cx="1"`)
	assert.Contains(t, out, `cy="2"`)
	assert.Contains(t, out, `r="5"`)
	assert.Contains(t, out, `fill="red"`)
	assert.True(t, strings.HasSuffix(out, "/>"))
}

func TestPolylineRendersAllPointsInOrder(t *testing.T) {
	pl := svgdoc.NewPolyline().AddPoint(svgdoc.Point{X: 0, Y: 0}).AddPoint(svgdoc.Point{X: 1, Y: 1})

	var sb strings.Builder
	_, err := pl.WriteTo(&sb)
	require.NoError(t, err)
	assert.Contains(t, sb.String(), "0,0 1,1")
}

func TestTextEscapesAngleBracketsAndAmpersand(t *testing.T) {
	tx := svgdoc.NewText().SetData("A & B < C > D")

	var sb strings.Builder
	_, err := tx.WriteTo(&sb)
	require.NoError(t, err)
	assert.Contains(t, sb.String(), "A &amp; B &lt; C &gt; D")
}

func TestDocumentWrapsFiguresInHeaderAndFooter(t *testing.T) {
	doc := svgdoc.NewDocument()
	doc.Add(svgdoc.NewCircle())
	doc.Add(svgdoc.NewPolyline())

	out := doc.String()
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8" ?><svg`))
	assert.True(t, strings.HasSuffix(out, "</svg>"))
	assert.Contains(t, out, "<circle")
	assert.Contains(t, out, "<polyline")
}

func TestRenderSettingsLabelTransliteratesWhenEnabled(t *testing.T) {
	withASCII := svgdoc.RenderSettings{ASCIILabels: true}
	withoutASCII := svgdoc.RenderSettings{ASCIILabels: false}

	assert.Equal(t, "cafe", withASCII.Label("café"))
	assert.Equal(t, "café", withoutASCII.Label("café"))
}
