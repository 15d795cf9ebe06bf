package svgdoc

import (
	"fmt"
	"io"
	"strings"
)

// Point is one (x, y) canvas coordinate, already projected (see package
// projection) — svgdoc knows nothing about latitude or longitude.
type Point struct {
	X, Y float64
}

// Figure is anything Document can hold and render as one SVG element.
// Escaping of the document's eventual JSON container happens once, at the
// jsonio.Writer layer, so a Figure only ever writes plain SVG text.
type Figure interface {
	WriteTo(w io.Writer) (int64, error)
}

// base holds the attributes shared by every figure kind (fill, stroke,
// stroke width, linecap, linejoin). Embedded by value in each concrete
// figure.
type base struct {
	fillColor       Color
	strokeColor     Color
	strokeWidth     float64
	strokeLineCap   string
	strokeLineJoin  string
	hasLineCap      bool
	hasLineJoin     bool
}

func newBase() base {
	return base{fillColor: None, strokeColor: None, strokeWidth: 1.0}
}

func (b base) writeAttrs(sb *strings.Builder) {
	fmt.Fprintf(sb, `fill="%s" stroke="%s" stroke-width="%v" `, b.fillColor, b.strokeColor, b.strokeWidth)
	if b.hasLineCap {
		fmt.Fprintf(sb, `stroke-linecap="%s" `, b.strokeLineCap)
	}
	if b.hasLineJoin {
		fmt.Fprintf(sb, `stroke-linejoin="%s" `, b.strokeLineJoin)
	}
}

// Circle is an SVG <circle>, used to mark one stop on the map.
type Circle struct {
	base
	center Point
	radius float64
}

// NewCircle starts a Circle at the origin with radius 0; use the setters to
// configure it before adding it to a Document.
func NewCircle() Circle {
	return Circle{base: newBase()}
}

func (c Circle) SetCenter(p Point) Circle          { c.center = p; return c }
func (c Circle) SetRadius(r float64) Circle        { c.radius = r; return c }
func (c Circle) SetFillColor(col Color) Circle     { c.fillColor = col; return c }
func (c Circle) SetStrokeColor(col Color) Circle   { c.strokeColor = col; return c }
func (c Circle) SetStrokeWidth(w float64) Circle   { c.strokeWidth = w; return c }

func (c Circle) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<circle cx="%v" cy="%v" r="%v" `, c.center.X, c.center.Y, c.radius)
	c.writeAttrs(&sb)
	sb.WriteString("/>")
	n, err := io.WriteString(w, sb.String())

	return int64(n), err
}

// Polyline is an SVG <polyline>, used to draw one bus route across its
// stops.
type Polyline struct {
	base
	points []Point
}

// NewPolyline starts an empty Polyline.
func NewPolyline() Polyline {
	return Polyline{base: newBase()}
}

func (p Polyline) AddPoint(pt Point) Polyline {
	p.points = append(append([]Point(nil), p.points...), pt)

	return p
}

func (p Polyline) SetStrokeColor(col Color) Polyline { p.strokeColor = col; return p }
func (p Polyline) SetStrokeWidth(w float64) Polyline { p.strokeWidth = w; return p }

func (p Polyline) SetStrokeLineCap(cap string) Polyline {
	p.strokeLineCap, p.hasLineCap = cap, true

	return p
}

func (p Polyline) SetStrokeLineJoin(join string) Polyline {
	p.strokeLineJoin, p.hasLineJoin = join, true

	return p
}

func (p Polyline) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	sb.WriteString(`<polyline points="`)
	for _, pt := range p.points {
		fmt.Fprintf(&sb, "%v,%v ", pt.X, pt.Y)
	}
	sb.WriteString(`" `)
	p.writeAttrs(&sb)
	sb.WriteString("/>")
	n, err := io.WriteString(w, sb.String())

	return int64(n), err
}

// Text is an SVG <text>, used to label a stop or a bus route's endpoints.
type Text struct {
	base
	point      Point
	offset     Point
	fontSize   int
	fontFamily string
	fontWeight string
	hasFamily  bool
	hasWeight  bool
	data       string
}

// NewText starts a Text with font size 1, at the origin with no offset.
func NewText() Text {
	return Text{base: newBase(), fontSize: 1}
}

func (t Text) SetPoint(p Point) Text             { t.point = p; return t }
func (t Text) SetOffset(p Point) Text            { t.offset = p; return t }
func (t Text) SetFontSize(size int) Text         { t.fontSize = size; return t }
func (t Text) SetFontFamily(family string) Text  { t.fontFamily = family; t.hasFamily = true; return t }
func (t Text) SetFontWeight(weight string) Text  { t.fontWeight = weight; t.hasWeight = true; return t }
func (t Text) SetData(data string) Text          { t.data = data; return t }
func (t Text) SetFillColor(col Color) Text       { t.fillColor = col; return t }
func (t Text) SetStrokeColor(col Color) Text     { t.strokeColor = col; return t }
func (t Text) SetStrokeWidth(w float64) Text     { t.strokeWidth = w; return t }

func (t Text) SetStrokeLineCap(cap string) Text {
	t.strokeLineCap, t.hasLineCap = cap, true

	return t
}

func (t Text) SetStrokeLineJoin(join string) Text {
	t.strokeLineJoin, t.hasLineJoin = join, true

	return t
}

func (t Text) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<text x="%v" y="%v" dx="%v" dy="%v" font-size="%d" `,
		t.point.X, t.point.Y, t.offset.X, t.offset.Y, t.fontSize)
	t.writeAttrs(&sb)
	if t.hasFamily {
		fmt.Fprintf(&sb, `font-family="%s" `, t.fontFamily)
	}
	if t.hasWeight {
		fmt.Fprintf(&sb, `font-weight="%s" `, t.fontWeight)
	}
	sb.WriteString(">")
	sb.WriteString(escapeText(t.data))
	sb.WriteString("</text>")
	n, err := io.WriteString(w, sb.String())

	return int64(n), err
}

// escapeText escapes the handful of characters that are significant inside
// SVG element text content, so a stop or bus name containing them does not
// corrupt the surrounding markup.
func escapeText(s string) string {
	replacer := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

	return replacer.Replace(s)
}
