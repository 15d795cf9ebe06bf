package svgdoc

import (
	"io"
	"strings"
)

// xmlHeader is the fixed prologue emitted before any figure: a
// version/encoding declaration plus the opening <svg> tag.
const xmlHeader = `<?xml version="1.0" encoding="UTF-8" ?><svg xmlns="http://www.w3.org/2000/svg" version="1.1">`

const xmlFooter = `</svg>`

// Document is an ordered sequence of figures rendered as one SVG document.
// Add appends, WriteTo streams every figure in insertion order between a
// fixed header and footer. Figures must be added in back-to-front draw
// order by the caller — the configured render order of layers determines
// what ends up on top.
type Document struct {
	figures []Figure
}

// NewDocument returns an empty Document.
func NewDocument() *Document {
	return &Document{}
}

// Add appends figure to the document's draw order.
func (d *Document) Add(figure Figure) {
	d.figures = append(d.figures, figure)
}

// WriteTo writes the complete SVG document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	var total int64
	n, err := io.WriteString(w, xmlHeader)
	total += int64(n)
	if err != nil {
		return total, err
	}

	for _, figure := range d.figures {
		fn, ferr := figure.WriteTo(w)
		total += fn
		if ferr != nil {
			return total, ferr
		}
	}

	n, err = io.WriteString(w, xmlFooter)
	total += int64(n)

	return total, err
}

// String renders the document to a string, for callers (package query) that
// need the whole SVG body as one value to embed into a JSON response.
func (d *Document) String() string {
	var sb strings.Builder
	_, _ = d.WriteTo(&sb)

	return sb.String()
}
