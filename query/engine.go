// Package query wires the stop/bus registries, the transfer graph, the
// router, and the SVG map composer into the single object every stat
// request is answered against. An Engine instance holds one fixed network;
// nothing about it is global or process-wide.
package query

import (
	"fmt"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/transitquery/transitqueryd/buses"
	"github.com/transitquery/transitqueryd/geo"
	"github.com/transitquery/transitqueryd/jsonio"
	"github.com/transitquery/transitqueryd/pathweight"
	"github.com/transitquery/transitqueryd/projection"
	"github.com/transitquery/transitqueryd/router"
	"github.com/transitquery/transitqueryd/stops"
	"github.com/transitquery/transitqueryd/svgdoc"
	"github.com/transitquery/transitqueryd/transfergraph"
)

// DiagnosticLogger receives a human-readable "did you mean" hint whenever a
// Stop/Bus/Route query misses by name. It never changes the JSON response
// shape — it is a side channel for operators.
type DiagnosticLogger func(message string)

// Engine answers Stop/Bus/Route/Map stat requests against one fixed
// network, built once from a base_requests document.
type Engine struct {
	stops    *stops.Registry
	buses    *buses.Registry
	graph    *transfergraph.Graph[pathweight.PathItem]
	router   *router.Router[pathweight.PathItem]
	render   svgdoc.RenderSettings
	mapBuilt bool
	mapSVG   string
	diagnose DiagnosticLogger
}

// Build constructs the stop and bus registries from baseRequests (all
// "Stop" entries first, then all "Bus" entries, so a bus can always resolve
// every stop it names regardless of the order entries arrived in), then
// lowers them into a transfer graph and router using routing.
func Build(baseRequests []jsonio.Node, routing RoutingSettings, render svgdoc.RenderSettings, diagnose DiagnosticLogger) (*Engine, error) {
	stopReg := stops.NewRegistry()
	busReg := buses.NewRegistry()

	if diagnose == nil {
		diagnose = func(string) {}
	}

	for _, req := range baseRequests {
		typeNode, err := req.Get("type")
		if err != nil {
			return nil, err
		}
		kind, err := typeNode.String()
		if err != nil {
			return nil, err
		}
		if kind != "Stop" {
			continue
		}
		if err := addStop(stopReg, req); err != nil {
			return nil, err
		}
	}

	for _, req := range baseRequests {
		typeNode, err := req.Get("type")
		if err != nil {
			return nil, err
		}
		kind, err := typeNode.String()
		if err != nil {
			return nil, err
		}
		if kind != "Bus" {
			continue
		}
		if err := addBus(stopReg, busReg, req); err != nil {
			return nil, err
		}
	}

	graph := transfergraph.Build(stopReg, busReg, routing.Options()...)
	r := router.New(graph, pathweight.Zero)

	return &Engine{
		stops:    stopReg,
		buses:    busReg,
		graph:    graph,
		router:   r,
		render:   render,
		diagnose: diagnose,
	}, nil
}

func addStop(stopReg *stops.Registry, req jsonio.Node) error {
	name, err := mustString(req, "name")
	if err != nil {
		return err
	}
	latNode, err := req.Get("latitude")
	if err != nil {
		return err
	}
	latDeg, err := latNode.Float64()
	if err != nil {
		return err
	}
	lonNode, err := req.Get("longitude")
	if err != nil {
		return err
	}
	lonDeg, err := lonNode.Float64()
	if err != nil {
		return err
	}

	if _, err := stopReg.AddStop(name, geo.FromDegrees(latDeg, lonDeg)); err != nil {
		return err
	}

	distances, err := req.Get("road_distances")
	if err != nil {
		return nil // road_distances is allowed to be absent for a stop with no outgoing legs.
	}
	keys, err := distances.Keys()
	if err != nil {
		return err
	}
	for _, to := range keys {
		dNode, err := distances.Get(to)
		if err != nil {
			return err
		}
		meters, err := dNode.Float64()
		if err != nil {
			return err
		}
		if err := stopReg.AddDistance(name, to, meters); err != nil {
			return err
		}
	}

	return nil
}

func addBus(stopReg *stops.Registry, busReg *buses.Registry, req jsonio.Node) error {
	name, err := mustString(req, "name")
	if err != nil {
		return err
	}
	stopsNode, err := req.Get("stops")
	if err != nil {
		return err
	}
	stopNodes, err := stopsNode.Array()
	if err != nil {
		return err
	}
	isLoopNode, err := req.Get("is_roundtrip")
	if err != nil {
		return err
	}
	isLooped, err := isLoopNode.Bool()
	if err != nil {
		return err
	}

	seq := make([]*stops.Stop, len(stopNodes))
	for i, sn := range stopNodes {
		stopName, err := sn.String()
		if err != nil {
			return err
		}
		stop, ok := stopReg.Lookup(stopName)
		if !ok {
			return fmt.Errorf("query: bus %q references unknown stop %q", name, stopName)
		}
		seq[i] = stop
	}

	bus := busReg.AddBus(name, seq, isLooped, stopReg.Distance)
	for _, s := range seq {
		_ = stopReg.AttachBus(s.Name, bus.Name)
	}

	return nil
}

// Registries returns the engine's underlying stop and bus registries, for
// callers that need to inspect the network directly rather than through a
// stat request — e.g. exporting it in another format.
func (e *Engine) Registries() (*stops.Registry, *buses.Registry) {
	return e.stops, e.buses
}

func mustString(node jsonio.Node, key string) (string, error) {
	v, err := node.Get(key)
	if err != nil {
		return "", err
	}

	return v.String()
}

// Perform answers one stat request, returning the response object it
// contributes to the enclosing JSON array. requestID and kind are read
// from the request itself ("request_id"/"type"); an unrecognized type or a
// name that doesn't resolve both fall through to the same not-found shape.
func (e *Engine) Perform(req jsonio.Node) (*jsonio.Writer, error) {
	idNode, err := req.Get("request_id")
	if err != nil {
		return nil, err
	}
	requestID, err := idNode.Int()
	if err != nil {
		return nil, err
	}
	kindNode, err := req.Get("type")
	if err != nil {
		return nil, err
	}
	kind, err := kindNode.String()
	if err != nil {
		return nil, err
	}

	w := jsonio.NewWriter()

	var ok bool
	switch kind {
	case "Stop":
		ok, err = e.performStop(req, requestID, w)
	case "Bus":
		ok, err = e.performBus(req, requestID, w)
	case "Route":
		ok, err = e.performRoute(req, requestID, w)
	case "Map":
		e.performMap(requestID, w)
		ok = true
	default:
		ok = false
	}
	if err != nil {
		return nil, err
	}

	if !ok {
		writeNotFound(w, requestID)
	}

	return w, nil
}

func writeNotFound(w *jsonio.Writer, requestID int) {
	w.BeginObject().
		Key("request_id").Int(requestID).
		Key("error_message").String("not found").
		EndObject()
}

func (e *Engine) performStop(req jsonio.Node, requestID int, w *jsonio.Writer) (bool, error) {
	name, err := mustString(req, "name")
	if err != nil {
		return false, err
	}
	stop, ok := e.stops.Lookup(name)
	if !ok {
		e.diagnoseMiss(name, e.stops.Names())

		return false, nil
	}

	w.BeginObject().
		Key("request_id").Int(requestID).
		Key("buses").BeginArray()
	for _, busName := range stop.BusNames() {
		w.String(busName)
	}
	w.EndArray().EndObject()

	return true, nil
}

func (e *Engine) performBus(req jsonio.Node, requestID int, w *jsonio.Writer) (bool, error) {
	name, err := mustString(req, "name")
	if err != nil {
		return false, err
	}
	bus, ok := e.buses.Lookup(name)
	if !ok {
		e.diagnoseMiss(name, e.buses.Names())

		return false, nil
	}

	w.BeginObject().
		Key("request_id").Int(requestID).
		Key("route_length").Float64(bus.RealLength()).
		Key("curvature").Float64(bus.Curvature()).
		Key("stop_count").Int(bus.StopCount()).
		Key("unique_stop_count").Int(bus.UniqueStopCount()).
		EndObject()

	return true, nil
}

func (e *Engine) performRoute(req jsonio.Node, requestID int, w *jsonio.Writer) (bool, error) {
	from, err := mustString(req, "from")
	if err != nil {
		return false, err
	}
	to, err := mustString(req, "to")
	if err != nil {
		return false, err
	}

	fromStop, ok := e.stops.Lookup(from)
	if !ok {
		e.diagnoseMiss(from, e.stops.Names())

		return false, nil
	}
	toStop, ok := e.stops.Lookup(to)
	if !ok {
		e.diagnoseMiss(to, e.stops.Names())

		return false, nil
	}

	info, ok := e.router.BuildRoute(transfergraph.VertexID(fromStop.WaitVertex), transfergraph.VertexID(toStop.WaitVertex))
	if !ok {
		return false, nil
	}
	defer e.router.Release(info.ID)

	w.BeginObject().
		Key("total_time").Float64(info.Weight.Time).
		Key("request_id").Int(requestID).
		Key("items").BeginArray()
	for i := 0; i < info.EdgeCount; i++ {
		edge := e.graph.Edge(e.router.Edge(info.ID, i))
		writePathItem(w, edge.Weight)
	}
	w.EndArray().EndObject()

	return true, nil
}

// writePathItem serializes one route leg: a Wait item names the stop being
// waited at, a Drive item names the bus ridden and the number of stops
// spanned.
func writePathItem(w *jsonio.Writer, item pathweight.PathItem) {
	w.BeginObject().Key("time").Float64(item.Time)
	switch item.Kind {
	case pathweight.KindDrive:
		w.Key("span_count").Int(item.SpanCount).
			Key("bus").String(item.BusName).
			Key("type").String("Bus")
	case pathweight.KindWait:
		w.Key("stop_name").String(item.StopName).
			Key("type").String("Wait")
	}
	w.EndObject()
}

func (e *Engine) performMap(requestID int, w *jsonio.Writer) {
	svg := e.buildMap()

	w.BeginObject().
		Key("request_id").Int(requestID).
		Key("map").String(svg).
		EndObject()
}

// buildMap renders the SVG map on first use and caches the result: every
// Map request after the first returns the same string without re-rendering.
func (e *Engine) buildMap() string {
	if e.mapBuilt {
		return e.mapSVG
	}

	doc := e.renderMap()
	e.mapSVG = doc.String()
	e.mapBuilt = true

	return e.mapSVG
}

func (e *Engine) renderMap() *svgdoc.Document {
	doc := svgdoc.NewDocument()
	canvas := e.fitCanvas()

	for _, layer := range e.render.RenderOrder {
		switch layer {
		case svgdoc.LayerBusLines:
			e.renderBusLines(doc, canvas)
		case svgdoc.LayerBusLabels:
			e.renderBusLabels(doc, canvas)
		case svgdoc.LayerStopPoints:
			e.renderStopPoints(doc, canvas)
		case svgdoc.LayerStopLabels:
			e.renderStopLabels(doc, canvas)
		}
	}

	return doc
}

func (e *Engine) fitCanvas() projection.Canvas {
	names := e.stops.Names()
	points := make([]geo.Point, len(names))
	for i, name := range names {
		s, _ := e.stops.Lookup(name)
		points[i] = s.Point
	}

	return projection.Fit(canvasSettings(e.render), points)
}

func (e *Engine) renderBusLines(doc *svgdoc.Document, canvas projection.Canvas) {
	for i, bus := range e.buses.All() {
		color := e.render.Palette.At(i)
		line := svgdoc.NewPolyline().
			SetStrokeColor(color).
			SetStrokeWidth(e.render.LineWidth).
			SetStrokeLineCap("round").
			SetStrokeLineJoin("round")

		for _, s := range bus.Stops {
			x, y := canvas.Project(s.Point)
			line = line.AddPoint(svgdoc.Point{X: x, Y: y})
		}
		if !bus.IsLooped {
			for i := len(bus.Stops) - 2; i >= 0; i-- {
				x, y := canvas.Project(bus.Stops[i].Point)
				line = line.AddPoint(svgdoc.Point{X: x, Y: y})
			}
		}

		doc.Add(line)
	}
}

func (e *Engine) renderBusLabels(doc *svgdoc.Document, canvas projection.Canvas) {
	addLabel := func(bus *buses.Bus, stop *stops.Stop, color svgdoc.Color) {
		x, y := canvas.Project(stop.Point)
		point := svgdoc.Point{X: x, Y: y}
		offset := svgdoc.Point{X: e.render.BusLabelOffsetX, Y: e.render.BusLabelOffsetY}

		shadow := svgdoc.NewText().SetPoint(point).SetData(e.render.Label(bus.Name)).SetOffset(offset).
			SetFontSize(e.render.BusLabelFontSize).SetFontFamily("Verdana").SetFontWeight("bold").
			SetFillColor(e.render.UnderlayerColor).SetStrokeColor(e.render.UnderlayerColor).
			SetStrokeWidth(e.render.UnderlayerWidth).SetStrokeLineCap("round").SetStrokeLineJoin("round")
		doc.Add(shadow)

		label := svgdoc.NewText().SetPoint(point).SetData(e.render.Label(bus.Name)).SetOffset(offset).
			SetFontSize(e.render.BusLabelFontSize).SetFontFamily("Verdana").SetFontWeight("bold").
			SetFillColor(color)
		doc.Add(label)
	}

	for i, bus := range e.buses.All() {
		color := e.render.Palette.At(i)
		addLabel(bus, bus.Stops[0], color)
		last := bus.Stops[len(bus.Stops)-1]
		if !bus.IsLooped && last.Name != bus.Stops[0].Name {
			addLabel(bus, last, color)
		}
	}
}

func (e *Engine) renderStopPoints(doc *svgdoc.Document, canvas projection.Canvas) {
	for _, name := range e.stops.Names() {
		s, _ := e.stops.Lookup(name)
		x, y := canvas.Project(s.Point)
		circle := svgdoc.NewCircle().SetCenter(svgdoc.Point{X: x, Y: y}).SetRadius(e.render.StopRadius).SetFillColor(svgdoc.Named("white"))
		doc.Add(circle)
	}
}

func (e *Engine) renderStopLabels(doc *svgdoc.Document, canvas projection.Canvas) {
	for _, name := range e.stops.Names() {
		s, _ := e.stops.Lookup(name)
		x, y := canvas.Project(s.Point)
		point := svgdoc.Point{X: x, Y: y}
		offset := svgdoc.Point{X: e.render.StopLabelOffsetX, Y: e.render.StopLabelOffsetY}

		shadow := svgdoc.NewText().SetPoint(point).SetOffset(offset).SetFontSize(e.render.StopLabelFontSize).
			SetFontFamily("Verdana").SetData(e.render.Label(s.Name)).
			SetFillColor(e.render.UnderlayerColor).SetStrokeColor(e.render.UnderlayerColor).
			SetStrokeWidth(e.render.UnderlayerWidth).SetStrokeLineCap("round").SetStrokeLineJoin("round")
		doc.Add(shadow)

		label := svgdoc.NewText().SetPoint(point).SetOffset(offset).SetFontSize(e.render.StopLabelFontSize).
			SetFontFamily("Verdana").SetData(e.render.Label(s.Name)).SetFillColor(svgdoc.Named("black"))
		doc.Add(label)
	}
}

// diagnoseMiss logs the closest known name to a not-found lookup, purely
// for operator troubleshooting; it never touches the response written to
// the client.
func (e *Engine) diagnoseMiss(query string, candidates []string) {
	if len(candidates) == 0 {
		return
	}

	best := candidates[0]
	bestScore := fuzzy.Ratio(query, best)
	for _, c := range candidates[1:] {
		if score := fuzzy.Ratio(query, c); score > bestScore {
			best, bestScore = c, score
		}
	}

	e.diagnose(fmt.Sprintf("query: %q not found, did you mean %q? (similarity %d)", query, best, bestScore))
}
