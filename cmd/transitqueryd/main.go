// Command transitqueryd reads one request document (base_requests,
// stat_requests, routing_settings, render_settings), answers every stat
// request against the network it describes, and writes one response
// document: a JSON array with one result object per request, in order.
//
// Input and output default to stdin/stdout but can be redirected to files;
// the response can optionally be gzip-compressed, pretty-printed, or
// (instead of the response document) written out as a GeoJSON dump of the
// network's stops and routes, via pflag-parsed long flags.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/pflag"

	"github.com/transitquery/transitqueryd/geoexport"
	"github.com/transitquery/transitqueryd/jsonio"
	"github.com/transitquery/transitqueryd/query"
)

func main() {
	var (
		inputPath  string
		outputPath string
		useGzip    bool
		pretty     bool
		asciiLbl   bool
		geojson    bool
	)

	pflag.StringVarP(&inputPath, "input", "i", "", "path to the request document (default: stdin)")
	pflag.StringVarP(&outputPath, "output", "o", "", "path to write the response document (default: stdout)")
	pflag.BoolVar(&useGzip, "gzip", false, "gzip-compress the response document")
	pflag.BoolVar(&pretty, "pretty", false, "pretty-print the response document")
	pflag.BoolVar(&asciiLbl, "ascii-labels", false, "transliterate map labels to ASCII")
	pflag.BoolVar(&geojson, "geojson", false, "write a GeoJSON dump of the network instead of answering stat_requests")
	pflag.Parse()

	if err := run(inputPath, outputPath, useGzip, pretty, asciiLbl, geojson); err != nil {
		fmt.Fprintln(os.Stderr, "transitqueryd:", err)
		os.Exit(1)
	}
}

func run(inputPath, outputPath string, useGzip, pretty, asciiLabels, geoJSON bool) error {
	input, err := readInput(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	doc, err := jsonio.Parse(input)
	if err != nil {
		return fmt.Errorf("parsing request document: %w", err)
	}

	var output []byte
	if geoJSON {
		output, err = exportGeoJSON(doc)
	} else {
		var response *jsonio.Writer
		response, err = answer(doc, asciiLabels)
		if err == nil {
			output = response.Bytes()
		}
	}
	if err != nil {
		return fmt.Errorf("answering requests: %w", err)
	}

	if pretty {
		output = indentJSON(output)
	}

	return writeOutput(outputPath, output, useGzip)
}

func buildEngine(doc jsonio.Node, asciiLabels bool) (*query.Engine, error) {
	baseNode, err := doc.Get("base_requests")
	if err != nil {
		return nil, err
	}
	baseRequests, err := baseNode.Array()
	if err != nil {
		return nil, err
	}

	routingNode, err := doc.Get("routing_settings")
	if err != nil {
		return nil, err
	}
	routing, err := query.ParseRoutingSettings(routingNode)
	if err != nil {
		return nil, err
	}

	renderNode, err := doc.Get("render_settings")
	if err != nil {
		return nil, err
	}
	render, err := query.ParseRenderSettings(renderNode)
	if err != nil {
		return nil, err
	}
	render.ASCIILabels = asciiLabels

	return query.Build(baseRequests, routing, render, diagnosticLogger)
}

func answer(doc jsonio.Node, asciiLabels bool) (*jsonio.Writer, error) {
	engine, err := buildEngine(doc, asciiLabels)
	if err != nil {
		return nil, err
	}

	statNode, err := doc.Get("stat_requests")
	if err != nil {
		return nil, err
	}
	statRequests, err := statNode.Array()
	if err != nil {
		return nil, err
	}

	w := jsonio.NewWriter()
	w.BeginArray()
	for _, req := range statRequests {
		result, err := engine.Perform(req)
		if err != nil {
			return nil, err
		}
		w.Append(result)
	}
	w.EndArray()

	return w, nil
}

// exportGeoJSON builds the network described by doc and marshals it as a
// GeoJSON FeatureCollection, bypassing stat_requests entirely.
func exportGeoJSON(doc jsonio.Node) ([]byte, error) {
	engine, err := buildEngine(doc, false)
	if err != nil {
		return nil, err
	}

	stopReg, busReg := engine.Registries()

	return geoexport.Export(stopReg, busReg).MarshalJSON()
}

func diagnosticLogger(message string) {
	fmt.Fprintln(os.Stderr, message)
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}

	return os.ReadFile(path)
}

func writeOutput(path string, data []byte, useGzip bool) error {
	var out io.Writer = os.Stdout
	var file *os.File
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		file = f
		out = f
	}
	if file != nil {
		defer file.Close()
	}

	if !useGzip {
		_, err := out.Write(data)

		return err
	}

	gw := gzip.NewWriter(out)
	if _, err := gw.Write(data); err != nil {
		return err
	}

	return gw.Close()
}

// indentJSON re-prints data with two-space indentation, for human
// inspection. This is the one spot in the module that reaches for
// encoding/json instead of fastjson: fastjson is a zero-copy parser/arena
// builder with no pretty-printing formatter of its own, and reindenting
// already-valid JSON bytes is exactly what encoding/json.Indent is for.
func indentJSON(data []byte) []byte {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return data
	}

	return buf.Bytes()
}
