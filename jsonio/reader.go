// Package jsonio reads and writes the tagged JSON documents the query
// engine consumes and produces: a single request document holding
// base_requests/stat_requests/routing_settings/render_settings, and a
// single response document holding one result object per stat request.
//
// Reading is a thin typed wrapper around valyala/fastjson's parsed value
// tree; writing builds onto a fastjson.Arena so every value in a response
// document shares one allocation batch instead of one per field.
package jsonio

import (
	"errors"

	"github.com/valyala/fastjson"
)

// ErrWrongType is returned when a Node accessor is used against a value of
// a different JSON type.
var ErrWrongType = errors.New("jsonio: value has the wrong type")

// ErrNoSuchKey is returned by Get when an object has no member under the
// requested key.
var ErrNoSuchKey = errors.New("jsonio: no such key")

// Node wraps one parsed JSON value behind a small set of typed accessors.
type Node struct {
	v *fastjson.Value
}

// Parse parses data as one JSON document and returns its root Node.
func Parse(data []byte) (Node, error) {
	v, err := fastjson.ParseBytes(data)
	if err != nil {
		return Node{}, err
	}

	return Node{v: v}, nil
}

// IsArray reports whether the node holds a JSON array.
func (n Node) IsArray() bool {
	return n.v != nil && n.v.Type() == fastjson.TypeArray
}

// IsObject reports whether the node holds a JSON object.
func (n Node) IsObject() bool {
	return n.v != nil && n.v.Type() == fastjson.TypeObject
}

// Array returns the node's elements, in document order.
func (n Node) Array() ([]Node, error) {
	values, err := n.v.Array()
	if err != nil {
		return nil, ErrWrongType
	}

	out := make([]Node, len(values))
	for i, v := range values {
		out[i] = Node{v: v}
	}

	return out, nil
}

// Get returns the member registered under key.
func (n Node) Get(key string) (Node, error) {
	v := n.v.Get(key)
	if v == nil {
		return Node{}, ErrNoSuchKey
	}

	return Node{v: v}, nil
}

// Has reports whether the node is an object with a member under key.
func (n Node) Has(key string) bool {
	return n.v.Get(key) != nil
}

// Keys returns the object's member names, in document order.
func (n Node) Keys() ([]string, error) {
	obj, err := n.v.Object()
	if err != nil {
		return nil, ErrWrongType
	}

	var keys []string
	obj.Visit(func(key []byte, _ *fastjson.Value) {
		keys = append(keys, string(key))
	})

	return keys, nil
}

// String returns the node's string value.
func (n Node) String() (string, error) {
	b, err := n.v.StringBytes()
	if err != nil {
		return "", ErrWrongType
	}

	return string(b), nil
}

// Float64 returns the node's numeric value as a float64, accepting either a
// JSON integer or a JSON float.
func (n Node) Float64() (float64, error) {
	f, err := n.v.Float64()
	if err != nil {
		return 0, ErrWrongType
	}

	return f, nil
}

// Int returns the node's numeric value as an int. A number that is not an
// integer (or does not fit an int) yields ErrWrongType; it is not truncated.
func (n Node) Int() (int, error) {
	i, err := n.v.Int()
	if err != nil {
		return 0, ErrWrongType
	}

	return i, nil
}

// Bool returns the node's boolean value.
func (n Node) Bool() (bool, error) {
	b, err := n.v.Bool()
	if err != nil {
		return false, ErrWrongType
	}

	return b, nil
}
