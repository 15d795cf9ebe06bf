package jsonio

import (
	"io"

	"github.com/valyala/fastjson"
)

type frameKind int

const (
	frameObject frameKind = iota
	frameArray
)

type frame struct {
	value *fastjson.Value
	kind  frameKind
	index int
}

// Writer builds one JSON document value-by-value through a fluent chain of
// BeginObject/Key/.../EndObject calls. It accumulates into a fastjson.Arena
// and serializes once, on WriteTo/Bytes, rather than streaming each
// container as it closes.
//
// A Writer is built bottom-up: BeginObject/BeginArray push a new container
// onto an internal stack, Key stages the next member name, and every value
// method (String, Float64, Int, Bool, Null) attaches one value to whatever
// is currently on top of the stack.
type Writer struct {
	arena  fastjson.Arena
	stack  []*frame
	root   *fastjson.Value
	key    string
	hasKey bool
}

// NewWriter returns an empty Writer ready for a single top-level value.
func NewWriter() *Writer {
	return &Writer{}
}

// BeginObject opens a new object, nested under whatever is currently open.
func (w *Writer) BeginObject() *Writer {
	v := w.arena.NewObject()
	w.attach(v)
	w.stack = append(w.stack, &frame{value: v, kind: frameObject})

	return w
}

// EndObject closes the innermost open object.
func (w *Writer) EndObject() *Writer {
	w.stack = w.stack[:len(w.stack)-1]

	return w
}

// BeginArray opens a new array, nested under whatever is currently open.
func (w *Writer) BeginArray() *Writer {
	v := w.arena.NewArray()
	w.attach(v)
	w.stack = append(w.stack, &frame{value: v, kind: frameArray})

	return w
}

// EndArray closes the innermost open array.
func (w *Writer) EndArray() *Writer {
	w.stack = w.stack[:len(w.stack)-1]

	return w
}

// Key stages name as the key for the next value written inside the
// innermost open object. Must be called exactly once before each member.
func (w *Writer) Key(name string) *Writer {
	w.key = name
	w.hasKey = true

	return w
}

// String writes a JSON string value.
func (w *Writer) String(s string) *Writer {
	w.attach(w.arena.NewString(s))

	return w
}

// Float64 writes a JSON number value.
func (w *Writer) Float64(f float64) *Writer {
	w.attach(w.arena.NewNumberFloat64(f))

	return w
}

// Int writes a JSON number value from an int.
func (w *Writer) Int(i int) *Writer {
	w.attach(w.arena.NewNumberInt(i))

	return w
}

// Bool writes a JSON boolean value.
func (w *Writer) Bool(b bool) *Writer {
	if b {
		w.attach(w.arena.NewTrue())
	} else {
		w.attach(w.arena.NewFalse())
	}

	return w
}

// Null writes a JSON null value.
func (w *Writer) Null() *Writer {
	w.attach(w.arena.NewNull())

	return w
}

// Append attaches another, already-completed Writer's value as one element
// of the array or one member's value inside the object currently open on
// w — the composition a caller needs to build one response document out of
// several independently-built per-request objects (see cmd/transitqueryd).
func (w *Writer) Append(other *Writer) *Writer {
	w.attach(other.root)

	return w
}

// attach places v into whatever container is currently open (by key, if
// inside an object; by next index, if inside an array), or sets it as the
// document root if nothing is open yet.
func (w *Writer) attach(v *fastjson.Value) {
	if len(w.stack) == 0 {
		w.root = v

		return
	}

	top := w.stack[len(w.stack)-1]
	switch top.kind {
	case frameObject:
		top.value.Set(w.key, v)
		w.hasKey = false
		w.key = ""
	case frameArray:
		top.value.SetArrayItem(top.index, v)
		top.index++
	}
}

// Bytes serializes the completed document. The Writer must have exactly
// one top-level value and every BeginObject/BeginArray must be matched by
// an End call before this is called.
func (w *Writer) Bytes() []byte {
	return w.root.MarshalTo(nil)
}

// WriteTo serializes the completed document to out.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	n, err := out.Write(w.Bytes())

	return int64(n), err
}
