package parser

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/kbukum/sylph/errors"
)

// Parser converts typed values to wire bytes and back.
type Parser interface {
	// Name identifies the parser ("json", "yaml").
	Name() string
	// ContentType is the media type sent with serialized bodies.
	ContentType() string
	// Marshal serializes v.
	Marshal(v any) ([]byte, error)
	// Unmarshal decodes data into the value pointed to by v.
	Unmarshal(data []byte, v any) error
	// Shape classifies the top-level structure of data without decoding it.
	Shape(data []byte) Shape
}

// Shape is the top-level structure of a serialized body.
type Shape int

const (
	// ShapeEmpty is a body with no content.
	ShapeEmpty Shape = iota
	// ShapeObject is a single map/record.
	ShapeObject
	// ShapeList is an ordered sequence.
	ShapeList
	// ShapeScalar is a bare string, number or boolean.
	ShapeScalar
	// ShapeNull is an explicit null.
	ShapeNull
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeEmpty:
		return "empty"
	case ShapeObject:
		return "object"
	case ShapeList:
		return "list"
	case ShapeScalar:
		return "scalar"
	case ShapeNull:
		return "null"
	default:
		return "unknown"
	}
}

// Default returns the parser used when none is configured.
func Default() Parser { return JSON() }

// ByName resolves a parser from its config name. An empty name yields the default.
func ByName(name string) (Parser, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return JSON(), nil
	case "yaml", "yml":
		return YAML(), nil
	default:
		return nil, errors.InvalidConfig(fmt.Sprintf("unknown parser %q", name)).
			WithDetail("parser", name)
	}
}

// Decode interprets data as exactly one T.
//
// An empty body yields the zero T. A list-shaped body fails with a shape
// mismatch unless T is itself a slice or array. Parser failures are wrapped
// as deserialization errors.
func Decode[T any](p Parser, data []byte) (T, error) {
	var out T
	shape := p.Shape(data)
	switch shape {
	case ShapeEmpty:
		return out, nil
	case ShapeList:
		if !acceptsSequence[T]() {
			return out, errors.ShapeMismatch(ShapeObject.String(), shape.String())
		}
	}
	if err := p.Unmarshal(data, &out); err != nil {
		var zero T
		return zero, errors.MalformedBody(err).WithDetail("parser", p.Name())
	}
	return out, nil
}

// DecodeList interprets data as an ordered sequence of T.
//
// An empty or null body yields an empty slice. Any shape other than a list
// fails with a shape mismatch.
func DecodeList[T any](p Parser, data []byte) ([]T, error) {
	shape := p.Shape(data)
	switch shape {
	case ShapeEmpty, ShapeNull:
		return []T{}, nil
	case ShapeList:
	default:
		return nil, errors.ShapeMismatch(ShapeList.String(), shape.String())
	}
	var out []T
	if err := p.Unmarshal(data, &out); err != nil {
		return nil, errors.MalformedBody(err).WithDetail("parser", p.Name())
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Encode turns a request body into bytes. []byte and string bodies are sent
// verbatim; every other value goes through p. The returned content type is
// empty for []byte, text/plain for string and p.ContentType() otherwise.
func Encode(p Parser, body any) ([]byte, string, error) {
	switch v := body.(type) {
	case nil:
		return nil, "", nil
	case []byte:
		return v, "", nil
	case string:
		return []byte(v), "text/plain; charset=utf-8", nil
	default:
		data, err := p.Marshal(v)
		if err != nil {
			return nil, "", errors.SerializationFailed(err).WithDetail("parser", p.Name())
		}
		return data, p.ContentType(), nil
	}
}

func acceptsSequence[T any]() bool {
	t := reflect.TypeOf((*T)(nil)).Elem()
	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.Interface:
		return true
	case reflect.Pointer:
		k := t.Elem().Kind()
		return k == reflect.Slice || k == reflect.Array
	default:
		return false
	}
}
