package parser

import (
	"bytes"

	json "github.com/goccy/go-json"
)

type jsonParser struct{}

// JSON returns the JSON parser backed by goccy/go-json.
func JSON() Parser { return jsonParser{} }

func (jsonParser) Name() string        { return "json" }
func (jsonParser) ContentType() string { return "application/json; charset=utf-8" }

func (jsonParser) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonParser) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonParser) Shape(data []byte) Shape {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return ShapeEmpty
	}
	switch trimmed[0] {
	case '{':
		return ShapeObject
	case '[':
		return ShapeList
	case 'n':
		if bytes.Equal(trimmed, []byte("null")) {
			return ShapeNull
		}
	}
	return ShapeScalar
}
