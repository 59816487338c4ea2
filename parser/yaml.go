package parser

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

type yamlParser struct{}

// YAML returns the YAML parser backed by gopkg.in/yaml.v3.
func YAML() Parser { return yamlParser{} }

func (yamlParser) Name() string        { return "yaml" }
func (yamlParser) ContentType() string { return "application/yaml" }

func (yamlParser) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

func (yamlParser) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// Shape looks at the first significant line. Comments and the document
// start marker are skipped. Lines are not length-limited.
func (yamlParser) Shape(data []byte) Shape {
	rest := data
	for len(rest) > 0 {
		var line []byte
		line, rest, _ = bytes.Cut(rest, []byte("\n"))
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' || bytes.Equal(line, []byte("---")) {
			continue
		}
		switch {
		case bytes.Equal(line, []byte("-")) || bytes.HasPrefix(line, []byte("- ")) || line[0] == '[':
			return ShapeList
		case line[0] == '{':
			return ShapeObject
		case bytes.Equal(line, []byte("null")) || bytes.Equal(line, []byte("~")):
			return ShapeNull
		case bytes.Contains(line, []byte(": ")) || bytes.HasSuffix(line, []byte(":")):
			return ShapeObject
		default:
			return ShapeScalar
		}
	}
	return ShapeEmpty
}
