// Package parser is the serialization layer used by the sylph client.
//
// A Parser marshals request bodies and unmarshals response bodies. Decode and
// DecodeList add the explicit single-object versus list dispatch on top: the
// caller picks the shape, and a body of the other shape is rejected with a
// deserialization error instead of being coerced.
//
//	todo, err := parser.Decode[Todo](parser.JSON(), body)
//	todos, err := parser.DecodeList[Todo](parser.JSON(), body)
//
// Two parsers ship with the package: JSON (the default) and YAML.
package parser
