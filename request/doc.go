// Package request describes outbound HTTP requests as immutable values.
//
// A Builder collects the method, URI, headers, body, timeout, protocol
// version and redirect policy. Builder methods use value receivers and return
// the updated builder, so a builder held as a template is never mutated by
// the calls that specialize it:
//
//	base := request.NewBuilder().
//	    URIString("https://api.example.com/v1").
//	    Header("Accept", "application/json")
//
//	get, _ := base.Path("/todos/1").GET().Build()
//	del, _ := base.Path("/todos/44").DELETE().Build()
//
// Build returns a Descriptor or a configuration error from the errors
// package when the method or URI is missing.
//
// Bodies are kept as typed values; serialization happens at send time so the
// same descriptor works with any parser.
package request
