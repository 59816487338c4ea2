// Package errors defines the error taxonomy shared by the sylph client packages.
//
// Every failure is an *AppError carrying a machine-readable ErrorCode. Each
// code belongs to exactly one Kind:
//
//   - KindConfiguration: a request descriptor or client config is incomplete
//   - KindTransport: the transport could not produce a response
//   - KindDeserialization: a body does not match the requested shape or type
//   - KindState: a response was interpreted from a state that has no body
//
// Use the Is* helpers to branch on kind without caring about the exact code:
//
//	todo, err := resp.AsObject()
//	switch {
//	case errors.IsState(err):
//	    // the call never completed
//	case errors.IsDeserialization(err):
//	    // the body was not a single todo
//	}
package errors
