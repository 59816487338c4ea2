// Package future provides a typed, single-assignment result for asynchronous
// operations.
//
// A Future is completed once through its Promise. Callers wait with Await
// (bounded by a context) or Join, and compose with Then and Handle:
//
//	f := future.Go(func() (*Response, error) { return send(ctx) })
//	ids := future.Then(f, func(r *Response) (int, error) { return decodeID(r) })
//	id, err := ids.Await(ctx)
//
// Continuations run on the goroutine that completes the source future, so
// composition adds no goroutines of its own.
package future
