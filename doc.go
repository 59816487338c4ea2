// Package sylph is a fluent, typed HTTP client.
//
// A Client holds a base request template, a Transport and a Parser. Verb
// shortcuts derive a Pending request from the template without touching it,
// so one client serves any number of concurrent calls:
//
//	client, err := sylph.NewBuilder().
//	    SetBaseRequest(request.NewBuilder().
//	        URIString("https://jsonplaceholder.typicode.com").
//	        Header("Accept-Language", "en")).
//	    SetClient(httpclient.Config{Version: "2"}).
//	    Client()
//
//	todo, err := sylph.Body[Todo](ctx, client.GET("/todos/1")).Await(ctx)
//	todos, err := sylph.BodyList[Todo](ctx, client.GET("/todos")).Await(ctx)
//
// Send resolves to a Response that is interpreted on demand, as one entity
// with AsObject or as a list with AsList. The caller picks the shape; a body
// of the other shape fails with a deserialization error:
//
//	resp, err := sylph.Send[Todo](ctx, client.DELETE("/todos/44")).Await(ctx)
//	deleted, err := resp.AsObject()
//
// Failures use the errors package taxonomy. Configuration errors (missing
// method or URI) and transport errors fail the returned future; interpreting
// a response that did not complete fails with a state error.
package sylph
