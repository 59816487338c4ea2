// Package testutil provides lifecycle helpers for test fixtures.
//
// Fixtures implement TestComponent; T(t).Setup starts one and stops it
// when the test ends:
//
//	func TestTodos(t *testing.T) {
//	    srv := todoserver.New()
//	    testutil.T(t).Setup(srv)
//	    client, _ := sylph.NewBuilder().
//	        SetBaseRequest(request.NewBuilder().URIString(srv.URL())).
//	        Client()
//	}
//
// The todoserver subpackage is a jsonplaceholder-compatible todo API.
package testutil
