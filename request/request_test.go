package request

import (
	"fmt"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/kbukum/sylph/errors"
)

const todoURL = "https://jsonplaceholder.typicode.com/todos/1"

func TestBuild_ValidPairs(t *testing.T) {
	methods := []Method{MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete, MethodHead, MethodOptions}
	uris := []string{
		"http://localhost:8080/",
		"https://example.com/a/b?c=d",
		todoURL,
	}
	for _, m := range methods {
		for _, u := range uris {
			d, err := NewBuilder().URIString(u).Method(m, nil).Build()
			if err != nil {
				t.Fatalf("%s %s: unexpected error: %v", m, u, err)
			}
			if d.Method() != m {
				t.Errorf("expected method %s, got %s", m, d.Method())
			}
			if d.URI().String() != u {
				t.Errorf("expected uri %s, got %s", u, d.URI())
			}
		}
	}
}

func TestBuild_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		b    Builder
		code errors.ErrorCode
	}{
		{"empty", NewBuilder(), errors.ErrCodeMissingMethod},
		{"no method", NewBuilder().URIString(todoURL), errors.ErrCodeMissingMethod},
		{"no uri", NewBuilder().GET(), errors.ErrCodeMissingURI},
		{"unparseable uri", NewBuilder().GET().URIString("http://[::1"), errors.ErrCodeInvalidURI},
		{"relative uri", NewBuilder().GET().URIString("/todos/1"), errors.ErrCodeInvalidURI},
		{"negative timeout", NewBuilder().GET().URIString(todoURL).Timeout(-time.Second), errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.b.Build()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsConfiguration(err) {
				t.Errorf("expected configuration error, got %v", err)
			}
			if !errors.HasCode(err, tt.code) {
				t.Errorf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestBuilder_SettersDoNotMutateReceiver(t *testing.T) {
	base := NewBuilder().
		Header("Content-Type", "application/json; charset=utf-8").
		URIString(todoURL).
		GET()

	_ = base.Header("X-Extra", "1").
		Path("/comments").
		POST(map[string]int{"id": 1}).
		Timeout(time.Second).
		Version(HTTP2).
		FollowRedirects(RedirectAlways)

	d, err := base.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Method() != MethodGet {
		t.Errorf("expected GET, got %s", d.Method())
	}
	if d.URI().String() != todoURL {
		t.Errorf("expected %s, got %s", todoURL, d.URI())
	}
	if d.Headers().Len() != 1 {
		t.Errorf("expected 1 header, got %d", d.Headers().Len())
	}
	if _, ok := d.Body(); ok {
		t.Error("expected no body")
	}
	if d.Timeout() != 0 || d.Version() != VersionDefault || d.Redirect() != RedirectDefault {
		t.Errorf("unexpected overrides leaked into base: %v %v %v", d.Timeout(), d.Version(), d.Redirect())
	}
}

func TestBuilder_CopyChain(t *testing.T) {
	d, err := NewBuilder().
		Header("Content-Type", "application/json; charset=utf-8").
		URIString(todoURL).
		GET().
		Copy().
		Version(HTTP2).
		Timeout(5 * time.Second).
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Version() != HTTP2 {
		t.Errorf("expected HTTP/2, got %s", d.Version())
	}
	if d.Timeout() != 5*time.Second {
		t.Errorf("expected 5s, got %s", d.Timeout())
	}
	if got := d.Header("content-type"); got != "application/json; charset=utf-8" {
		t.Errorf("unexpected content type %q", got)
	}
}

func TestDescriptor_WithNeverMutatesSource(t *testing.T) {
	src := NewBuilder().
		URIString("https://api.example.com/v1").
		Header("Accept", "application/json").
		GET().
		MustBuild()

	overrides := []struct {
		name string
		opts []Option
	}{
		{"method", []Option{WithMethod(MethodPost, map[string]string{"a": "b"})}},
		{"path", []Option{WithPath("/todos/7")}},
		{"header", []Option{WithHeader("accept", "text/plain"), WithHeader("X-New", "1")}},
		{"headers", []Option{WithHeaders(map[string]string{"X-A": "1", "X-B": "2"})}},
		{"timeout", []Option{WithTimeout(3 * time.Second)}},
		{"version", []Option{WithVersion(HTTP11)}},
		{"redirect", []Option{WithRedirect(RedirectNever)}},
		{"query", []Option{WithQuery("page", "2")}},
		{"uri", []Option{WithURIString("https://other.example.com/x")}},
		{"body", []Option{WithBody("raw")}},
	}

	for _, tt := range overrides {
		t.Run(tt.name, func(t *testing.T) {
			derived, err := src.With(tt.opts...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if src.Method() != MethodGet {
				t.Errorf("source method changed to %s", src.Method())
			}
			if src.URI().String() != "https://api.example.com/v1" {
				t.Errorf("source uri changed to %s", src.URI())
			}
			if src.Headers().Len() != 1 || src.Header("Accept") != "application/json" {
				t.Errorf("source headers changed: %v", src.Headers().Map())
			}
			if _, ok := src.Body(); ok {
				t.Error("source body changed")
			}
			if src.Timeout() != 0 || src.Version() != VersionDefault || src.Redirect() != RedirectDefault {
				t.Error("source options changed")
			}
			if derived.String() == "" {
				t.Error("derived descriptor is empty")
			}
		})
	}
}

func TestDescriptor_WithMergesOverrides(t *testing.T) {
	src := NewBuilder().
		URIString("https://api.example.com/v1").
		Header("Accept", "application/json").
		Header("X-Trace", "a").
		GET().
		MustBuild()

	d, err := src.With(
		WithMethod(MethodPut, map[string]int{"id": 3}),
		WithPath("todos/3"),
		WithHeader("x-trace", "b"),
		WithTimeout(2*time.Second),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Method() != MethodPut {
		t.Errorf("expected PUT, got %s", d.Method())
	}
	if got := d.URI().String(); got != "https://api.example.com/v1/todos/3" {
		t.Errorf("unexpected uri %s", got)
	}
	if d.Header("Accept") != "application/json" {
		t.Error("expected base header to survive")
	}
	if d.Header("X-Trace") != "b" {
		t.Errorf("expected override to win, got %q", d.Header("X-Trace"))
	}
	if d.Headers().Len() != 2 {
		t.Errorf("case-insensitive override should not duplicate, got %v", d.Headers().Map())
	}
	if body, ok := d.Body(); !ok || body.(map[string]int)["id"] != 3 {
		t.Errorf("unexpected body %v", body)
	}
	if d.Timeout() != 2*time.Second {
		t.Errorf("expected 2s, got %s", d.Timeout())
	}
}

func TestDescriptor_URIIsACopy(t *testing.T) {
	d := NewBuilder().URIString(todoURL).GET().MustBuild()
	u := d.URI()
	u.Path = "/hijacked"
	if d.URI().Path != "/todos/1" {
		t.Errorf("descriptor uri was mutated: %s", d.URI())
	}
}

func TestBuilder_URIFromURL(t *testing.T) {
	u, _ := url.Parse(todoURL)
	b := NewBuilder().URI(u).GET()
	u.Path = "/changed"
	d := b.MustBuild()
	if d.URI().Path != "/todos/1" {
		t.Errorf("builder kept a reference to the caller's url: %s", d.URI())
	}
}

func TestBuilder_Path(t *testing.T) {
	tests := []struct {
		base string
		path string
		want string
	}{
		{"https://h.example/api", "todos", "https://h.example/api/todos"},
		{"https://h.example/api/", "/todos", "https://h.example/api/todos"},
		{"https://h.example/api", "todos?userId=1", "https://h.example/api/todos?userId=1"},
		{"https://h.example/api", "https://other.example/x", "https://other.example/x"},
		{"https://h.example/api", "", "https://h.example/api"},
	}
	for _, tt := range tests {
		d, err := NewBuilder().URIString(tt.base).Path(tt.path).GET().Build()
		if err != nil {
			t.Fatalf("%s + %s: unexpected error: %v", tt.base, tt.path, err)
		}
		if got := d.URI().String(); got != tt.want {
			t.Errorf("%s + %s = %s, want %s", tt.base, tt.path, got, tt.want)
		}
	}
}

func TestBuilder_VerbsSetBody(t *testing.T) {
	b := NewBuilder().URIString(todoURL)
	if _, ok := b.POST("x").MustBuild().Body(); !ok {
		t.Error("POST should carry a body")
	}
	if _, ok := b.PUT("x").MustBuild().Body(); !ok {
		t.Error("PUT should carry a body")
	}
	if _, ok := b.POST("x").GET().MustBuild().Body(); ok {
		t.Error("GET should clear the body")
	}
	if _, ok := b.PUT("x").DELETE().MustBuild().Body(); ok {
		t.Error("DELETE should clear the body")
	}
}

func TestBuilder_ConcurrentDerivation(t *testing.T) {
	base := NewBuilder().URIString("https://api.example.com").Header("Accept", "application/json")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d, err := base.Path(fmt.Sprintf("/todos/%d", i)).Header("X-Index", fmt.Sprint(i)).GET().Build()
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if d.Header("X-Index") != fmt.Sprint(i) {
				t.Errorf("cross-talk between derivations: %s", d.Header("X-Index"))
			}
		}(i)
	}
	wg.Wait()
	if _, ok := base.headers.Get("X-Index"); ok {
		t.Error("base builder was mutated")
	}
}

func TestHeaders(t *testing.T) {
	var h Headers
	h2 := h.Set("Content-Type", "a")
	if h.Len() != 0 {
		t.Error("zero value mutated")
	}
	h3 := h2.Set("content-type", "b")
	if v, _ := h2.Get("CONTENT-TYPE"); v != "a" {
		t.Errorf("expected a, got %s", v)
	}
	if v, _ := h3.Get("Content-Type"); v != "b" {
		t.Errorf("expected b, got %s", v)
	}
	if h3.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", h3.Len())
	}
	if _, ok := h3.Map()["content-type"]; !ok {
		t.Error("expected last-write spelling to be stored")
	}
	if h4 := h3.Del("CONTENT-type"); h4.Len() != 0 || h3.Len() != 1 {
		t.Error("Del should return a copy without the entry")
	}

	var names []string
	NewHeaders(map[string]string{"b": "2", "a": "1"}).Each(func(name, _ string) {
		names = append(names, name)
	})
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("expected sorted iteration, got %v", names)
	}
}

func TestParseHelpers(t *testing.T) {
	if ParseVersion("HTTP/2") != HTTP2 || ParseVersion("1.1") != HTTP11 || ParseVersion("") != VersionDefault {
		t.Error("ParseVersion mismatch")
	}
	if ParseRedirect("ALWAYS") != RedirectAlways || ParseRedirect("never") != RedirectNever ||
		ParseRedirect("normal") != RedirectNormal || ParseRedirect("x") != RedirectDefault {
		t.Error("ParseRedirect mismatch")
	}
	for _, name := range VersionNames() {
		if (ParseVersion(name) == VersionDefault) != (name == "default") {
			t.Errorf("VersionNames entry %q is not parsed", name)
		}
	}
	for _, name := range RedirectNames() {
		if (ParseRedirect(name) == RedirectDefault) != (name == "default") {
			t.Errorf("RedirectNames entry %q is not parsed", name)
		}
	}
	if ParseMethod(" get ") != MethodGet {
		t.Error("ParseMethod mismatch")
	}
	if !MethodPost.HasBody() || MethodGet.HasBody() {
		t.Error("HasBody mismatch")
	}
	if HTTP2.String() != "HTTP/2" || RedirectNormal.String() != "normal" {
		t.Error("String mismatch")
	}
}

func TestBuilder_Err(t *testing.T) {
	tests := []struct {
		name string
		b    Builder
		code errors.ErrorCode
	}{
		{"empty template", NewBuilder(), ""},
		{"base uri only", NewBuilder().URIString("https://example.com/api"), ""},
		{"relative uri", NewBuilder().URIString("/todos"), errors.ErrCodeInvalidURI},
		{"unparsable uri", NewBuilder().URIString("http://[::1"), errors.ErrCodeInvalidURI},
		{"negative timeout", NewBuilder().Timeout(-time.Second), errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.b.Err()
			if tt.code == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.HasCode(err, tt.code) {
				t.Errorf("expected %s, got %v", tt.code, err)
			}
		})
	}
}
