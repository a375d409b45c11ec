package discovery

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	opts = append(opts,
		WithBaseURL(srv.URL),
		WithHTTPClient(srv.Client()),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return NewClient(opts...)
}

func TestList_EncodesParams(t *testing.T) {
	var gotQuery string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"kind": "discovery#directoryList", "items": [
			{"id": "books:v1", "name": "books", "version": "v1", "preferred": true}
		]}`))
	})

	list, err := c.List(context.Background(), ListParams{Preferred: true})
	if err != nil {
		t.Fatal(err)
	}
	if gotQuery != "preferred=true" {
		t.Errorf("query = %q, want %q", gotQuery, "preferred=true")
	}
	if len(list.Items) != 1 || list.Items[0].Name != "books" {
		t.Errorf("unexpected items: %+v", list.Items)
	}
}

func TestList_OmitsZeroParams(t *testing.T) {
	var gotQuery string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"items": []}`))
	})

	if _, err := c.List(context.Background(), ListParams{}); err != nil {
		t.Fatal(err)
	}
	if gotQuery != "" {
		t.Errorf("query = %q, want empty", gotQuery)
	}
}

func TestGet_SetsDocumentURL(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "books:v1", "name": "books", "version": "v1", "revision": "20200410"}`))
	})

	doc, err := c.Get(context.Background(), c.baseURL+"/books/v1/rest")
	if err != nil {
		t.Fatal(err)
	}
	if doc.DiscoveryRestURL != c.baseURL+"/books/v1/rest" {
		t.Errorf("DiscoveryRestURL = %q", doc.DiscoveryRestURL)
	}
	if doc.Name != "books" || doc.Revision != "20200410" {
		t.Errorf("unexpected document: %+v", doc)
	}
}

func TestGet_ValidationFailure(t *testing.T) {
	// Document lacks the required id field.
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name": "books", "version": "v1"}`))
	})

	_, err := c.Get(context.Background(), c.baseURL)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("err = %v, want *LoadError", err)
	}
	if loadErr.Code != ValidationError {
		t.Errorf("code = %s, want %s", loadErr.Code, ValidationError)
	}
}

func TestGet_ParseFailure(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := c.Get(context.Background(), c.baseURL)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("err = %v, want *LoadError", err)
	}
	if loadErr.Code != ParseError {
		t.Errorf("code = %s, want %s", loadErr.Code, ParseError)
	}
}

func TestGet_HTTPError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})

	_, err := c.Get(context.Background(), c.baseURL)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("err = %v, want *LoadError", err)
	}
	if loadErr.Code != NetworkError {
		t.Errorf("code = %s, want %s", loadErr.Code, NetworkError)
	}
	if loadErr.URL == "" {
		t.Error("error must carry the failing URL")
	}
}

func TestGet_CacheReadThrough(t *testing.T) {
	hits := 0
	cache, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"id": "books:v1", "name": "books", "version": "v1"}`))
	}, WithCache(cache))

	for i := 0; i < 2; i++ {
		if _, err := c.Get(context.Background(), c.baseURL); err != nil {
			t.Fatal(err)
		}
	}
	if hits != 1 {
		t.Errorf("server hit %d times, want 1", hits)
	}
}
