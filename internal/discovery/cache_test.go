package discovery

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCache_PutGet(t *testing.T) {
	cache, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	const url = "https://www.googleapis.com/discovery/v1/apis/books/v1/rest"
	body := []byte(`{"id": "books:v1"}`)

	if _, ok := cache.Get(url); ok {
		t.Fatal("hit on empty cache")
	}
	if err := cache.Put(url, body); err != nil {
		t.Fatal(err)
	}
	got, ok := cache.Get(url)
	if !ok {
		t.Fatal("miss after put")
	}
	if !bytes.Equal(got, body) {
		t.Errorf("got %q, want %q", got, body)
	}
}

func TestCache_KeysByURL(t *testing.T) {
	cache, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := cache.Put("https://example.com/a", []byte("a")); err != nil {
		t.Fatal(err)
	}
	if err := cache.Put("https://example.com/b", []byte("b")); err != nil {
		t.Fatal(err)
	}

	got, ok := cache.Get("https://example.com/a")
	if !ok || string(got) != "a" {
		t.Errorf("Get(a) = (%q, %v), want (a, true)", got, ok)
	}
}

func TestCache_NoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := cache.Put("https://example.com/a", []byte("a")); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
		if !strings.HasSuffix(e.Name(), ".json") {
			t.Errorf("unexpected cache entry: %s", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("got %d entries, want 1", len(entries))
	}
}

func TestNewCache_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	if _, err := NewCache(dir); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !info.IsDir() {
		t.Errorf("%s is not a directory", dir)
	}
}
