package typingsgen

import (
	"errors"
	"strings"
	"testing"

	"github.com/Zizwar/google-api-typings-generator/internal/discovery"
)

func TestRevision_RoundTrip(t *testing.T) {
	for _, rev := range []int64{0, 1, 20200101, 9007199254740991} {
		line := FormatRevision(rev)
		file := "// Type definitions for non-npm package Books v1 1.0\n" +
			line + "\n" +
			"declare namespace gapi.client {\n}\n"
		got, ok := ExtractRevision(strings.NewReader(file))
		if !ok {
			t.Fatalf("marker not found for %d", rev)
		}
		if got != rev {
			t.Errorf("round-trip: got %d, want %d", got, rev)
		}
	}
}

func TestExtractRevision_NoMarker(t *testing.T) {
	if _, ok := ExtractRevision(strings.NewReader("// Project: x\n// Definitions: y\n")); ok {
		t.Error("found a marker in a file without one")
	}
}

func TestExtractRevision_UnparsableMarker(t *testing.T) {
	if _, ok := ExtractRevision(strings.NewReader("// Revision: yesterday\n")); ok {
		t.Error("accepted a non-numeric revision")
	}
}

func TestExtractRevision_IndentedMarker(t *testing.T) {
	got, ok := ExtractRevision(strings.NewReader("    // Revision: 42\n"))
	if !ok || got != 42 {
		t.Errorf("got (%d, %v), want (42, true)", got, ok)
	}
}

func TestDocRevision(t *testing.T) {
	doc := &discovery.RestDescription{ID: "books:v1", Revision: "20200410"}
	rev, err := DocRevision(doc)
	if err != nil {
		t.Fatal(err)
	}
	if rev != 20200410 {
		t.Errorf("got %d, want 20200410", rev)
	}
}

func TestDocRevision_NonNumeric(t *testing.T) {
	for _, revision := range []string{"", "draft", "2020-04-10"} {
		doc := &discovery.RestDescription{ID: "books:v1", Revision: revision}
		_, err := DocRevision(doc)
		if !errors.Is(err, ErrUnknownRevision) {
			t.Errorf("Revision=%q: err = %v, want ErrUnknownRevision", revision, err)
		}
		if err != nil && !strings.Contains(err.Error(), "books:v1") {
			t.Errorf("error must name the document: %v", err)
		}
	}
}
