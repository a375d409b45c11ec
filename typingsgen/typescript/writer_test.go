package typescript

import (
	"errors"
	"strings"
	"testing"
)

func newTestWriter() *Writer {
	return NewWriter(DefaultConfig())
}

func TestWriteLine_Indentation(t *testing.T) {
	w := newTestWriter()
	w.WriteLine("a")
	_ = w.Indent(func() error {
		w.WriteLine("b")
		return w.Indent(func() error {
			w.WriteLine("c")
			return nil
		})
	})
	w.WriteLine("d")

	want := "a\n    b\n        c\nd\n"
	if got := w.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBraces(t *testing.T) {
	w := newTestWriter()
	err := w.Braces("interface Foo", func() error {
		w.WriteLine("a: string;")
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	want := "interface Foo {\n    a: string;\n}\n"
	if got := w.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestIndent_DepthRestoredOnError(t *testing.T) {
	w := newTestWriter()
	boom := errors.New("boom")
	err := w.Braces("x", func() error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}

	// Depth must be back at zero even though the body aborted.
	w.WriteLine("after")
	if !strings.HasSuffix(w.String(), "\nafter\n") {
		t.Errorf("depth leaked after error:\n%s", w.String())
	}
}

func TestScope_Inline(t *testing.T) {
	w := newTestWriter()
	w.StartLine("a: ")
	err := w.Scope(func() error {
		w.WriteLine("b: string;")
		return nil
	}, "{", "}")
	if err != nil {
		t.Fatal(err)
	}
	w.EndLine(";")

	want := "a: {\n    b: string;\n};\n"
	if got := w.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestProperty(t *testing.T) {
	tests := []struct {
		name     string
		propName string
		typ      Rendering
		required bool
		want     string
	}{
		{
			name:     "required flat",
			propName: "count",
			typ:      Text("number"),
			required: true,
			want:     "count: number;\n",
		},
		{
			name:     "optional flat",
			propName: "count",
			typ:      Text("number"),
			required: false,
			want:     "count?: number;\n",
		},
		{
			name:     "dotted name quoted",
			propName: "user.name",
			typ:      Text("string"),
			required: true,
			want:     "\"user.name\": string;\n",
		},
		{
			name:     "dashed name quoted",
			propName: "content-type",
			typ:      Text("string"),
			required: false,
			want:     "\"content-type\"?: string;\n",
		},
		{
			name:     "at-sign name quoted",
			propName: "@type",
			typ:      Text("string"),
			required: true,
			want:     "\"@type\": string;\n",
		},
		{
			name:     "banned type gets suppression",
			propName: "meta",
			typ:      Text("Object"),
			required: false,
			want:     "// tslint:disable-next-line:ban-types\nmeta?: Object;\n",
		},
		{
			name:     "banned token must match whole word",
			propName: "meta",
			typ:      Text("ObjectList"),
			required: true,
			want:     "meta: ObjectList;\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWriter()
			if err := w.Property(tt.propName, tt.typ, tt.required); err != nil {
				t.Fatal(err)
			}
			if got := w.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProperty_NestedType(t *testing.T) {
	w := newTestWriter()
	nested := Nested(func(w *Writer) error {
		return w.AnonymousType(func() error {
			return w.Property("inner", Text("string"), false)
		})
	})
	if err := w.Property("outer", nested, true); err != nil {
		t.Fatal(err)
	}

	want := "outer: {\n    inner?: string;\n};\n"
	if got := w.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMethod_SingleLine(t *testing.T) {
	w := newTestWriter()
	params := []Param{
		{Name: "a", Type: Text("string"), Required: true},
		{Name: "b", Type: Text("number")},
	}
	if err := w.Method("get", params, "Request<void>", true); err != nil {
		t.Fatal(err)
	}

	want := "get(a: string, b?: number): Request<void>;\n"
	if got := w.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMethod_MultiLine(t *testing.T) {
	w := newTestWriter()
	params := []Param{
		{Name: "a", Type: Text("string"), Required: true},
		{Name: "b", Type: Text("number")},
	}
	if err := w.Method("get", params, "Request<void>", false); err != nil {
		t.Fatal(err)
	}

	want := "get(\n    a: string,\n    b?: number\n): Request<void>;\n"
	if got := w.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMethod_BannedTypeSuppression(t *testing.T) {
	tests := []struct {
		name       string
		params     []Param
		returnType string
		want       bool
	}{
		{
			name:       "banned parameter type",
			params:     []Param{{Name: "f", Type: Text("Function"), Required: true}},
			returnType: "Request<void>",
			want:       true,
		},
		{
			name:       "banned return type",
			params:     []Param{{Name: "a", Type: Text("string"), Required: true}},
			returnType: "Request<Object>",
			want:       true,
		},
		{
			name:       "clean signature",
			params:     []Param{{Name: "a", Type: Text("string"), Required: true}},
			returnType: "Request<void>",
			want:       false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWriter()
			if err := w.Method("m", tt.params, tt.returnType, true); err != nil {
				t.Fatal(err)
			}
			got := strings.Contains(w.String(), "ban-types")
			if got != tt.want {
				t.Errorf("ban-types suppression = %v, want %v:\n%s", got, tt.want, w.String())
			}
		})
	}
}

func TestInterface_Suppressions(t *testing.T) {
	tests := []struct {
		name  string
		iface string
		empty bool
		want  string
	}{
		{
			name:  "plain name",
			iface: "Item",
			empty: false,
			want:  "interface Item {\n}\n",
		},
		{
			name:  "hungarian name",
			iface: "IItem",
			empty: false,
			want:  "// tslint:disable-next-line:interface-name\ninterface IItem {\n}\n",
		},
		{
			name:  "empty interface",
			iface: "Item",
			empty: true,
			want:  "// tslint:disable-next-line:no-empty-interface\ninterface Item {\n}\n",
		},
		{
			name:  "hungarian and empty",
			iface: "IItem",
			empty: true,
			want:  "// tslint:disable-next-line:interface-name no-empty-interface\ninterface IItem {\n}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWriter()
			if err := w.Interface(tt.iface, func() error { return nil }, tt.empty); err != nil {
				t.Fatal(err)
			}
			if got := w.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLooksLikeHungarianInterface(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"IItem", true},
		{"IO", true},
		{"Item", false},
		{"Image", false},
		{"I", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := LooksLikeHungarianInterface(tt.name); got != tt.want {
			t.Errorf("LooksLikeHungarianInterface(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
