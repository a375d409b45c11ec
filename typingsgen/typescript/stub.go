package typescript

import (
	"fmt"

	"github.com/Zizwar/google-api-typings-generator/internal/discovery"
)

// WriteStub writes a syntactically valid example literal conforming to s.
//
// expanding is the set of reference names currently being expanded; visiting
// a name already in the set emits "undefined" instead of recursing, which
// keeps stubs for cyclic schema graphs finite. The set is scoped to one walk
// of one document and is pushed/popped around every reference, including on
// error paths, so the guard never leaks across sibling calls.
func WriteStub(w *Writer, s *discovery.JSONSchema, registry discovery.Registry, expanding map[string]bool) error {
	switch {
	case s.Ref != "":
		if expanding[s.Ref] {
			w.Write("undefined")
			return nil
		}
		target, ok := registry[s.Ref]
		if !ok {
			return fmt.Errorf("%w: unresolved schema reference %q", ErrMalformedSchema, s.Ref)
		}
		expanding[s.Ref] = true
		defer delete(expanding, s.Ref)
		return WriteStub(w, target, registry, expanding)

	case s.Type == "array":
		if s.Items == nil {
			return fmt.Errorf("%w: array schema without items", ErrMalformedSchema)
		}
		return w.Scope(func() error {
			w.StartLine("")
			if err := WriteStub(w, s.Items, registry, expanding); err != nil {
				return err
			}
			w.EndLine(",")
			return nil
		}, "[", "]")

	case len(s.Properties) > 0:
		return w.Scope(func() error {
			for _, name := range discovery.SortedKeys(s.Properties) {
				prop := s.Properties[name]
				if prop.Description != "" {
					w.Comment(prop.Description)
				}
				w.StartLine(quoteName(name) + ": ")
				if err := WriteStub(w, prop, registry, expanding); err != nil {
					return err
				}
				w.EndLine(",")
			}
			return nil
		}, "{", "}")

	case s.AdditionalProperties != nil:
		// Uniform-value map: a single placeholder key entry.
		return w.Scope(func() error {
			w.StartLine("A: ")
			if err := WriteStub(w, s.AdditionalProperties, registry, expanding); err != nil {
				return err
			}
			w.EndLine(",")
			return nil
		}, "{", "}")

	case s.Type == "object":
		w.Write("{}")
		return nil

	default:
		switch s.Type {
		case "integer", "number", "any":
			w.Write("42")
		case "boolean":
			w.Write("true")
		case "string":
			w.Write(`"Test string"`)
		default:
			return fmt.Errorf("%w: unknown type %q", ErrMalformedSchema, s.Type)
		}
		return nil
	}
}
