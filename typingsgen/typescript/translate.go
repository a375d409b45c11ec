package typescript

import (
	"errors"
	"fmt"

	"github.com/Zizwar/google-api-typings-generator/internal/discovery"
)

// ErrMalformedSchema marks input the translator's contract assumes cannot
// occur: unknown scalar kinds, unresolvable references, typeless nodes.
// These are always fatal for the current document; guessing would produce an
// incorrect declaration.
var ErrMalformedSchema = errors.New("malformed schema")

// scalarTypes is the fixed scalar-name translation table. "object" appears
// here for the degenerate case of an object node with neither properties nor
// a uniform value type, which carries no shape information.
var scalarTypes = map[string]string{
	"integer": "number",
	"number":  "number",
	"string":  "string",
	"boolean": "boolean",
	"object":  "any",
	"any":     "any",
}

// Render maps one schema node to its TypeScript rendering: a flat type token
// or a callback emitting a nested structure. References are resolved by name
// through the registry and never inlined, so recursive schema graphs do not
// cause unbounded expansion.
func Render(s *discovery.JSONSchema, registry discovery.Registry) (Rendering, error) {
	switch {
	case s.Ref != "":
		target, ok := registry[s.Ref]
		if !ok {
			return Rendering{}, fmt.Errorf("%w: unresolved schema reference %q", ErrMalformedSchema, s.Ref)
		}
		// A reference to a schema with no shape is semantically "empty"
		// and renders as the top type, never as a name pointing at
		// nothing.
		if target.IsEmptyObject() {
			return Text("any"), nil
		}
		return Text(s.Ref), nil

	case s.Type == "array":
		if s.Items == nil {
			return Rendering{}, fmt.Errorf("%w: array schema without items", ErrMalformedSchema)
		}
		item, err := Render(s.Items, registry)
		if err != nil {
			return Rendering{}, err
		}
		switch {
		case item.IsToken():
			return Text(item.Token + "[]"), nil
		case item.Func != nil:
			return Nested(func(w *Writer) error {
				w.Write("Array<")
				if err := item.Func(w); err != nil {
					return err
				}
				w.Write(">")
				return nil
			}), nil
		default:
			return Text("[]"), nil
		}

	case s.Type == "object" && len(s.Properties) > 0:
		return Nested(func(w *Writer) error {
			return w.AnonymousType(func() error {
				return writeProperties(w, s, registry)
			})
		}), nil

	case s.Type == "object" && s.AdditionalProperties != nil:
		// A uniform-value "map" object. Rendered as an indexable type
		// literal; the target dialect's Record type collides with
		// same-named API schemas inside the generated namespace.
		value, err := Render(s.AdditionalProperties, registry)
		if err != nil {
			return Rendering{}, err
		}
		return Nested(func(w *Writer) error {
			return w.AnonymousType(func() error {
				return w.Property("[P: string]", value, true)
			})
		}), nil

	case s.Type != "":
		token, ok := scalarTypes[s.Type]
		if !ok {
			return Rendering{}, fmt.Errorf("%w: unknown type %q", ErrMalformedSchema, s.Type)
		}
		if s.Repeated {
			return Text(token + " | " + token + "[]"), nil
		}
		return Text(token), nil

	default:
		return Rendering{}, fmt.Errorf("%w: schema has neither type nor reference", ErrMalformedSchema)
	}
}

// writeProperties emits one property per named member, each preceded by its
// description, plus a string-indexed fallback property when the object also
// declares a uniform value type.
func writeProperties(w *Writer, s *discovery.JSONSchema, registry discovery.Registry) error {
	for _, name := range discovery.SortedKeys(s.Properties) {
		prop := s.Properties[name]
		if prop.Description != "" {
			w.Comment(prop.Description)
		}
		rendering, err := Render(prop, registry)
		if err != nil {
			return err
		}
		if err := w.Property(name, rendering, prop.Required); err != nil {
			return err
		}
	}
	if s.AdditionalProperties != nil {
		fallback, err := Render(s.AdditionalProperties, registry)
		if err != nil {
			return err
		}
		if err := w.Property("[P: string]", fallback, true); err != nil {
			return err
		}
	}
	return nil
}

// WriteSchemaInterface emits the named declaration for one registry schema.
func WriteSchemaInterface(w *Writer, name string, s *discovery.JSONSchema, registry discovery.Registry) error {
	if s.Description != "" {
		w.Comment(s.Description)
	}
	return w.Interface(name, func() error {
		return writeProperties(w, s, registry)
	}, s.IsEmptyObject())
}
