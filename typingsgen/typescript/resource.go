package typescript

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/Zizwar/google-api-typings-generator/internal/discovery"
)

// InterfaceName derives a resource's interface type name.
func InterfaceName(resource string) string {
	runes := []rune(resource)
	if len(runes) == 0 {
		return "Resource"
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes) + "Resource"
}

// Namespaces returns every namespace used by the document's methods exactly
// once, in first-encountered order over a sorted depth-first walk. A method
// identifier without a namespace-separating dot is malformed input.
func Namespaces(doc *discovery.RestDescription) ([]string, error) {
	var order []string
	seen := make(map[string]bool)
	add := func(m *discovery.RestMethod) error {
		ns, err := MethodNamespace(m.ID)
		if err != nil {
			return err
		}
		if !seen[ns] {
			seen[ns] = true
			order = append(order, ns)
		}
		return nil
	}

	var walk func(res *discovery.RestResource) error
	walk = func(res *discovery.RestResource) error {
		for _, name := range discovery.SortedKeys(res.Methods) {
			if err := add(res.Methods[name]); err != nil {
				return err
			}
		}
		for _, name := range discovery.SortedKeys(res.Resources) {
			if err := walk(res.Resources[name]); err != nil {
				return err
			}
		}
		return nil
	}

	for _, name := range discovery.SortedKeys(doc.Methods) {
		if err := add(doc.Methods[name]); err != nil {
			return nil, err
		}
	}
	for _, name := range discovery.SortedKeys(doc.Resources) {
		if err := walk(doc.Resources[name]); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// MethodNamespace returns the first dot-segment of a method's dotted
// identifier. An identifier without a dot, or with an empty segment before
// the first dot, is malformed input.
func MethodNamespace(id string) (string, error) {
	i := strings.Index(id, ".")
	if i <= 0 {
		return "", fmt.Errorf("%w: method id %q lacks a namespace segment", ErrMalformedSchema, id)
	}
	return id[:i], nil
}

func shortName(id string) string {
	return id[strings.LastIndex(id, ".")+1:]
}

// WriteResources walks the document's resource tree depth-first, nested
// resources before their parent, and emits one interface per resource that
// carries methods in the given namespace (or is deliberately empty). It
// returns the lexicographically sorted names of the top-level resources
// actually written, for the enclosing scope's const exports.
func WriteResources(w *Writer, doc *discovery.RestDescription, namespace string) ([]string, error) {
	rw := &resourceWalker{w: w, doc: doc, namespace: namespace}
	var written []string
	for _, name := range discovery.SortedKeys(doc.Resources) {
		ok, err := rw.writeResource(name, doc.Resources[name])
		if err != nil {
			return nil, fmt.Errorf("resource %q: %w", name, err)
		}
		if ok {
			written = append(written, name)
		}
	}
	return written, nil
}

type resourceWalker struct {
	w         *Writer
	doc       *discovery.RestDescription
	namespace string
}

func (rw *resourceWalker) writeResource(name string, res *discovery.RestResource) (bool, error) {
	childWritten := make(map[string]bool)
	anyChild := false
	for _, childName := range discovery.SortedKeys(res.Resources) {
		ok, err := rw.writeResource(childName, res.Resources[childName])
		if err != nil {
			return false, err
		}
		childWritten[childName] = ok
		anyChild = anyChild || ok
	}

	inNamespace, err := rw.methodsInNamespace(res)
	if err != nil {
		return false, err
	}

	ifaceName := InterfaceName(name)

	// A resource with no methods and no nested resources anywhere is
	// supposed to be empty and renders as an empty interface. One that has
	// methods, just none in this namespace, belongs to another pass.
	if len(res.Methods) == 0 && len(res.Resources) == 0 {
		if err := rw.w.Interface(ifaceName, func() error { return nil }, true); err != nil {
			return false, err
		}
		return true, nil
	}
	if len(inNamespace) == 0 && !anyChild {
		return false, nil
	}

	err = rw.w.Interface(ifaceName, func() error {
		for _, methodName := range inNamespace {
			if err := rw.writeMethod(res.Methods[methodName]); err != nil {
				return fmt.Errorf("method %q: %w", methodName, err)
			}
		}
		for _, childName := range discovery.SortedKeys(res.Resources) {
			if !childWritten[childName] {
				continue
			}
			if err := rw.w.Property(childName, Text(InterfaceName(childName)), true); err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return false, err
	}
	return true, nil
}

// methodsInNamespace returns the sorted names of the resource's methods whose
// dotted identifier belongs to the walker's namespace.
func (rw *resourceWalker) methodsInNamespace(res *discovery.RestResource) ([]string, error) {
	var names []string
	for _, name := range discovery.SortedKeys(res.Methods) {
		ns, err := MethodNamespace(res.Methods[name].ID)
		if err != nil {
			return nil, err
		}
		if ns == rw.namespace {
			names = append(names, name)
		}
	}
	return names, nil
}

func (rw *resourceWalker) writeMethod(m *discovery.RestMethod) error {
	returnType, err := responseType(m, rw.doc.Schemas)
	if err != nil {
		return err
	}

	merged := mergedParameters(rw.doc, m)
	hasBody := m.Request != nil && m.Request.Ref != ""
	_, hasResourceParam := merged["resource"]

	if m.Description != "" {
		rw.w.Comment(m.Description)
	}

	// Bare-request overload: the request body, when present, rides inside
	// the request object under the "resource" key, unless a declared
	// parameter already claims that name.
	if !hasBody || !hasResourceParam {
		requestType := rw.requestObjectType(merged, m, hasBody)
		params := []Param{{Name: "request", Type: requestType, Required: true}}
		if err := rw.w.Method(shortName(m.ID), params, returnType, true); err != nil {
			return err
		}
	}

	// Request-with-body overload.
	if hasBody {
		requestType := rw.requestObjectType(merged, m, false)
		params := []Param{
			{Name: "request", Type: requestType, Required: true},
			{Name: "body", Type: Text(m.Request.Ref), Required: true},
		}
		if err := rw.w.Method(shortName(m.ID), params, returnType, true); err != nil {
			return err
		}
	}
	return nil
}

// requestObjectType renders the merged parameter set as an anonymous object
// type, optionally appending the request body under the "resource" key.
func (rw *resourceWalker) requestObjectType(merged map[string]*discovery.JSONSchema, m *discovery.RestMethod, includeBody bool) Rendering {
	return Nested(func(w *Writer) error {
		return w.AnonymousType(func() error {
			for _, name := range discovery.SortedKeys(merged) {
				param := merged[name]
				if param.Description != "" {
					w.Comment(param.Description)
				}
				rendering, err := Render(param, rw.doc.Schemas)
				if err != nil {
					return err
				}
				if err := w.Property(name, rendering, param.Required); err != nil {
					return err
				}
			}
			if includeBody {
				w.Comment("Request body")
				return w.Property("resource", Text(m.Request.Ref), false)
			}
			return nil
		})
	})
}

// mergedParameters merges the method's declared parameters with the
// document-level standard parameters; standard parameters override.
func mergedParameters(doc *discovery.RestDescription, m *discovery.RestMethod) map[string]*discovery.JSONSchema {
	merged := make(map[string]*discovery.JSONSchema, len(m.Parameters)+len(doc.Parameters))
	for name, param := range m.Parameters {
		merged[name] = param
	}
	for name, param := range doc.Parameters {
		merged[name] = param
	}
	return merged
}

// responseType renders the generic request-wrapper return type: the declared
// response schema when it has properties, an empty-object parameter when it
// does not, and void when no response is declared at all.
func responseType(m *discovery.RestMethod, registry discovery.Registry) (string, error) {
	if m.Response == nil || m.Response.Ref == "" {
		return "Request<void>", nil
	}
	target, ok := registry[m.Response.Ref]
	if !ok {
		return "", fmt.Errorf("%w: unresolved response reference %q", ErrMalformedSchema, m.Response.Ref)
	}
	if len(target.Properties) == 0 {
		return "Request<{}>", nil
	}
	return "Request<" + m.Response.Ref + ">", nil
}
