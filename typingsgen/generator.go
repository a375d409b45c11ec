// Package typingsgen turns Google Discovery description documents into
// DefinitelyTyped-style gapi.client typings packages: an index.d.ts with the
// declared API surface, a tests.ts with stubbed example calls, and the
// package metadata files around them.
package typingsgen

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Zizwar/google-api-typings-generator/internal/discovery"
	"github.com/Zizwar/google-api-typings-generator/typingsgen/sink"
	"github.com/Zizwar/google-api-typings-generator/typingsgen/template"
	"github.com/Zizwar/google-api-typings-generator/typingsgen/typescript"
)

// reservedExport is the one resource name never emitted as a const export:
// it is a statement keyword in the target language, so the declaration would
// not parse. The resource's interface is still generated.
const reservedExport = "debugger"

// Config controls generation output.
type Config struct {
	// AuthorLine is the "Definitions by:" attribution.
	AuthorLine string

	// ProjectURL is the generator project referenced by the disclaimer.
	ProjectURL string

	// TypeScript holds formatting and lint-suppression settings.
	TypeScript typescript.Config
}

// DefaultConfig returns the standard DefinitelyTyped-oriented settings.
func DefaultConfig() Config {
	return Config{
		AuthorLine: "Zizwar <https://github.com/Zizwar>",
		ProjectURL: "https://github.com/Zizwar/google-api-typings-generator",
		TypeScript: typescript.DefaultConfig(),
	}
}

// Generator renders typings packages for one API document at a time. It is
// stateless across documents; the only mutable state lives inside a single
// GenerateAPI call.
type Generator struct {
	cfg Config
	out sink.OutputSink
	log *slog.Logger
}

// New creates a Generator writing through out.
func New(out sink.OutputSink, cfg Config, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.Default()
	}
	return &Generator{cfg: cfg, out: out, log: log}
}

// PackageName derives the typings package name for a document.
func PackageName(doc *discovery.RestDescription) string {
	return "gapi.client." + doc.Name
}

// GenerateAPI renders the full typings package for one document and publishes
// it through the sink. Both declaration files render to buffers first, so a
// translation failure leaves no partial artifact behind.
func (g *Generator) GenerateAPI(ctx context.Context, doc *discovery.RestDescription) error {
	rev, err := DocRevision(doc)
	if err != nil {
		return err
	}
	namespaces, err := typescript.Namespaces(doc)
	if err != nil {
		return fmt.Errorf("%s: %w", doc.ID, err)
	}

	index, err := g.renderTypings(doc, namespaces, rev)
	if err != nil {
		return fmt.Errorf("%s: render typings: %w", doc.ID, err)
	}
	tests, err := g.renderTests(doc, namespaces, rev)
	if err != nil {
		return fmt.Errorf("%s: render tests: %w", doc.ID, err)
	}

	pkg := PackageName(doc)
	files := map[string][]byte{
		pkg + "/index.d.ts": index,
		pkg + "/tests.ts":   tests,
	}

	meta := template.Data{
		Name:              doc.Name,
		Version:           doc.Version,
		MajorMinor:        MajorMinor(doc.Version),
		Title:             doc.Title,
		Description:       doc.Description,
		DocumentationLink: doc.DocumentationLink,
		PackageName:       pkg,
	}
	for file, tmpl := range map[string]string{
		pkg + "/package.json":  "package.json",
		pkg + "/tsconfig.json": "tsconfig.json",
		pkg + "/.npmignore":    "npmignore",
		pkg + "/readme.md":     "readme.md",
	} {
		content, err := template.Render(tmpl, meta)
		if err != nil {
			return fmt.Errorf("%s: render %s: %w", doc.ID, tmpl, err)
		}
		files[file] = []byte(content)
	}

	for _, path := range discovery.SortedKeys(files) {
		if err := g.out.WriteFile(ctx, path, files[path]); err != nil {
			return fmt.Errorf("%s: write %s: %w", doc.ID, path, err)
		}
	}
	g.log.Info("generated typings package",
		slog.String("api", doc.ID),
		slog.String("package", pkg),
		slog.Int64("revision", rev),
	)
	return nil
}

func (g *Generator) renderTypings(doc *discovery.RestDescription, namespaces []string, rev int64) ([]byte, error) {
	w := typescript.NewWriter(g.cfg.TypeScript)
	g.writeBanner(w, doc, rev)
	w.WriteLine("")
	w.WriteLine(`/// <reference types="gapi.client" />`)
	w.WriteLine("")

	for _, ns := range namespaces {
		err := w.Braces("declare namespace gapi.client", func() error {
			w.Comment(fmt.Sprintf("Load %s %s", doc.Title, doc.Version))
			w.WriteLine("function load(url: string): Promise<void>;")
			w.WriteLine("/** @deprecated Please load APIs with discovery documents. */")
			w.WriteLine(fmt.Sprintf("function load(name: %q, version: %q): PromiseLike<void>;", doc.Name, doc.Version))
			w.WriteLine("/** @deprecated Please load APIs with discovery documents. */")
			w.WriteLine(fmt.Sprintf("function load(name: %q, version: %q, callback: () => any): void;", doc.Name, doc.Version))
			w.WriteLine("")

			return w.Braces("namespace "+ns, func() error {
				for _, name := range discovery.SortedKeys(doc.Schemas) {
					if err := typescript.WriteSchemaInterface(w, name, doc.Schemas[name], doc.Schemas); err != nil {
						return err
					}
				}
				written, err := typescript.WriteResources(w, doc, ns)
				if err != nil {
					return err
				}
				for _, name := range written {
					if name == reservedExport {
						continue
					}
					w.WriteLine("const " + name + ": " + typescript.InterfaceName(name) + ";")
				}
				return nil
			})
		})
		if err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

func (g *Generator) writeBanner(w *typescript.Writer, doc *discovery.RestDescription, rev int64) {
	w.WriteLine(fmt.Sprintf("// Type definitions for non-npm package %s %s %s", doc.Title, doc.Version, MajorMinor(doc.Version)))
	w.WriteLine("// Project: " + doc.DocumentationLink)
	w.WriteLine("// Definitions by: " + g.cfg.AuthorLine)
	w.WriteLine("// Definitions: https://github.com/DefinitelyTyped/DefinitelyTyped")
	w.WriteLine("// TypeScript Version: 2.8")
	w.WriteLine("")
	g.writeDisclaimer(w, doc, rev)
}

func (g *Generator) writeDisclaimer(w *typescript.Writer, doc *discovery.RestDescription, rev int64) {
	w.WriteLine("// IMPORTANT")
	w.WriteLine("// This file was generated by " + g.cfg.ProjectURL + ". Please do not edit it manually.")
	w.WriteLine("// In case of any problems please post issue to " + g.cfg.ProjectURL)
	w.WriteLine("// Generated from: " + doc.DiscoveryRestURL)
	w.WriteLine(FormatRevision(rev))
}

func (g *Generator) renderTests(doc *discovery.RestDescription, namespaces []string, rev int64) ([]byte, error) {
	w := typescript.NewWriter(g.cfg.TypeScript)
	w.WriteLine(fmt.Sprintf("/* This is stub file for %s definition tests */", PackageName(doc)))
	g.writeDisclaimer(w, doc, rev)
	w.WriteLine("")

	w.WriteLine("gapi.load('client', async () => {")
	err := w.Indent(func() error {
		w.Comment("now we can use gapi.client")
		w.WriteLine(fmt.Sprintf("await gapi.client.load('%s');", doc.DiscoveryRestURL))
		w.WriteLine("")

		if scopes := oauthScopes(doc); len(scopes) > 0 {
			g.writeAuthScaffolding(w, doc, scopes)
		} else {
			w.WriteLine("run();")
		}
		w.WriteLine("")

		return w.Braces("async function run()", func() error {
			// One expansion guard per document walk.
			expanding := make(map[string]bool)
			for _, ns := range namespaces {
				if err := g.writeCallStubs(w, doc, ns, expanding); err != nil {
					return err
				}
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	w.WriteLine("});")
	return w.Bytes(), nil
}

func oauthScopes(doc *discovery.RestDescription) []string {
	if doc.Auth == nil || doc.Auth.OAuth2 == nil {
		return nil
	}
	return discovery.SortedKeys(doc.Auth.OAuth2.Scopes)
}

func (g *Generator) writeAuthScaffolding(w *typescript.Writer, doc *discovery.RestDescription, scopes []string) {
	w.Comment("don't forget to authenticate your client before sending any request to resources:")
	w.Comment("declare client_id registered in Google Developers Console")
	w.WriteLine("const client_id = '<<PUT YOUR CLIENT ID HERE>>';")
	w.StartLine("const scope = ")
	_ = w.Scope(func() error {
		for _, scope := range scopes {
			if desc := doc.Auth.OAuth2.Scopes[scope].Description; desc != "" {
				w.Comment(desc)
			}
			w.WriteLine("'" + scope + "',")
		}
		return nil
	}, "[", "]")
	w.EndLine(";")
	w.WriteLine("const immediate = false;")
	w.WriteLine("gapi.auth.authorize({ client_id, scope, immediate }, authResult => {")
	_ = w.Indent(func() error {
		w.WriteLine("if (authResult && !authResult.error) {")
		_ = w.Indent(func() error {
			w.Comment("handle successful authorization")
			w.WriteLine("run();")
			return nil
		})
		w.WriteLine("} else {")
		_ = w.Indent(func() error {
			w.Comment("handle authorization error")
			return nil
		})
		w.WriteLine("}")
		return nil
	})
	w.WriteLine("});")
}

// writeCallStubs emits one awaited call per in-namespace method, walking the
// resource tree depth-first so the stubs mirror its nesting.
func (g *Generator) writeCallStubs(w *typescript.Writer, doc *discovery.RestDescription, namespace string, expanding map[string]bool) error {
	var walkMethods func(methods map[string]*discovery.RestMethod) error
	walkMethods = func(methods map[string]*discovery.RestMethod) error {
		for _, name := range discovery.SortedKeys(methods) {
			if err := g.writeCallStub(w, doc, namespace, methods[name], expanding); err != nil {
				return fmt.Errorf("method %q: %w", name, err)
			}
		}
		return nil
	}

	var walk func(res *discovery.RestResource) error
	walk = func(res *discovery.RestResource) error {
		if err := walkMethods(res.Methods); err != nil {
			return err
		}
		for _, name := range discovery.SortedKeys(res.Resources) {
			if err := walk(res.Resources[name]); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walkMethods(doc.Methods); err != nil {
		return err
	}
	for _, name := range discovery.SortedKeys(doc.Resources) {
		if err := walk(doc.Resources[name]); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) writeCallStub(w *typescript.Writer, doc *discovery.RestDescription, namespace string, m *discovery.RestMethod, expanding map[string]bool) error {
	ns, err := typescript.MethodNamespace(m.ID)
	if err != nil {
		return err
	}
	if ns != namespace {
		return nil
	}

	if m.Description != "" {
		w.Comment(m.Description)
	}

	args := make(map[string]*discovery.JSONSchema, len(m.Parameters)+1)
	for name, param := range m.Parameters {
		args[name] = param
	}
	if m.Request != nil && m.Request.Ref != "" {
		args["resource"] = &discovery.JSONSchema{Ref: m.Request.Ref}
	}

	if len(args) == 0 {
		w.WriteLine("await gapi.client." + m.ID + "();")
		return nil
	}

	w.StartLine("await gapi.client." + m.ID + "(")
	stub := &discovery.JSONSchema{Type: "object", Properties: args}
	if err := typescript.WriteStub(w, stub, doc.Schemas, expanding); err != nil {
		return err
	}
	w.EndLine(");")
	return nil
}
