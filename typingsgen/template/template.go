// Package template renders the auxiliary metadata files of a typings package
// (package manifest, build config, readme). The declaration and tests files
// are never routed through here; the generator builds those directly.
package template

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Data carries the fields the metadata templates interpolate.
type Data struct {
	Name              string
	Version           string
	MajorMinor        string
	Title             string
	Description       string
	DocumentationLink string
	PackageName       string
}

// Render executes the named template against data.
func Render(name string, data Data) (string, error) {
	var sb strings.Builder
	if err := templates.ExecuteTemplate(&sb, name+".tmpl", data); err != nil {
		return "", fmt.Errorf("render template %q: %w", name, err)
	}
	return sb.String(), nil
}
