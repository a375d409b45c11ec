// Package discovery models Google Discovery Service documents and fetches
// them over HTTP. The RestDescription tree is the input to the typings
// generator; every node is immutable once decoded.
package discovery

import (
	"slices"

	"golang.org/x/exp/maps"
)

// DirectoryList is the response of the discovery directory endpoint.
type DirectoryList struct {
	Kind  string          `json:"kind"`
	Items []DirectoryItem `json:"items"`
}

// DirectoryItem is one API entry in the directory.
type DirectoryItem struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Version           string `json:"version"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	DiscoveryRestURL  string `json:"discoveryRestUrl"`
	DocumentationLink string `json:"documentationLink"`
	Preferred         bool   `json:"preferred"`
}

// RestDescription is a full API description document.
//
// Schemas is the schema registry: every $ref in the document resolves
// by name into it. It is shared by reference during generation and never
// mutated, so self-referential schema graphs stay representable.
type RestDescription struct {
	ID                string                   `json:"id" validate:"required"`
	Name              string                   `json:"name" validate:"required"`
	Version           string                   `json:"version" validate:"required"`
	Revision          string                   `json:"revision"`
	Title             string                   `json:"title"`
	Description       string                   `json:"description"`
	DocumentationLink string                   `json:"documentationLink"`
	BaseURL           string                   `json:"baseUrl"`
	Auth              *Auth                    `json:"auth,omitempty"`
	Parameters        map[string]*JSONSchema   `json:"parameters,omitempty"`
	Schemas           Registry                 `json:"schemas,omitempty"`
	Resources         map[string]*RestResource `json:"resources,omitempty"`
	Methods           map[string]*RestMethod   `json:"methods,omitempty"`

	// DiscoveryRestURL is the URL the document was fetched from.
	// Set by the client, not part of the wire format.
	DiscoveryRestURL string `json:"-"`
}

// Registry maps schema names to their definitions.
type Registry map[string]*JSONSchema

// JSONSchema is one type-shape node. The shape is a tagged union decided by
// field presence: Ref wins, then Type ("array"/"object"/scalar kinds) with
// Items, Properties and AdditionalProperties refining arrays and objects.
type JSONSchema struct {
	ID                   string                 `json:"id,omitempty"`
	Type                 string                 `json:"type,omitempty"`
	Ref                  string                 `json:"$ref,omitempty"`
	Description          string                 `json:"description,omitempty"`
	Default              string                 `json:"default,omitempty"`
	Required             bool                   `json:"required,omitempty"`
	Repeated             bool                   `json:"repeated,omitempty"`
	Location             string                 `json:"location,omitempty"`
	Items                *JSONSchema            `json:"items,omitempty"`
	Properties           map[string]*JSONSchema `json:"properties,omitempty"`
	AdditionalProperties *JSONSchema            `json:"additionalProperties,omitempty"`
	Enum                 []string               `json:"enum,omitempty"`
	EnumDescriptions     []string               `json:"enumDescriptions,omitempty"`
}

// IsEmptyObject reports whether the schema declares no shape at all: no named
// properties and no uniform value type. References to such schemas render as
// the universal top type rather than as a named reference to nothing.
func (s *JSONSchema) IsEmptyObject() bool {
	return len(s.Properties) == 0 && s.AdditionalProperties == nil
}

// RestResource is a named grouping of methods and nested resources.
type RestResource struct {
	Methods   map[string]*RestMethod   `json:"methods,omitempty"`
	Resources map[string]*RestResource `json:"resources,omitempty"`
}

// RestMethod is one callable operation. ID is the dotted identifier
// ("namespace.resource.method"); its first segment names the namespace the
// method belongs to and its last segment is the short method name.
type RestMethod struct {
	ID          string                 `json:"id" validate:"required"`
	Path        string                 `json:"path,omitempty"`
	HTTPMethod  string                 `json:"httpMethod,omitempty"`
	Description string                 `json:"description,omitempty"`
	Parameters  map[string]*JSONSchema `json:"parameters,omitempty"`
	Request     *SchemaRef             `json:"request,omitempty"`
	Response    *SchemaRef             `json:"response,omitempty"`
	Scopes      []string               `json:"scopes,omitempty"`
}

// SchemaRef is a by-name pointer into the schema registry.
type SchemaRef struct {
	Ref string `json:"$ref"`
}

// Auth describes the authentication block of a description document.
type Auth struct {
	OAuth2 *OAuth2 `json:"oauth2,omitempty"`
}

// OAuth2 lists the OAuth scopes an API declares.
type OAuth2 struct {
	Scopes map[string]Scope `json:"scopes,omitempty"`
}

// Scope documents a single OAuth scope.
type Scope struct {
	Description string `json:"description,omitempty"`
}

// SortedKeys returns the keys of m in lexicographic order. The wire format is
// ordered JSON but Go maps are not, so every walk over the document iterates
// through this to keep output deterministic.
func SortedKeys[M ~map[string]V, V any](m M) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}
