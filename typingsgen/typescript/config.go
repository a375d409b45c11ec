// Package typescript renders Google Discovery schema graphs as TypeScript
// declaration text: an indented writer, a schema-to-type translator, a
// resource/method declaration walker and a stub-value generator for the
// companion tests file.
package typescript

import "unicode"

// Config controls formatting and lint-suppression behavior. The lint
// heuristics are injectable so the translator core stays independent of any
// particular target dialect's lint rules.
type Config struct {
	// Indent is one level of indentation.
	Indent string

	// NewLine is the line terminator.
	NewLine string

	// MaxLineLength is the column budget for comment word-wrapping.
	MaxLineLength int

	// BannedTypes are type tokens that trip the target's ban-types lint
	// rule; a whole-word match in a rendered type emits a suppression
	// directive before the declaration.
	BannedTypes []string

	// LintInterfaceName reports whether an interface name would trip the
	// target's interface-name lint rule.
	LintInterfaceName func(name string) bool
}

// DefaultConfig returns the settings matching DefinitelyTyped's tslint
// conventions.
func DefaultConfig() Config {
	return Config{
		Indent:            "    ",
		NewLine:           "\n",
		MaxLineLength:     200,
		BannedTypes:       []string{"Object", "Function", "Boolean", "Number", "String", "Symbol"},
		LintInterfaceName: LooksLikeHungarianInterface,
	}
}

// LooksLikeHungarianInterface reports whether name starts with a capital I
// followed by another capital, the pattern the interface-name lint rule
// rejects.
func LooksLikeHungarianInterface(name string) bool {
	runes := []rune(name)
	return len(runes) >= 2 && runes[0] == 'I' && unicode.IsUpper(runes[1])
}
