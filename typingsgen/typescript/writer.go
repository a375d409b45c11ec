package typescript

import (
	"bytes"
	"regexp"
	"strings"
)

// Rendering is either a flat type token or a callback that renders a nested
// structure through the writer. Consumers branch on the tag explicitly via
// IsToken; the zero Rendering means "no type could be produced" and only the
// array rule gives it a meaning.
type Rendering struct {
	Token string
	Func  func(*Writer) error
}

// Text returns a flat-token rendering.
func Text(token string) Rendering { return Rendering{Token: token} }

// Nested returns a callback rendering.
func Nested(f func(*Writer) error) Rendering { return Rendering{Func: f} }

// IsToken reports whether the rendering is a flat token.
func (r Rendering) IsToken() bool { return r.Func == nil && r.Token != "" }

// IsZero reports whether the rendering carries neither a token nor a callback.
func (r Rendering) IsZero() bool { return r.Func == nil && r.Token == "" }

// Param is one parameter of a call signature.
type Param struct {
	Name     string
	Type     Rendering
	Required bool
}

// Writer is a line-oriented text emitter with an explicit nesting-depth
// counter, plus the declaration-level operations built on it. It renders to
// an internal buffer; callers publish the finished bytes atomically so a
// failed translation never leaves a truncated artifact.
type Writer struct {
	buf    bytes.Buffer
	cfg    Config
	depth  int
	banned []*regexp.Regexp
}

// NewWriter creates a writer with the given configuration.
func NewWriter(cfg Config) *Writer {
	w := &Writer{cfg: cfg}
	for _, tok := range cfg.BannedTypes {
		w.banned = append(w.banned, regexp.MustCompile(`\b`+regexp.QuoteMeta(tok)+`\b`))
	}
	return w
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// String returns the accumulated output.
func (w *Writer) String() string { return w.buf.String() }

func (w *Writer) indentPrefix() string {
	return strings.Repeat(w.cfg.Indent, w.depth)
}

// Write appends raw text with no indentation or newline.
func (w *Writer) Write(text string) {
	w.buf.WriteString(text)
}

// WriteLine writes an indented line followed by a newline.
func (w *Writer) WriteLine(text string) {
	w.buf.WriteString(w.indentPrefix())
	w.buf.WriteString(text)
	w.buf.WriteString(w.cfg.NewLine)
}

// StartLine opens an indented line without terminating it, so nested content
// can be appended with Write before EndLine closes it.
func (w *Writer) StartLine(text string) {
	w.buf.WriteString(w.indentPrefix())
	w.buf.WriteString(text)
}

// EndLine appends text and the newline to the currently open line.
func (w *Writer) EndLine(text string) {
	w.buf.WriteString(text)
	w.buf.WriteString(w.cfg.NewLine)
}

// Indent runs body one nesting level deeper. Depth is restored even when the
// body returns an error.
func (w *Writer) Indent(body func() error) error {
	w.depth++
	defer func() { w.depth-- }()
	return body()
}

// Braces writes "header {", runs body indented, and closes the brace on its
// own line.
func (w *Writer) Braces(header string, body func() error) error {
	w.WriteLine(header + " {")
	if err := w.Indent(body); err != nil {
		return err
	}
	w.WriteLine("}")
	return nil
}

// Scope renders an inline brace-style block mid-line: it terminates the open
// line with openTag, runs body indented, and reopens the line at the closing
// tag so the caller can keep appending (";", ">", ",").
func (w *Writer) Scope(body func() error, openTag, closeTag string) error {
	w.EndLine(openTag)
	if err := w.Indent(body); err != nil {
		return err
	}
	w.StartLine(closeTag)
	return nil
}

// AnonymousType renders an inline object type block.
func (w *Writer) AnonymousType(body func() error) error {
	return w.Scope(body, "{", "}")
}

// Interface emits a brace-delimited interface declaration, with lint
// suppressions for names the target dialect's heuristics reject and for
// deliberately empty interfaces.
func (w *Writer) Interface(name string, body func() error, emptyInterface bool) error {
	var rules []string
	if w.cfg.LintInterfaceName != nil && w.cfg.LintInterfaceName(name) {
		rules = append(rules, "interface-name")
	}
	if emptyInterface {
		rules = append(rules, "no-empty-interface")
	}
	if len(rules) > 0 {
		w.WriteLine("// tslint:disable-next-line:" + strings.Join(rules, " "))
	}
	return w.Braces("interface "+name, body)
}

// Property emits "name[?]: type;". Names containing '.', '-' or '@' are
// quoted. A flat type containing a banned token gets a ban-types suppression
// directive on the preceding line.
func (w *Writer) Property(name string, typ Rendering, required bool) error {
	if typ.IsToken() && w.containsBannedType(typ.Token) {
		w.WriteLine("// tslint:disable-next-line:ban-types")
	}
	decl := quoteName(name)
	if !required {
		decl += "?"
	}
	if typ.IsToken() {
		w.WriteLine(decl + ": " + typ.Token + ";")
		return nil
	}
	w.StartLine(decl + ": ")
	if err := typ.Func(w); err != nil {
		return err
	}
	w.EndLine(";")
	return nil
}

// Method emits a call signature "name(p1[?]: T1, ...): R;". In multi-line
// mode each parameter sits on its own line with a trailing comma except the
// last.
func (w *Writer) Method(name string, params []Param, returnType string, singleLine bool) error {
	needsBan := w.containsBannedType(returnType)
	for _, p := range params {
		if p.Type.IsToken() && w.containsBannedType(p.Type.Token) {
			needsBan = true
		}
	}
	if needsBan {
		w.WriteLine("// tslint:disable-next-line:ban-types")
	}

	if singleLine {
		w.StartLine(name + "(")
		for i, p := range params {
			if i > 0 {
				w.Write(", ")
			}
			if err := w.writeParam(p); err != nil {
				return err
			}
		}
		w.EndLine("): " + returnType + ";")
		return nil
	}

	w.WriteLine(name + "(")
	err := w.Indent(func() error {
		for i, p := range params {
			w.StartLine("")
			if err := w.writeParam(p); err != nil {
				return err
			}
			if i < len(params)-1 {
				w.EndLine(",")
			} else {
				w.EndLine("")
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	w.WriteLine("): " + returnType + ";")
	return nil
}

func (w *Writer) writeParam(p Param) error {
	decl := quoteName(p.Name)
	if !p.Required {
		decl += "?"
	}
	w.Write(decl + ": ")
	if p.Type.IsToken() {
		w.Write(p.Type.Token)
		return nil
	}
	return p.Type.Func(w)
}

func (w *Writer) containsBannedType(token string) bool {
	for _, re := range w.banned {
		if re.MatchString(token) {
			return true
		}
	}
	return false
}

func quoteName(name string) string {
	if strings.ContainsAny(name, ".-@") {
		return `"` + name + `"`
	}
	return name
}
