package typescript

import (
	"regexp"
	"strings"
)

const zeroWidthSpace = "\u200b"

// irregularSpaces is the catalogue of unicode space code points that are
// normalized to ordinary spaces before wrapping. U+200B is deliberately
// absent: it is the defusing character inserted by sanitizeComment.
var irregularSpaces = []rune{
	'\u000b', '\u000c', '\u0085', '\u00a0', '\u1680', '\u180e',
	'\u2000', '\u2001', '\u2002', '\u2003', '\u2004', '\u2005',
	'\u2006', '\u2007', '\u2008', '\u2009', '\u200a',
	'\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff',
}

var docTagPattern = regexp.MustCompile(`@([A-Za-z])`)

// sanitizeComment defuses text that would break out of a documentation
// comment: end-of-comment sequences, JSDoc-tag-like tokens, and irregular
// unicode spaces.
func sanitizeComment(text string) string {
	text = strings.ReplaceAll(text, "*/", "*"+zeroWidthSpace+"/")
	text = docTagPattern.ReplaceAllString(text, "@"+zeroWidthSpace+"$1")
	for _, r := range irregularSpaces {
		text = strings.ReplaceAll(text, string(r), " ")
	}
	return text
}

// Comment renders text as a documentation comment: single-line "/** x */"
// when it fits within MaxLineLength at the current indent, otherwise a
// wrapped block with " * " prefixes. A block containing an unbreakable
// over-long token (a URL, typically) is flanked by width-check suppression
// markers instead of being force-broken. Empty or whitespace-only text
// produces no output.
func (w *Writer) Comment(text string) {
	text = sanitizeComment(text)

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return
	}

	indentWidth := len(w.indentPrefix())
	if len(lines) == 1 && indentWidth+len("/** ")+len(lines[0])+len(" */") <= w.cfg.MaxLineLength {
		w.WriteLine("/** " + lines[0] + " */")
		return
	}

	budget := w.cfg.MaxLineLength - indentWidth - len(" * ")
	var wrapped []string
	overlong := false
	for _, line := range lines {
		for _, out := range wrapWords(line, budget) {
			if len(out) > budget {
				overlong = true
			}
			wrapped = append(wrapped, out)
		}
	}

	if overlong {
		w.WriteLine("// tslint:disable:max-line-length")
	}
	w.WriteLine("/**")
	for _, line := range wrapped {
		w.WriteLine(" * " + line)
	}
	w.WriteLine(" */")
	if overlong {
		w.WriteLine("// tslint:enable:max-line-length")
	}
}

// wrapWords packs words greedily until the next word would exceed budget,
// then breaks. Words are never split, so a single over-long token produces a
// line over budget for the caller to flag.
func wrapWords(line string, budget int) []string {
	words := strings.Fields(line)
	var out []string
	var cur strings.Builder
	for _, word := range words {
		switch {
		case cur.Len() == 0:
			cur.WriteString(word)
		case cur.Len()+1+len(word) > budget:
			out = append(out, cur.String())
			cur.Reset()
			cur.WriteString(word)
		default:
			cur.WriteString(" ")
			cur.WriteString(word)
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}
