// Package blank implements the blanking engine: it decides which characters
// of a source file may be redacted, picks the ones to redact, and checks a
// user's reconstruction character by character.
//
// Protection is a line-level heuristic over plain text, not a parser, so it
// works for any language the practice files are written in.
package blank

import (
	"strings"
	"unicode"
)

// Rule names the protection rule that matched a line.
type Rule string

const (
	RuleNone         Rule = ""
	RuleComment      Rule = "comment"
	RuleDefinition   Rule = "definition"
	RuleSignature    Rule = "signature"
	RuleDefaultParam Rule = "default_param"
	RuleImport       Rule = "import"
)

var (
	commentPrefixes    = []string{"#", "//", "/*"}
	definitionPrefixes = []string{"def ", "function ", "class ", "struct ", "fn ", "pub fn "}
	signatureMarkers   = []string{"->", ") {", ") =>"}
	importPrefixes     = []string{"import ", "from ", "using ", "include ", "require ", "use "}
)

// Classify reports whether a physical line is protected and which rule matched.
// Leading whitespace is ignored; blank lines are never protected.
func Classify(line string) (Rule, bool) {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	if trimmed == "" {
		return RuleNone, false
	}

	switch {
	case hasAnyPrefix(trimmed, commentPrefixes):
		return RuleComment, true
	case hasAnyPrefix(trimmed, definitionPrefixes):
		return RuleDefinition, true
	case strings.Contains(trimmed, "(") && strings.Contains(trimmed, ")") &&
		containsAny(trimmed, signatureMarkers):
		return RuleSignature, true
	case strings.Contains(trimmed, " = ") && containsAny(trimmed, []string{"(", ")", ","}):
		return RuleDefaultParam, true
	case hasAnyPrefix(trimmed, importPrefixes):
		return RuleImport, true
	}
	return RuleNone, false
}

// ProtectedPositions returns the set of rune positions covered by protected lines.
// A line spans from its first rune up to, but excluding, its newline.
func ProtectedPositions(content []rune) map[int]struct{} {
	protected := make(map[int]struct{})

	start := 0
	for i := 0; i <= len(content); i++ {
		if i < len(content) && content[i] != '\n' {
			continue
		}
		if _, ok := Classify(string(content[start:i])); ok {
			for p := start; p < i; p++ {
				protected[p] = struct{}{}
			}
		}
		start = i + 1
	}
	return protected
}

// IsCandidateChar reports whether r may be blanked at all: letters, digits
// and the operators = + - * / %.
func IsCandidateChar(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsNumber(r) {
		return true
	}
	switch r {
	case '=', '+', '-', '*', '/', '%':
		return true
	}
	return false
}

// Candidates returns, in ascending order, every position whose character is
// blankable and which no protected line covers.
func Candidates(content []rune, protected map[int]struct{}) []int {
	var out []int
	for i, r := range content {
		if !IsCandidateChar(r) {
			continue
		}
		if _, ok := protected[i]; ok {
			continue
		}
		out = append(out, i)
	}
	return out
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
