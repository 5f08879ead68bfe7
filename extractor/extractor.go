// Package extractor scans arbitrary source text for grimoire class tokens:
// occurrences inside class/className attributes, and templated `g!<spell>;`
// references embedded anywhere in the text. It dispatches between a regex
// fast path and a tree-sitter precise path by file extension (§4.8).
package extractor

import (
	"path/filepath"
	"sort"
	"strings"

	"grimoirecss.dev/grimoire/diag"
)

// Token is one extracted class candidate with its originating byte span.
type Token struct {
	Text string
	Span diag.Span
}

// Extract scans src (the contents of a file named filename, used only as an
// extension hint) and returns every recognized class token in order of
// appearance, including duplicates — deduplication is the builder's
// responsibility (§4.9 step 2), not the extractor's.
func Extract(src string, filename string, fileID int) []Token {
	var tokens []Token
	tokens = append(tokens, extractAttributes(src, filename, fileID)...)
	tokens = append(tokens, extractTemplated(src, fileID)...)
	sort.SliceStable(tokens, func(i, j int) bool {
		return tokens[i].Span.Start < tokens[j].Span.Start
	})
	return tokens
}

// IsTemplated reports whether token is a "g!<spell>[&<spell>...];"
// occurrence, as opposed to an ordinary single-spell class token.
func IsTemplated(token string) bool {
	return strings.HasPrefix(token, "g!") && strings.HasSuffix(token, ";")
}

// TemplatedParts splits a templated token's body into its "&"-joined
// component spells. The full token text remains the selector for all of
// them — see §4.8's boundary rule and scenario 5's combined-selector
// example, where "g!c=violet&disp=flex;" emits one rule with both
// declarations under the single literal ".g\!c\=violet\&disp\=flex\;"
// selector.
func TemplatedParts(token string) []string {
	body := strings.TrimSuffix(strings.TrimPrefix(token, "g!"), ";")
	return strings.Split(body, "&")
}

// extractAttributes dispatches to the tree-sitter precise path for
// extensions it has a grammar for, falling back to the regex fast path for
// everything else — including files the tree-sitter path fails to parse,
// so an unrecognized dialect within a known extension never loses tokens.
func extractAttributes(src, filename string, fileID int) []Token {
	ext := strings.ToLower(filepath.Ext(filename))
	if toks, ok := extractTreeSitter(src, ext, fileID); ok {
		return toks
	}
	return extractAttributesRegex(src, fileID)
}
