package extractor

import (
	"regexp"
	"strings"

	"grimoirecss.dev/grimoire/diag"
)

// attrNameRe matches a "class" or "className" attribute name followed by
// "=" and the delimiter that opens its value, mirroring the teacher's
// package-level compiled *regexp.Regexp pattern-table style
// (parser/common/patterns.go).
var attrNameRe = regexp.MustCompile(`\b(?:className|class)\s*=\s*`)

// templatedRe matches the literal "g!" marker that opens a templated spell
// occurrence; the boundary rule (preceding character absent or
// non-identifier) is checked manually against the byte before the match
// since RE2 has no lookbehind.
var templatedRe = regexp.MustCompile(`g!`)

// extractAttributesRegex is the fast-path scan for class/className
// attribute values: plain-text / unknown-extension inputs, or a fallback
// when no tree-sitter grammar recognizes the file's extension.
func extractAttributesRegex(src string, fileID int) []Token {
	var tokens []Token
	for _, loc := range attrNameRe.FindAllStringIndex(src, -1) {
		valueStart := loc[1]
		if valueStart >= len(src) {
			continue
		}
		open := src[valueStart]
		var content string
		var contentStart int
		switch open {
		case '"', '\'':
			end := strings.IndexByte(src[valueStart+1:], open)
			if end < 0 {
				continue
			}
			contentStart = valueStart + 1
			content = src[contentStart : contentStart+end]
		case '{':
			end := matchBrace(src, valueStart)
			if end < 0 {
				continue
			}
			contentStart = valueStart + 1
			content = src[contentStart:end]
		default:
			continue
		}
		tokens = append(tokens, splitClassTokens(content, contentStart, fileID)...)
	}
	return tokens
}

// matchBrace returns the index of the "}" matching the "{" at open,
// honoring nested braces.
func matchBrace(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitClassTokens tokenizes an attribute value on whitespace, computing
// each token's absolute byte span within the original source. A leading
// "." is accepted and stripped, since CSS class tokens may be written with
// or without it (§4.8).
func splitClassTokens(content string, contentStart, fileID int) []Token {
	var tokens []Token
	i := 0
	for i < len(content) {
		for i < len(content) && isSpace(content[i]) {
			i++
		}
		start := i
		for i < len(content) && !isSpace(content[i]) {
			i++
		}
		if i == start {
			continue
		}
		text := content[start:i]
		text = strings.TrimPrefix(text, ".")
		tokens = append(tokens, Token{
			Text: text,
			Span: diag.Span{FileID: fileID, Start: contentStart + start, Len: i - start},
		})
	}
	return tokens
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// extractTemplated finds every "g!<spell>;" occurrence whose "g!" marker
// sits at a token boundary — the character immediately preceding it is
// either absent or not an identifier character — per §8 invariant 7.
func extractTemplated(src string, fileID int) []Token {
	var tokens []Token
	for _, loc := range templatedRe.FindAllStringIndex(src, -1) {
		start := loc[0]
		if start > 0 && isIdentChar(src[start-1]) {
			continue
		}
		end := strings.IndexByte(src[start:], ';')
		if end < 0 {
			continue
		}
		end += start
		tokens = append(tokens, Token{
			Text: src[start : end+1],
			Span: diag.Span{FileID: fileID, Start: start, Len: end + 1 - start},
		})
	}
	return tokens
}

func isIdentChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '-'
}
