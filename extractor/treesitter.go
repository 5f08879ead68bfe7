package extractor

import (
	"context"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
)

// languageFor resolves a file extension to the tree-sitter grammar that
// parses it precisely, or nil when no grammar applies and the regex fast
// path should be used instead.
func languageFor(ext string) *sitter.Language {
	switch ext {
	case ".html", ".htm":
		return sitter.NewLanguage(tree_sitter_html.Language())
	case ".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx":
		return sitter.NewLanguage(tree_sitter_javascript.Language())
	case ".php":
		return sitter.NewLanguage(tree_sitter_php.LanguagePHP())
	default:
		return nil
	}
}

// extractTreeSitter walks the concrete syntax tree for filename's extension
// looking for class/className attribute nodes, returning their values as
// class tokens with byte spans taken straight from the node range. ok is
// false when ext has no grammar, telling the caller to use the regex path.
func extractTreeSitter(src string, ext string, fileID int) ([]Token, bool) {
	lang := languageFor(ext)
	if lang == nil {
		return nil, false
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	tree, err := parser.ParseCtx(context.Background(), nil, []byte(src))
	if err != nil || tree == nil {
		return nil, false
	}
	defer tree.Close()

	source := []byte(src)
	var tokens []Token
	walkClassAttributes(tree.RootNode(), source, fileID, &tokens)
	return tokens, true
}

// walkClassAttributes recursively visits every node looking for an
// attribute node whose name child is "class" or "className", extracting
// its value via extractAttributeValue.
func walkClassAttributes(node *sitter.Node, source []byte, fileID int, out *[]Token) {
	if node == nil {
		return
	}

	if isAttributeNode(node) {
		if name := attributeName(node, source); name == "class" || name == "className" {
			if valueNode := attributeValueNode(node); valueNode != nil {
				extractAttributeValue(valueNode, source, fileID, out)
			}
		}
	}

	count := node.ChildCount()
	for i := uint(0); i < count; i++ {
		walkClassAttributes(node.Child(i), source, fileID, out)
	}
}

func isAttributeNode(node *sitter.Node) bool {
	switch node.Kind() {
	case "attribute", "jsx_attribute":
		return true
	default:
		return false
	}
}

func attributeName(node *sitter.Node, source []byte) string {
	if n := node.ChildByFieldName("name"); n != nil {
		return string(source[n.StartByte():n.EndByte()])
	}
	// jsx_attribute's name is its first child (property_identifier), not a
	// named field in every grammar revision.
	if node.ChildCount() > 0 {
		first := node.Child(0)
		return string(source[first.StartByte():first.EndByte()])
	}
	return ""
}

func attributeValueNode(node *sitter.Node) *sitter.Node {
	if n := node.ChildByFieldName("value"); n != nil {
		return n
	}
	count := node.ChildCount()
	if count > 1 {
		return node.Child(count - 1)
	}
	return nil
}

// extractAttributeValue handles an HTML quoted_attribute_value, a bare
// attribute_value, or a JSX string/expression container, splitting
// whitespace-delimited class names out of whichever text it ultimately
// resolves to and emitting each with its own byte span.
func extractAttributeValue(valueNode *sitter.Node, source []byte, fileID int, out *[]Token) {
	switch valueNode.Kind() {
	case "quoted_attribute_value", "jsx_expression_container":
		count := valueNode.ChildCount()
		for i := uint(0); i < count; i++ {
			child := valueNode.Child(i)
			switch child.Kind() {
			case "attribute_value", "string_fragment":
				appendSplitTokens(child, source, fileID, out)
			case "string":
				extractAttributeValue(child, source, fileID, out)
			}
		}
		if count == 0 {
			appendSplitTokens(valueNode, source, fileID, out)
		}
	case "string":
		count := valueNode.ChildCount()
		for i := uint(0); i < count; i++ {
			child := valueNode.Child(i)
			if child.Kind() == "string_fragment" {
				appendSplitTokens(child, source, fileID, out)
			}
		}
	default:
		appendSplitTokens(valueNode, source, fileID, out)
	}
}

func appendSplitTokens(node *sitter.Node, source []byte, fileID int, out *[]Token) {
	start := int(node.StartByte())
	text := string(source[node.StartByte():node.EndByte()])
	toks := splitClassTokens(text, start, fileID)
	*out = append(*out, toks...)
}
