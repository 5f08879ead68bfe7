// Package animation maintains the catalog of built-in and custom keyframe
// animations and tracks which ones have already been emitted into the
// current output artifact (§4.2, §4.9).
package animation

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sasha-s/go-deadlock"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"

	"grimoirecss.dev/grimoire/fsx"
)

// placeholderSelector is the literal selector custom animation files use to
// bind supplemental declarations that get rewritten to the referencing
// class at emit time.
const placeholderSelector = "GRIMOIRE_CSS_ANIMATION"

// Catalog resolves an animation name to its Definition, lazily parsing
// grimoire/animations/<name>.css on first reference. It is safe for
// concurrent use by the builder's worker pool.
type Catalog struct {
	fs       fsx.FileSystem
	dir      string
	mu       deadlock.RWMutex
	loaded   map[string]Definition
	notFound map[string]bool
}

// NewCatalog returns a Catalog that loads custom animations from dir (the
// project's "grimoire/animations" directory) through fs.
func NewCatalog(fs fsx.FileSystem, dir string) *Catalog {
	return &Catalog{
		fs:       fs,
		dir:      dir,
		loaded:   make(map[string]Definition),
		notFound: make(map[string]bool),
	}
}

// Lookup resolves name against the built-in catalog first, then against a
// lazily-loaded custom animation file. ok is false if name is neither.
func (c *Catalog) Lookup(name string) (Definition, bool) {
	if def, ok := builtin[name]; ok {
		return def, true
	}

	c.mu.RLock()
	if def, ok := c.loaded[name]; ok {
		c.mu.RUnlock()
		return def, true
	}
	if c.notFound[name] {
		c.mu.RUnlock()
		return Definition{}, false
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	// Re-check under the write lock: another goroutine may have loaded or
	// failed to load name while we waited.
	if def, ok := c.loaded[name]; ok {
		return def, true
	}
	if c.notFound[name] {
		return Definition{}, false
	}

	def, err := c.loadCustom(name)
	if err != nil {
		c.notFound[name] = true
		return Definition{}, false
	}
	c.loaded[name] = def
	return def, true
}

// BuiltinNames returns the built-in catalog's names in deterministic
// first-seen order, for callers (e.g. `init`/docs) that enumerate it.
func BuiltinNames() []string {
	out := make([]string, len(builtinNames))
	copy(out, builtinNames)
	return out
}

func (c *Catalog) loadCustom(name string) (Definition, error) {
	path := filepath.Join(c.dir, name+".css")
	if !c.fs.Exists(path) {
		return Definition{}, fmt.Errorf("animation: no built-in or custom animation named %q", name)
	}
	data, err := c.fs.ReadFile(path)
	if err != nil {
		return Definition{}, err
	}
	return parseCustomAnimation(name, data)
}

// parseCustomAnimation extracts the @keyframes <name> block and an optional
// rule bound to the GRIMOIRE_CSS_ANIMATION placeholder selector from a
// custom animation file's CSS source.
func parseCustomAnimation(name string, src []byte) (Definition, error) {
	lang := sitter.NewLanguage(tree_sitter_css.Language())
	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil || tree == nil {
		return Definition{}, fmt.Errorf("animation: parsing %q.css: %w", name, err)
	}
	defer tree.Close()

	def := Definition{Name: name}
	var foundKeyframes bool
	walkAnimationFile(tree.RootNode(), src, name, &def, &foundKeyframes)
	if !foundKeyframes {
		return Definition{}, fmt.Errorf("animation: %q.css has no @keyframes %s block", name, name)
	}
	return def, nil
}

func walkAnimationFile(node *sitter.Node, source []byte, name string, def *Definition, foundKeyframes *bool) {
	if node == nil {
		return
	}

	switch node.Kind() {
	case "keyframes_statement":
		if keyframesName(node, source) == name {
			def.KeyframesCSS = node.Utf8Text(source)
			*foundKeyframes = true
		}
	case "rule_set":
		if ruleSetSelectorIsPlaceholder(node, source) {
			def.PlaceholderCSS = ruleSetDeclarations(node, source)
			def.HasPlaceholderRule = true
		}
	}

	count := node.ChildCount()
	for i := uint(0); i < count; i++ {
		walkAnimationFile(node.Child(i), source, name, def, foundKeyframes)
	}
}

func keyframesName(node *sitter.Node, source []byte) string {
	count := node.ChildCount()
	for i := uint(0); i < count; i++ {
		child := node.Child(i)
		if child.Kind() == "keyframes_name" {
			return strings.TrimSpace(child.Utf8Text(source))
		}
	}
	return ""
}

func ruleSetSelectorIsPlaceholder(node *sitter.Node, source []byte) bool {
	count := node.ChildCount()
	for i := uint(0); i < count; i++ {
		child := node.Child(i)
		if child.Kind() != "selectors" {
			continue
		}
		selector := strings.TrimSpace(child.Utf8Text(source))
		selector = strings.TrimPrefix(selector, ".")
		return selector == placeholderSelector
	}
	return false
}

func ruleSetDeclarations(node *sitter.Node, source []byte) string {
	count := node.ChildCount()
	for i := uint(0); i < count; i++ {
		child := node.Child(i)
		if child.Kind() == "block" {
			text := child.Utf8Text(source)
			return strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(text, "{"), "}"))
		}
	}
	return ""
}
