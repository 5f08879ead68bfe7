/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/segmentio/encoding/json"
	"github.com/tidwall/jsonc"

	"grimoirecss.dev/grimoire/fsx"
	"grimoirecss.dev/grimoire/scroll"
)

// ConfigDir is the directory, relative to a project root, config files and
// fragments are discovered in.
const ConfigDir = "grimoire/config"

// ConfigFileName is the primary configuration file's name.
const ConfigFileName = "grimoire.config.json"

var (
	scrollFragmentRe   = regexp.MustCompile(`^grimoire\..+\.scrolls\.json$`)
	variableFragmentRe = regexp.MustCompile(`^grimoire\..+\.variables\.json$`)
)

// Load reads and validates grimoire/config/grimoire.config.json under
// rootDir, merges in any grimoire.*.scrolls.json / grimoire.*.variables.json
// fragments found alongside it, and returns the resulting snapshot. Returns
// nil with no error if the primary file does not exist.
func Load(filesystem fsx.FileSystem, rootDir string) (*Config, error) {
	configPath := filepath.Join(rootDir, ConfigDir, ConfigFileName)
	if !filesystem.Exists(configPath) {
		return nil, nil
	}

	raw, err := filesystem.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", configPath, err)
	}

	clean := jsonc.ToJSON(raw)

	var doc any
	if err := json.Unmarshal(clean, &doc); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", configPath, err)
	}
	if err := Validate(doc); err != nil {
		return nil, fmt.Errorf("config: %s: %w", configPath, err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(clean, cfg); err != nil {
		return nil, fmt.Errorf("config: decoding %s: %w", configPath, err)
	}
	if len(cfg.Projects) == 0 {
		return nil, fmt.Errorf("%w: %s: \"projects\" must be non-empty", ErrSchemaViolation, configPath)
	}

	if err := mergeFragments(filesystem, filepath.Join(rootDir, ConfigDir), cfg); err != nil {
		return nil, err
	}

	if cfg.Browserslist == "" {
		cfg.Browserslist = defaultBrowserslist(filesystem, rootDir)
	}

	return cfg, nil
}

// LoadOrDefault returns the loaded config, or an empty default if none is
// found or the load fails.
func LoadOrDefault(filesystem fsx.FileSystem, rootDir string) *Config {
	cfg, err := Load(filesystem, rootDir)
	if err != nil || cfg == nil {
		return Default()
	}
	return cfg
}

// mergeFragments discovers grimoire.*.scrolls.json and
// grimoire.*.variables.json fragments in dir, sorted lexicographically by
// filename for deterministic merge order, and folds them into cfg. Fragment
// scrolls/variables are merged in first and cfg's own entries appended
// last, so the primary config wins name/key collisions under the scroll
// registry's and variable map's last-write-wins semantics (§4.1).
func mergeFragments(filesystem fsx.FileSystem, dir string, cfg *Config) error {
	entries, err := filesystem.ReadDir(dir)
	if err != nil {
		if isNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: reading %s: %w", dir, err)
	}

	var scrollFiles, variableFiles []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch {
		case scrollFragmentRe.MatchString(e.Name()):
			scrollFiles = append(scrollFiles, e.Name())
		case variableFragmentRe.MatchString(e.Name()):
			variableFiles = append(variableFiles, e.Name())
		}
	}
	sort.Strings(scrollFiles)
	sort.Strings(variableFiles)

	var fragmentScrolls []scroll.Scroll
	for _, name := range scrollFiles {
		var batch []scroll.Scroll
		if err := readJSONFragment(filesystem, filepath.Join(dir, name), &batch); err != nil {
			return err
		}
		fragmentScrolls = append(fragmentScrolls, batch...)
	}
	if len(fragmentScrolls) > 0 {
		primary := cfg.Scrolls
		cfg.Scrolls = append(fragmentScrolls, primary...)
	}

	fragmentVariables := make(map[string]string)
	for _, name := range variableFiles {
		var batch map[string]string
		if err := readJSONFragment(filesystem, filepath.Join(dir, name), &batch); err != nil {
			return err
		}
		for k, v := range batch {
			fragmentVariables[k] = v
		}
	}
	if len(fragmentVariables) > 0 {
		for k, v := range cfg.Variables {
			fragmentVariables[k] = v
		}
		cfg.Variables = fragmentVariables
	}

	return nil
}

func readJSONFragment(filesystem fsx.FileSystem, path string, v any) error {
	data, err := filesystem.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), v); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return nil
}

func isNotExist(err error) bool {
	return err != nil && (fs.ErrNotExist == err || strings.Contains(err.Error(), "does not exist") || strings.Contains(err.Error(), "no such file"))
}

// defaultBrowserslist synthesizes "defaults" when rootDir has no
// .browserslistrc (§4.1).
func defaultBrowserslist(filesystem fsx.FileSystem, rootDir string) string {
	path := filepath.Join(rootDir, ".browserslistrc")
	if !filesystem.Exists(path) {
		return "defaults"
	}
	data, err := filesystem.ReadFile(path)
	if err != nil {
		return "defaults"
	}
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return "defaults"
	}
	return trimmed
}

// ExpandGlobs expands each of patterns (relative to rootDir unless already
// absolute) against filesystem, returning every matching file path in
// first-match order. A pattern with no glob metacharacters passes through
// unchanged regardless of whether it matches an existing file, so literal
// raw-CSS-file entries in a shared/critical styles list still resolve to
// themselves.
func ExpandGlobs(filesystem fsx.FileSystem, rootDir string, patterns []string) ([]string, error) {
	var out []string
	for _, pattern := range patterns {
		full := pattern
		if !filepath.IsAbs(full) {
			full = filepath.Join(rootDir, pattern)
		}
		if !containsGlobMeta(full) {
			out = append(out, full)
			continue
		}
		matches, err := expandGlob(filesystem, full)
		if err != nil {
			return nil, fmt.Errorf("config: expanding glob %q: %w", pattern, err)
		}
		out = append(out, matches...)
	}
	return out, nil
}

func containsGlobMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}

// expandGlob walks the non-glob prefix directory of pattern and matches each
// file's relative path against the remaining glob suffix with
// doublestar.Match, which understands "**" in addition to single-segment
// wildcards.
func expandGlob(filesystem fsx.FileSystem, pattern string) ([]string, error) {
	baseDir := pattern
	for containsGlobMeta(baseDir) {
		baseDir = filepath.Dir(baseDir)
	}
	relPattern := strings.TrimPrefix(pattern, baseDir)
	relPattern = strings.TrimPrefix(relPattern, string(filepath.Separator))

	var matches []string
	err := fs.WalkDir(filesystem, baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		relPath := strings.TrimPrefix(path, baseDir)
		relPath = strings.TrimPrefix(relPath, string(filepath.Separator))
		if matched, _ := doublestar.Match(relPattern, relPath); matched {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}
