/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"testing"

	"grimoirecss.dev/grimoire/fsx"
)

func writeFile(t *testing.T, fs fsx.FileSystem, path, content string) {
	t.Helper()
	if err := fs.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
}

func TestLoadPrimaryConfig(t *testing.T) {
	fs := fsx.NewMem()
	writeFile(t, fs, "grimoire/config/grimoire.config.json", `{
		// a jsonc comment
		"variables": {"brand": "#ff6600"},
		"projects": [{"projectName": "site", "inputPaths": ["src/**/*.html"]}]
	}`)

	cfg, err := Load(fs, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected config, got nil")
	}
	if len(cfg.Projects) != 1 || cfg.Projects[0].Name != "site" {
		t.Errorf("Projects = %+v", cfg.Projects)
	}
	if cfg.Variables["brand"] != "#ff6600" {
		t.Errorf("Variables[brand] = %q", cfg.Variables["brand"])
	}
	if cfg.Browserslist != "defaults" {
		t.Errorf("Browserslist = %q, want synthesized default", cfg.Browserslist)
	}
}

func TestLoadMissingFileReturnsNilNoError(t *testing.T) {
	fs := fsx.NewMem()
	cfg, err := Load(fs, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != nil {
		t.Errorf("expected nil config, got %+v", cfg)
	}
}

func TestLoadOrDefaultFallsBackWhenMissing(t *testing.T) {
	fs := fsx.NewMem()
	cfg := LoadOrDefault(fs, "")
	if cfg.Browserslist != "defaults" {
		t.Errorf("Browserslist = %q", cfg.Browserslist)
	}
	if len(cfg.Projects) != 0 {
		t.Errorf("expected no projects in default config, got %+v", cfg.Projects)
	}
}

func TestLoadRejectsEmptyProjects(t *testing.T) {
	fs := fsx.NewMem()
	writeFile(t, fs, "grimoire/config/grimoire.config.json", `{"projects": []}`)

	if _, err := Load(fs, ""); err == nil {
		t.Fatal("expected error for empty projects list")
	}
}

func TestLoadRejectsSchemaViolation(t *testing.T) {
	fs := fsx.NewMem()
	writeFile(t, fs, "grimoire/config/grimoire.config.json", `{"projects": [{"inputPaths": ["x"]}]}`)

	if _, err := Load(fs, ""); err == nil {
		t.Fatal("expected schema violation for project missing \"projectName\"")
	}
}

func TestLoadMergesScrollFragmentsPrimaryWins(t *testing.T) {
	fs := fsx.NewMem()
	writeFile(t, fs, "grimoire/config/grimoire.config.json", `{
		"projects": [{"projectName": "site", "inputPaths": ["src/**/*.html"]}],
		"scrolls": [{"name": "btn", "spells": ["c=white"]}]
	}`)
	writeFile(t, fs, "grimoire/config/grimoire.a.scrolls.json", `[{"name": "card", "spells": ["p=1rem"]}]`)
	writeFile(t, fs, "grimoire/config/grimoire.z.scrolls.json", `[{"name": "btn", "spells": ["c=black"]}]`)

	cfg, err := Load(fs, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	reg := cfg.ScrollRegistry()
	btn, ok := reg.Lookup("btn")
	if !ok {
		t.Fatal("expected btn scroll")
	}
	if len(btn.Spells) != 1 || btn.Spells[0] != "c=white" {
		t.Errorf("btn.Spells = %v, primary config should win over fragment", btn.Spells)
	}
	if _, ok := reg.Lookup("card"); !ok {
		t.Error("expected card scroll from fragment to be merged in")
	}
}

func TestLoadMergesVariableFragmentsPrimaryWins(t *testing.T) {
	fs := fsx.NewMem()
	writeFile(t, fs, "grimoire/config/grimoire.config.json", `{
		"projects": [{"projectName": "site", "inputPaths": ["src/**/*.html"]}],
		"variables": {"brand": "#fff"}
	}`)
	writeFile(t, fs, "grimoire/config/grimoire.colors.variables.json", `{"brand": "#000", "accent": "#0f0"}`)

	cfg, err := Load(fs, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Variables["brand"] != "#fff" {
		t.Errorf("Variables[brand] = %q, primary config should win", cfg.Variables["brand"])
	}
	if cfg.Variables["accent"] != "#0f0" {
		t.Errorf("Variables[accent] = %q", cfg.Variables["accent"])
	}
}

func TestLoadHonorsBrowserslistrc(t *testing.T) {
	fs := fsx.NewMem()
	writeFile(t, fs, "grimoire/config/grimoire.config.json", `{
		"projects": [{"projectName": "site", "inputPaths": ["src/**/*.html"]}]
	}`)
	writeFile(t, fs, ".browserslistrc", "last 2 versions\n")

	cfg, err := Load(fs, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Browserslist != "last 2 versions" {
		t.Errorf("Browserslist = %q", cfg.Browserslist)
	}
}

func TestExpandGlobsMatchesDoublestar(t *testing.T) {
	fs := fsx.NewMem()
	writeFile(t, fs, "src/a.html", "<div></div>")
	writeFile(t, fs, "src/nested/b.html", "<div></div>")
	writeFile(t, fs, "src/c.txt", "ignored")

	matches, err := ExpandGlobs(fs, "", []string{"src/**/*.html"})
	if err != nil {
		t.Fatalf("ExpandGlobs: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("matches = %v, want 2 html files", matches)
	}
}

func TestExpandGlobsPassesThroughLiteralPath(t *testing.T) {
	fs := fsx.NewMem()
	matches, err := ExpandGlobs(fs, "", []string{"shared/tokens.css"})
	if err != nil {
		t.Fatalf("ExpandGlobs: %v", err)
	}
	if len(matches) != 1 || matches[0] != "shared/tokens.css" {
		t.Errorf("matches = %v", matches)
	}
}
