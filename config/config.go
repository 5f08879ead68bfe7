/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config loads and merges the grimoire configuration: the primary
// grimoire.config.json plus external scroll/variable fragments, exposing an
// immutable snapshot to the rest of the pipeline.
package config

import "grimoirecss.dev/grimoire/scroll"

// Config is the immutable-after-load configuration snapshot the builder is
// seeded with. Two flavors exist: filesystem-backed (loaded via Load, paths
// resolved against a root directory) and in-memory (built directly by
// embedders, browserslist supplied inline).
type Config struct {
	Variables    map[string]string `json:"variables,omitempty"`
	Scrolls      []scroll.Scroll   `json:"scrolls,omitempty"`
	Projects     []Project         `json:"projects"`
	Shared       []SharedUnit      `json:"shared,omitempty"`
	Critical     []CriticalUnit    `json:"critical,omitempty"`
	Lock         bool              `json:"lock,omitempty"`
	Browserslist string            `json:"browserslist,omitempty"`
}

// Project is one input/output unit: a set of input globs compiled either to
// one CSS file per input, or a single aggregated artifact when
// SingleOutputFileName is set.
type Project struct {
	Name                 string   `json:"projectName"`
	InputPaths           []string `json:"inputPaths"`
	OutputDirPath        string   `json:"outputDirPath,omitempty"`
	SingleOutputFileName string   `json:"singleOutputFileName,omitempty"`
}

// SharedUnit emits one CSS artifact from an explicit style list (spells,
// scroll invocations, or raw CSS file paths) plus DOM-scoped custom-property
// assignments, shared across projects.
type SharedUnit struct {
	OutputPath          string           `json:"outputPath"`
	Styles              []string         `json:"styles,omitempty"`
	CSSCustomProperties []CustomProperty `json:"cssCustomProperties,omitempty"`
}

// CriticalUnit is a SharedUnit additionally inlined into matching HTML
// files' <style> blocks.
type CriticalUnit struct {
	OutputPath          string           `json:"outputPath"`
	Styles              []string         `json:"styles,omitempty"`
	CSSCustomProperties []CustomProperty `json:"cssCustomProperties,omitempty"`
	FileToInlinePaths   []string         `json:"fileToInlinePaths,omitempty"`
}

// CustomProperty binds one CSS custom property to a DOM selector. Name may
// be written camelCase or kebab-case in JSON; the builder canonicalizes it
// to kebab-case once at emission time (§4.9).
type CustomProperty struct {
	Selector string `json:"selector"`
	Name     string `json:"name"`
	Value    string `json:"value"`
}

// ScrollRegistry builds a scroll.Registry from the config's scroll
// definitions, in declaration order — fragment merge has already resolved
// name collisions by the time Load returns.
func (c *Config) ScrollRegistry() *scroll.Registry {
	return scroll.NewRegistry(c.Scrolls)
}

// Default returns an empty configuration with the default browserslist
// hint, used when no config file is found.
func Default() *Config {
	return &Config{Browserslist: "defaults"}
}
