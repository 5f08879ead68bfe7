/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package builder orchestrates the CSS compiler pipeline: scanning project
// inputs, resolving each extracted token to declarations, grouping and
// deduplicating them into rules, and emitting the final artifact text
// (§4.9).
package builder

import (
	"grimoirecss.dev/grimoire/animation"
	"grimoirecss.dev/grimoire/config"
	"grimoirecss.dev/grimoire/diag"
	"grimoirecss.dev/grimoire/fsx"
	"grimoirecss.dev/grimoire/postproc"
	"grimoirecss.dev/grimoire/scroll"
)

// State is one position in the per-project build state machine (§4.9).
type State int

const (
	Idle State = iota
	Scanning
	Resolving
	Emitting
	Tracked
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Scanning:
		return "Scanning"
	case Resolving:
		return "Resolving"
	case Emitting:
		return "Emitting"
	case Tracked:
		return "Tracked"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// declaration is one resolved (property, value) pair, still tagged with the
// media predicate and selector it was resolved under.
type declaration struct {
	Media    string
	Selector string
	Property string
	Value    string
}

// tupleKey is the §8 invariant-2 dedup key: identical canonical
// (media, selector, property, value) tuples collapse to one emitted
// declaration regardless of how many times the originating token appears.
type tupleKey struct {
	Media    string
	Selector string
	Property string
	Value    string
}

func (d declaration) key() tupleKey {
	return tupleKey{Media: d.Media, Selector: d.Selector, Property: d.Property, Value: d.Value}
}

// Result is one project's (or shared/critical unit's) build outcome.
type Result struct {
	ProjectName string
	OutputPath  string
	CSS         string
	State       State
	Animations  []string
}

// Context bundles the dependencies a single build run shares across every
// project, shared unit, and critical unit: the scroll registry and variable
// table derive from the loaded config, the animation catalog and post
// processor are shared (and, per §5, safe to share across parallel project
// workers), and the diagnostics accumulator is per-project and merged back
// by the caller.
type Context struct {
	FS         fsx.FileSystem
	RootDir    string
	Registry   *scroll.Registry
	Variables  map[string]string
	Animations *animation.Catalog
	PostProc   postproc.Processor
	Browsers   string
}

// NewContext builds a Context from a loaded configuration, defaulting the
// post-processor to Passthrough when none is supplied (§4.11's "core still
// emits correct CSS when absent" invariant).
func NewContext(fs fsx.FileSystem, rootDir string, cfg *config.Config, proc postproc.Processor) *Context {
	if proc == nil {
		proc = postproc.Passthrough{}
	}
	return &Context{
		FS:         fs,
		RootDir:    rootDir,
		Registry:   cfg.ScrollRegistry(),
		Variables:  cfg.Variables,
		Animations: animation.NewCatalog(fs, rootDir+"/grimoire/animations"),
		PostProc:   proc,
		Browsers:   cfg.Browserslist,
	}
}

// reportDiag records a fatal diagnostic into acc and returns it wrapped as
// an error, used throughout the pipeline to keep diagnostic recording and
// Go error propagation in lockstep.
func reportDiag(acc *diag.Accumulator, d diag.Diagnostic) error {
	acc.Add(d)
	return d
}
