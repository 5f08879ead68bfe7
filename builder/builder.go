/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package builder

import (
	"grimoirecss.dev/grimoire/config"
	"grimoirecss.dev/grimoire/diag"
	"grimoirecss.dev/grimoire/fsx"
	"grimoirecss.dev/grimoire/postproc"
	"grimoirecss.dev/grimoire/tracker"
)

// Run executes a full build: shared units (unconditional), critical units
// (generate + inline, tracking their tuples for subtraction), then every
// project, optionally parallelized across workers (§5). When cfg.Lock is
// set, the run's output paths are persisted via tracker and any path the
// previous run produced but this one did not is removed (§4.10).
func Run(fs fsx.FileSystem, rootDir string, cfg *config.Config, proc postproc.Processor, workers int) ([]*Result, *diag.Accumulator) {
	acc := diag.NewAccumulator()
	ctx := NewContext(fs, rootDir, cfg, proc)

	var results []*Result

	for _, unit := range cfg.Shared {
		results = append(results, BuildShared(ctx, unit, acc))
	}

	excluded := make(map[tupleKey]bool)
	for _, unit := range cfg.Critical {
		result, tuples := BuildCritical(ctx, unit, acc)
		results = append(results, result)
		for k := range tuples {
			excluded[k] = true
		}
	}

	results = append(results, buildProjects(ctx, cfg.Projects, acc, excluded, workers)...)

	if cfg.Lock {
		var outputs []string
		for _, r := range results {
			if r.State == Tracked && r.OutputPath != "" {
				outputs = append(outputs, r.OutputPath)
			}
		}
		previous, err := tracker.Load(fs, rootDir)
		if err == nil {
			for _, stale := range tracker.StalePaths(previous, outputs) {
				_ = fs.Remove(stale)
			}
		}
		if err := tracker.Save(fs, rootDir, outputs); err != nil {
			acc.Add(diag.Diagnostic{Kind: diag.KindIO, Message: "persisting lock file: " + err.Error()})
		}
	}

	return results, acc
}
