/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package builder

import (
	"sync"

	"github.com/sourcegraph/conc/pool"

	"grimoirecss.dev/grimoire/config"
	"grimoirecss.dev/grimoire/diag"
)

// buildProjects runs BuildProject for every project in cfg.Projects.
// Projects are isolated units of work (§5): sequentially when workers <= 1,
// or dispatched onto a bounded worker pool sized by workers when the
// environment signals project-level parallelism. Each worker gets its own
// diag.Accumulator so concurrent Add calls never race; accumulators are
// merged into acc under a mutex as each project finishes.
func buildProjects(ctx *Context, projects []config.Project, acc *diag.Accumulator, excluded map[tupleKey]bool, workers int) []*Result {
	if workers <= 1 || len(projects) <= 1 {
		var results []*Result
		for _, proj := range projects {
			results = append(results, BuildProject(ctx, proj, acc, excluded)...)
		}
		return results
	}

	var mu sync.Mutex
	var results []*Result
	p := pool.New().WithMaxGoroutines(workers)

	for _, proj := range projects {
		proj := proj
		p.Go(func() {
			local := diag.NewAccumulator()
			projResults := BuildProject(ctx, proj, local, excluded)

			mu.Lock()
			defer mu.Unlock()
			acc.Merge(local)
			results = append(results, projResults...)
		})
	}
	p.Wait()

	return results
}
