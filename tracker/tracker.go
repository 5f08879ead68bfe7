/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package tracker persists the set of output paths the builder produced
// across a run to grimoire/grimoire.lock.json, enabling stale-file cleanup
// on the next run (§4.10).
package tracker

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/segmentio/encoding/json"

	"grimoirecss.dev/grimoire/fsx"
)

// LockPath is the lock artifact's location, relative to a project root.
const LockPath = "grimoire/grimoire.lock.json"

// Lock is the persisted record of every output path a build produced.
type Lock struct {
	Outputs []string `json:"outputs"`
}

// Load reads the lock artifact at rootDir, returning an empty Lock (not an
// error) if none exists yet.
func Load(filesystem fsx.FileSystem, rootDir string) (*Lock, error) {
	path := filepath.Join(rootDir, LockPath)
	if !filesystem.Exists(path) {
		return &Lock{}, nil
	}
	data, err := filesystem.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tracker: reading %s: %w", path, err)
	}
	lock := &Lock{}
	if err := json.Unmarshal(data, lock); err != nil {
		return nil, fmt.Errorf("tracker: parsing %s: %w", path, err)
	}
	return lock, nil
}

// Save writes outputs to the lock artifact, sorted for deterministic
// output, via a write-to-temp-file-then-rename so a crash mid-write never
// leaves a truncated lock file at LockPath — the rename is the only
// visible state transition.
func Save(filesystem fsx.FileSystem, rootDir string, outputs []string) error {
	sorted := append([]string{}, outputs...)
	sort.Strings(sorted)

	lock := Lock{Outputs: sorted}
	data, err := json.MarshalIndent(lock, "", "  ")
	if err != nil {
		return fmt.Errorf("tracker: encoding lock: %w", err)
	}

	path := filepath.Join(rootDir, LockPath)
	dir := filepath.Dir(path)
	if err := filesystem.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("tracker: creating %s: %w", dir, err)
	}

	tmpPath := path + ".tmp"
	if err := filesystem.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("tracker: writing %s: %w", tmpPath, err)
	}
	if err := filesystem.Rename(tmpPath, path); err != nil {
		_ = filesystem.Remove(tmpPath)
		return fmt.Errorf("tracker: renaming %s to %s: %w", tmpPath, path, err)
	}
	return nil
}

// StalePaths returns every path in previous that is absent from current,
// i.e. outputs the last run produced that this run did not — candidates
// for removal.
func StalePaths(previous *Lock, current []string) []string {
	keep := make(map[string]bool, len(current))
	for _, p := range current {
		keep[p] = true
	}
	var stale []string
	for _, p := range previous.Outputs {
		if !keep[p] {
			stale = append(stale, p)
		}
	}
	return stale
}
