package tracker

import (
	"testing"

	"grimoirecss.dev/grimoire/fsx"
)

func TestLoadMissingReturnsEmptyLock(t *testing.T) {
	fs := fsx.NewMem()
	lock, err := Load(fs, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(lock.Outputs) != 0 {
		t.Errorf("Outputs = %v, want empty", lock.Outputs)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	fs := fsx.NewMem()
	if err := Save(fs, "", []string{"dist/b.css", "dist/a.css"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	lock, err := Load(fs, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(lock.Outputs) != 2 || lock.Outputs[0] != "dist/a.css" || lock.Outputs[1] != "dist/b.css" {
		t.Errorf("Outputs = %v, want sorted [dist/a.css dist/b.css]", lock.Outputs)
	}

	if exists := fs.Exists(LockPath + ".tmp"); exists {
		t.Error("temp file should not remain after successful Save")
	}
}

func TestStalePathsReportsRemovedOutputs(t *testing.T) {
	previous := &Lock{Outputs: []string{"dist/a.css", "dist/b.css", "dist/c.css"}}
	stale := StalePaths(previous, []string{"dist/a.css", "dist/c.css"})
	if len(stale) != 1 || stale[0] != "dist/b.css" {
		t.Errorf("stale = %v, want [dist/b.css]", stale)
	}
}
