package variable_test

import (
	"errors"
	"testing"

	"grimoirecss.dev/grimoire/variable"
)

func TestResolve(t *testing.T) {
	vars := map[string]string{"brand": "navy", "gap": "8px"}

	got, err := variable.Resolve("1px solid $brand", vars)
	if err != nil {
		t.Fatal(err)
	}
	if got != "1px solid navy" {
		t.Errorf("got %q", got)
	}

	got, err = variable.Resolve("$gap $gap", vars)
	if err != nil {
		t.Fatal(err)
	}
	if got != "8px 8px" {
		t.Errorf("got %q", got)
	}

	if _, err := variable.Resolve("$missing", vars); !errors.Is(err, variable.ErrUnbound) {
		t.Errorf("expected ErrUnbound, got %v", err)
	}

	got, err = variable.Resolve("no variables here", vars)
	if err != nil || got != "no variables here" {
		t.Errorf("got %q, %v", got, err)
	}
}
