/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package postproc defines the contract between the CSS builder and an
// optional downstream optimizer (minifier, autoprefixer, bundler). The core
// emits correct, unminified CSS on its own; a Processor only transforms
// that output further (§4.11).
package postproc

import "grimoirecss.dev/grimoire/diag"

// Processor transforms one artifact's emitted CSS. A non-nil error is
// reported as a diag.KindPostProcessor diagnostic and halts the affected
// artifact, per §7's propagation policy.
type Processor interface {
	Process(css string, browserslist string) (string, error)
}

// Passthrough returns its input unchanged. It is the default Processor,
// satisfying the invariant that the core still emits correct CSS when no
// post-processor is configured.
type Passthrough struct{}

// Process implements Processor.
func (Passthrough) Process(css string, _ string) (string, error) {
	return css, nil
}

// WrapError builds the diag.Diagnostic a failed Processor.Process call
// should be reported as.
func WrapError(artifact string, err error) diag.Diagnostic {
	return diag.Diagnostic{
		Kind:    diag.KindPostProcessor,
		Message: "post-processor rejected " + artifact + ": " + err.Error(),
	}
}
