/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// nameSchema constrains both project and scroll names to the identifier
// charset the rest of the pipeline assumes (§4.1).
var nameSchema = &jsonschema.Schema{
	Type:    "string",
	Pattern: `^[A-Za-z0-9_-]+$`,
}

// projectSchema validates one entry of the required, non-empty "projects"
// list.
var projectSchema = &jsonschema.Schema{
	Type: "object",
	Properties: map[string]*jsonschema.Schema{
		"projectName":          nameSchema,
		"inputPaths":           {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
		"outputDirPath":        {Type: "string"},
		"singleOutputFileName": {Type: "string"},
	},
	Required: []string{"projectName", "inputPaths"},
}

// scrollSchema validates one entry of the optional "scrolls" list.
var scrollSchema = &jsonschema.Schema{
	Type: "object",
	Properties: map[string]*jsonschema.Schema{
		"name":        nameSchema,
		"spells":      {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
		"extends":     {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
		"spellByArgs": {Type: "object"},
	},
	Required: []string{"name"},
}

// documentSchema is the top-level grimoire.config.json schema:
// "projects" is required and non-empty, per §4.1 (non-emptiness is checked
// alongside schema validation in Load, since it needs the decoded slice
// rather than a schema keyword).
var documentSchema = &jsonschema.Schema{
	Type: "object",
	Properties: map[string]*jsonschema.Schema{
		"variables":    {Type: "object"},
		"scrolls":      {Type: "array", Items: scrollSchema},
		"projects":     {Type: "array", Items: projectSchema},
		"lock":         {Type: "boolean"},
		"browserslist": {Type: "string"},
	},
	Required: []string{"projects"},
}

// resolvedDocumentSchema is lazily resolved on first validation; Resolve is
// relatively expensive (it walks and compiles the schema graph), so it only
// needs to happen once per process.
var resolvedDocumentSchema *jsonschema.Resolved

// Validate checks raw decoded JSON (as a generic map, prior to struct
// unmarshaling) against the grimoire config schema, returning a
// ConfigError-flavored error naming the first violation's instance path.
func Validate(doc any) error {
	if resolvedDocumentSchema == nil {
		resolved, err := documentSchema.Resolve(nil)
		if err != nil {
			return fmt.Errorf("config: compiling schema: %w", err)
		}
		resolvedDocumentSchema = resolved
	}
	if err := resolvedDocumentSchema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	return nil
}

// ErrSchemaViolation is the sentinel wrapped by Validate's returned error.
var ErrSchemaViolation = fmt.Errorf("config: schema violation")
