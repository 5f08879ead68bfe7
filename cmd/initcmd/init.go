/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package initcmd provides the init command: scaffold a default
// grimoire.config.json.
package initcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/segmentio/encoding/json"
	"github.com/spf13/cobra"

	"grimoirecss.dev/grimoire/config"
	"grimoirecss.dev/grimoire/fsx"
	"grimoirecss.dev/grimoire/internal/logger"
)

// Cmd is the init cobra command.
var Cmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a default grimoire.config.json",
	Long:  `Create grimoire/config/grimoire.config.json with a single default project, unless one already exists.`,
	RunE:  run,
}

func run(cmd *cobra.Command, args []string) error {
	root, err := cmd.Flags().GetString("root")
	if err != nil {
		return fmt.Errorf("reading root flag: %w", err)
	}

	fs := fsx.NewOS()
	path := filepath.Join(root, config.ConfigDir, config.ConfigFileName)
	if fs.Exists(path) {
		logger.Warn("%s already exists", path)
		os.Exit(1)
	}

	cfg := &config.Config{
		Projects: []config.Project{
			{
				Name:          "default",
				InputPaths:    []string{"src/**/*.html"},
				OutputDirPath: "dist",
			},
		},
		Browserslist: "defaults",
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}

	if err := fs.WriteFile(path, data, 0o644); err != nil {
		logger.Warn("writing %s: %v", path, err)
		os.Exit(1)
	}

	logger.Info("wrote %s", path)
	return nil
}
