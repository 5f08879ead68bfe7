/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package build provides the build command: compile every project, shared
// and critical unit named by the loaded configuration into CSS (§4.9).
package build

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"grimoirecss.dev/grimoire/builder"
	"grimoirecss.dev/grimoire/config"
	"grimoirecss.dev/grimoire/fsx"
	"grimoirecss.dev/grimoire/internal/logger"
	"grimoirecss.dev/grimoire/postproc"
)

// Cmd is the build cobra command.
var Cmd = &cobra.Command{
	Use:   "build",
	Short: "Compile spells and scrolls into CSS",
	Long:  `Scan every configured project's input files, resolve their spells and scrolls, and emit CSS artifacts.`,
	RunE:  run,
}

func init() {
	Cmd.Flags().IntP("workers", "w", 0, "Number of projects to build concurrently (0 or 1: sequential)")
	Cmd.Flags().String("browserslist", "", "Browserslist query passed to the post-processor, overriding the config value")

	_ = viper.BindPFlag("workers", Cmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("browserslist", Cmd.Flags().Lookup("browserslist"))
}

func run(cmd *cobra.Command, args []string) error {
	root, err := cmd.Flags().GetString("root")
	if err != nil {
		return fmt.Errorf("reading root flag: %w", err)
	}

	fs := fsx.NewOS()
	cfg, err := config.Load(fs, root)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg == nil {
		cfg = config.Default()
	}

	if bl := viper.GetString("browserslist"); bl != "" {
		cfg.Browserslist = bl
	}

	results, acc := builder.Run(fs, root, cfg, postproc.Passthrough{}, viper.GetInt("workers"))

	failed := false
	for _, r := range results {
		if r == nil {
			continue
		}
		if r.State == builder.Failed {
			failed = true
			logger.Warn("%s: build failed", r.OutputPath)
			continue
		}
		logger.Info("%s: %s", r.OutputPath, r.State)
	}

	for _, d := range acc.Diagnostics() {
		logger.Warn("%s", d.Error())
	}

	if failed || acc.HasErrors() {
		os.Exit(1)
	}
	return nil
}
