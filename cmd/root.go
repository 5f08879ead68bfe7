/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for grimoire.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"grimoirecss.dev/grimoire/cmd/build"
	"grimoirecss.dev/grimoire/cmd/initcmd"
	"grimoirecss.dev/grimoire/cmd/shorten"
	"grimoirecss.dev/grimoire/cmd/version"
)

var rootCmd = &cobra.Command{
	Use:   "grimoire",
	Short: "Compile spells and scrolls into CSS",
	Long:  `grimoire compiles a declarative spells/scrolls DSL, extracted from your markup, into optimized CSS.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("root", "r", ".", "Project root directory")
	_ = viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))

	rootCmd.AddCommand(build.Cmd)
	rootCmd.AddCommand(initcmd.Cmd)
	rootCmd.AddCommand(shorten.Cmd)
	rootCmd.AddCommand(version.Cmd)
}

func initConfig() {
	viper.SetEnvPrefix("GRIMOIRE")
	viper.AutomaticEnv()
}
