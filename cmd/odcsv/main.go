// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the odcsv CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the odcsv CLI.
var rootCmd = &cobra.Command{
	Use:   "odcsv",
	Short: "Export spreadsheet sheets to CSV through an office server",
	Long: `odcsv converts spreadsheet documents into one CSV file per sheet by
driving a running office server over its socket bridge. The server does
all parsing and serialization; odcsv opens the document, walks its
sheets, and stores each one in turn.

Start a server before converting, for example:

  soffice --headless "--accept=socket,host=localhost,port=2002;urp;"`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./odcsv.yaml or ~/.config/odcsv/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("odcsv")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "odcsv"))
		}
	}

	viper.SetEnvPrefix("ODCSV")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
