// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/benjaminhottell/odcsv/internal/convert"
	"github.com/benjaminhottell/odcsv/internal/manifest"
)

var convertCmd = &cobra.Command{
	Use:   "convert INPUT_FILE... OUTPUT_DIR",
	Short: "Export every sheet of spreadsheet files into CSV files",
	Long: `Convert opens each input spreadsheet on the office server and stores
one CSV file per sheet into the output directory, named after the sheet
(or sheet-1.csv, sheet-2.csv, ... with --ignore-sheet-names). Input
formats are whatever the server recognizes; txt and csv inputs get an
explicit import filter, everything else is auto-detected.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runConvert,
}

func init() {
	addServerFlags(convertCmd)
	convertCmd.Flags().Bool("slow", false, "pause one second before converting each sheet (may help with flashing lights)")
	convertCmd.Flags().Bool("keep-open", false, "do not close the document after the last sheet is converted")
	convertCmd.Flags().Bool("ignore-sheet-names", false, "name the resultant CSV files 'sheet-X.csv', starting at X=1")
	convertCmd.Flags().String("filters", "", "YAML file of import-filter overrides keyed by extension")
	convertCmd.Flags().String("manifest", "", "SQLite ledger database recording this run")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputs := args[:len(args)-1]
	outputDir := args[len(args)-1]

	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return fmt.Errorf("no such file: %s", input)
		}
		if !info.Mode().IsRegular() {
			return fmt.Errorf("not a regular file: %s", input)
		}
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if info, err := os.Stat(outputDir); err != nil || !info.IsDir() {
		return fmt.Errorf("not a directory: %s", outputDir)
	}

	opts, err := convertOptions(cmd)
	if err != nil {
		return err
	}

	session, err := connectServer(serverConfig(cmd))
	if err != nil {
		return err
	}
	defer session.Close()

	result := convert.ConvertAll(convert.New(session.Desktop), inputs, outputDir, opts, os.Stdout)

	if path := stringSetting(cmd, "manifest"); path != "" {
		if err := recordResult(path, outputDir, result); err != nil {
			return err
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed to convert", result.Failed())
	}
	return nil
}

func convertOptions(cmd *cobra.Command) (convert.Options, error) {
	opts := convert.Options{}
	opts.Slow, _ = cmd.Flags().GetBool("slow")
	opts.KeepOpen, _ = cmd.Flags().GetBool("keep-open")
	opts.IgnoreSheetNames, _ = cmd.Flags().GetBool("ignore-sheet-names")

	if path := stringSetting(cmd, "filters"); path != "" {
		overrides, err := convert.LoadFilterOverrides(path)
		if err != nil {
			return convert.Options{}, err
		}
		opts.Filters = overrides
	}
	return opts, nil
}

// stringSetting reads a string flag, falling back to the config file
// when the flag was not given.
func stringSetting(cmd *cobra.Command, name string) string {
	if v, _ := cmd.Flags().GetString(name); v != "" {
		return v
	}
	return viper.GetString(name)
}

// recordResult appends each file's outcome to the run ledger.
func recordResult(dbPath, outputDir string, result convert.Result) error {
	store, err := manifest.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, f := range result.Files {
		run := manifest.Run{
			Input:      f.Input,
			OutputDir:  outputDir,
			StartedAt:  f.Started,
			FinishedAt: f.Finished,
			Outputs:    f.Outputs,
		}
		if f.Err != nil {
			run.Error = f.Err.Error()
		}
		if _, err := store.Record(context.Background(), run); err != nil {
			return err
		}
	}
	return nil
}
