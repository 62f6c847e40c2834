// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/benjaminhottell/odcsv/internal/manifest"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List conversion runs recorded in the ledger",
	Long: `Runs prints the most recent conversion runs from a ledger database
written by 'convert --manifest', newest first.`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().String("manifest", "", "SQLite ledger database to read")
	runsCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	runsCmd.Flags().Bool("json", false, "emit runs as JSON")

	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	path := stringSetting(cmd, "manifest")
	if path == "" {
		return fmt.Errorf("ledger database required: pass --manifest or set manifest in the config file")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("no such ledger database: %s", path)
	}

	store, err := manifest.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Runs(context.Background(), limit)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}
	for _, r := range runs {
		status := fmt.Sprintf("%d sheets", r.SheetCount)
		if r.Error != "" {
			status = "failed: " + r.Error
		}
		fmt.Printf("%-5d %s  %s -> %s  (%s)\n",
			r.ID, r.FinishedAt.Local().Format("2006-01-02 15:04:05"), r.Input, r.OutputDir, status)
	}
	return nil
}
