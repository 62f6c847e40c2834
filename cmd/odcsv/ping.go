// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the office server is reachable",
	Long: `Ping establishes a session with the office server and reports the
endpoint it connected to. Useful before a long batch run.`,
	Args: cobra.NoArgs,
	RunE: runPing,
}

func init() {
	addServerFlags(pingCmd)
	rootCmd.AddCommand(pingCmd)
}

func runPing(cmd *cobra.Command, args []string) error {
	session, err := connectServer(serverConfig(cmd))
	if err != nil {
		return err
	}
	defer session.Close()

	fmt.Printf("Connected to office server at %s:%d\n", session.Host, session.Port)
	return nil
}
