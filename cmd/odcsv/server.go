// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/benjaminhottell/odcsv/internal/uno"
	"github.com/benjaminhottell/odcsv/pkg/types"
)

// addServerFlags registers the office-server endpoint flags shared by
// commands that connect.
func addServerFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("host", "H", "", fmt.Sprintf("office server host (default %q)", uno.DefaultHost))
	cmd.Flags().IntP("port", "P", 0, fmt.Sprintf("office server port (default %d)", uno.DefaultPort))
}

// serverConfig resolves the endpoint: flags win over the config file,
// which wins over the built-in defaults.
func serverConfig(cmd *cobra.Command) types.ServerConfig {
	host, _ := cmd.Flags().GetString("host")
	if host == "" {
		host = viper.GetString("host")
	}
	if host == "" {
		host = uno.DefaultHost
	}

	port, _ := cmd.Flags().GetInt("port")
	if port == 0 {
		port = viper.GetInt("port")
	}
	if port == 0 {
		port = uno.DefaultPort
	}

	return types.ServerConfig{Host: host, Port: port}
}

// connectServer establishes a session, printing a startup hint to
// stderr when the server is unreachable.
func connectServer(cfg types.ServerConfig) (*uno.Session, error) {
	session, err := uno.Connect(cfg.Host, cfg.Port)
	if err != nil {
		var cerr *uno.ConnectionError
		if errors.As(err, &cerr) {
			fmt.Fprintln(os.Stderr, "Make sure an office server is running before invoking odcsv.")
			fmt.Fprintln(os.Stderr, "Example:")
			fmt.Fprintf(os.Stderr, "$ soffice --headless \"--accept=socket,host=%s,port=%d;urp;\"\n", cerr.Host, cerr.Port)
		}
		return nil, err
	}
	return session, nil
}
