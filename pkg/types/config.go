// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the configuration structs shared between the CLI
// and the conversion stages.
package types

// ServerConfig identifies the office automation server endpoint.
type ServerConfig struct {
	// Host is the address the office server listens on (default "localhost").
	Host string `json:"host" yaml:"host"`

	// Port is the TCP port the office server listens on (default 2002).
	Port int `json:"port" yaml:"port"`
}

// FilterSpec names an office filter and its option string. For the CSV
// filter the options string encodes field delimiter, text delimiter and
// codepage as short numeric codes (e.g. "44,34,0"); filters that need
// no options leave it empty.
type FilterSpec struct {
	Name    string `json:"filter_name" yaml:"filter_name"`
	Options string `json:"filter_options,omitempty" yaml:"filter_options,omitempty"`
}
