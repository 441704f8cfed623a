// Package configs provides the embedded configuration template written by
// `hanzi config init`.
//
// Configuration hierarchy (see internal/config Load):
//  1. Hardcoded defaults (internal/config NewConfig)
//  2. User config (~/.config/hanzi/config.yaml)
//  3. Project config (.hanzi.yaml)
//  4. Environment variables (HANZI_*)
//  5. Command-line flags
package configs

import _ "embed"

// ConfigTemplate is the commented starting point for both the user and the
// project configuration file.
//
//go:embed hanzi.example.yaml
var ConfigTemplate string
