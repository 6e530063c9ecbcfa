// Package file provides the TOML file implementation of driven.ConfigStore.
//
// The file is optional. A missing file reads as empty configuration and
// every key falls back to its default.
package file
