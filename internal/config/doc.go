// Package config loads and validates the snapvault TOML configuration.
//
// Configuration lives at ~/.config/snapvault/config.toml by default and every
// field has a usable default, so a missing file is not an error. Load returns
// a fully normalized config: paths are ~-expanded and extension filters are
// lowercased with a leading dot.
package config
