// Package config loads and validates the TOML configuration.
//
// Configuration resolution order: an explicit --config path, then
// ~/.config/sciwatch/config.toml, then sciwatch.toml in the working
// directory. A missing file is not an error; repository defaults apply and
// Load reports whether a file was actually read.
package config
