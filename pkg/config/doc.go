// Package config handles configuration management for fimwatch.
// Values are layered from the embedded defaults, an optional TOML file and
// FIMWATCH_ environment variables, in that order.
package config
