// Package types defines the core types and interfaces shared by fimwatch's
// packages: the filesystem abstraction, log lines, match results produced by
// matchers, and decoded alert records.
package types
