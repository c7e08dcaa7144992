// Package filesystem provides filesystem implementations for fimwatch.
//
// This package contains implementations of the types.FS interface: the real
// OS filesystem used by the CLI and an afero-backed filesystem used by tests
// to stage log and alert files in memory.
package filesystem
