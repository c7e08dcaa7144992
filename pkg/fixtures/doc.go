// Package fixtures creates, modifies and deletes the files whose changes the
// monitored agent is expected to report.
//
// Each Kind has its own creation routine. Regular files and symlinks go
// through types.FS so they can be exercised in memory; FIFOs and UNIX
// sockets need real kernel objects and always hit the OS.
package fixtures
