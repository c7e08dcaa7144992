// Package registry provides a generic, thread-safe registry that remembers
// the order items were registered in. fimwatch uses it for the named matcher
// catalogue, where registration order decides which matcher wins when more
// than one could claim the same log line.
package registry
